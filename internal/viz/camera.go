package viz

import "github.com/go-gl/mathgl/mgl32"

// Camera projects cloud coordinates onto the canvas with a simple
// perspective divide. The cloud lives roughly in [-1,1]^3, so the default
// eye distance keeps the whole population in frame.
type Camera struct {
	Distance         float32
	Near             float32
	RotX, RotY, RotZ float32
	Zoom             float32
}

func NewCamera() *Camera {
	return &Camera{Distance: 3.0, Near: 0.1, Zoom: 1.0}
}

func (c *Camera) RotateX(a float32) { c.RotX += a }
func (c *Camera) RotateY(a float32) { c.RotY += a }
func (c *Camera) RotateZ(a float32) { c.RotZ += a }

func (c *Camera) ZoomIn() {
	c.Zoom = min32(10, c.Zoom*1.2)
}

func (c *Camera) ZoomOut() {
	c.Zoom = max32(0.1, c.Zoom/1.2)
}

func (c *Camera) rotation() mgl32.Mat3 {
	return mgl32.Rotate3DZ(c.RotZ).
		Mul3(mgl32.Rotate3DY(c.RotY)).
		Mul3(mgl32.Rotate3DX(c.RotX))
}

// Project converts a cloud position to pixel coordinates. It returns the
// pixel, the view-space depth (larger is closer to the eye) and whether
// the point lands inside the pw x ph pixel area.
func (c *Camera) Project(p mgl32.Vec3, pw, ph int) (int, int, float32, bool) {
	rot := c.rotation().Mul3x1(p).Mul(c.Zoom)

	if rot.Z() >= c.Distance-c.Near {
		return 0, 0, 0, false
	}

	scale := c.Distance / (c.Distance - rot.Z())
	minDim := float32(ph)
	if float32(pw) < minDim {
		minDim = float32(pw)
	}
	pScale := minDim / 3.0

	sx := int(rot.X()*scale*pScale) + pw/2
	sy := int(-rot.Y()*scale*pScale) + ph/2
	return sx, sy, rot.Z(), sx >= 0 && sx < pw && sy >= 0 && sy < ph
}

// QuadHalfExtent returns the on-screen half size in pixels of a quad with
// the given world half extent at view depth z.
func (c *Camera) QuadHalfExtent(world float32, z float32, pw, ph int) int {
	scale := c.Distance / (c.Distance - z)
	minDim := float32(ph)
	if float32(pw) < minDim {
		minDim = float32(pw)
	}
	half := int(world * c.Zoom * scale * minDim / 3.0)
	if half < 0 {
		half = 0
	}
	return half
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
