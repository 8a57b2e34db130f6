package viz

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// AtomHalfExtent is the world-space half size of a rendered atom quad.
const AtomHalfExtent = 0.1

type projectedQuad struct {
	x, y  int
	half  int
	depth float32
}

// RenderCloud draws every position as a camera-facing quad using the
// painter's algorithm. The input arrives in the cloud's depth order; the
// projection re-sorts by view depth stably, so atoms sharing a depth keep
// the cloud's ordering under camera rotation.
func RenderCloud(c *Canvas, positions []mgl32.Vec3, cam *Camera) {
	if c == nil || cam == nil {
		return
	}

	pw, ph := c.PixelSize()
	quads := make([]projectedQuad, 0, len(positions))

	for _, p := range positions {
		x, y, depth, visible := cam.Project(p, pw, ph)
		if !visible {
			continue
		}
		quads = append(quads, projectedQuad{
			x:     x,
			y:     y,
			half:  cam.QuadHalfExtent(AtomHalfExtent, depth, pw, ph),
			depth: depth,
		})
	}

	sort.SliceStable(quads, func(i, j int) bool {
		return quads[i].depth < quads[j].depth
	})

	for _, q := range quads {
		if q.half == 0 {
			c.Set(q.x, q.y)
			continue
		}
		c.FillRect(q.x-q.half, q.y-q.half, q.x+q.half, q.y+q.half)
	}
}

// RenderAxes draws the three principal axes as reference lines.
func RenderAxes(c *Canvas, cam *Camera, length float32) {
	pw, ph := c.PixelSize()
	origin := mgl32.Vec3{}

	for _, axis := range []mgl32.Vec3{{length, 0, 0}, {0, length, 0}, {0, 0, length}} {
		x0, y0, _, v0 := cam.Project(origin, pw, ph)
		x1, y1, _, v1 := cam.Project(axis, pw, ph)
		if v0 || v1 {
			c.DrawLine(x0, y0, x1, y1)
		}
	}
}
