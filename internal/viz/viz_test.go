package viz

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(10, 10)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("Set(0,0) did not light a pixel")
	}

	c.Clear()
	if c.Grid[0][0] != 0x2800 {
		t.Error("Clear did not reset the cell")
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(4, 4)

	// Must not panic.
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(1000, 0)
	c.Set(0, 1000)
}

func TestCanvasFillRect(t *testing.T) {
	c := NewCanvas(10, 10)
	c.FillRect(2, 2, 5, 5)

	for y := 2; y <= 5; y++ {
		for x := 2; x <= 5; x++ {
			if c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) == 0 {
				t.Fatalf("pixel (%d,%d) not set", x, y)
			}
		}
	}
}

func TestCanvasFillRectSwappedCorners(t *testing.T) {
	a := NewCanvas(10, 10)
	b := NewCanvas(10, 10)

	a.FillRect(2, 2, 5, 5)
	b.FillRect(5, 5, 2, 2)

	if a.String() != b.String() {
		t.Error("FillRect is not corner-order independent")
	}
}

func TestCameraProjectsOriginToCenter(t *testing.T) {
	cam := NewCamera()
	x, y, depth, visible := cam.Project(mgl32.Vec3{}, 160, 96)

	if !visible {
		t.Fatal("origin not visible")
	}
	if x != 80 || y != 48 {
		t.Errorf("expected origin at (80,48), got (%d,%d)", x, y)
	}
	if depth != 0 {
		t.Errorf("expected zero depth at origin, got %f", depth)
	}
}

func TestCameraDepthOrdering(t *testing.T) {
	cam := NewCamera()

	_, _, near, _ := cam.Project(mgl32.Vec3{0, 0, 1}, 160, 96)
	_, _, far, _ := cam.Project(mgl32.Vec3{0, 0, -1}, 160, 96)

	if near <= far {
		t.Errorf("expected +z closer to the eye: near=%f far=%f", near, far)
	}
}

func TestCameraCullsBehindEye(t *testing.T) {
	cam := NewCamera()

	if _, _, _, visible := cam.Project(mgl32.Vec3{0, 0, 5}, 160, 96); visible {
		t.Error("point behind the near plane should be culled")
	}
}

func TestCameraZoomBounds(t *testing.T) {
	cam := NewCamera()

	for i := 0; i < 100; i++ {
		cam.ZoomIn()
	}
	if cam.Zoom > 10 {
		t.Errorf("zoom exceeded max: %f", cam.Zoom)
	}

	for i := 0; i < 100; i++ {
		cam.ZoomOut()
	}
	if cam.Zoom < 0.1 {
		t.Errorf("zoom below min: %f", cam.Zoom)
	}
}

func TestRenderCloudDrawsSomething(t *testing.T) {
	c := NewCanvas(40, 12)
	cam := NewCamera()

	RenderCloud(c, []mgl32.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}, cam)

	if !strings.ContainsFunc(c.String(), func(r rune) bool { return r > 0x2800 && r <= 0x28FF }) {
		t.Error("expected lit pixels after rendering")
	}
}

func TestRenderCloudEmpty(t *testing.T) {
	c := NewCanvas(10, 10)
	before := c.String()

	RenderCloud(c, nil, NewCamera())

	if c.String() != before {
		t.Error("rendering an empty cloud modified the canvas")
	}
}
