package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/atomcloud/internal/cloud"
	"github.com/san-kum/atomcloud/internal/config"
)

var (
	colBg      = rl.NewColor(0, 0, 0, 255)
	colAtom    = rl.NewColor(220, 220, 255, 200)
	colText    = rl.NewColor(140, 140, 140, 255)
	colWarning = rl.NewColor(255, 80, 80, 255)
)

// App owns the windowed render loop: step the cloud, draw the position
// snapshot as camera-facing billboards, present, repeat at the target
// frame rate. Escape or closing the window quits between frames.
type App struct {
	Cloud   *cloud.Cloud
	Camera  rl.Camera3D
	Tex     rl.Texture2D
	Cfg     *config.Config
	Time    float64
	Seed    int64
	Running bool
}

func NewApp(cfg *config.Config) *App {
	app := &App{
		Cloud: cloud.New(cfg.Atoms, cfg.Seed),
		Cfg:   cfg,
		Seed:  cfg.Seed,
		Camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, 3),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
		Running: true,
	}

	// Soft radial glow so overlapping quads blend instead of banding.
	img := rl.GenImageGradientRadial(32, 32, 0.0, rl.White, rl.NewColor(0, 0, 0, 0))
	app.Tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	return app
}

// Run opens the window and blocks until the user quits.
func Run(cfg *config.Config) {
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), "atomcloud")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.FPS))

	app := NewApp(cfg)
	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset(a.Seed)
	}
	if rl.IsKeyPressed(rl.KeyN) {
		a.reset(a.Seed + 1)
	}

	if a.Running {
		a.Cloud.Step(float32(a.Cfg.Dt))
		a.Time += a.Cfg.Dt
	}
}

func (a *App) reset(seed int64) {
	a.Seed = seed
	a.Cloud = cloud.New(a.Cfg.Atoms, seed)
	a.Time = 0
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colBg)

	rl.BeginMode3D(a.Camera)
	rl.BeginBlendMode(rl.BlendAdditive)

	// Positions arrive depth-sorted; drawing in order keeps the
	// alpha-blended quads compositing back to front.
	size := float32(cloudQuadSize)
	for _, p := range a.Cloud.Positions() {
		rl.DrawBillboard(a.Camera, a.Tex, rl.NewVector3(p.X(), p.Y(), p.Z()), size, colAtom)
	}

	rl.EndBlendMode()
	rl.EndMode3D()

	rl.DrawText(fmt.Sprintf("atoms: %d", a.Cloud.Len()), 10, 10, 14, colText)
	rl.DrawText(fmt.Sprintf("t: %.1fs", a.Time), 10, 28, 14, colText)
	rl.DrawText(fmt.Sprintf("seed: %d", a.Seed), 10, 46, 14, colText)
	if !a.Running {
		rl.DrawText("PAUSED", 10, 64, 14, colText)
	}
	if !a.Cloud.Valid() {
		rl.DrawText("DEGENERATE STATE (NaN)", 10, 82, 14, colWarning)
	}
	rl.DrawFPS(int32(a.Cfg.Window.Width)-90, 10)

	rl.EndDrawing()
}

// Full quad edge length; matches the terminal renderer's half extent.
const cloudQuadSize = 0.2
