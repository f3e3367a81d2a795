package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/gearsim/internal/assembly"
	"github.com/san-kum/gearsim/internal/viz"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const (
	windowWidth  = 1280
	windowHeight = 720
	margin       = 80
	maxTelemetry = 400
)

type App struct {
	Asm       *assembly.Assembly
	Title     string
	View      viz.View
	Running   bool
	Clock     float64 // ms, advances only while running
	Telemetry []float64
	Font      rl.Font

	lastWall float64
	quit     bool
}

func initWindow(fps int) {
	rl.InitWindow(windowWidth, windowHeight, "gearsim")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(a *assembly.Assembly, title string) *App {
	return &App{
		Asm:       a,
		Title:     title,
		View:      viz.Fit(a.Scene.Bounds(), windowWidth, windowHeight, margin),
		Running:   true,
		Telemetry: make([]float64, 0, maxTelemetry),
		Font:      loadFont(),
		lastWall:  -1,
	}
}

// Run opens a window and drives the assembly from the frame clock and the
// mouse until the window is closed.
func Run(a *assembly.Assembly, title string, fps int) {
	initWindow(fps)
	defer rl.CloseWindow()
	app := NewApp(a, title)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}

	wall := rl.GetTime() * 1000
	a.advance(wall)
	if !a.Running {
		return
	}

	// Pointer samples only arrive on motion, matching a mousemove stream.
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		m := rl.GetMousePosition()
		a.Asm.Pointer(a.View.ToLocal(float64(m.X), float64(m.Y)), wall)
	}
}

// advance moves the simulated clock by the wall time since the previous
// frame and ticks the engine while running.
func (a *App) advance(wall float64) {
	if a.Running && a.lastWall >= 0 {
		a.Clock += wall - a.lastWall
	}
	a.lastWall = wall
	if !a.Running {
		return
	}

	a.Asm.Tick(a.Clock)
	if len(a.Telemetry) == maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
	a.Telemetry = append(a.Telemetry, a.Asm.Engine.Speed())
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawGears()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("gearsim", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Title), 150, 34, 16, ColText)

	a.DrawTelemetry()

	snap := a.Asm.Engine.Snapshot()
	status, col := "RUNNING", ColSelect
	switch {
	case !a.Running:
		status, col = "PAUSED", ColTextDim
	case snap.Engaged:
		status, col = "DRAGGING", ColAccent
	}
	a.drawText(status, 1130, 30, 16, col)

	hovered := a.Asm.HoveredID()
	if hovered == "" {
		hovered = "-"
	}
	a.drawText(fmt.Sprintf("SPEED %+.3f deg/ms", snap.Speed), 30, 70, 14, ColText)
	a.drawText(fmt.Sprintf("ANGLE %.1f deg", snap.Angle), 30, 90, 14, ColText)
	a.drawText(fmt.Sprintf("HOVER %s", hovered), 30, 110, 14, ColText)

	a.drawText("[SPACE] PAUSE  [Q] QUIT", 1000, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 600
	width, height := 400, 60

	points := telemetryPoints(a.Telemetry, float32(rectX), float32(rectY), float32(width), float32(height))
	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("v: %+.3f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
