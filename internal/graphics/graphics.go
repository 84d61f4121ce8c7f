package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window Run opens.
type Window struct {
	Title      string
	Width      int32
	Height     int32
	Background rl.Color
	// Fullscreen opens at monitor size instead of Width×Height.
	Fullscreen bool
}

// Run opens the window and runs the main loop. Each frame it calls update (input, actions), then clears
// the screen to the background colour and calls draw (scene, HUD, console).
// The window is resizable; ESC is left to the console and the window closes via its close button.
// onClose runs before the window is destroyed so GPU resources can be freed.
func Run(win Window, update, draw, onClose func()) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if win.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	w, h := win.Width, win.Height
	if win.Fullscreen {
		w, h = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.InitWindow(w, h, win.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(win.Background)
		draw()
		rl.EndDrawing()
	}
	if onClose != nil {
		onClose()
	}
}
