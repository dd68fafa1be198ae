package graphics

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

// Background is the clear color behind the 3D view.
var Background = rl.NewColor(38, 40, 46, 255)

// Run opens a resizable, multisampled window titled title and runs the main
// loop. Each frame it calls update (input, camera), then clears the screen
// and calls draw. ESC, the window button or ctx being done closes it.
func Run(ctx context.Context, title string, update, draw func()) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(windowWidth, windowHeight, title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	loop(ctx, rl.WindowShouldClose, func() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(Background)
		draw()
		rl.EndDrawing()
	})
}

// loop calls frame until shouldClose reports true or ctx is done.
func loop(ctx context.Context, shouldClose func() bool, frame func()) {
	for ctx.Err() == nil && !shouldClose() {
		frame()
	}
}
