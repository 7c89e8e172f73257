package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Run starts the window and main loop. Each frame it calls update (input +
// physics step), then clears the screen and calls draw (world + overlays).
// This keeps the graphics layer separate from the simulation content.
// Close via ESC or the window button.
func Run(title string, width, height int32, update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(width, height, title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
