package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-engine/internal/physics"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the overlay text every N frames to
	// reduce allocations.
	updateInterval = 30
)

// Overlay renders runtime debug text (FPS, heap alloc, physics stats) at
// the top-right. Visibility is passed into Draw explicitly each frame so
// the caller owns the flags; there is no process-global toggle.
type Overlay struct {
	frameCount   uint32
	lastFPSText  string
	lastMemText  string
	lastStatText [4]string
	lastMemStats runtime.MemStats
}

// New returns an empty overlay.
func New() *Overlay {
	return &Overlay{}
}

// Draw renders the requested lines. Call after the scene in the draw loop.
// Text is only recomputed every updateInterval frames to limit allocations.
func (o *Overlay) Draw(stats physics.Stats, showFPS, showMem, showStats bool) {
	o.frameCount++
	update := (o.frameCount % updateInterval) == 0
	if showFPS && o.lastFPSText == "" {
		update = true
	}
	if showMem && o.lastMemText == "" {
		update = true
	}
	if showStats && o.lastStatText[0] == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)

	if showFPS {
		if update {
			o.lastFPSText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		y = drawRight(o.lastFPSText, screenW, y, rl.Green)
	}

	if showMem {
		if update {
			runtime.ReadMemStats(&o.lastMemStats)
			o.lastMemText = fmt.Sprintf("Heap: %.1f MB", float64(o.lastMemStats.HeapAlloc)/(1024*1024))
		}
		y = drawRight(o.lastMemText, screenW, y, rl.Green)
	}

	if showStats {
		if update {
			o.lastStatText = [4]string{
				fmt.Sprintf("Bodies: %d", stats.TotalBodies),
				fmt.Sprintf("Active: %d", stats.ActiveBodies),
				fmt.Sprintf("Sleeping: %d", stats.SleepingBodies),
				fmt.Sprintf("KE: %.0f", stats.TotalKineticEnergy),
			}
		}
		for _, line := range o.lastStatText {
			y = drawRight(line, screenW, y, rl.SkyBlue)
		}
	}
}

// drawRight draws one right-aligned line and returns the next line's y.
func drawRight(text string, screenW, y int32, color rl.Color) int32 {
	if text == "" {
		return y
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, color)
	return y + lineHeight
}
