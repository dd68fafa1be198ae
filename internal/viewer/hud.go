package viewer

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	hudFontSize   = 20
	hudPadding    = 12
	hudLineHeight = hudFontSize + 4
	// Stats text is refreshed every updateInterval frames to limit allocations.
	updateInterval = 30
)

// hud draws the info lines top-left and FPS, heap and triangle counts
// top-right.
type hud struct {
	info      []string
	showStats bool

	frameCount   uint32
	statsText    []string
	lastMemStats runtime.MemStats
}

func newHUD(info []string) *hud {
	return &hud{info: info, showStats: true}
}

func (h *hud) draw(triangles int) {
	y := int32(hudPadding)
	for _, line := range h.info {
		rl.DrawText(line, hudPadding, y, hudFontSize, rl.RayWhite)
		y += hudLineHeight
	}
	if !h.showStats {
		return
	}

	h.frameCount++
	if h.frameCount%updateInterval == 0 || h.statsText == nil {
		runtime.ReadMemStats(&h.lastMemStats)
		mb := float64(h.lastMemStats.Alloc) / (1024 * 1024)
		h.statsText = []string{
			fmt.Sprintf("FPS: %d", rl.GetFPS()),
			fmt.Sprintf("Mem: %.2f MiB", mb),
			fmt.Sprintf("Tris: %d", triangles),
		}
	}

	screenW := int32(rl.GetScreenWidth())
	y = hudPadding
	for _, text := range h.statsText {
		w := rl.MeasureText(text, hudFontSize)
		rl.DrawText(text, screenW-w-hudPadding, y, hudFontSize, rl.Green)
		y += hudLineHeight
	}
}
