package tui

import (
	"fmt"
	"strings"

	"github.com/bivex/wic/internal/config"
	"github.com/bivex/wic/internal/geometry"
	"github.com/bivex/wic/internal/layout"
)

// previewScreen is the simulated display all previews run against.
var previewScreen = geometry.Screen{
	Full:   geometry.Rect{Width: 1920, Height: 1080},
	Usable: geometry.Rect{Width: 1920, Height: 1040},
}

// computePreview resolves a mode name through the config and returns
// the target rects on the simulated display.
func computePreview(cfg *config.Config, name string, windowCount int) []geometry.Rect {
	if windowCount < 1 {
		windowCount = 1
	}

	opts := layout.Options{}
	if cfg != nil {
		opts = cfg.Options()
	}

	if cfg != nil {
		mode, profile, err := cfg.ResolveMode(name)
		if err == nil {
			if profile != nil {
				return layout.ComputeProfile(*profile, windowCount, previewScreen, opts)
			}
			return layout.Compute(mode, windowCount, previewScreen, opts)
		}
	}
	return layout.Compute(layout.Mode(name), windowCount, previewScreen, opts)
}

func summarizeMode(cfg *config.Config, name string, windowCount int) string {
	rects := computePreview(cfg, name, windowCount)
	if len(rects) == 0 {
		return "no windows"
	}

	minW, minH := rects[0].Width, rects[0].Height
	maxW, maxH := rects[0].Width, rects[0].Height
	for _, r := range rects[1:] {
		if r.Width < minW {
			minW = r.Width
		}
		if r.Height < minH {
			minH = r.Height
		}
		if r.Width > maxW {
			maxW = r.Width
		}
		if r.Height > maxH {
			maxH = r.Height
		}
	}

	if minW == maxW && minH == maxH {
		return fmt.Sprintf("%d windows • %.0f×%.0f px each", len(rects), minW, minH)
	}
	return fmt.Sprintf("%d windows • min %.0f×%.0f • max %.0f×%.0f", len(rects), minW, minH, maxW, maxH)
}

// renderASCIIPreview generates an ASCII art representation of a mode's
// arrangement on the simulated display.
func renderASCIIPreview(cfg *config.Config, name string, windowCount, width, height int) []string {
	if width < 5 || height < 3 {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	rects := computePreview(cfg, name, windowCount)
	for i, rect := range rects {
		drawWindow(canvas, rect, i+1, width, height)
	}

	drawBorder(canvas, width, height)

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}

	return lines
}

func drawWindow(canvas [][]rune, rect geometry.Rect, num, canvasW, canvasH int) {
	// Map display coordinates to canvas coordinates
	scaleX := float64(canvasW) / previewScreen.Usable.Width
	scaleY := float64(canvasH) / previewScreen.Usable.Height

	x1 := int(rect.X * scaleX)
	y1 := int(rect.Y * scaleY)
	x2 := int(rect.Right() * scaleX)
	y2 := int(rect.Bottom() * scaleY)

	// Clamp inside the outer border
	if x1 < 1 {
		x1 = 1
	}
	if y1 < 1 {
		y1 = 1
	}
	if x2 >= canvasW-1 {
		x2 = canvasW - 2
	}
	if y2 >= canvasH-1 {
		y2 = canvasH - 2
	}

	// Need at least 2x2 for a window
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x <= x2; x++ {
		canvas[y1][x] = '─'
		canvas[y2][x] = '─'
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = '│'
		canvas[y][x2] = '│'
	}

	canvas[y1][x1] = '┌'
	canvas[y1][x2] = '┐'
	canvas[y2][x1] = '└'
	canvas[y2][x2] = '┘'

	// Window number in the center
	centerY := (y1 + y2) / 2
	centerX := (x1 + x2) / 2
	if centerY > y1 && centerY < y2 && centerX > x1 && centerX < x2 {
		label := fmt.Sprintf("%d", num)
		startX := centerX - len(label)/2
		for i, r := range label {
			if startX+i > x1 && startX+i < x2 {
				canvas[centerY][startX+i] = r
			}
		}
	}
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}

	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	lines := make([]string, height)
	empty := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = empty
	}
	return lines
}
