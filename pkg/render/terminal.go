package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw paints the surface onto a terminal screen, two surface rows per cell
// using the upper half block: the foreground is the top pixel and the
// background the bottom one. Surface pixel (0,0) maps to area.Min.
// Transparent pixels leave that half of the cell uncolored.
func (s *Surface) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		if topY >= s.Height {
			break
		}
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= s.Width {
				break
			}

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: pixelColor(s.At(x, topY)),
					Bg: pixelColor(s.At(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// pixelColor converts a packed pixel to a terminal color, or nil for fully
// transparent pixels. Partial coverage is composited over black.
func pixelColor(p uint32) color.Color {
	c := Unpack(p)
	if c.A == 0 {
		return nil
	}
	return color.RGBA{
		R: uint8(uint32(c.R) * uint32(c.A) / 255),
		G: uint8(uint32(c.G) * uint32(c.A) / 255),
		B: uint8(uint32(c.B) * uint32(c.A) / 255),
		A: 255,
	}
}
