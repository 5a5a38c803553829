package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// Face colors: dark grey on white. Terminal sinks use the palette entries,
// raster sinks the matching RGB values.
var (
	TermForeground = tcell.ColorGray
	TermBackground = tcell.ColorWhite

	Foreground = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF} // #808080
	Background = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF} // #ffffff

	// Logical canvas size of raster sinks; scaled to the device.
	CanvasWidth  = 640
	CanvasHeight = 480
)
