package render

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"

	"github.com/rook-computer/termclock/internal/glyph"
	"github.com/rook-computer/termclock/internal/render/layout"
)

// DrawGrid paints grid into rect of dst, one block per half cell. The cell
// size is rounded down so every cell has the same pixel size.
func DrawGrid(dst draw.Image, rect image.Rectangle, grid glyph.Grid, fg, bg color.Color) {
	draw.Draw(dst, rect, &image.Uniform{C: bg}, image.Point{}, draw.Src)

	cellW := rect.Dx() / glyph.Columns
	half := rect.Dy() / glyph.Rows / 2
	if cellW == 0 || half == 0 {
		return
	}
	ink := &image.Uniform{C: fg}
	for col := 0; col < glyph.Columns; col++ {
		for row := 0; row < glyph.Rows; row++ {
			x := rect.Min.X + col*cellW
			y := rect.Min.Y + row*2*half
			var block image.Rectangle
			switch grid[col][row] {
			case glyph.Upper:
				block = image.Rect(x, y, x+cellW, y+half)
			case glyph.Lower:
				block = image.Rect(x, y+half, x+cellW, y+2*half)
			case glyph.Full:
				block = image.Rect(x, y, x+cellW, y+2*half)
			default:
				continue
			}
			draw.Draw(dst, block, ink, image.Point{}, draw.Src)
		}
	}
}

// Captioner draws the reading under the face. It uses Go Mono through
// freetype and falls back to basicfont if the font cannot be parsed.
type Captioner struct {
	ttFont *truetype.Font
}

func NewCaptioner(l *slog.Logger) *Captioner {
	tt, err := truetype.Parse(gomono.TTF)
	if err != nil {
		l.Error("truetype parse failed, using basicfont", "component", "caption", "error", err)
		return &Captioner{}
	}
	return &Captioner{ttFont: tt}
}

// Draw centers text in rect.
func (c *Captioner) Draw(dst draw.Image, rect image.Rectangle, text string, fg color.Color) error {
	if rect.Empty() || text == "" {
		return nil
	}
	if c.ttFont == nil {
		drawBasic(dst, rect, text, fg)
		return nil
	}

	size := float64(rect.Dy()) * 0.6
	face := truetype.NewFace(c.ttFont, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()

	metrics := face.Metrics()
	textWidth := font.MeasureString(face, text).Ceil()
	x := rect.Min.X + (rect.Dx()-textWidth)/2
	baseline := rect.Min.Y + (rect.Dy()+metrics.Ascent.Ceil()-metrics.Descent.Ceil())/2

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(c.ttFont)
	ctx.SetFontSize(size)
	ctx.SetHinting(font.HintingFull)
	ctx.SetClip(rect)
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(fg))
	_, err := ctx.DrawString(text, freetype.Pt(x, baseline))
	return err
}

func drawBasic(dst draw.Image, rect image.Rectangle, text string, fg color.Color) {
	face := basicfont.Face7x13
	drawer := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: face}
	textWidth := drawer.MeasureString(text).Ceil()
	x := rect.Min.X + (rect.Dx()-textWidth)/2
	y := rect.Min.Y + (rect.Dy()+face.Metrics().Ascent.Ceil())/2
	drawer.Dot = fixed.P(x, y)
	drawer.DrawString(text)
}

// PaintFrame fills canvas with the face and the caption below it.
func PaintFrame(canvas draw.Image, f Frame, caption *Captioner) error {
	bounds := canvas.Bounds()
	draw.Draw(canvas, bounds, &image.Uniform{C: Background}, image.Point{}, draw.Src)

	top, bottom := layout.SplitHorizontal(bounds, bounds.Dy()*5/6)
	pad := bounds.Dy() / 24
	face := layout.Fit(layout.Inset(top, pad), 1, 1)
	DrawGrid(canvas, face, f.Grid, Foreground, Background)

	if caption == nil {
		return nil
	}
	return caption.Draw(canvas, layout.Inset(bottom, pad/2), f.Reading.String(), Foreground)
}
