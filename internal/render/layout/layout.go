// Package layout places the clock face and its caption on a raster canvas.
package layout

import "image"

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// Inset shrinks rect by paddingPx on all sides, collapsing to its center
// when the padding is larger than half the rectangle.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	rect = Normalize(rect)
	if paddingPx <= 0 {
		return rect
	}
	padX := min(paddingPx, rect.Dx()/2)
	padY := min(paddingPx, rect.Dy()/2)
	return image.Rect(rect.Min.X+padX, rect.Min.Y+padY, rect.Max.X-padX, rect.Max.Y-padY)
}

// SplitHorizontal splits rect into top and bottom parts.
// topHeightPx is clamped to [0, rect.Dy()].
func SplitHorizontal(rect image.Rectangle, topHeightPx int) (top image.Rectangle, bottom image.Rectangle) {
	rect = Normalize(rect)
	topHeightPx = max(0, min(topHeightPx, rect.Dy()))
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+topHeightPx)
	bottom = image.Rect(rect.Min.X, rect.Min.Y+topHeightPx, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// Fit returns the largest rectangle with aspect ratio aspectW:aspectH that
// fits in rect, centered. Non-positive aspects yield an empty rectangle at
// the center of rect.
func Fit(rect image.Rectangle, aspectW, aspectH int) image.Rectangle {
	rect = Normalize(rect)
	center := image.Pt(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)
	if aspectW <= 0 || aspectH <= 0 {
		return image.Rectangle{Min: center, Max: center}
	}

	w := rect.Dx()
	h := w * aspectH / aspectW
	if h > rect.Dy() {
		h = rect.Dy()
		w = h * aspectW / aspectH
	}
	minPt := image.Pt(rect.Min.X+(rect.Dx()-w)/2, rect.Min.Y+(rect.Dy()-h)/2)
	return image.Rectangle{Min: minPt, Max: minPt.Add(image.Pt(w, h))}
}
