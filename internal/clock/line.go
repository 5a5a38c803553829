package clock

import "math"

// Endpoint returns the cell a hand of the given length reaches from center.
// The angle is unrotated (0 is 12 o'clock, growing clockwise); coordinates
// are rounded to nearest with ties away from zero (math.Round).
func Endpoint(center Pixel, angle, length float64) Pixel {
	a := angle - math.Pi/2
	return Pixel{
		X: int(math.Round(float64(center.X) + length*math.Cos(a))),
		Y: int(math.Round(float64(center.Y) + length*math.Sin(a))),
	}
}

// Rasterize returns every cell on the straight line from center to the hand's
// endpoint, both ends included. The first cell is always center and
// consecutive cells are 8-connected.
func Rasterize(center Pixel, angle, length float64) []Pixel {
	end := Endpoint(center, angle, length)

	dx := abs(end.X - center.X)
	dy := abs(end.Y - center.Y)
	sx, sy := -1, -1
	if center.X < end.X {
		sx = 1
	}
	if center.Y < end.Y {
		sy = 1
	}

	errAcc := -dy
	if dx > dy {
		errAcc = dx
	}
	errAcc /= 2

	line := make([]Pixel, 0, max(dx, dy)+1)
	x, y := center.X, center.Y
	for {
		line = append(line, Pixel{X: x, Y: y})
		if x == end.X && y == end.Y {
			return line
		}
		e2 := errAcc
		if e2 > -dx {
			errAcc -= dy
			x += sx
		}
		if e2 < dy {
			errAcc += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
