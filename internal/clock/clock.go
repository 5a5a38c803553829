// Package clock maps wall-clock time onto the 16x16 pixel canvas of the
// clock face: the static dial outline plus the two rasterized hands.
package clock

import (
	"fmt"
	"math"
	"time"
)

// Canvas dimensions in pixels.
const (
	CanvasWidth  = 16
	CanvasHeight = 16
)

// Hand lengths in canvas units.
const (
	HourHandLength   = 2.8
	MinuteHandLength = 4.8
)

const (
	hourAngleFactor   = 2 * math.Pi / 12
	minuteAngleFactor = 2 * math.Pi / 60
)

// Pixel is one addressable point on the canvas.
type Pixel struct {
	X int
	Y int
}

// In reports whether p lies on the canvas.
func (p Pixel) In() bool {
	return p.X >= 0 && p.X < CanvasWidth && p.Y >= 0 && p.Y < CanvasHeight
}

// Center is where both hands start.
var Center = Pixel{X: 8, Y: 8}

// Dial is the circle outline of the face, radius ~7 around Center.
var Dial = [40]Pixel{
	{6, 1}, {7, 1}, {8, 1}, {9, 1}, {10, 1},
	{4, 2}, {5, 2}, {11, 2}, {12, 2},
	{3, 3}, {13, 3},
	{2, 4}, {14, 4},
	{2, 5}, {14, 5},
	{1, 6}, {15, 6},
	{1, 7}, {15, 7},
	{1, 8}, {15, 8},
	{1, 9}, {15, 9},
	{1, 10}, {15, 10},
	{2, 11}, {14, 11},
	{2, 12}, {14, 12},
	{3, 13}, {13, 13},
	{4, 14}, {5, 14}, {11, 14}, {12, 14},
	{6, 15}, {7, 15}, {8, 15}, {9, 15}, {10, 15},
}

// Reading is the part of the time the face shows.
// Hour is in [0,12), Minute in [0,60).
type Reading struct {
	Hour   int
	Minute int
}

// NewReading wraps h and m into range, so 12 becomes 0 and 60 becomes 0.
func NewReading(h, m int) Reading {
	return Reading{Hour: wrap(h, 12), Minute: wrap(m, 60)}
}

// ReadingAt extracts the 12-hour reading of t in t's location.
func ReadingAt(t time.Time) Reading {
	return NewReading(t.Hour(), t.Minute())
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// HourAngle returns the unrotated hour hand angle in radians; 0 is 12 o'clock.
func HourAngle(h int) float64 {
	return float64(wrap(h, 12)) * hourAngleFactor
}

// MinuteAngle returns the unrotated minute hand angle in radians; 0 is 12 o'clock.
func MinuteAngle(m int) float64 {
	return float64(wrap(m, 60)) * minuteAngleFactor
}

// Pixels returns the dial followed by the hour and minute hands for r.
// The same pixel can appear more than once.
func Pixels(r Reading) []Pixel {
	pixels := make([]Pixel, 0, len(Dial)+16)
	pixels = append(pixels, Dial[:]...)
	pixels = append(pixels, Rasterize(Center, HourAngle(r.Hour), HourHandLength)...)
	pixels = append(pixels, Rasterize(Center, MinuteAngle(r.Minute), MinuteHandLength)...)
	return pixels
}

// String formats r as H:MM with hour 0 shown as 12.
func (r Reading) String() string {
	h := r.Hour
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d", h, r.Minute)
}

// ParseReading parses "H:MM" or "HH:MM" on a 24 or 12 hour clock.
func ParseReading(s string) (Reading, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Reading{}, fmt.Errorf("parse reading %q: %w", s, err)
	}
	return NewReading(t.Hour(), t.Minute()), nil
}
