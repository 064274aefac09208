package render

import (
	"fmt"
	"image/color"
)

// ParseColor builds a color from 3 (RGB, opaque) or 4 (RGBA) channel
// values in 0..255.
func ParseColor(channels []int) (color.RGBA, error) {
	if len(channels) != 3 && len(channels) != 4 {
		return color.RGBA{}, fmt.Errorf("color needs 3 or 4 channels, got %d", len(channels))
	}
	var c [4]uint8
	c[3] = 0xff
	for i, v := range channels {
		if v < 0 || v > 0xff {
			return color.RGBA{}, fmt.Errorf("color channel %d out of range: %d", i, v)
		}
		c[i] = uint8(v)
	}
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
}
