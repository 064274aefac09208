// Package render defines the drawing capability components consume. The
// engine never talks to a graphics API directly; a platform backend
// implements these interfaces.
package render

import (
	"image"
	"image/color"
)

// Surface is a drawable image.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() image.Point
	// Fill paints the whole surface with c.
	Fill(c color.Color)
	// FillRect paints r with c.
	FillRect(r image.Rectangle, c color.Color)
	// FillCircle paints a disc centered at center.
	FillCircle(center image.Point, radius int, c color.Color)
	// DrawText draws text with its top-left corner at pos. size is the
	// requested glyph height in pixels; backends may approximate it.
	DrawText(text string, pos image.Point, size int, c color.Color)
	// Blit draws src onto this surface with src's top-left corner at pos.
	Blit(src Surface, pos image.Point)
}

// Backend hands out the shared screen surface and creates sub-surfaces.
type Backend interface {
	// Screen returns the shared surface every component draws onto.
	Screen() Surface
	// NewSurface allocates an offscreen surface of the given size.
	NewSurface(width, height int) Surface
	// TextSize returns the extent DrawText would cover for text at size.
	TextSize(text string, size int) image.Point
}
