// Package paint owns the editable pixel buffer and the soft brush stamp
// that is composited onto it.
package paint

import (
	"image"
	"image/draw"
)

// Surface is the mutable pixel buffer shown in the window. Its size always
// matches the image it was created from.
type Surface struct {
	img *image.RGBA
}

// NewSurface copies src into a fresh buffer whose origin is (0,0).
func NewSurface(src image.Image) *Surface {
	b := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return &Surface{img: img}
}

func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

// Image returns the live buffer. Callers must not keep it across a load.
func (s *Surface) Image() *image.RGBA { return s.img }

// Snapshot returns a copy of the current pixels.
func (s *Surface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}
