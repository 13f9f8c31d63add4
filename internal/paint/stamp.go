package paint

import (
	"image"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/fogleman/gg"
)

// DefaultFill matches the default fill style of a fresh 2D canvas.
const DefaultFill = "#000000"

// Brush describes one stamp: a filled disc of diameter Size whose edge is
// softened by a gaussian of radius Blur. Only the disc is blurred, never the
// pixels underneath it.
type Brush struct {
	Size int
	Blur int
	Fill string // hex colour, DefaultFill when empty
}

// Reach is the distance from the stamp center beyond which no pixel changes.
// The separable kernel has square support, hence the √2.
func (b Brush) Reach() float64 {
	return float64(b.Size)/2 + float64(b.Blur)*math.Sqrt2 + 1
}

func (b Brush) fill() string {
	if b.Fill == "" {
		return DefaultFill
	}
	return b.Fill
}

// pad is the transparent margin around the disc inside a tile. It must
// exceed the blur reach so the kernel never clamps onto painted pixels.
func (b Brush) pad() int { return b.Blur + 2 }

// tile renders the softened disc for a stamp centered at (x, y) in surface
// space and returns it with the surface rectangle it covers.
func (b Brush) tile(x, y float64) (*image.RGBA, image.Rectangle) {
	r := float64(b.Size) / 2
	pad := b.pad()
	ox := int(math.Floor(x-r)) - pad
	oy := int(math.Floor(y-r)) - pad
	side := b.Size + 2*pad + 2

	dc := gg.NewContext(side, side)
	dc.SetHexColor(b.fill())
	dc.DrawCircle(x-float64(ox), y-float64(oy), r)
	dc.Fill()

	soft := blur.Gaussian(dc.Image(), float64(b.Blur))
	return soft, image.Rect(ox, oy, ox+side, oy+side)
}

// Stamp composites one soft disc centered at (x, y) over the surface and
// returns the rectangle that may have changed. Repeated stamps at the same
// point accumulate.
func (s *Surface) Stamp(b Brush, x, y float64) image.Rectangle {
	tile, dst := b.tile(x, y)
	clipped := dst.Intersect(s.img.Bounds())
	if clipped.Empty() {
		return image.Rectangle{}
	}
	draw.Draw(s.img, clipped, tile, clipped.Min.Sub(dst.Min), draw.Over)
	return clipped
}
