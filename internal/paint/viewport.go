package paint

import "math"

// Viewport is the rectangle, in widget coordinates, where the surface is
// displayed. Display scaling never changes the buffer resolution.
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

// ContainViewport fits an imgW×imgH surface inside an areaW×areaH widget,
// preserving aspect ratio and centering the result.
func ContainViewport(areaW, areaH float64, imgW, imgH int) Viewport {
	if imgW <= 0 || imgH <= 0 || areaW <= 0 || areaH <= 0 {
		return Viewport{}
	}
	scale := math.Min(areaW/float64(imgW), areaH/float64(imgH))
	w := float64(imgW) * scale
	h := float64(imgH) * scale
	return Viewport{
		X:      (areaW - w) / 2,
		Y:      (areaH - h) / 2,
		Width:  w,
		Height: h,
	}
}

func (v Viewport) Empty() bool { return v.Width <= 0 || v.Height <= 0 }

// Contains reports whether the widget point (x, y) lies on the displayed surface.
func (v Viewport) Contains(x, y float64) bool {
	if v.Empty() {
		return false
	}
	dx, dy := x-v.X, y-v.Y
	return dx >= 0 && dy >= 0 && dx <= v.Width && dy <= v.Height
}

// ToSurface maps a widget point onto a w×h surface. Each axis is divided
// by its own displayed/true ratio. ok is false when the point is off the
// displayed surface.
func (v Viewport) ToSurface(x, y float64, w, h int) (sx, sy float64, ok bool) {
	if !v.Contains(x, y) || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	ratioX := v.Width / float64(w)
	ratioY := v.Height / float64(h)
	return (x - v.X) / ratioX, (y - v.Y) / ratioY, true
}
