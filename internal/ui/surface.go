package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SoftBrush/internal/editor"
	"SoftBrush/internal/paint"
)

// SurfaceWidget shows the editor's surface scaled to fit and forwards
// pointer events to the editor in widget coordinates.
type SurfaceWidget struct {
	widget.BaseWidget
	editor   *editor.Editor
	image    *canvas.Image
	hint     *widget.Label
	dragging bool
}

var _ fyne.Widget = (*SurfaceWidget)(nil)
var _ fyne.Draggable = (*SurfaceWidget)(nil)
var _ desktop.Mouseable = (*SurfaceWidget)(nil)
var _ desktop.Hoverable = (*SurfaceWidget)(nil)

func NewSurfaceWidget(e *editor.Editor) *SurfaceWidget {
	w := &SurfaceWidget{
		editor: e,
		image:  canvas.NewImageFromImage(nil),
		hint:   widget.NewLabel("Open an image to start painting"),
	}
	w.image.FillMode = canvas.ImageFillContain
	w.image.Hide()
	w.hint.Alignment = fyne.TextAlignCenter
	w.ExtendBaseWidget(w)
	return w
}

// SetSurface displays a freshly loaded surface.
func (w *SurfaceWidget) SetSurface(s *paint.Surface) {
	w.image.Image = s.Image()
	w.hint.Hide()
	w.image.Show()
	w.image.Refresh()
}

// Invalidate redraws after a stamp changed the buffer in place.
func (w *SurfaceWidget) Invalidate(image.Rectangle) {
	w.image.Refresh()
}

// Viewport is where the surface currently sits inside the widget.
func (w *SurfaceWidget) Viewport() paint.Viewport {
	s := w.editor.Surface()
	if s == nil {
		return paint.Viewport{}
	}
	iw, ih := s.Size()
	size := w.Size()
	return paint.ContainViewport(float64(size.Width), float64(size.Height), iw, ih)
}

func (w *SurfaceWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.editor.PointerDown(float64(e.Position.X), float64(e.Position.Y), w.Viewport())
}

func (w *SurfaceWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.dragging = false
	w.editor.PointerUp()
}

func (w *SurfaceWidget) MouseIn(*desktop.MouseEvent) {}

// MouseMoved is ignored during a drag; Dragged delivers the same motion.
func (w *SurfaceWidget) MouseMoved(e *desktop.MouseEvent) {
	if w.dragging {
		return
	}
	w.editor.PointerMove(float64(e.Position.X), float64(e.Position.Y), w.Viewport())
}

func (w *SurfaceWidget) MouseOut() {
	w.editor.PointerLeave()
}

func (w *SurfaceWidget) Dragged(e *fyne.DragEvent) {
	w.dragging = true
	w.editor.PointerMove(float64(e.Position.X), float64(e.Position.Y), w.Viewport())
}

func (w *SurfaceWidget) DragEnd() {
	w.dragging = false
	w.editor.PointerUp()
}

func (w *SurfaceWidget) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.NRGBA{R: 245, G: 246, B: 248, A: 255})
	return widget.NewSimpleRenderer(container.NewStack(bg, container.NewCenter(w.hint), w.image))
}
