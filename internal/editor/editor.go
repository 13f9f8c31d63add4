// Package editor drives the blur brush: it owns the application state, the
// pixel surface and the image loader, and turns pointer and slider events
// into state transitions and stamps.
package editor

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/charmbracelet/log"

	"SoftBrush/internal/imageio"
	"SoftBrush/internal/paint"
	"SoftBrush/internal/state"
)

// ErrApplyUnimplemented is returned by Apply. The button exists but has no
// agreed behaviour yet.
var ErrApplyUnimplemented = errors.New("apply is not implemented")

type Options struct {
	Brush    state.BrushParams
	Fill     string
	Limits   imageio.Limits
	Dispatch imageio.Dispatcher
	Logger   *log.Logger
}

// Editor must be driven from a single goroutine (the UI goroutine). Load
// completions are handed back to that goroutine through Options.Dispatch.
type Editor struct {
	store   *state.Store
	loader  *imageio.Loader
	surface *paint.Surface
	fill    string
	logger  *log.Logger
	stamps  int

	OnSurface func(s *paint.Surface)      // a new image was installed
	OnStamp   func(dirty image.Rectangle) // the surface changed in place
	OnStatus  func(text string)
}

func New(opts Options) *Editor {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	brush := opts.Brush
	if brush == (state.BrushParams{}) {
		brush = state.DefaultBrush()
	}
	e := &Editor{
		store:  state.NewStore(state.Initial(brush)),
		fill:   opts.Fill,
		logger: logger,
	}
	e.loader = imageio.NewLoader(imageio.Options{
		Limits:   opts.Limits,
		Dispatch: opts.Dispatch,
		Logger:   logger,
		OnStart:  func(t imageio.Ticket) {
			e.store.Update(func(s state.Snapshot) state.Snapshot { return s.BeginLoad(t.ID) })
		},
	}, e.finishLoad)
	return e
}

func (e *Editor) State() state.Snapshot   { return e.store.Current() }
func (e *Editor) Surface() *paint.Surface { return e.surface }
func (e *Editor) Stamps() int             { return e.stamps }

// Subscribe registers fn for every state change.
func (e *Editor) Subscribe(fn func(state.Snapshot)) { e.store.Subscribe(fn) }

// Open starts loading src. The current image stays visible until the new
// one has decoded.
func (e *Editor) Open(ctx context.Context, src imageio.Source) error {
	t, err := e.loader.Load(ctx, src)
	if err != nil {
		return err
	}
	e.status(fmt.Sprintf("Loading %s...", t.Name))
	return nil
}

func (e *Editor) finishLoad(res imageio.Result) {
	if res.Err != nil {
		var changed bool
		e.store.Update(func(s state.Snapshot) state.Snapshot {
			s, changed = s.FailLoad(res.Ticket.ID, res.Err.Error())
			return s
		})
		if changed {
			e.logger.Error("Load failed", "name", res.Ticket.Name, "err", res.Err)
			e.status(fmt.Sprintf("Could not open %s: %s", res.Ticket.Name, reason(res.Err)))
		}
		return
	}

	src := state.SourceImage{
		ID:     res.Ticket.ID,
		Name:   res.Ticket.Name,
		Format: res.Format,
		Width:  res.Width,
		Height: res.Height,
	}
	var changed bool
	e.store.Update(func(s state.Snapshot) state.Snapshot {
		s, changed = s.FinishLoad(res.Ticket.ID, src)
		return s
	})
	if !changed {
		return
	}

	e.surface = paint.NewSurface(res.Image)
	e.logger.Infof("Loaded %s (%dx%d %s)", src.Name, src.Width, src.Height, src.Format)
	if e.OnSurface != nil {
		e.OnSurface(e.surface)
	}
	e.status(fmt.Sprintf("%s: %dx%d", src.Name, src.Width, src.Height))
}

func reason(err error) string {
	switch {
	case errors.Is(err, imageio.ErrNotImage):
		return "not an image"
	case errors.Is(err, imageio.ErrTooLarge):
		return "image too large"
	case errors.Is(err, imageio.ErrDecode):
		return "image could not be decoded"
	}
	return err.Error()
}

func (e *Editor) SetBrushSize(n int) state.BrushParams {
	s := e.store.Update(func(s state.Snapshot) state.Snapshot { return s.WithBrush(s.Brush.WithSize(n)) })
	return s.Brush
}

func (e *Editor) SetBlur(n int) state.BrushParams {
	s := e.store.Update(func(s state.Snapshot) state.Snapshot { return s.WithBrush(s.Brush.WithBlur(n)) })
	return s.Brush
}

// PointerDown starts a stroke and lays the first dab at (x, y), given in
// widget coordinates. It reports whether drawing started.
func (e *Editor) PointerDown(x, y float64, view paint.Viewport) bool {
	if e.surface == nil {
		return false
	}
	sx, sy, ok := e.toSurface(x, y, view)
	if !ok {
		return false
	}
	var started bool
	e.store.Update(func(s state.Snapshot) state.Snapshot {
		s, started = s.PointerDown()
		return s
	})
	if !started {
		return false
	}
	e.stamp(sx, sy)
	return true
}

// PointerMove stamps at (x, y) while a stroke is active. Leaving the
// displayed surface ends the stroke.
func (e *Editor) PointerMove(x, y float64, view paint.Viewport) {
	if !e.store.Current().Drawing() {
		return
	}
	sx, sy, ok := e.toSurface(x, y, view)
	if !ok {
		e.PointerLeave()
		return
	}
	e.stamp(sx, sy)
}

func (e *Editor) PointerUp() { e.endStroke() }

// PointerLeave ends the stroke. Re-entering with the button still held
// does not resume it.
func (e *Editor) PointerLeave() { e.endStroke() }

func (e *Editor) endStroke() {
	e.store.Update(func(s state.Snapshot) state.Snapshot { return s.PointerUp() })
}

func (e *Editor) toSurface(x, y float64, view paint.Viewport) (float64, float64, bool) {
	w, h := e.surface.Size()
	return view.ToSurface(x, y, w, h)
}

func (e *Editor) stamp(x, y float64) {
	b := e.store.Current().Brush
	dirty := e.surface.Stamp(paint.Brush{Size: b.Size, Blur: b.Blur, Fill: e.fill}, x, y)
	e.stamps++
	if dirty.Empty() {
		return
	}
	if e.OnStamp != nil {
		e.OnStamp(dirty)
	}
}

// Apply has no behaviour yet; see ErrApplyUnimplemented.
func (e *Editor) Apply() error {
	e.logger.Warn("Apply requested", "err", ErrApplyUnimplemented)
	e.status("Apply is not implemented")
	return ErrApplyUnimplemented
}

// Close stops pending loads and releases the held source.
func (e *Editor) Close() error {
	return e.loader.Close()
}

// OpenHandles reports how many loader sources are still held.
func (e *Editor) OpenHandles() int { return e.loader.OpenHandles() }

func (e *Editor) status(text string) {
	if e.OnStatus != nil {
		e.OnStatus(text)
	}
}
