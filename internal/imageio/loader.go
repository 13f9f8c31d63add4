package imageio

import (
	"context"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"SoftBrush/internal/state"
)

// Ticket identifies one load request.
type Ticket struct {
	ID   string
	Seq  uint64
	Name string
}

// Result is delivered once per current load.
type Result struct {
	Ticket Ticket
	Image  image.Image
	Format string
	Width  int
	Height int
	Err    error
}

// Dispatcher runs f on the goroutine that owns the UI. fyne.Do in the
// application; inline in tests.
type Dispatcher func(f func())

type Options struct {
	Limits   Limits
	Dispatch Dispatcher
	Logger   *log.Logger

	// OnStart runs synchronously inside Load, before decoding begins.
	OnStart func(Ticket)
}

type pending struct {
	ticket Ticket
	handle *Handle
	cancel context.CancelFunc
}

// Loader decodes one source at a time. A new Load cancels and releases the
// previous one; only the newest load ever reaches the callback.
type Loader struct {
	mu      sync.Mutex
	opts    Options
	onDone  func(Result)
	current *pending
	closed  bool
	live    atomic.Int32
	wg      sync.WaitGroup
}

func NewLoader(opts Options, onDone func(Result)) *Loader {
	if opts.Dispatch == nil {
		opts.Dispatch = func(f func()) { f() }
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Loader{opts: opts, onDone: onDone}
}

// Load starts decoding src in the background and returns immediately.
func (l *Loader) Load(ctx context.Context, src Source) (Ticket, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		src.Close()
		return Ticket{}, ErrClosed
	}
	t := Ticket{ID: state.NewLoadID(), Seq: state.NextLoadSeq(), Name: src.Name()}
	ctx, cancel := context.WithCancel(ctx)
	p := &pending{ticket: t, handle: acquire(t.ID, src, &l.live), cancel: cancel}
	prev := l.current
	l.current = p
	l.wg.Add(1)
	l.mu.Unlock()

	if prev != nil {
		l.retire(prev)
	}
	l.opts.Logger.Debug("load started", "seq", t.Seq, "name", t.Name)
	if l.opts.OnStart != nil {
		l.opts.OnStart(t)
	}

	go l.run(ctx, p)
	return t, nil
}

func (l *Loader) run(ctx context.Context, p *pending) {
	defer l.wg.Done()
	start := time.Now()

	img, format, err := Decode(p.handle.src, l.opts.Limits)
	if ctx.Err() != nil {
		l.opts.Logger.Debug("dropping decode", "seq", p.ticket.Seq, "err", ErrStale)
		return
	}

	res := Result{Ticket: p.ticket, Image: img, Format: format, Err: err}
	if err != nil {
		res.Image = nil
		res.Err = fmt.Errorf("load %s: %w", p.ticket.Name, err)
	} else {
		b := img.Bounds()
		res.Width, res.Height = b.Dx(), b.Dy()
		l.opts.Logger.Debug("decoded", "seq", p.ticket.Seq, "format", format,
			"size", fmt.Sprintf("%dx%d", res.Width, res.Height),
			"elapsed", time.Since(start).Round(time.Millisecond))
	}

	l.opts.Dispatch(func() { l.deliver(p, res) })
}

// deliver runs on the UI goroutine. A load that was superseded between
// decode and delivery is discarded here.
func (l *Loader) deliver(p *pending, res Result) {
	l.mu.Lock()
	current := l.current == p && !l.closed
	l.mu.Unlock()
	if !current {
		l.opts.Logger.Debug("dropping decode", "seq", p.ticket.Seq, "err", ErrStale)
		return
	}
	if l.onDone != nil {
		l.onDone(res)
	}
}

func (l *Loader) retire(p *pending) {
	p.cancel()
	if err := p.handle.Release(); err != nil {
		l.opts.Logger.Warn("release handle", "name", p.ticket.Name, "err", err)
	}
}

// Current returns the ticket of the newest load, if any.
func (l *Loader) Current() (Ticket, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current == nil {
		return Ticket{}, false
	}
	return l.current.ticket, true
}

// OpenHandles reports how many sources are still held. It is at most one.
func (l *Loader) OpenHandles() int { return int(l.live.Load()) }

// Close cancels any in-flight decode, releases the held handle and waits
// for background work to stop. Later loads fail with ErrClosed.
func (l *Loader) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	p := l.current
	l.current = nil
	l.mu.Unlock()

	if p != nil {
		l.retire(p)
	}
	l.wg.Wait()
	return nil
}
