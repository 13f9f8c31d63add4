package editor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SoftBrush/internal/imageio"
	"SoftBrush/internal/paint"
	"SoftBrush/internal/state"
)

var opaqueWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// uiQueue stands in for the UI goroutine: load completions queue up and the
// test runs them.
type uiQueue struct{ q chan func() }

func newUIQueue() *uiQueue { return &uiQueue{q: make(chan func(), 16)} }

func (u *uiQueue) dispatch(f func()) { u.q <- f }

func (u *uiQueue) next(t *testing.T) {
	t.Helper()
	select {
	case f := <-u.q:
		f()
	case <-time.After(5 * time.Second):
		t.Fatal("no completion delivered")
	}
}

// drain runs queued completions until the queue stays empty for a while.
func (u *uiQueue) drain() {
	for {
		select {
		case f := <-u.q:
			f()
		case <-time.After(200 * time.Millisecond):
			return
		}
	}
}

func solidPNG(t *testing.T, w, h int, c color.Color) ([]byte, *image.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes(), img
}

func newTestEditor(t *testing.T) (*Editor, *uiQueue, *[]string) {
	t.Helper()
	q := newUIQueue()
	e := New(Options{
		Dispatch: q.dispatch,
		Logger:   log.NewWithOptions(io.Discard, log.Options{}),
	})
	var status []string
	e.OnStatus = func(s string) { status = append(status, s) }
	t.Cleanup(func() { e.Close() })
	return e, q, &status
}

func load(t *testing.T, e *Editor, q *uiQueue, w, h int) {
	t.Helper()
	data, _ := solidPNG(t, w, h, color.White)
	require.NoError(t, e.Open(context.Background(), imageio.BytesSource("white.png", data)))
	q.next(t)
	require.NotNil(t, e.Surface())
}

func TestDefaultsBeforeLoad(t *testing.T) {
	e, _, _ := newTestEditor(t)

	s := e.State()
	assert.Equal(t, state.BrushParams{Size: 20, Blur: 5}, s.Brush)
	assert.False(t, s.Loaded())
	assert.Nil(t, e.Surface())
	assert.False(t, e.PointerDown(10, 10, paint.Viewport{Width: 100, Height: 100}))
}

func TestLoadSizesSurface(t *testing.T) {
	e, q, status := newTestEditor(t)

	var installed *paint.Surface
	e.OnSurface = func(s *paint.Surface) { installed = s }
	load(t, e, q, 400, 300)

	w, h := e.Surface().Size()
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)
	assert.Same(t, e.Surface(), installed)

	s := e.State()
	require.True(t, s.Loaded())
	assert.Equal(t, 400, s.Image.Width)
	assert.Equal(t, 300, s.Image.Height)
	assert.Equal(t, "png", s.Image.Format)
	assert.Empty(t, s.Pending)
	assert.Contains(t, *status, "white.png: 400x300")
}

func TestClickScenario(t *testing.T) {
	e, q, _ := newTestEditor(t)
	load(t, e, q, 400, 300)

	e.SetBrushSize(40)
	e.SetBlur(8)

	var dirty []image.Rectangle
	e.OnStamp = func(r image.Rectangle) { dirty = append(dirty, r) }

	// Displayed at half size: widget (50,75) is surface (100,150).
	view := paint.ContainViewport(200, 150, 400, 300)
	require.True(t, e.PointerDown(50, 75, view))
	e.PointerUp()

	assert.Equal(t, 1, e.Stamps())
	require.Len(t, dirty, 1)

	img := e.Surface().Image()
	assert.LessOrEqual(t, img.RGBAAt(100, 150).R, uint8(2))
	assert.Equal(t, opaqueWhite, img.RGBAAt(160, 150))
	assert.Equal(t, opaqueWhite, img.RGBAAt(100, 100))
	assert.False(t, e.State().Drawing())
}

func TestPointerLeaveStopsStroke(t *testing.T) {
	e, q, _ := newTestEditor(t)
	load(t, e, q, 200, 200)
	view := paint.ContainViewport(200, 200, 200, 200)

	require.True(t, e.PointerDown(50, 50, view))
	e.PointerMove(60, 50, view)
	assert.Equal(t, 2, e.Stamps())

	e.PointerLeave()
	before := e.Surface().Snapshot()

	// Button still held, pointer back over the surface.
	e.PointerMove(100, 100, view)
	e.PointerMove(120, 100, view)
	assert.Equal(t, 2, e.Stamps())
	assert.Equal(t, before.Pix, e.Surface().Image().Pix)

	require.True(t, e.PointerDown(100, 100, view))
	assert.Equal(t, 3, e.Stamps())
}

func TestMoveOffSurfaceEndsStroke(t *testing.T) {
	e, q, _ := newTestEditor(t)
	load(t, e, q, 100, 50)
	// Letterboxed: surface occupies y in [25, 75] of a 100x100 widget.
	view := paint.ContainViewport(100, 100, 100, 50)

	require.True(t, e.PointerDown(50, 50, view))
	e.PointerMove(50, 10, view)
	assert.False(t, e.State().Drawing())

	e.PointerMove(50, 50, view)
	assert.Equal(t, 1, e.Stamps())

	assert.False(t, e.PointerDown(50, 90, view), "press in the letterbox is ignored")
}

func TestSliderChangeAppliesToNextStamp(t *testing.T) {
	e, q, _ := newTestEditor(t)
	load(t, e, q, 300, 100)
	view := paint.ContainViewport(300, 100, 300, 100)

	e.SetBrushSize(10)
	e.SetBlur(1)
	require.True(t, e.PointerDown(50, 50, view))
	assert.Equal(t, opaqueWhite, e.Surface().Image().RGBAAt(50, 70))

	e.SetBrushSize(60)
	e.PointerMove(200, 50, view)
	e.PointerUp()

	assert.Less(t, e.Surface().Image().RGBAAt(200, 70).R, uint8(10), "larger disc reaches 20px from center")
}

func TestBrushSettersClamp(t *testing.T) {
	e, _, _ := newTestEditor(t)
	assert.Equal(t, 100, e.SetBrushSize(250).Size)
	assert.Equal(t, 1, e.SetBlur(0).Blur)
}

func TestSupersededLoadLeavesOneImage(t *testing.T) {
	e, q, _ := newTestEditor(t)

	first, _ := solidPNG(t, 64, 48, color.RGBA{R: 200, A: 255})
	second, want := solidPNG(t, 30, 20, color.RGBA{B: 200, A: 255})

	require.NoError(t, e.Open(context.Background(), imageio.BytesSource("first.png", first)))
	require.NoError(t, e.Open(context.Background(), imageio.BytesSource("second.png", second)))
	q.drain()

	require.NotNil(t, e.Surface())
	assert.Equal(t, "second.png", e.State().Image.Name)
	assert.Equal(t, want.Pix, e.Surface().Image().Pix)
	assert.Equal(t, 1, e.OpenHandles())

	require.NoError(t, e.Close())
	assert.Equal(t, 0, e.OpenHandles())
}

func TestDecodeFailureIsReported(t *testing.T) {
	e, q, status := newTestEditor(t)

	require.NoError(t, e.Open(context.Background(), imageio.BytesSource("notes.txt", []byte("just some words"))))
	q.next(t)

	assert.Nil(t, e.Surface())
	assert.NotEmpty(t, e.State().LastError)
	assert.Contains(t, *status, "Could not open notes.txt: not an image")
}

func TestFailedLoadKeepsPreviousImage(t *testing.T) {
	e, q, _ := newTestEditor(t)
	load(t, e, q, 40, 30)
	prev := e.Surface()

	require.NoError(t, e.Open(context.Background(), imageio.BytesSource("bad.png", []byte("nope nope nope"))))
	q.next(t)

	assert.Same(t, prev, e.Surface())
	assert.Equal(t, 40, e.State().Image.Width)
}

func TestApplyIsUnimplemented(t *testing.T) {
	e, _, status := newTestEditor(t)
	assert.ErrorIs(t, e.Apply(), ErrApplyUnimplemented)
	assert.Equal(t, []string{"Apply is not implemented"}, *status)
}

func TestOpenAfterClose(t *testing.T) {
	e, _, _ := newTestEditor(t)
	require.NoError(t, e.Close())
	err := e.Open(context.Background(), imageio.BytesSource("x.png", nil))
	assert.ErrorIs(t, err, imageio.ErrClosed)
}
