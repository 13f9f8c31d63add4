package state

import "fmt"

// Brush parameter bounds. The sliders use the same ranges.
const (
	MinBrushSize     = 1
	MaxBrushSize     = 100
	DefaultBrushSize = 20

	MinBlur     = 1
	MaxBlur     = 20
	DefaultBlur = 5
)

type Point struct{ X, Y float64 }

// BrushParams are read at the time of each stamp; no history is kept.
type BrushParams struct {
	Size int // disc diameter in surface pixels
	Blur int // gaussian radius in surface pixels
}

func DefaultBrush() BrushParams {
	return BrushParams{Size: DefaultBrushSize, Blur: DefaultBlur}
}

// WithSize returns a copy with the diameter clamped into [MinBrushSize, MaxBrushSize].
func (b BrushParams) WithSize(n int) BrushParams {
	b.Size = clamp(n, MinBrushSize, MaxBrushSize)
	return b
}

// WithBlur returns a copy with the blur radius clamped into [MinBlur, MaxBlur].
func (b BrushParams) WithBlur(n int) BrushParams {
	b.Blur = clamp(n, MinBlur, MaxBlur)
	return b
}

// Clamped forces both parameters into range.
func (b BrushParams) Clamped() BrushParams {
	return b.WithSize(b.Size).WithBlur(b.Blur)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDrawing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDrawing:
		return "drawing"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// SourceImage describes the currently loaded image. It never changes after
// the load completes; the next load replaces it.
type SourceImage struct {
	ID     string
	Name   string
	Format string
	Width  int
	Height int
}

// Snapshot is an immutable view of the application state. Transitions
// return a new Snapshot and leave the receiver untouched.
type Snapshot struct {
	Image     *SourceImage
	Brush     BrushParams
	Phase     Phase
	Pending   string // ticket of the in-flight load, empty if none
	LastError string
}

func Initial(brush BrushParams) Snapshot {
	return Snapshot{Brush: brush.Clamped(), Phase: PhaseIdle}
}

func (s Snapshot) Loaded() bool  { return s.Image != nil }
func (s Snapshot) Drawing() bool { return s.Phase == PhaseDrawing }

func (s Snapshot) WithBrush(b BrushParams) Snapshot {
	s.Brush = b.Clamped()
	return s
}

// BeginLoad records a new pending load, superseding any earlier one.
func (s Snapshot) BeginLoad(ticket string) Snapshot {
	s.Pending = ticket
	return s
}

// FinishLoad installs img as the current image if ticket is still pending.
// The second result reports whether the snapshot changed.
func (s Snapshot) FinishLoad(ticket string, img SourceImage) (Snapshot, bool) {
	if s.Pending != ticket {
		return s, false
	}
	s.Image = &img
	s.Pending = ""
	s.Phase = PhaseIdle
	s.LastError = ""
	return s, true
}

// FailLoad clears the pending ticket and records msg. The previous image,
// if any, stays in place.
func (s Snapshot) FailLoad(ticket, msg string) (Snapshot, bool) {
	if s.Pending != ticket {
		return s, false
	}
	s.Pending = ""
	s.LastError = msg
	return s, true
}

// PointerDown moves idle to drawing. It is refused while no image is loaded.
func (s Snapshot) PointerDown() (Snapshot, bool) {
	if !s.Loaded() {
		return s, false
	}
	s.Phase = PhaseDrawing
	return s, true
}

// PointerUp covers both button release and the pointer leaving the surface.
func (s Snapshot) PointerUp() Snapshot {
	s.Phase = PhaseIdle
	return s
}
