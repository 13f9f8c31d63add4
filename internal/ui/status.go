package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// StatusBar is the one-line message area under the surface. It must be
// updated from the UI goroutine.
type StatusBar struct {
	label *widget.Label
}

func NewStatusBar() *StatusBar {
	l := widget.NewLabel("Ready")
	l.Truncation = fyne.TextTruncateEllipsis
	return &StatusBar{label: l}
}

func (s *StatusBar) SetStatus(text string) { s.label.SetText(text) }
func (s *StatusBar) Text() string          { return s.label.Text }

func (s *StatusBar) Object() fyne.CanvasObject { return s.label }
