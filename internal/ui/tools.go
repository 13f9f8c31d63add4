package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SoftBrush/internal/editor"
	"SoftBrush/internal/state"
)

// Controls are the brush sliders plus the Open and Apply buttons.
type Controls struct {
	BrushSize *widget.Slider
	Blur      *widget.Slider
	Open      *widget.Button
	Apply     *widget.Button

	sizeValue *widget.Label
	blurValue *widget.Label
}

func NewControls(e *editor.Editor, onOpen func()) *Controls {
	brush := e.State().Brush
	c := &Controls{
		sizeValue: widget.NewLabel(strconv.Itoa(brush.Size)),
		blurValue: widget.NewLabel(strconv.Itoa(brush.Blur)),
	}

	c.BrushSize = newParamSlider(state.MinBrushSize, state.MaxBrushSize, brush.Size, func(v int) {
		c.sizeValue.SetText(strconv.Itoa(e.SetBrushSize(v).Size))
	})
	c.Blur = newParamSlider(state.MinBlur, state.MaxBlur, brush.Blur, func(v int) {
		c.blurValue.SetText(strconv.Itoa(e.SetBlur(v).Blur))
	})

	c.Open = widget.NewButtonWithIcon("Open Image", theme.FolderOpenIcon(), onOpen)
	c.Apply = widget.NewButtonWithIcon("Apply Blur", theme.ColorPaletteIcon(), func() {
		_ = e.Apply()
	})
	return c
}

// newParamSlider builds an integer slider. OnChanged is attached after the
// initial value so construction does not write back to the editor.
func newParamSlider(min, max, value int, changed func(int)) *widget.Slider {
	s := widget.NewSlider(float64(min), float64(max))
	s.Step = 1
	s.SetValue(float64(value))
	s.OnChanged = func(v float64) { changed(int(v + 0.5)) }
	return s
}

// Toolbar lays the controls out in one row above the surface.
func (c *Controls) Toolbar() fyne.CanvasObject {
	size := container.NewBorder(nil, nil, widget.NewLabel("Brush Size"), c.sizeValue, c.BrushSize)
	blur := container.NewBorder(nil, nil, widget.NewLabel("Blur Strength"), c.blurValue, c.Blur)
	return container.NewVBox(
		container.NewHBox(c.Open, layout.NewSpacer()),
		container.NewGridWithColumns(2, size, blur),
	)
}
