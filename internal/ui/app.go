package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"github.com/charmbracelet/log"

	"SoftBrush/internal/config"
	"SoftBrush/internal/editor"
	"SoftBrush/internal/imageio"
	"SoftBrush/internal/state"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// View is the window content: controls on top, the surface in the middle,
// Apply and the status line at the bottom.
type View struct {
	ctx      context.Context
	editor   *editor.Editor
	window   fyne.Window
	logger   *log.Logger
	Surface  *SurfaceWidget
	Controls *Controls
	Status   *StatusBar
}

func NewView(ctx context.Context, e *editor.Editor, win fyne.Window, logger *log.Logger) *View {
	v := &View{
		ctx:     ctx,
		editor:  e,
		window:  win,
		logger:  logger,
		Surface: NewSurfaceWidget(e),
		Status:  NewStatusBar(),
	}
	v.Controls = NewControls(e, v.ShowOpenDialog)

	e.OnSurface = v.Surface.SetSurface
	e.OnStamp = v.Surface.Invalidate
	e.OnStatus = v.Status.SetStatus
	return v
}

func (v *View) Content() fyne.CanvasObject {
	bottom := container.NewVBox(v.Controls.Apply, v.Status.Object())
	return container.NewBorder(v.Controls.Toolbar(), bottom, nil, nil, v.Surface)
}

// uriSource adapts a file dialog result to imageio.Source.
type uriSource struct {
	fyne.URIReadCloser
}

func (s uriSource) Name() string { return s.URI().Name() }

func (v *View) ShowOpenDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			v.logger.Error("File dialog failed", "err", err)
			v.Status.SetStatus("Could not open file: " + err.Error())
			return
		}
		if r == nil {
			return
		}
		v.Open(uriSource{r})
	}, v.window)
	d.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	d.Show()
}

// Open hands src to the editor; a later Open supersedes it.
func (v *View) Open(src imageio.Source) {
	if err := v.editor.Open(v.ctx, src); err != nil {
		v.logger.Error("Open failed", "name", src.Name(), "err", err)
		v.Status.SetStatus("Could not open " + src.Name() + ": " + err.Error())
	}
}

// RunApp opens the main window and blocks until it is closed or ctx ends.
// initial, if not nil, is loaded as soon as the window is up.
func RunApp(ctx context.Context, cfg config.Config, logger *log.Logger, initial imageio.Source) error {
	a := app.NewWithID("io.softbrush.app")
	win := a.NewWindow(cfg.Window.Title)
	win.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	ed := editor.New(editor.Options{
		Brush:    cfg.BrushParams(),
		Fill:     cfg.Brush.Fill,
		Limits:   cfg.Limits(),
		Dispatch: fyne.Do,
		Logger:   logger,
	})
	defer func() {
		if err := ed.Close(); err != nil {
			logger.Warn("Closing editor", "err", err)
		}
	}()

	v := NewView(ctx, ed, win, logger)
	win.SetContent(v.Content())
	win.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyO,
		Modifier: fyne.KeyModifierShortcutDefault,
	}, func(fyne.Shortcut) { v.ShowOpenDialog() })

	if initial != nil {
		v.Open(initial)
	}

	go func() {
		<-ctx.Done()
		fyne.Do(a.Quit)
	}()

	logger.Info("Starting", "session", state.SessionID())
	win.ShowAndRun()
	return nil
}
