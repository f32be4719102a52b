package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/plumbgeom/render"
)

// LoadFunc builds the scene for a fixture path.
type LoadFunc func(path string) (render.Scene, error)

// Viewer is the fixture viewer window. Session state is only touched on
// the Fyne main goroutine.
type Viewer struct {
	app     fyne.App
	window  fyne.Window
	tabBar  *container.AppTabs
	status  *widget.Label
	session *Session
	load    LoadFunc
	logger  *zap.Logger
}

// NewViewer creates the viewer window. It is shown by ShowAndRun.
func NewViewer(session *Session, load LoadFunc, logger *zap.Logger) *Viewer {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := app.New()
	w := a.NewWindow(session.Title)
	w.Resize(fyne.NewSize(float32(session.Width), float32(session.Height)))

	v := &Viewer{
		app:     a,
		window:  w,
		session: session,
		load:    load,
		logger:  logger,
	}
	v.setupUI()
	v.setupKeyboardShortcuts()
	return v
}

func (v *Viewer) setupUI() {
	reloadBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		if src := v.session.ActiveSource(); src != nil {
			v.Reload(src.Path)
		}
	})

	v.tabBar = container.NewAppTabs()
	v.tabBar.SetTabLocation(container.TabLocationTop)
	v.tabBar.OnSelected = func(item *container.TabItem) {
		for i, it := range v.tabBar.Items {
			if it == item {
				v.session.Active = i
				break
			}
		}
		v.updateStatus()
	}

	v.status = widget.NewLabel("")
	v.window.SetContent(container.NewBorder(
		container.NewHBox(reloadBtn),
		v.status, nil, nil,
		v.tabBar,
	))
}

func (v *Viewer) setupKeyboardShortcuts() {
	// Ctrl+R: reload the active fixture
	v.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyR,
		Modifier: fyne.KeyModifierControl,
	}, func(_ fyne.Shortcut) {
		if src := v.session.ActiveSource(); src != nil {
			v.Reload(src.Path)
		}
	})

	// Ctrl+W: close the active fixture
	v.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyW,
		Modifier: fyne.KeyModifierControl,
	}, func(_ fyne.Shortcut) {
		v.closeActive()
	})
}

// Open loads path into a new tab, or reloads its existing tab. Call it
// before ShowAndRun or from the main goroutine.
func (v *Viewer) Open(path string) {
	if v.session.Index(path) >= 0 {
		v.Reload(path)
		return
	}
	src := v.session.Open(path)
	src.Scene, src.Err = v.load(path)
	item := container.NewTabItem(src.Title, v.content(src))
	v.tabBar.Append(item)
	v.tabBar.Select(item)
	v.updateStatus()
}

// Reload rebuilds the scene for path. It may be called from any goroutine.
func (v *Viewer) Reload(path string) {
	scene, err := v.load(path)
	if err != nil {
		v.logger.Warn("reload failed", zap.String("path", path), zap.Error(err))
	}

	fyne.Do(func() {
		i := v.session.Index(path)
		if i < 0 {
			return
		}
		src := v.session.Sources[i]
		src.Scene, src.Err = scene, err
		v.tabBar.Items[i].Content = v.content(src)
		v.tabBar.Refresh()
		v.updateStatus()
	})
}

func (v *Viewer) closeActive() {
	i := v.session.Active
	if i < 0 || i >= len(v.tabBar.Items) {
		return
	}
	v.tabBar.Remove(v.tabBar.Items[i])
	v.session.Close(i)
	v.updateStatus()
}

// content paints a source's scene into a scrollable image.
func (v *Viewer) content(src *Source) fyne.CanvasObject {
	if src.Err != nil {
		msg := widget.NewLabel(fmt.Sprintf("Error loading %s:\n%v", src.Path, src.Err))
		msg.Wrapping = fyne.TextWrapWord
		return container.NewPadded(msg)
	}

	w, h := src.Scene.Bounds()
	surface := render.NewCanvas(w, h)
	surface.Paint(src.Scene)

	img := canvas.NewImageFromImage(surface.ToImage())
	img.FillMode = canvas.ImageFillOriginal
	img.ScaleMode = canvas.ImageScalePixels
	return container.NewScroll(img)
}

func (v *Viewer) updateStatus() {
	src := v.session.ActiveSource()
	switch {
	case src == nil:
		v.status.SetText("No fixture")
	case src.Err != nil:
		v.status.SetText(src.Path + ": " + src.Err.Error())
	default:
		v.status.SetText(fmt.Sprintf("%s: %d boxes, %d endpoints",
			src.Path, len(src.Scene.Boxes), len(src.Scene.Endpoints)))
	}
}

// ShowAndRun shows the window and runs the Fyne event loop.
func (v *Viewer) ShowAndRun() {
	v.window.ShowAndRun()
}
