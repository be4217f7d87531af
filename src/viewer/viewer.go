// Package viewer shows a rendered figure in a desktop window.
package viewer

import (
	"errors"
	"image"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
)

// AppID identifies the viewer to fyne (preferences, window grouping).
const AppID = "com.pmcplot.viewer"

// screenScale maps figure pixels (rendered at 200 DPI) to window units so the
// window opens at roughly the figure's physical size.
const screenScale = 0.5

var ErrNoImage = errors.New("viewer: no image to show")

// Show opens a window titled title displaying img and blocks until the user
// closes it.
func Show(title string, img image.Image) error {
	if img == nil {
		return ErrNoImage
	}
	a := app.NewWithID(AppID)
	w := newWindow(a, title, img)
	w.ShowAndRun()
	return nil
}

// newWindow builds the figure window without showing it.
func newWindow(a fyne.App, title string, img image.Image) fyne.Window {
	w := a.NewWindow(title)
	b := img.Bounds()
	size := fyne.NewSize(float32(b.Dx())*screenScale, float32(b.Dy())*screenScale)

	ci := canvas.NewImageFromImage(img)
	ci.FillMode = canvas.ImageFillContain
	ci.ScaleMode = canvas.ImageScaleSmooth
	ci.SetMinSize(fyne.NewSize(size.Width/2, size.Height/2))

	w.SetContent(container.NewStack(ci))
	w.Resize(size)
	w.CenterOnScreen()

	c := w.Canvas()
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape || ev.Name == fyne.KeyQ {
			w.Close()
		}
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) { w.Close() })
	return w
}
