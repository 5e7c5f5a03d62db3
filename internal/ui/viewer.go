package ui

import (
	"image"
	"log"

	"MarkLens/internal/classify"
	"MarkLens/internal/config"

	"fyne.io/fyne/v2"
)

// openViewer expands the image into its own large window. The viewer
// gets a fresh annotation session sized to its bigger rendering; ink
// from the main window does not carry over, and everything drawn here
// is discarded when the window closes.
func openViewer(a fyne.App, source image.Image, client *classify.Client, cfg *config.Config) {
	win := a.NewWindow("MarkLens: expanded view")
	win.Resize(fyne.NewSize(1280, 960))

	p := newPanel(win, client, cfg, nil)
	p.annot.SetImage(source)

	win.SetOnClosed(func() {
		// The session and its history die with the window.
		log.Printf("Viewer closed, session %s discarded", p.annot.Session().ID())
	})

	win.SetContent(p.content)
	win.Show()
}
