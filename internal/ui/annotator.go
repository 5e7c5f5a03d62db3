package ui

import (
	"image"

	"MarkLens/internal/annotation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Annotator shows the loaded image with the freehand ink overlay and
// feeds pointer events into the annotation session. Each loaded image
// (and each expanded-viewer copy) gets its own session; the widget only
// translates events and repaints.
type Annotator struct {
	widget.BaseWidget

	source  image.Image
	session *annotation.Session

	img     *canvas.Image
	overlay *canvas.Raster

	// OnHistoryChange fires whenever canUndo/canRedo may have flipped,
	// so the toolbar can enable or disable its buttons.
	OnHistoryChange func()
}

var _ fyne.Widget = (*Annotator)(nil)
var _ fyne.Draggable = (*Annotator)(nil)
var _ desktop.Mouseable = (*Annotator)(nil)
var _ desktop.Hoverable = (*Annotator)(nil)

func NewAnnotator() *Annotator {
	a := &Annotator{}
	a.img = canvas.NewImageFromImage(nil)
	a.img.FillMode = canvas.ImageFillContain
	a.overlay = canvas.NewRaster(a.overlayPixels)
	a.ExtendBaseWidget(a)
	return a
}

// SetImage loads a new image and starts a fresh annotation session for
// it. Any previous ink and history are discarded with the old session.
func (a *Annotator) SetImage(img image.Image) {
	a.source = img
	a.img.Image = img

	box := a.imageBox()
	w, h := int(box.Width), int(box.Height)
	if box.Empty() {
		// Not laid out yet; size from the image, synced on first layout.
		b := img.Bounds()
		w, h = b.Dx(), b.Dy()
	}
	a.session = annotation.NewSession(w, h, a.imageBox)
	a.notifyHistory()
	a.Refresh()
}

// HasImage reports whether something is loaded to draw on.
func (a *Annotator) HasImage() bool { return a.source != nil }

// Session exposes the active annotation session, nil before any image is
// loaded.
func (a *Annotator) Session() *annotation.Session { return a.session }

// Composite flattens the current ink over the source image for analysis
// or export. Returns nil when no image is loaded.
func (a *Annotator) Composite() *image.RGBA {
	if a.source == nil || a.session == nil {
		return nil
	}
	return annotation.Composite(a.source, a.session.Buffer())
}

// SetStyle forwards the pen configuration to the session.
func (a *Annotator) SetStyle(token string, width float32) {
	if a.session != nil {
		a.session.SetStyle(token, width)
	}
}

// Undo reverts the latest stroke and repaints.
func (a *Annotator) Undo() {
	if a.session != nil && a.session.Undo() {
		a.refreshInk()
	}
}

// Redo re-applies the latest undone stroke and repaints.
func (a *Annotator) Redo() {
	if a.session != nil && a.session.Redo() {
		a.refreshInk()
	}
}

// Clear wipes all ink and history.
func (a *Annotator) Clear() {
	if a.session != nil {
		a.session.Clear()
		a.refreshInk()
	}
}

// CanUndo reports whether the undo button should be live.
func (a *Annotator) CanUndo() bool { return a.session != nil && a.session.CanUndo() }

// CanRedo reports whether the redo button should be live.
func (a *Annotator) CanRedo() bool { return a.session != nil && a.session.CanRedo() }

// MouseDown opens a stroke under the primary button.
func (a *Annotator) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || a.session == nil {
		return
	}
	a.session.Begin(annotation.Point{X: e.Position.X, Y: e.Position.Y})
}

// Dragged extends the in-flight stroke; events while idle are absorbed
// by the session.
func (a *Annotator) Dragged(e *fyne.DragEvent) {
	if a.session == nil {
		return
	}
	a.session.Sample(annotation.Point{X: e.Position.X, Y: e.Position.Y})
	a.overlay.Refresh()
}

// MouseUp closes the stroke and commits it to history.
func (a *Annotator) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || a.session == nil {
		return
	}
	a.session.End()
	a.notifyHistory()
}

// MouseOut ends a stroke whose pointer left the widget, same as a
// release. A later MouseUp is then a harmless duplicate.
func (a *Annotator) MouseOut() {
	if a.session == nil {
		return
	}
	a.session.End()
	a.notifyHistory()
}

// DragEnd arrives with MouseUp; End is a no-op the second time.
func (a *Annotator) DragEnd() {
	if a.session == nil {
		return
	}
	a.session.End()
	a.notifyHistory()
}

func (a *Annotator) MouseIn(*desktop.MouseEvent)    {}
func (a *Annotator) MouseMoved(*desktop.MouseEvent) {}

// Resize keeps the drawing buffer matched to the rendered image size.
// A real resize invalidates the ink and history with it.
func (a *Annotator) Resize(size fyne.Size) {
	a.BaseWidget.Resize(size)
	if a.session != nil && a.session.SyncBufferSize() {
		a.notifyHistory()
		a.overlay.Refresh()
	}
}

// imageBox computes where the contained image actually renders inside
// the widget, in widget-local coordinates. This is the geometry the
// session maps pointer positions against.
func (a *Annotator) imageBox() annotation.Box {
	if a.source == nil {
		return annotation.Box{}
	}
	sz := a.Size()
	b := a.source.Bounds()
	iw, ih := float32(b.Dx()), float32(b.Dy())
	if sz.Width <= 0 || sz.Height <= 0 || iw <= 0 || ih <= 0 {
		return annotation.Box{}
	}

	scale := sz.Width / iw
	if s := sz.Height / ih; s < scale {
		scale = s
	}
	w, h := iw*scale, ih*scale
	return annotation.Box{
		Left:   (sz.Width - w) / 2,
		Top:    (sz.Height - h) / 2,
		Width:  w,
		Height: h,
	}
}

func (a *Annotator) overlayPixels(w, h int) image.Image {
	if a.session == nil {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return a.session.Buffer().Image()
}

func (a *Annotator) refreshInk() {
	a.overlay.Refresh()
	a.notifyHistory()
}

func (a *Annotator) notifyHistory() {
	if a.OnHistoryChange != nil {
		a.OnHistoryChange()
	}
}

func (a *Annotator) CreateRenderer() fyne.WidgetRenderer {
	return &annotatorRenderer{a: a}
}

type annotatorRenderer struct {
	a *Annotator
}

func (r *annotatorRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.a.img, r.a.overlay}
}

func (r *annotatorRenderer) Layout(size fyne.Size) {
	r.a.img.Resize(size)
	// The overlay sits exactly over the rendered image, not the whole
	// widget, so ink coordinates line up with what the user sees.
	box := r.a.imageBox()
	if box.Empty() {
		r.a.overlay.Resize(size)
		return
	}
	r.a.overlay.Move(fyne.NewPos(box.Left, box.Top))
	r.a.overlay.Resize(fyne.NewSize(box.Width, box.Height))
}

func (r *annotatorRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

func (r *annotatorRenderer) Refresh() {
	r.a.img.Refresh()
	r.a.overlay.Refresh()
}

func (r *annotatorRenderer) Destroy() {}
