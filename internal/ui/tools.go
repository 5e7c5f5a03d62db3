package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Pen width limits exposed in the toolbar. The renderer underneath takes
// any positive width; the range is purely a UI decision.
const (
	minPenWidth = 1.0
	maxPenWidth = 8.0
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Token    string
	Color    color.Color
	OnTapped func(token string)
}

func newColorSwatch(token string, c color.Color, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Token: token, Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Token)
	}
}

// ToolbarActions are the host-window callbacks the toolbar triggers.
type ToolbarActions struct {
	OnAnalyze func()
	OnExpand  func()
	OnExport  func()
}

// NewToolbar builds the pen controls for an annotator: color palette,
// width slider, undo/redo/clear with live enable state, and the
// analyze/expand/export actions.
func NewToolbar(a *Annotator, actions ToolbarActions) fyne.CanvasObject {
	currentColor := "red"
	currentWidth := float32(3.0)

	applyStyle := func() { a.SetStyle(currentColor, currentWidth) }
	applyStyle()

	// --- Color Palette ---
	onColorTapped := func(token string) {
		currentColor = token
		applyStyle()
	}
	colorBox := container.NewHBox(
		newColorSwatch("black", color.Black, onColorTapped),
		newColorSwatch("red", color.NRGBA{R: 255, A: 255}, onColorTapped),
		newColorSwatch("green", color.NRGBA{G: 255, A: 255}, onColorTapped),
		newColorSwatch("blue", color.NRGBA{B: 255, A: 255}, onColorTapped),
		newColorSwatch("yellow", color.NRGBA{R: 255, G: 255, A: 255}, onColorTapped),
	)

	// --- Pen Width Slider ---
	widthSlider := widget.NewSlider(minPenWidth, maxPenWidth)
	widthSlider.Step = 1
	widthSlider.SetValue(float64(currentWidth))
	widthSlider.OnChanged = func(val float64) {
		currentWidth = float32(val)
		applyStyle()
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), widthSlider)

	// --- History buttons ---
	undoBtn := widget.NewButtonWithIcon("", theme.ContentUndoIcon(), a.Undo)
	redoBtn := widget.NewButtonWithIcon("", theme.ContentRedoIcon(), a.Redo)
	clearBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), a.Clear)

	syncHistory := func() {
		if a.CanUndo() {
			undoBtn.Enable()
		} else {
			undoBtn.Disable()
		}
		if a.CanRedo() {
			redoBtn.Enable()
		} else {
			redoBtn.Disable()
		}
	}
	a.OnHistoryChange = syncHistory
	syncHistory()

	items := []fyne.CanvasObject{
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		widget.NewSeparator(),
		undoBtn, redoBtn, clearBtn,
		layout.NewSpacer(),
	}
	if actions.OnExpand != nil {
		items = append(items, widget.NewButtonWithIcon("Expand", theme.ViewFullScreenIcon(), actions.OnExpand))
	}
	if actions.OnAnalyze != nil {
		items = append(items, widget.NewButtonWithIcon("Analyze", theme.SearchIcon(), actions.OnAnalyze))
	}
	if actions.OnExport != nil {
		items = append(items, widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), actions.OnExport))
	}
	return container.NewHBox(items...)
}
