package ui

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"time"

	"MarkLens/internal/classify"
	"MarkLens/internal/config"
	"MarkLens/internal/export"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// panel is one annotation surface with its toolbar, result line, and the
// analyze/export plumbing. The main window has one; every expanded
// viewer window gets its own, with its own session.
type panel struct {
	annot   *Annotator
	result  *widget.Label
	status  *widget.Label
	content fyne.CanvasObject

	lastReport *export.Report
}

func newPanel(win fyne.Window, client *classify.Client, cfg *config.Config, onExpand func()) *panel {
	p := &panel{
		annot:  NewAnnotator(),
		result: widget.NewLabel("No analysis yet"),
		status: widget.NewLabel("Ready"),
	}

	toolbar := NewToolbar(p.annot, ToolbarActions{
		OnExpand:  onExpand,
		OnAnalyze: func() { p.analyze(client, cfg) },
		OnExport:  func() { p.exportPDF(win) },
	})

	bottom := container.NewHBox(p.result, widget.NewSeparator(), p.status)
	p.content = container.NewBorder(toolbar, bottom, nil, nil, p.annot)
	return p
}

// analyze composites the annotated image and sends it off for
// classification on its own goroutine. The session never waits on the
// call; a failure just lands in the status line until the user retries.
func (p *panel) analyze(client *classify.Client, cfg *config.Config) {
	composite := p.annot.Composite()
	if composite == nil {
		p.status.SetText("Open an image first")
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, composite); err != nil {
		log.Printf("encode for analysis: %v", err)
		p.status.SetText("Could not prepare image")
		return
	}
	sessionID := p.annot.Session().ID()
	p.status.SetText("Analyzing...")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var preds []classify.Prediction
		var err error
		if cfg.UseStream {
			preds, err = client.PredictStream(ctx, buf.Bytes(), sessionID)
		} else {
			preds, err = client.Predict(ctx, buf.Bytes(), sessionID)
		}

		fyne.Do(func() {
			if err != nil {
				log.Printf("analysis failed: %v", err)
				p.status.SetText("Analysis failed")
				return
			}
			finding, ok := classify.Evaluate(preds, cfg.PositiveLabel)
			p.lastReport = &export.Report{
				Image:      composite,
				Category:   finding.Category,
				Confidence: finding.Confidence,
				Conclusive: ok,
				Taken:      time.Now(),
			}
			if !ok {
				p.result.SetText("Result: inconclusive")
			} else if finding.Flagged {
				p.result.SetText(fmt.Sprintf("Result: %s FLAGGED (%.1f%%)",
					finding.Category, finding.Confidence*100))
			} else {
				p.result.SetText(fmt.Sprintf("Result: %s (%.1f%%)",
					finding.Category, finding.Confidence*100))
			}
			p.status.SetText("Ready")
		})
	}()
}

func (p *panel) exportPDF(win fyne.Window) {
	report := p.lastReport
	if report == nil {
		// No analysis yet: export the annotated image as-is.
		composite := p.annot.Composite()
		if composite == nil {
			p.status.SetText("Nothing to export")
			return
		}
		report = &export.Report{Image: composite, Taken: time.Now()}
	}

	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := export.WritePDF(path, *report); err != nil {
			log.Printf("export failed: %v", err)
			p.status.SetText("Export failed")
			return
		}
		p.status.SetText("Report saved")
	}, win)
}

// openImage decodes the reader's contents and loads it into the panel.
func (p *panel) openImage(reader fyne.URIReadCloser) {
	defer func() {
		if err := reader.Close(); err != nil {
			log.Printf("Error closing reader: %v", err)
		}
	}()

	img, format, err := image.Decode(reader)
	if err != nil {
		log.Printf("decode %s: %v", reader.URI(), err)
		p.status.SetText("Unsupported image file")
		return
	}
	log.Printf("Loaded %s image %s", format, reader.URI())

	p.annot.SetImage(img)
	p.result.SetText("No analysis yet")
	p.status.SetText("Ready")
	p.lastReport = nil
}

// RunApp assembles the main window and blocks until it closes.
func RunApp(client *classify.Client, cfg *config.Config) {
	myApp := app.New()
	myWindow := myApp.NewWindow("MarkLens")
	myWindow.Resize(fyne.NewSize(1024, 768))

	var p *panel
	p = newPanel(myWindow, client, cfg, func() {
		if p.annot.HasImage() {
			openViewer(myApp, p.annot.source, client, cfg)
		}
	})

	openBtn := widget.NewButton("Open image...", func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			p.openImage(reader)
		}, myWindow)
	})

	// Drag-and-drop is the second way in.
	myWindow.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		if len(uris) == 0 {
			return
		}
		reader, err := storage.Reader(uris[0])
		if err != nil {
			log.Printf("open dropped file: %v", err)
			return
		}
		p.openImage(reader)
	})

	content := container.NewBorder(openBtn, nil, nil, nil, p.content)
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
