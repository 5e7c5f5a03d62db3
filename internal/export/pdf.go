// Package export writes the annotated image and its analysis result out
// as a PDF report.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/jung-kurt/gofpdf"
	xdraw "golang.org/x/image/draw"
)

// Report is everything that lands on the page.
type Report struct {
	Image      *image.RGBA // annotated composite
	Category   string
	Confidence float64
	Conclusive bool
	Taken      time.Time
}

// A4 content area in mm, inside the default margins.
const (
	pageWidth  = 190.0
	marginLeft = 10.0
	imageTop   = 34.0
)

// WritePDF renders the report to path as a single A4 page: title,
// finding, timestamp, and the annotated image scaled to fit the width.
func WritePDF(path string, r Report) error {
	if r.Image == nil {
		return fmt.Errorf("export: no image to write")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(pageWidth, 10, "MarkLens analysis report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	if r.Conclusive {
		pdf.CellFormat(pageWidth, 7,
			fmt.Sprintf("Finding: %s (confidence %.1f%%)", r.Category, r.Confidence*100),
			"", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(pageWidth, 7, "Finding: inconclusive", "", 1, "L", false, 0, "")
	}
	when := r.Taken
	if when.IsZero() {
		when = time.Now()
	}
	pdf.CellFormat(pageWidth, 7, when.Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")

	data, w, h, err := encodeFitted(r.Image)
	if err != nil {
		return fmt.Errorf("encode report image: %w", err)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("annotated", opts, bytes.NewReader(data))
	// Scale by width, keep the aspect ratio.
	drawW := pageWidth
	drawH := drawW * float64(h) / float64(w)
	pdf.ImageOptions("annotated", marginLeft, imageTop, drawW, drawH, false, opts, 0, "")

	return pdf.OutputFileAndClose(path)
}

// maxImageWidth caps the embedded raster so huge photos do not balloon
// the PDF; the page renders it at ~190mm regardless.
const maxImageWidth = 1600

// encodeFitted downscales the composite if oversized and PNG-encodes it.
func encodeFitted(img *image.RGBA) ([]byte, int, int, error) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w > maxImageWidth {
		scaled := image.NewRGBA(image.Rect(0, 0, maxImageWidth, h*maxImageWidth/w))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = scaled
		w = img.Rect.Dx()
		h = img.Rect.Dy()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, 0, 0, err
	}
	return buf.Bytes(), w, h, nil
}
