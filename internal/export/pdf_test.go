package export

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 80, A: 255})
		}
	}
	return img
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	err := WritePDF(path, Report{
		Image:      testImage(320, 240),
		Category:   "benign",
		Confidence: 0.93,
		Conclusive: true,
		Taken:      time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("WritePDF: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(data) < 1000 {
		t.Errorf("report suspiciously small: %d bytes", len(data))
	}
	if string(data[:5]) != "%PDF-" {
		t.Errorf("output does not start with a PDF header: %q", data[:5])
	}
}

func TestWritePDFInconclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	if err := WritePDF(path, Report{Image: testImage(10, 10)}); err != nil {
		t.Fatalf("WritePDF inconclusive: %v", err)
	}
}

func TestWritePDFDownscalesLargeImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.pdf")
	if err := WritePDF(path, Report{Image: testImage(3200, 100), Conclusive: false}); err != nil {
		t.Fatalf("WritePDF large: %v", err)
	}
}

func TestWritePDFNoImage(t *testing.T) {
	if err := WritePDF(filepath.Join(t.TempDir(), "x.pdf"), Report{}); err == nil {
		t.Fatal("WritePDF accepted an empty report")
	}
}
