package data

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/b0tShaman/xray-prep/config"
	"github.com/b0tShaman/xray-prep/ml"
)

// writeImage encodes a w x h grayscale image whose pixel (x, y) is fill(x, y).
// The encoder is picked from the extension of path.
func writeImage(t testing.TB, path string, w, h int, fill func(x, y int) uint8) {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: fill(x, y)})
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".png":
		err = png.Encode(f, img)
	default:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 100})
	}
	if err != nil {
		t.Fatal(err)
	}
}

// pixelAt reads row y, column x of a normalized image matrix.
func pixelAt(m *ml.Matrix, y, x int) float64 {
	_, cols := m.Dims()
	return m.Data()[y*cols+x]
}

// featureAt reads image n, row y, column x of a single channel tensor.
func featureAt(t *ml.Tensor4, n, y, x int) float64 {
	return t.Data[(n*t.Shape[1]+y)*t.Shape[2]+x]
}

// valueRange returns the smallest and largest element of m.
func valueRange(m *ml.Matrix) (float64, float64) {
	return slices.Min(m.Data()), slices.Max(m.Data())
}

func uniform(v uint8) func(x, y int) uint8 {
	return func(int, int) uint8 { return v }
}

func writeFile(t testing.TB, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig returns a small-image PNG configuration rooted at root.
func testConfig(root string) config.Config {
	cfg := config.Default()
	cfg.RawDataRoot = root
	cfg.Extensions = []string{".png"}
	cfg.ImageHeight = 3
	cfg.ImageWidth = 4
	return cfg
}

func newTestProcessor(t testing.TB, cfg config.Config) *Processor {
	t.Helper()
	p, err := NewProcessor(cfg, discardLogger())
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	return p
}
