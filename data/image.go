package data

import (
	"fmt"
	"image"
	_ "image/jpeg" // Essential: Registers JPEG format
	_ "image/png"
	"os"

	"github.com/b0tShaman/xray-prep/ml"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageLoader turns an image file into a Height x Width grayscale matrix
// with values in [0, 1].
type ImageLoader struct {
	Height, Width int
	Resample      Resampler // nil means nearest neighbour
}

// NewImageLoader resolves the named resampler.
func NewImageLoader(height, width int, resampler string) (ImageLoader, error) {
	r, err := LookupResampler(resampler)
	if err != nil {
		return ImageLoader{}, err
	}
	return ImageLoader{Height: height, Width: width, Resample: r}, nil
}

// Load decodes path, converts it to 8-bit grayscale, resizes it and divides
// every intensity by 255.
func (l ImageLoader) Load(path string) (*ml.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrImageDecode, path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrImageDecode, path, err)
	}

	pixels := l.Pixels(src)

	m := ml.NewMatrix(l.Height, l.Width)
	out := m.Data()
	for y := 0; y < l.Height; y++ {
		row := pixels.Pix[y*pixels.Stride : y*pixels.Stride+l.Width]
		for x, p := range row {
			out[y*l.Width+x] = float64(p)
		}
	}
	m.DivScalar(255.0)

	return m, nil
}

// Pixels returns the resized grayscale image before normalization, with
// integer intensities in [0, 255].
func (l ImageLoader) Pixels(src image.Image) *image.Gray {
	resample := l.Resample
	if resample == nil {
		resample = resamplers[DefaultResampler]
	}

	dst := image.NewGray(image.Rect(0, 0, l.Width, l.Height))
	resample(dst, toGray(src))
	return dst
}

// toGray converts with Go's luma model (ITU-R 601 weights). Grayscale
// sources pass through untouched.
func toGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}
	b := src.Bounds()
	g := image.NewGray(b)
	draw.Draw(g, b, src, b.Min, draw.Src)
	return g
}
