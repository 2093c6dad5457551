package data

import (
	"fmt"
	"image"
	"sort"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Resampler scales src to fill dst.
type Resampler func(dst *image.Gray, src image.Image)

// DefaultResampler is the nearest neighbour policy image loaders in the
// Keras ecosystem default to.
const DefaultResampler = "nearest"

var resamplers = map[string]Resampler{
	"nearest":         scaleWith(draw.NearestNeighbor),
	"approx-bilinear": scaleWith(draw.ApproxBiLinear),
	"bilinear":        scaleWith(draw.BiLinear),
	"catmullrom":      scaleWith(draw.CatmullRom),
	"lanczos3":        resizeWith(resize.Lanczos3),
	"mitchell":        resizeWith(resize.MitchellNetravali),
}

func scaleWith(s draw.Scaler) Resampler {
	return func(dst *image.Gray, src image.Image) {
		s.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	}
}

func resizeWith(interp resize.InterpolationFunction) Resampler {
	return func(dst *image.Gray, src image.Image) {
		b := dst.Bounds()
		out := resize.Resize(uint(b.Dx()), uint(b.Dy()), src, interp)
		draw.Draw(dst, b, out, out.Bounds().Min, draw.Src)
	}
}

// LookupResampler returns the resampler registered under name.
func LookupResampler(name string) (Resampler, error) {
	r, ok := resamplers[name]
	if !ok {
		return nil, fmt.Errorf("unknown resampler %q (have %v)", name, ResamplerNames())
	}
	return r, nil
}

// ResamplerNames lists the registered resamplers in sorted order.
func ResamplerNames() []string {
	names := make([]string, 0, len(resamplers))
	for name := range resamplers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
