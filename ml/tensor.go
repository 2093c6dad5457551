package ml

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var ErrEmptyStack = errors.New("cannot stack zero matrices")

// Tensor4 is a row-major [N, H, W, C] array. Fields are exported so the
// tensor gob-encodes as is.
type Tensor4 struct {
	Shape [4]int
	Data  []float64
}

// Stack concatenates equally sized matrices along a new leading axis and
// appends a trailing channel axis of size 1.
func Stack(ms []*Matrix) (*Tensor4, error) {
	if len(ms) == 0 {
		return nil, ErrEmptyStack
	}

	rows, cols := ms[0].Dims()
	size := rows * cols
	data := make([]float64, 0, len(ms)*size)

	for i, m := range ms {
		r, c := m.Dims()
		if r != rows || c != cols {
			return nil, fmt.Errorf("matrix %d is %dx%d, expected %dx%d", i, r, c, rows, cols)
		}
		data = append(data, m.data...)
	}

	return &Tensor4{Shape: [4]int{len(ms), rows, cols, 1}, Data: data}, nil
}

func (t *Tensor4) Len() int { return t.Shape[0] }

// Range returns the smallest and largest element. An empty tensor returns (0, 0).
func (t *Tensor4) Range() (float64, float64) {
	if len(t.Data) == 0 {
		return 0, 0
	}
	return floats.Min(t.Data), floats.Max(t.Data)
}

// Validate checks that Data holds exactly the elements Shape describes.
func (t *Tensor4) Validate() error {
	n := 1
	for _, d := range t.Shape {
		if d < 0 {
			return fmt.Errorf("negative dimension in shape %v", t.Shape)
		}
		n *= d
	}
	if len(t.Data) != n {
		return fmt.Errorf("shape %v needs %d elements, have %d", t.Shape, n, len(t.Data))
	}
	return nil
}
