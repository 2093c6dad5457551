package ml

import (
	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense rows x cols grid backed by a flat slice.
// A normalized grayscale image is a Matrix of height x width intensities.
type Matrix struct {
	rows, cols int
	data       []float64
	dense      *mat.Dense
}

// -------- CONSTRUCTORS ------- //
func NewMatrix(rows, cols int) *Matrix {
	data := make([]float64, rows*cols)
	return &Matrix{
		rows:  rows,
		cols:  cols,
		data:  data,
		dense: mat.NewDense(rows, cols, data),
	}
}

// ------- MATRIX METHODS ------ //
func (m *Matrix) Dims() (int, int) { return m.rows, m.cols }

// Data returns the row-major backing slice shared with the dense view.
func (m *Matrix) Data() []float64 { return m.data }

// DivScalar divides every element by s in place.
func (m *Matrix) DivScalar(s float64) {
	m.dense.Apply(func(_, _ int, v float64) float64 { return v / s }, m.dense)
}
