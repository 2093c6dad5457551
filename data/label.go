package data

import "strings"

const (
	LabelNormal    uint8 = 0
	LabelPneumonia uint8 = 1
)

// Labeler derives a class label from an image path.
type Labeler interface {
	Label(path string) uint8
}

// LabelerFunc adapts a plain function to Labeler.
type LabelerFunc func(path string) uint8

func (f LabelerFunc) Label(path string) uint8 { return f(path) }

// MarkerLabeler labels a path positive when Marker occurs anywhere in it.
// Matching is case sensitive and ignores path structure, so a marker inside
// an unrelated segment such as a file name also counts.
type MarkerLabeler struct {
	Marker string
}

func (m MarkerLabeler) Label(path string) uint8 {
	if strings.Contains(path, m.Marker) {
		return LabelPneumonia
	}
	return LabelNormal
}
