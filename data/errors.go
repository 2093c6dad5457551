package data

import "errors"

var (
	// ErrPathDiscovery means a split directory is missing or unreadable.
	ErrPathDiscovery = errors.New("path discovery failed")
	// ErrEmptySplit means a split produced no images to stack.
	ErrEmptySplit = errors.New("split has no images")
	// ErrImageDecode means an image file could not be opened or decoded.
	ErrImageDecode = errors.New("image decode failed")
	// ErrSerialization means the bundle could not be written or read back.
	ErrSerialization = errors.New("serialization failed")
	// ErrInvalidBundle means a decoded bundle breaks the feature/label invariants.
	ErrInvalidBundle = errors.New("invalid dataset bundle")
)
