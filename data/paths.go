package data

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// DiscoverPaths returns every file matching <root>/<split>/*/*<ext> for each
// extension, sorted and without duplicates. A split directory with no
// matches yields an empty slice; a missing split directory is an error.
func DiscoverPaths(root, split string, extensions []string) ([]string, error) {
	dir := filepath.Join(root, split)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: split %q: %w", ErrPathDiscovery, split, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: split %q: %s is not a directory", ErrPathDiscovery, split, dir)
	}

	var paths []string
	for _, ext := range extensions {
		matches, err := filepath.Glob(filepath.Join(dir, "*", "*"+ext))
		if err != nil {
			return nil, fmt.Errorf("%w: split %q: %w", ErrPathDiscovery, split, err)
		}
		paths = append(paths, matches...)
	}

	// Overlapping extensions such as ".png" and "png" match the same file.
	slices.Sort(paths)
	return slices.Compact(paths), nil
}
