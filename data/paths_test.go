package data

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDiscoverPaths(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"train/PNEUMONIA/b.jpeg",
		"train/NORMAL/a.jpeg",
		"train/top.jpeg",           // directly under the split
		"train/NORMAL/deep/c.jpeg", // two levels below the class dir
		"train/NORMAL/d.png",       // other extension
		"test/NORMAL/e.jpeg",       // other split
	} {
		writeFile(t, filepath.Join(root, rel), "x")
	}

	got, err := DiscoverPaths(root, "train", []string{".jpeg"})
	if err != nil {
		t.Fatalf("DiscoverPaths: %v", err)
	}

	want := []string{
		filepath.Join(root, "train", "NORMAL", "a.jpeg"),
		filepath.Join(root, "train", "PNEUMONIA", "b.jpeg"),
	}
	if !slices.Equal(got, want) {
		t.Errorf("DiscoverPaths = %v, want %v", got, want)
	}

	got, err = DiscoverPaths(root, "train", []string{".jpeg", ".png"})
	if err != nil {
		t.Fatalf("DiscoverPaths: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("with .png too got %d paths, want 3: %v", len(got), got)
	}
}

func TestDiscoverPathsOverlappingExtensions(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "train", "NORMAL", "a.png")
	writeFile(t, path, "x")

	got, err := DiscoverPaths(root, "train", []string{".png", "png"})
	if err != nil {
		t.Fatalf("DiscoverPaths: %v", err)
	}
	if !slices.Equal(got, []string{path}) {
		t.Errorf("DiscoverPaths = %v, want [%s]", got, path)
	}
}

func TestDiscoverPathsEmptySplit(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "val", "NORMAL"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := DiscoverPaths(root, "val", []string{".jpeg"})
	if err != nil {
		t.Fatalf("DiscoverPaths: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("DiscoverPaths = %v, want empty", got)
	}
}

func TestDiscoverPathsMissingSplit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "file"), "x")

	for _, split := range []string{"missing", "file"} {
		_, err := DiscoverPaths(root, split, []string{".jpeg"})
		if !errors.Is(err, ErrPathDiscovery) {
			t.Errorf("split %q: error = %v, want ErrPathDiscovery", split, err)
		}
	}
}
