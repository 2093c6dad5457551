package data

import (
	"errors"
	"testing"
)

func TestBuild(t *testing.T) {
	root := t.TempDir()
	writeSplit(t, root, "train", 3, 2)
	writeSplit(t, root, "test", 1, 1)
	writeSplit(t, root, "val", 1, 0)
	p := newTestProcessor(t, testConfig(root))

	bundle, err := p.Build("train", "test", "val")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := map[string]int{"train": 5, "test": 2, "val": 1}
	if len(bundle) != len(want) {
		t.Fatalf("bundle has %d splits, want %d", len(bundle), len(want))
	}
	for split, n := range want {
		res, ok := bundle[split]
		if !ok {
			t.Fatalf("split %q missing from bundle", split)
		}
		if res.Features.Len() != n || len(res.Labels) != n {
			t.Errorf("split %q: %d features / %d labels, want %d", split, res.Features.Len(), len(res.Labels), n)
		}
	}
}

func TestBuildFailsFast(t *testing.T) {
	root := t.TempDir()
	writeSplit(t, root, "train", 1, 1)
	p := newTestProcessor(t, testConfig(root))

	bundle, err := p.Build("train", "test")
	if !errors.Is(err, ErrPathDiscovery) {
		t.Errorf("error = %v, want ErrPathDiscovery", err)
	}
	if bundle != nil {
		t.Errorf("Build returned a partial bundle: %v", bundle)
	}
}
