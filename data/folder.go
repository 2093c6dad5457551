package data

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/b0tShaman/xray-prep/config"
	"github.com/b0tShaman/xray-prep/ml"
)

// FolderResult is the processed form of one split. Features image i,
// Labels[i] and Paths[i] all describe the same source file.
type FolderResult struct {
	Features *ml.Tensor4 // [N, H, W, 1], values in [0, 1]
	Labels   []uint8     // [N]
	Paths    []string    // [N], sampled order
}

// Bundle maps a split name to its processed result.
type Bundle map[string]FolderResult

// Validate checks that features are normalized and that features, labels
// and paths have matching lengths.
func (r FolderResult) Validate() error {
	if r.Features == nil {
		return errors.New("missing features")
	}
	if err := r.Features.Validate(); err != nil {
		return err
	}
	if r.Features.Shape[3] != config.Channels {
		return fmt.Errorf("features have %d channels, want %d", r.Features.Shape[3], config.Channels)
	}
	if lo, hi := r.Features.Range(); lo < 0 || hi > 1 {
		return fmt.Errorf("feature values span [%v, %v], want within [0, 1]", lo, hi)
	}
	if n := r.Features.Len(); n != len(r.Labels) {
		return fmt.Errorf("%d feature rows but %d labels", n, len(r.Labels))
	}
	if len(r.Paths) != 0 && len(r.Paths) != len(r.Labels) {
		return fmt.Errorf("%d paths but %d labels", len(r.Paths), len(r.Labels))
	}
	return nil
}

// Distribution counts samples per label.
func (r FolderResult) Distribution() map[uint8]int {
	dist := make(map[uint8]int)
	for _, label := range r.Labels {
		dist[label]++
	}
	return dist
}

// Processor turns split directories into FolderResults.
type Processor struct {
	Root       string
	Extensions []string
	Sampler    Sampler
	Labeler    Labeler
	Loader     ImageLoader
	Workers    int
	Logger     *slog.Logger
}

func NewProcessor(cfg config.Config, logger *slog.Logger) (*Processor, error) {
	loader, err := NewImageLoader(cfg.ImageHeight, cfg.ImageWidth, cfg.Resampler)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Processor{
		Root:       cfg.RawDataRoot,
		Extensions: cfg.Extensions,
		Sampler: Sampler{
			Threshold: cfg.SampleThreshold,
			Cap:       cfg.SampleCap,
			Seed:      cfg.Seed,
		},
		Labeler: MarkerLabeler{Marker: cfg.Marker},
		Loader:  loader,
		Workers: cfg.Workers,
		Logger:  logger,
	}, nil
}

// Paths returns the discovered image paths of split before sampling.
func (p *Processor) Paths(split string) ([]string, error) {
	return DiscoverPaths(p.Root, split, p.Extensions)
}

// ProcessFolder discovers, samples, loads and labels one split and stacks
// the result. Any unreadable image aborts the split.
func (p *Processor) ProcessFolder(split string) (FolderResult, error) {
	all, err := p.Paths(split)
	if err != nil {
		return FolderResult{}, err
	}

	paths := p.Sampler.Sample(all)
	p.Logger.Info("Sampled split", "split", split, "discovered", len(all), "sampled", len(paths))

	if len(paths) == 0 {
		return FolderResult{}, fmt.Errorf("%w: %q under %s", ErrEmptySplit, split, p.Root)
	}

	images, err := p.loadAll(paths)
	if err != nil {
		return FolderResult{}, err
	}

	labels := make([]uint8, len(paths))
	for i, path := range paths {
		labels[i] = p.Labeler.Label(path)
	}

	features, err := ml.Stack(images)
	if err != nil {
		return FolderResult{}, fmt.Errorf("stack split %q: %w", split, err)
	}

	res := FolderResult{Features: features, Labels: labels, Paths: paths}
	if err := res.Validate(); err != nil {
		return FolderResult{}, fmt.Errorf("split %q: %w", split, err)
	}
	return res, nil
}

// loadAll loads paths in order. With more than one worker, worker id handles
// indices id, id+W, id+2W, ... and writes into its own slots, so the output
// order never depends on scheduling.
func (p *Processor) loadAll(paths []string) ([]*ml.Matrix, error) {
	images := make([]*ml.Matrix, len(paths))

	workers := min(p.Workers, len(paths))
	if workers <= 1 {
		for i, path := range paths {
			img, err := p.Loader.Load(path)
			if err != nil {
				return nil, err
			}
			images[i] = img
		}
		return images, nil
	}

	errs := make([]error, len(paths))
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := id; i < len(paths); i += workers {
				images[i], errs[i] = p.Loader.Load(paths[i])
			}
		}(w)
	}
	wg.Wait()

	// Report the failure a sequential run would have hit first.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return images, nil
}
