package data

import "fmt"

// Build processes each split in order. The first failure aborts the build
// and no partial bundle is returned.
func (p *Processor) Build(splits ...string) (Bundle, error) {
	bundle := make(Bundle, len(splits))

	for _, split := range splits {
		res, err := p.ProcessFolder(split)
		if err != nil {
			return nil, fmt.Errorf("process split %q: %w", split, err)
		}

		dist := res.Distribution()
		p.Logger.Info("Processed split",
			"split", split,
			"shape", res.Features.Shape,
			"normal", dist[LabelNormal],
			"pneumonia", dist[LabelPneumonia],
		)
		bundle[split] = res
	}

	return bundle, nil
}
