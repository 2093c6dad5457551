package data

import "math/rand/v2"

// Sampler bounds how many images of a split are processed.
//
// With k = floor(n*Threshold), k images are drawn only when k > Cap;
// otherwise all n are kept. Cap is compared against k and never limits the
// result: 60 paths at 1/3 give k=20, which is not above a cap of 20, so all
// 60 are returned.
type Sampler struct {
	Threshold float64
	Cap       int
	Seed      uint64
}

// SampleSize returns how many of n paths Sample keeps. A Threshold above 1
// never yields more than n.
func (s Sampler) SampleSize(n int) int {
	k := int(float64(n) * s.Threshold)
	if k > s.Cap {
		return min(k, n)
	}
	return n
}

// Sample draws SampleSize(len(paths)) paths without replacement. The source
// is reseeded on every call, so equal input gives equal output, order
// included. The input slice is not modified.
func (s Sampler) Sample(paths []string) []string {
	n := len(paths)
	size := s.SampleSize(n)

	rng := rand.New(rand.NewPCG(s.Seed, s.Seed))
	perm := rng.Perm(n)

	out := make([]string, size)
	for i := range out {
		out[i] = paths[perm[i]]
	}
	return out
}
