// Package bloom provides a probabilistic set of SIGA codes used to detect
// duplicate catalog entries during a sync without querying the store for
// every row.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a Bloom filter of SIGA codes.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected codes with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// TestAndAdd reports whether the code might have been added before and
// adds it. False positives are possible; false negatives are not.
func (f *Filter) TestAndAdd(code string) bool {
	return f.f.TestAndAddString(code)
}
