// Package bloom remembers which page URLs a scrape has already queued.
// A Bloom filter keeps memory flat on large sites at the cost of rare false
// positives, which only ever cause a page to be skipped, never fetched twice.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a set of URLs with probabilistic membership.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n URLs at the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might be in the filter.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// TestAndAdd adds the URL and reports whether it might have been present
// before.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of URLs in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
