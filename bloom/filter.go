// Package bloom tracks which URLs a batch run has already captured.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Set records URLs probabilistically. A false positive means a URL is
// skipped although it was never captured, an acceptable trade for
// bounded memory on very large sitemaps.
type Set struct {
	set *bloom.BloomFilter
}

// NewSet sizes the set for the expected number of URLs at the given
// false positive rate.
func NewSet(expected uint, fpRate float64) *Set {
	return &Set{set: bloom.NewWithEstimates(expected, fpRate)}
}

// Seen records url and reports whether it had been recorded before.
func (s *Set) Seen(url string) bool {
	return s.set.TestAndAddString(url)
}

// Add records url without testing it.
func (s *Set) Add(url string) {
	s.set.AddString(url)
}

// Contains reports whether url has possibly been recorded. False
// positives are possible; false negatives are not.
func (s *Set) Contains(url string) bool {
	return s.set.TestString(url)
}

// Len approximates the number of recorded URLs.
func (s *Set) Len() int {
	return int(s.set.ApproximatedSize())
}
