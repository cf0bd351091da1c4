// Package util contains internal helpers (header hashing, level routing).
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

// CharSum returns the sum of the Unicode code points of s.
// Invalid UTF-8 bytes count as utf8.RuneError, the way range decodes them.
// The sum is order-independent: anagrams hash to the same value.
func CharSum(s string) uint64 {
	var h uint64
	for _, r := range s {
		h += uint64(r)
	}
	return h
}
