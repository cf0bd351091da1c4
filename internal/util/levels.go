package util

// DefaultLevels is the fixed tier count of the reference topology.
const DefaultLevels = 3

// LevelIndex maps a hash to a level index in [0, levels).
// A non-positive level count maps everything to level 0.
func LevelIndex(hash uint64, levels int) int {
	if levels <= 1 {
		return 0
	}
	return int(hash % uint64(levels))
}
