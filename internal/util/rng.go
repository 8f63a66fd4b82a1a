package util

import "math/rand"

// New returns a seeded source for battles and CPU policies. Seed 0 is
// treated as 1 so an unset seed still replays.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}
