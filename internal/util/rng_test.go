package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReplays(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Intn(256), b.Intn(256))
	}

	zero, one := New(0), New(1)
	assert.Equal(t, one.Float64(), zero.Float64(), "seed 0 behaves as seed 1")
}
