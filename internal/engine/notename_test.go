package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteName(t *testing.T) {
	assert.Equal(t, "C2", NoteName(36))
	assert.Equal(t, "C4", NoteName(60))
	assert.Equal(t, "A4", NoteName(69))
	assert.Equal(t, "C#-1", NoteName(1))
	assert.Equal(t, "G9", NoteName(127))
}
