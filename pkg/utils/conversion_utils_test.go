package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOptionalNumber(t *testing.T) {
	n, ok := ParseOptionalNumber("1500000")
	assert.True(t, ok)
	assert.Equal(t, 1500000.0, n)

	n, ok = ParseOptionalNumber(" 239303.33 ")
	assert.True(t, ok)
	assert.Equal(t, 239303.33, n)

	_, ok = ParseOptionalNumber("")
	assert.False(t, ok)
	_, ok = ParseOptionalNumber("abc")
	assert.False(t, ok)
}

func TestNumberOrZero(t *testing.T) {
	assert.Equal(t, 750000.0, NumberOrZero("750000"))
	assert.Equal(t, 0.0, NumberOrZero(""))
	assert.Equal(t, 0.0, NumberOrZero("n/a"))
}
