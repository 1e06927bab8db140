package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo(t *testing.T) {
	v := "x"
	p := To(v)
	v = "y"
	assert.Equal(t, "x", *p)
}

func TestValueOr(t *testing.T) {
	assert.Equal(t, 3, ValueOr(nil, 3))
	assert.Equal(t, 1, ValueOr(To(1), 3))
}
