package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	id := New()
	assert.Len(t, id, Length)
	assert.NotContains(t, id, "-")
	assert.NotEqual(t, id, New())
}

func TestWithPrefix(t *testing.T) {
	id := WithPrefix("wh")
	assert.True(t, strings.HasPrefix(id, "wh_"))
	assert.Len(t, id, len("wh_")+Length)
}
