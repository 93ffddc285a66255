package parking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupTable(t *testing.T) {
	lt := newLookupTable(2)

	lt.put("AAA111", 0)
	lt.put("BBB222", 1)
	lt.put("CCC333", 2)
	assert.Equal(t, 3, lt.len())

	h, ok := lt.get("BBB222")
	assert.True(t, ok)
	assert.Equal(t, handle(1), h)

	lt.remove("BBB222")
	assert.False(t, lt.contains("BBB222"))
	assert.True(t, lt.contains("CCC333"))
	assert.Equal(t, 2, lt.len())
}
