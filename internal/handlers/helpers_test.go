package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnippet(t *testing.T) {
	assert.Equal(t, "ngon quá", snippet("ngon quá", 40))
	assert.Equal(t, "phở...", snippet("phở bò tái nạm", 3))
	assert.Equal(t, "", snippet("", 40))
}

func TestParseOwnerID(t *testing.T) {
	assert.Equal(t, uint(42), parseOwnerID("42"))
	assert.Equal(t, uint(0), parseOwnerID("not-a-number"))
	assert.Equal(t, uint(0), parseOwnerID(""))
}
