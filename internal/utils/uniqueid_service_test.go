package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIDShape(t *testing.T) {
	pattern := regexp.MustCompile(`^IN[0-9]{2}[0-9A-Z]{8}$`)

	id, err := GenerateUniqueID("IN")
	require.NoError(t, err)
	assert.True(t, pattern.MatchString(id), "unexpected id shape: %s", id)
	assert.Len(t, id, 12)
}

func TestGenerateIDUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id, err := GenerateUniqueID("OT")
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate id: %s", id)
		seen[id] = true
	}
}
