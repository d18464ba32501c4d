package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("harvest")
	require.NoError(t, err)
	assert.NotEqual(t, "harvest", h)
	assert.True(t, CheckPassword(h, "harvest"))
	assert.False(t, CheckPassword(h, "wrong"))

	_, err = HashPassword("")
	require.ErrorIs(t, err, ErrEmptyPassword)
}
