package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscoverSocketPathPrefersI3SOCK(t *testing.T) {
	t.Setenv("I3SOCK", "/tmp/i3-from-env.sock")
	t.Setenv("SWAYSOCK", "/tmp/sway-from-env.sock")

	path, err := DiscoverSocketPath()
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/i3-from-env.sock", path)
}

func TestDiscoverSocketPathFallsBackToSWAYSOCK(t *testing.T) {
	t.Setenv("I3SOCK", "")
	t.Setenv("SWAYSOCK", "/tmp/sway-from-env.sock")

	path, err := DiscoverSocketPath()
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/sway-from-env.sock", path)
}
