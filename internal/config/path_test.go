package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("FINTRACK_TEST_DIR", "/srv/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty stays empty", "", ""},
		{"bare tilde", "~", home},
		{"tilde prefix", "~/.config/fintrack", filepath.Join(home, ".config", "fintrack")},
		{"env var", "$FINTRACK_TEST_DIR/cache.db", "/srv/data/cache.db"},
		{"plain path untouched", "/var/lib/fintrack.db", "/var/lib/fintrack.db"},
		{"tilde not at start untouched", "/tmp/~backup", "/tmp/~backup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
