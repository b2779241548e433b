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

	t.Setenv("FINZ_TEST_DIR", "/var/data")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain path", "/tmp/finz.db", "/tmp/finz.db"},
		{"bare tilde", "~", home},
		{"tilde prefix", "~/.local/share/finz/finz.db", filepath.Join(home, ".local/share/finz/finz.db")},
		{"env var", "$FINZ_TEST_DIR/finz.db", "/var/data/finz.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}
