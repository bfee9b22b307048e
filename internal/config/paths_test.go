package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Paths tests ---

func TestResolvePathsWithHomeOverride(t *testing.T) {
	base := t.TempDir()
	t.Setenv("PARLEY_HOME", base)

	p, err := ResolvePaths()
	require.NoError(t, err)
	assert.Equal(t, base, p.Base)
	assert.Equal(t, filepath.Join(base, "config.yaml"), p.Config)
	assert.Equal(t, filepath.Join(base, "data"), p.Data)
	assert.Equal(t, filepath.Join(base, "knowledge"), p.Knowledge)
}

func TestEnsureDirs(t *testing.T) {
	base := filepath.Join(t.TempDir(), "parley-home")
	t.Setenv("PARLEY_HOME", base)

	p, err := ResolvePaths()
	require.NoError(t, err)
	require.NoError(t, p.EnsureDirs())

	assert.DirExists(t, p.Base)
	assert.DirExists(t, p.Data)
	assert.DirExists(t, p.Knowledge)
	assert.DirExists(t, p.Logs)
}

// --- Config path tests ---

func TestParseConfigPath(t *testing.T) {
	tests := []struct {
		input   string
		want    []string
		wantErr bool
	}{
		{"gateway.port", []string{"gateway", "port"}, false},
		{"logging", []string{"logging"}, false},
		{"", nil, true},
		{"a..b", nil, true},
		{"a.__proto__", nil, true},
		{"constructor", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseConfigPath(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetSetUnsetValueAtPath(t *testing.T) {
	root := map[string]any{}

	SetValueAtPath(root, []string{"session", "scope"}, "global")
	val, ok := GetValueAtPath(root, []string{"session", "scope"})
	require.True(t, ok)
	assert.Equal(t, "global", val)

	_, ok = GetValueAtPath(root, []string{"session", "missing"})
	assert.False(t, ok)

	assert.True(t, UnsetValueAtPath(root, []string{"session", "scope"}))
	_, ok = GetValueAtPath(root, []string{"session", "scope"})
	assert.False(t, ok)

	assert.False(t, UnsetValueAtPath(root, []string{"session", "scope"}))
}
