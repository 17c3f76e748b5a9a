package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "langium.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0, cfg.MaxProblems)
	assert.Equal(t, "hint", cfg.MinSeverity)
	assert.Equal(t, "auto", cfg.Color)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "maxProblems: 25\nminSeverity: warning\ncolor: never\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.MaxProblems)
	assert.Equal(t, "warning", cfg.MinSeverity)
	assert.Equal(t, "never", cfg.Color)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "minSeverity: error\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.MinSeverity)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, 0, cfg.MaxProblems)
}

func TestLoadRejectsUnknownSeverity(t *testing.T) {
	path := writeConfig(t, "minSeverity: fatal\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadRejectsNegativeLimit(t *testing.T) {
	path := writeConfig(t, "maxProblems: -1\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "minSeverity: [unterminated\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
