package testtools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig(root)

	assert.Equal(t, root, cfg.RepoRoot)
	assert.Equal(t, filepath.Join(root, "test"), cfg.TestDir)
	assert.Equal(t, filepath.Join(root, "test", "run-tests.sh"), cfg.TestScript)
	assert.Equal(t, filepath.Join(root, "docker-compose.yml"), cfg.ComposeFile)
	assert.Equal(t, "lua-test", cfg.Service)
	assert.Equal(t, ".lua", cfg.TestExt)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ucitest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"repo_root: "+dir+"\nservice: openwrt-test\ntest_ext: .tl\n",
	), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.RepoRoot)
	assert.Equal(t, "openwrt-test", cfg.Service)
	assert.Equal(t, ".tl", cfg.TestExt)
	// Unset fields still derive from repo_root.
	assert.Equal(t, filepath.Join(dir, "test"), cfg.TestDir)
	assert.Equal(t, filepath.Join(dir, "docker-compose.yml"), cfg.ComposeFile)
}

func TestLoadConfig_ExpandsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UCITEST_SERVICE", "env-test")

	path := filepath.Join(dir, "ucitest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service: ${UCITEST_SERVICE}\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-test", cfg.Service)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
