package testtools

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config locates the project pieces the tools drive: the repository being
// tested, its test directory and suite entry point, and the compose setup
// that provides the containerized environment.
type Config struct {
	RepoRoot    string `yaml:"repo_root"`
	TestDir     string `yaml:"test_dir"`
	TestScript  string `yaml:"test_script"`
	ComposeFile string `yaml:"compose_file"`
	Service     string `yaml:"service"`
	TestExt     string `yaml:"test_ext"`
}

// DefaultConfig derives the standard project layout from a repository root:
// tests in test/, the suite entry point at test/run-tests.sh, the compose
// file at the root, and the lua-test compose service.
func DefaultConfig(repoRoot string) Config {
	cfg := Config{RepoRoot: repoRoot}
	cfg.applyDefaults()

	return cfg
}

// LoadConfig reads a YAML file and returns a Config. Environment variables
// referenced as ${VAR} or $VAR in the YAML are expanded before parsing.
// Fields left empty fall back to the defaults derived from repo_root.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("testtools: load config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("testtools: parse config: %w", err)
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.RepoRoot == "" {
		c.RepoRoot = "."
	}

	if abs, err := filepath.Abs(c.RepoRoot); err == nil {
		c.RepoRoot = abs
	}

	if c.TestDir == "" {
		c.TestDir = filepath.Join(c.RepoRoot, "test")
	}

	if c.TestScript == "" {
		c.TestScript = filepath.Join(c.TestDir, "run-tests.sh")
	}

	if c.ComposeFile == "" {
		c.ComposeFile = filepath.Join(c.RepoRoot, "docker-compose.yml")
	}

	if c.Service == "" {
		c.Service = "lua-test"
	}

	if c.TestExt == "" {
		c.TestExt = ".lua"
	}
}
