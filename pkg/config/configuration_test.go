package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/synctool/synctool/pkg/hashing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Hash != hashing.AlgorithmSHA1 {
		t.Errorf("default hash = %v, want %v", c.Hash, hashing.AlgorithmSHA1)
	}
	if err := c.EnsureValid(); err != nil {
		t.Errorf("default configuration should be valid: %v", err)
	}
}

func TestLoadBasic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "hash: blake2b\nhashDigestSize: 16\nignore:\n  paths:\n    - \"*.tmp\"\n    - \"!important.tmp\"\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	config, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Hash != hashing.AlgorithmBLAKE2B {
		t.Errorf("hash = %v, want %v", config.Hash, hashing.AlgorithmBLAKE2B)
	}
	if config.HashDigestSize != 16 {
		t.Errorf("hashDigestSize = %d, want 16", config.HashDigestSize)
	}
	if len(config.Ignore.Paths) != 2 || config.Ignore.Paths[0] != "*.tmp" {
		t.Errorf("unexpected ignore paths: %v", config.Ignore.Paths)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("bogusField: true\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error loading configuration with unknown field")
	}
}

func TestLoadRejectsUnsupportedHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("hash: md5\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error loading configuration with unsupported hash")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error loading missing configuration file")
	}
}
