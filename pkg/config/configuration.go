package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/synctool/synctool/pkg/hashing"
)

// Configuration represents a human-readable, YAML-based synchronization
// configuration: the set of knobs a caller supplies to control a Scan/Diff/
// Reconcile cycle over a pair of roots.
type Configuration struct {
	// Hash specifies the content-hashing algorithm to use when scanning.
	Hash hashing.Algorithm `yaml:"hash"`
	// HashDigestSize specifies the BLAKE2b digest width in bytes. It's
	// ignored for algorithms with a fixed output size, such as SHA-1.
	HashDigestSize int `yaml:"hashDigestSize"`
	// Ignore contains parameters related to ignore specifications.
	Ignore struct {
		// Paths specifies the ordered list of ignore patterns.
		Paths []string `yaml:"paths"`
	} `yaml:"ignore"`
	// CachePath, if non-empty, overrides the default location at which the
	// scan cache for each root is persisted between invocations.
	CachePath string `yaml:"cachePath"`
}

// Default returns a Configuration with the recommended defaults: SHA-1
// hashing and no ignore patterns.
func Default() *Configuration {
	return &Configuration{
		Hash: hashing.AlgorithmSHA1,
	}
}

// EnsureValid validates the configuration, returning an error describing the
// first problem encountered.
func (c *Configuration) EnsureValid() error {
	if !c.Hash.IsDefault() && !c.Hash.Supported() {
		return fmt.Errorf("unsupported hash algorithm: %s", c.Hash.Description())
	}
	if c.HashDigestSize < 0 {
		return fmt.Errorf("negative hash digest size: %d", c.HashDigestSize)
	}
	return nil
}

// Load reads and parses a YAML configuration file at path. Unknown fields in
// the document are treated as an error, since a typo'd key silently doing
// nothing is worse than a load failure.
func Load(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration file: %w", err)
	}

	config := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("unable to parse configuration file: %w", err)
	}

	if err := config.EnsureValid(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}
