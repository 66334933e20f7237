package hashing

import (
	"crypto/sha1"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Algorithm specifies a content-hashing algorithm. The zero value,
// AlgorithmDefault, is not itself usable and must be resolved to a concrete
// algorithm before being passed to Factory.
type Algorithm uint8

const (
	// AlgorithmDefault represents an unspecified algorithm.
	AlgorithmDefault Algorithm = iota
	// AlgorithmSHA1 specifies SHA-1, which produces a 20-byte digest.
	AlgorithmSHA1
	// AlgorithmBLAKE2B specifies BLAKE2b at its default 32-byte digest width.
	AlgorithmBLAKE2B
)

// IsDefault indicates whether or not the algorithm is AlgorithmDefault.
func (a Algorithm) IsDefault() bool {
	return a == AlgorithmDefault
}

// Supported indicates whether or not a particular hashing algorithm is a
// valid, non-default value.
func (a Algorithm) Supported() bool {
	switch a {
	case AlgorithmSHA1:
		return true
	case AlgorithmBLAKE2B:
		return true
	default:
		return false
	}
}

// Description returns a human-readable description of a hashing algorithm.
func (a Algorithm) Description() string {
	switch a {
	case AlgorithmDefault:
		return "Default"
	case AlgorithmSHA1:
		return "SHA-1"
	case AlgorithmBLAKE2B:
		return "BLAKE2b"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.MarshalText.
func (a Algorithm) MarshalText() ([]byte, error) {
	var result string
	switch a {
	case AlgorithmDefault:
	case AlgorithmSHA1:
		result = "sha1"
	case AlgorithmBLAKE2B:
		result = "blake2b"
	default:
		result = "unknown"
	}
	return []byte(result), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText.
func (a *Algorithm) UnmarshalText(textBytes []byte) error {
	switch text := string(textBytes); text {
	case "sha1":
		*a = AlgorithmSHA1
	case "blake2b":
		*a = AlgorithmBLAKE2B
	default:
		return fmt.Errorf("unknown hashing algorithm specification: %s", text)
	}
	return nil
}

// Factory returns a constructor for the hashing algorithm. digestSize
// specifies the desired BLAKE2b digest width in bytes and is ignored for
// algorithms (such as SHA-1) with a fixed output size. A non-positive or
// oversized BLAKE2b digestSize is replaced by the standard 32-byte width.
// Factory panics if invoked on a default or unsupported Algorithm value.
func (a Algorithm) Factory(digestSize int) func() hash.Hash {
	switch a {
	case AlgorithmSHA1:
		return sha1.New
	case AlgorithmBLAKE2B:
		if digestSize <= 0 || digestSize > blake2b.Size {
			digestSize = blake2b.Size256
		}
		return func() hash.Hash {
			h, err := blake2b.New(digestSize, nil)
			if err != nil {
				panic(err)
			}
			return h
		}
	default:
		panic("default or unknown hashing algorithm")
	}
}
