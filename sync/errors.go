package sync

import "errors"

// The error kinds observable from the core, as described in the external
// interface contract. Callers should use errors.Is against these sentinels
// (the underlying errors are usually wrapped with additional path context via
// github.com/pkg/errors).
var (
	// ErrIgnoreSyntax indicates that a supplied ignore pattern was malformed.
	ErrIgnoreSyntax = errors.New("invalid ignore pattern syntax")

	// ErrIO indicates that an operating system I/O call failed during
	// scanning.
	ErrIO = errors.New("I/O error")

	// ErrEncoding indicates that a directory entry name was not valid UTF-8.
	ErrEncoding = errors.New("invalid name encoding")

	// ErrDigestMismatch indicates that the number of bytes hashed while
	// scanning a file did not equal the file size reported by stat (a "short
	// copy when hashing").
	ErrDigestMismatch = errors.New("short copy when hashing")

	// ErrFilesystemProbe indicates that the platform shim could not determine
	// the type of the filesystem underlying a path.
	ErrFilesystemProbe = errors.New("unable to probe filesystem type")

	// ErrUnsupportedEntry indicates that the scan root was neither a regular
	// file nor a directory.
	ErrUnsupportedEntry = errors.New("unsupported entry type at scan root")
)
