package sync

import (
	"golang.org/x/sys/unix"

	"github.com/pkg/errors"
)

// hfsFilesystemTypeNamePrefix is the prefix shared by the fstypename values
// reported by statfs for Unicode-decomposing filesystems on Darwin. HFS+ and its
// descendants decompose filenames into NFD on disk; APFS does not.
const hfsFilesystemTypeNamePrefix = "hfs"

// filesystemDecomposesUnicode reports whether the filesystem containing path
// is known to decompose Unicode directory entry names. Only HFS
// (and its variants) are known to do so among the formats Darwin's statfs
// can report; APFS and everything else does not.
func filesystemDecomposesUnicode(path string) (bool, error) {
	var stat unix.Statfs_t
	for {
		err := unix.Statfs(path, &stat)
		if err == nil {
			break
		}
		if err == unix.EINTR {
			continue
		}
		return false, errors.Wrap(ErrFilesystemProbe, err.Error())
	}

	name := fstypeName(&stat)
	return len(name) >= 3 && name[:3] == hfsFilesystemTypeNamePrefix, nil
}

// fstypeName extracts the NUL-terminated filesystem type name from statfs
// metadata as a Go string.
func fstypeName(stat *unix.Statfs_t) string {
	n := 0
	for n < len(stat.Fstypename) && stat.Fstypename[n] != 0 {
		n++
	}
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		b[i] = byte(stat.Fstypename[i])
	}
	return string(b)
}
