//go:build unix

package filebyte

import (
	"io/fs"
	"syscall"
)

// fileID returns the (device, inode) pair identifying the file behind
// info. The second return is false when the platform data is unavailable.
func fileID(info fs.FileInfo) (fileKey, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	//nolint:unconvert // Dev is int32 on some platforms
	return fileKey{dev: uint64(st.Dev), ino: uint64(st.Ino)}, true
}
