//go:build darwin

package filebyte

import (
	"io/fs"
	"syscall"
	"time"
)

// createTime extracts the birth time recorded by the filesystem.
func createTime(info fs.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}
	}

	return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
}
