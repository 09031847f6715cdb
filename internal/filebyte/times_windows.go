//go:build windows

package filebyte

import (
	"io/fs"
	"syscall"
	"time"
)

// createTime extracts the creation time from the Win32 file data.
func createTime(info fs.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}
	}

	return time.Unix(0, st.CreationTime.Nanoseconds())
}
