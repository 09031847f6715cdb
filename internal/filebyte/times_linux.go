//go:build linux

package filebyte

import (
	"io/fs"
	"time"
)

// createTime returns the zero time: Linux does not expose a birth time
// through the portable Stat_t.
func createTime(fs.FileInfo) time.Time { return time.Time{} }
