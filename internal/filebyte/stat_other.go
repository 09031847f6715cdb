//go:build !unix

package filebyte

import "io/fs"

// fileID is unavailable on non-unix platforms; callers fall back to a
// resolved-path visited set.
func fileID(fs.FileInfo) (fileKey, bool) { return fileKey{}, false }
