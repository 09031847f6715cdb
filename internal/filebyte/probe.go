package filebyte

import (
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Probe stats path and returns its normalized metadata record. The call is
// read-only; nothing on the filesystem is touched. Symlinks are reported
// as KindSymlink with the target's size, or size 0 and Broken set when the
// target is missing. A vanished path yields an error satisfying
// errors.Is(err, fs.ErrNotExist); an unreadable one yields *AccessError.
func Probe(path string) (Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, fmt.Errorf("probing %q: %w", path, err)
		}

		return Entry{}, &AccessError{Path: path, Err: err}
	}

	return entryFromInfo(path, info), nil
}

// entryFromInfo builds an Entry from an lstat result. Shared by Probe and
// the walker so both produce identical records.
func entryFromInfo(path string, info fs.FileInfo) Entry {
	entry := Entry{
		Path:       path,
		Name:       filepath.Base(path),
		Size:       info.Size(),
		ModTime:    info.ModTime(),
		CreateTime: createTime(info),
		Perm:       permString(info.Mode()),
	}

	mode := info.Mode()

	switch {
	case mode.IsDir():
		entry.Kind = KindDirectory
		// Directory size is 0 until aggregation fills it in; the inode
		// size the OS reports is meaningless to users.
		entry.Size = 0
	case mode&fs.ModeSymlink != 0:
		entry.Kind = KindSymlink

		target, err := os.Stat(path)
		if err != nil {
			entry.Size = 0
			entry.Broken = true
		} else {
			entry.Size = target.Size()
		}
	case mode.IsRegular():
		entry.Kind = KindFile
		entry.MIME = guessMIME(entry.Name)
	default:
		entry.Kind = KindOther
	}

	return entry
}

// permString renders mode in ls -l form: a type character followed by the
// nine rwx permission characters.
func permString(mode fs.FileMode) string {
	var b [10]byte

	switch {
	case mode.IsDir():
		b[0] = 'd'
	case mode&fs.ModeSymlink != 0:
		b[0] = 'l'
	default:
		b[0] = '-'
	}

	const rwx = "rwxrwxrwx"

	perm := mode.Perm()
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			b[i+1] = rwx[i]
		} else {
			b[i+1] = '-'
		}
	}

	return string(b[:])
}

// extraMIMETypes supplements the platform mime tables with extensions
// common in source trees.
//
//nolint:gochecknoglobals // Static lookup table
var extraMIMETypes = map[string]string{
	".c":    "text/x-c",
	".go":   "text/x-go",
	".log":  "text/plain",
	".md":   "text/markdown",
	".py":   "text/x-python",
	".rs":   "text/x-rust",
	".sh":   "application/x-sh",
	".toml": "application/toml",
	".txt":  "text/plain",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
}

// guessMIME returns a media type for name based on its extension. It is a
// pure table lookup; no file content is read.
func guessMIME(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}

	if typ, ok := extraMIMETypes[ext]; ok {
		return typ
	}

	typ := mime.TypeByExtension(ext)
	// Strip parameters such as "; charset=utf-8".
	if i := strings.IndexByte(typ, ';'); i >= 0 {
		typ = typ[:i]
	}

	return strings.TrimSpace(typ)
}

// SniffMIME detects the media type of the file at path from its leading
// bytes. Unlike guessMIME it reads content, so it is only applied when
// deep detection was requested.
func SniffMIME(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}

	return mtype.String(), nil
}
