package filebyte

import (
	"time"
)

// Kind classifies a filesystem entry. It is fixed at probe time.
type Kind int

const (
	// KindFile is a regular file.
	KindFile Kind = iota
	// KindDirectory is a directory.
	KindDirectory
	// KindSymlink is a symbolic link.
	KindSymlink
	// KindOther covers devices, sockets, pipes and anything else.
	KindOther
)

// String returns the lowercase name used in exports and terminal output.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// Entry is one filesystem object's normalized metadata record.
// It is immutable once probed; annotation flags are set by the probe or
// the walker, never by consumers.
type Entry struct {
	// Path is the full path of the entry as traversed.
	Path string
	// Name is the base name of the entry.
	Name string
	// Kind classifies the entry.
	Kind Kind
	// Size is the size in bytes. For symlinks it is the target size
	// (0 when broken). For directories it is 0 unless aggregation was
	// requested, in which case it is the recursive sum of descendant
	// file sizes.
	Size int64
	// ModTime is the last modification time.
	ModTime time.Time
	// CreateTime is the creation time, zero when the platform cannot
	// supply it.
	CreateTime time.Time
	// Perm is the permission string in ls -l form, e.g. "drwxr-xr-x".
	Perm string
	// MIME is the guessed media type, empty for non-files.
	MIME string
	// Broken marks a symlink whose target is missing.
	Broken bool
	// Cycle marks a symlink that points back at one of its ancestors.
	Cycle bool
	// Partial marks a directory whose aggregate size is incomplete
	// because part of its subtree could not be read.
	Partial bool
	// Err is set on entries that were recorded but could not be fully
	// probed or read; such entries are reported, never silently dropped.
	Err error
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool { return e.Kind == KindDirectory }

// DuplicateGroup is a set of two or more files sharing identical size and
// identical content digest. A hash match is treated as content equality.
type DuplicateGroup struct {
	// Size is the common size in bytes.
	Size int64
	// Digest is the hex SHA-256 of the common content.
	Digest string
	// Paths lists the member files.
	Paths []string
}

// ExportDocument is an ordered collection of entries ready for
// serialization, plus metadata about how it was produced. The metadata is
// reported on the terminal; the serialized formats carry the entries only.
type ExportDocument struct {
	// Root is the path the collection was gathered from.
	Root string
	// GeneratedAt is when the collection was materialized.
	GeneratedAt time.Time
	// Filter describes the applied filter, empty when none.
	Filter string
	// Entries is the post-filter, post-sort sequence. Export preserves
	// this order exactly.
	Entries []Entry
}
