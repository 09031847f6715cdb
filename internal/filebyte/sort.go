package filebyte

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey selects the secondary ordering criterion. Directories always
// sort before files regardless of key.
type SortKey int

const (
	// SortName orders by name, ascending.
	SortName SortKey = iota
	// SortSize orders by size, largest first.
	SortSize
	// SortDate orders by modification time, newest first.
	SortDate
)

// ParseSortKey parses a sort criterion from its CLI spelling.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(s) {
	case "name":
		return SortName, nil
	case "size":
		return SortSize, nil
	case "date":
		return SortDate, nil
	default:
		return 0, fmt.Errorf("invalid sort criteria %q: must be name, size or date", s)
	}
}

// SortEntries stable-sorts entries in place: directories before files,
// then by key, with ties broken by name (case-sensitive).
func SortEntries(entries []Entry, key SortKey) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}

		switch key {
		case SortSize:
			if a.Size != b.Size {
				return a.Size > b.Size
			}
		case SortDate:
			if !a.ModTime.Equal(b.ModTime) {
				return a.ModTime.After(b.ModTime)
			}
		case SortName:
		}

		return a.Name < b.Name
	})
}
