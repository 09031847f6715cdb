package filebyte

import (
	"fmt"
	"path/filepath"
	"regexp"
)

// Filter is an optional pair of regular expressions. An entry is kept iff
// the include pattern (when set) matches its name and the exclude pattern
// (when set) does not match its slash path. Applying a filter twice yields
// the same result as applying it once.
type Filter struct {
	include *regexp.Regexp
	exclude *regexp.Regexp
}

// NewFilter compiles the include and exclude patterns. Either may be
// empty. A malformed pattern yields *InvalidFilterError before any
// traversal begins.
func NewFilter(include, exclude string) (Filter, error) {
	var filter Filter

	if include != "" {
		re, err := regexp.Compile(include)
		if err != nil {
			return Filter{}, &InvalidFilterError{Pattern: include, Err: err}
		}

		filter.include = re
	}

	if exclude != "" {
		re, err := regexp.Compile(exclude)
		if err != nil {
			return Filter{}, &InvalidFilterError{Pattern: exclude, Err: err}
		}

		filter.exclude = re
	}

	return filter, nil
}

// Empty reports whether the filter has no patterns at all.
func (f Filter) Empty() bool { return f.include == nil && f.exclude == nil }

// Match reports whether the entry passes the filter.
func (f Filter) Match(e Entry) bool {
	if f.exclude != nil && f.exclude.MatchString(filepath.ToSlash(e.Path)) {
		return false
	}

	if f.include != nil && !f.include.MatchString(e.Name) {
		return false
	}

	return true
}

// ExcludesPath reports whether path matches the exclude pattern. The
// walker uses this to prune whole subtrees before probing them.
func (f Filter) ExcludesPath(path string) bool {
	return f.exclude != nil && f.exclude.MatchString(filepath.ToSlash(path))
}

// String describes the filter for report metadata.
func (f Filter) String() string {
	switch {
	case f.include != nil && f.exclude != nil:
		return fmt.Sprintf("include=%s exclude=%s", f.include, f.exclude)
	case f.include != nil:
		return fmt.Sprintf("include=%s", f.include)
	case f.exclude != nil:
		return fmt.Sprintf("exclude=%s", f.exclude)
	default:
		return ""
	}
}
