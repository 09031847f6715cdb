package filebyte

import "fmt"

// AccessError reports an entry or subtree that could not be read during
// traversal. It is recoverable: the entry is recorded as skipped and the
// walk continues.
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string { return fmt.Sprintf("access %s: %v", e.Path, e.Err) }

func (e *AccessError) Unwrap() error { return e.Err }

// ReadError reports a file that could not be read while hashing. The file
// is excluded from duplicate analysis; the operation continues.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string { return fmt.Sprintf("read %s: %v", e.Path, e.Err) }

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports an export destination that could not be written.
// It is fatal for the export step only.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }

func (e *WriteError) Unwrap() error { return e.Err }

// InvalidFilterError reports a malformed filter pattern. It is fatal and
// raised before any traversal begins.
type InvalidFilterError struct {
	Pattern string
	Err     error
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter pattern %q: %v", e.Pattern, e.Err)
}

func (e *InvalidFilterError) Unwrap() error { return e.Err }
