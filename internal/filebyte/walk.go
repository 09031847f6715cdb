package filebyte

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/sirupsen/logrus"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// WalkOptions configures a traversal.
type WalkOptions struct {
	// Recursive descends into subdirectories; otherwise only the
	// immediate children of the root are listed.
	Recursive bool
	// Filter is applied to every probed entry.
	Filter Filter
	// MaxDepth limits recursive traversal depth (0 = unlimited).
	MaxDepth int
	// MinSize excludes files smaller than this many bytes.
	MinSize int64
	// Aggregate fills directory entries with the recursive sum of their
	// descendant file sizes.
	Aggregate bool
	// DeepMIME detects file media types from content instead of the
	// extension table.
	DeepMIME bool
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
}

// Result is the materialized outcome of a walk. Entry order is not
// guaranteed; sorting is a separate pass.
type Result struct {
	// Root is the cleaned root path.
	Root string
	// Entries are the probed entries that passed the filter.
	Entries []Entry
	// Skipped are entries that could not be read, annotated with the
	// reason. They never abort the walk.
	Skipped []Entry
	// FileCount and DirCount tally the kept entries.
	FileCount int64
	DirCount  int64
	// TotalBytes is the cumulative size of kept files.
	TotalBytes int64
	// Elapsed is the total traversal time.
	Elapsed time.Duration
}

// fileKey identifies a file by device and inode for cycle detection.
type fileKey struct {
	dev, ino uint64
}

// collector aggregates entries from concurrent fastwalk callbacks using a
// mutex.
type collector struct {
	mu          sync.Mutex // Protect concurrent access
	root        string
	entries     []Entry
	skipped     []Entry
	fileCount   int64
	dirCount    int64
	totalBytes  int64
	dirSizes    map[string]int64
	partialDirs map[string]struct{}
}

func newCollector(root string) *collector {
	return &collector{
		root:        root,
		dirSizes:    make(map[string]int64),
		partialDirs: make(map[string]struct{}),
	}
}

// add records a kept entry. Protected by a mutex since fastwalk calls the
// callback from multiple goroutines concurrently.
func (c *collector) add(entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, entry)

	if entry.IsDir() {
		c.dirCount++
	} else {
		c.fileCount++
		c.totalBytes += entry.Size
	}
}

// addSkipped records an unreadable entry and marks its ancestor
// directories as partial for aggregation purposes.
func (c *collector) addSkipped(entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.skipped = append(c.skipped, entry)

	// The path itself may be an unreadable directory; its aggregate is
	// partial just like its ancestors'.
	c.partialDirs[entry.Path] = struct{}{}

	for _, dir := range ancestorsWithin(entry.Path, c.root) {
		c.partialDirs[dir] = struct{}{}
	}
}

// addFileSize accumulates size into every ancestor directory of path up to
// and including the root, giving each directory its full descendant sum.
func (c *collector) addFileSize(path string, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, dir := range ancestorsWithin(path, c.root) {
		c.dirSizes[dir] += size
	}
}

// counters returns the current entry and byte tallies for progress
// reporting.
func (c *collector) counters() (entries, bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fileCount + c.dirCount, c.totalBytes
}

// finalize produces the Result, filling in aggregate directory sizes and
// partial flags when requested.
func (c *collector) finalize(aggregate bool) *Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if aggregate {
		for i := range c.entries {
			if !c.entries[i].IsDir() {
				continue
			}

			c.entries[i].Size = c.dirSizes[c.entries[i].Path]
			if _, partial := c.partialDirs[c.entries[i].Path]; partial {
				c.entries[i].Partial = true
			}
		}
	}

	return &Result{
		Root:       c.root,
		Entries:    c.entries,
		Skipped:    c.skipped,
		FileCount:  c.fileCount,
		DirCount:   c.dirCount,
		TotalBytes: c.totalBytes,
	}
}

// ancestorsWithin returns the directories from path's parent up to and
// including root. Empty when path is not under root.
func ancestorsWithin(path, root string) []string {
	var dirs []string

	dir := filepath.Dir(path)
	for strings.HasPrefix(dir, root) {
		dirs = append(dirs, dir)

		if dir == root {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return dirs
}

// pathDepth returns the depth of path relative to root.
func pathDepth(path, root string) int {
	rel := strings.TrimPrefix(path, root)

	rel = strings.TrimPrefix(rel, string(filepath.Separator))
	if rel == "" {
		return 0
	}

	return strings.Count(rel, string(filepath.Separator)) + 1
}

// startProgressReporter invokes hook(entries, bytes) on each tick until
// ctx is done.
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				entries, bytes := c.counters()
				hook(entries, bytes)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Walk traverses the directory at root and returns the materialized
// collection of entries. Per-entry errors are recorded on Result.Skipped
// and never abort the walk; only a missing or non-directory root is
// fatal. The walk can be cancelled via ctx. Progress updates are sent to
// progressHook if provided.
func Walk(ctx context.Context, root string, opts WalkOptions, progressHook func(int64, int64)) (*Result, error) {
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", root, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", root)
	}

	start := time.Now()
	c := newCollector(root)

	// Child context so the progress reporter is always cleaned up.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, c, progressHook, opts.ProgressInterval)

	if opts.Recursive {
		err = walkRecursive(ctx, root, opts, c)
	} else {
		err = walkShallow(root, opts, c)
	}

	if err != nil {
		return nil, err
	}

	result := c.finalize(opts.Aggregate)
	result.Elapsed = time.Since(start)

	return result, nil
}

// walkShallow lists the immediate children of root.
func walkShallow(root string, opts WalkOptions, c *collector) error {
	children, err := os.ReadDir(root)
	if err != nil {
		return &AccessError{Path: root, Err: err}
	}

	for _, child := range children {
		path := filepath.Join(root, child.Name())

		info, err := child.Info()
		if err != nil {
			logrus.WithField("path", path).WithError(err).Debug("skipping unreadable entry")
			c.addSkipped(Entry{Path: path, Name: child.Name(), Err: &AccessError{Path: path, Err: err}})

			continue
		}

		entry := probeChild(path, info, opts)

		if entry.Kind == KindFile {
			c.addFileSize(path, entry.Size)

			if entry.Size < opts.MinSize {
				continue
			}
		}

		if !opts.Filter.Match(entry) {
			continue
		}

		c.add(entry)
	}

	return nil
}

// walkRecursive traverses the subtree under root with fastwalk's parallel
// walker. Symlinks are not followed, so traversal itself cannot loop;
// symlinks that point back at an ancestor are flagged as cycles.
func walkRecursive(ctx context.Context, root string, opts WalkOptions, c *collector) error {
	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	return fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logrus.WithField("path", path).WithError(err).Debug("skipping unreadable path")
			c.addSkipped(Entry{Path: path, Name: filepath.Base(path), Err: &AccessError{Path: path, Err: err}})

			return nil
		}

		// Check cancellation periodically.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path == root {
			return nil
		}

		if opts.MaxDepth > 0 && pathDepth(path, root) > opts.MaxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if opts.Filter.ExcludesPath(path) {
			logrus.WithField("path", path).Debug("excluded by pattern")

			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		info, err := d.Info()
		if err != nil {
			c.addSkipped(Entry{Path: path, Name: filepath.Base(path), Err: &AccessError{Path: path, Err: err}})

			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		entry := probeChild(path, info, opts)

		if entry.Kind == KindFile {
			// Aggregation counts every traversed file, including ones
			// the include filter or size floor later drops.
			c.addFileSize(path, entry.Size)

			if entry.Size < opts.MinSize {
				return nil
			}
		}

		if !opts.Filter.Match(entry) {
			return nil
		}

		c.add(entry)

		return nil
	})
}

// probeChild builds the entry for a traversed child, applying the
// optional deep MIME detection and symlink cycle annotation.
func probeChild(path string, info fs.FileInfo, opts WalkOptions) Entry {
	entry := entryFromInfo(path, info)

	switch entry.Kind {
	case KindFile:
		if opts.DeepMIME {
			if mtype, err := SniffMIME(path); err == nil {
				entry.MIME = mtype
			} else {
				logrus.WithField("path", path).WithError(err).Debug("mime detection failed")
			}
		}
	case KindSymlink:
		if !entry.Broken && symlinkCycle(path) {
			entry.Cycle = true
			logrus.WithField("path", path).Warn("symlink points back at an ancestor")
		}
	}

	return entry
}

// symlinkCycle reports whether the symlink at path resolves to one of its
// own ancestor directories, which would loop if followed.
func symlinkCycle(path string) bool {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}

	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return false
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return false
	}

	target, err = filepath.Abs(target)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(target, dir)
	if err != nil {
		return false
	}

	if rel == "." {
		return true
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// AggregateSize sums the sizes of all regular files under root. It uses
// an explicit worklist instead of call recursion and follows symlinked
// directories, detecting cycles with a (device, inode) visited set. The
// second return is true when part of the subtree could not be read and
// the sum is partial.
func AggregateSize(root string) (total int64, partial bool) {
	visited := make(map[fileKey]struct{})
	visitedPaths := make(map[string]struct{})
	work := []string{root}

	for len(work) > 0 {
		dir := work[len(work)-1]
		work = work[:len(work)-1]

		info, err := os.Stat(dir)
		if err != nil {
			partial = true

			continue
		}

		if key, ok := fileID(info); ok {
			if _, seen := visited[key]; seen {
				logrus.WithField("path", dir).Warn("cycle detected, skipping")

				continue
			}

			visited[key] = struct{}{}
		} else {
			resolved, err := filepath.EvalSymlinks(dir)
			if err != nil {
				partial = true

				continue
			}

			if _, seen := visitedPaths[resolved]; seen {
				continue
			}

			visitedPaths[resolved] = struct{}{}
		}

		children, err := os.ReadDir(dir)
		if err != nil {
			partial = true

			continue
		}

		for _, child := range children {
			path := filepath.Join(dir, child.Name())

			switch {
			case child.IsDir():
				work = append(work, path)
			case child.Type()&fs.ModeSymlink != 0:
				target, err := os.Stat(path)
				if err != nil {
					continue // Broken link
				}

				if target.IsDir() {
					work = append(work, path)
				} else {
					total += target.Size()
				}
			case child.Type().IsRegular():
				info, err := child.Info()
				if err != nil {
					partial = true

					continue
				}

				total += info.Size()
			}
		}
	}

	return total, partial
}
