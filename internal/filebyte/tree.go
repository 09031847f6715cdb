package filebyte

import (
	"fmt"
	"io"
	"path/filepath"
)

// DefaultTreeDepth bounds tree rendering so pathological directory depth
// truncates gracefully instead of exhausting memory.
const DefaultTreeDepth = 4096

// TreeOptions configures tree rendering.
type TreeOptions struct {
	// MaxDepth is the depth guard (0 = DefaultTreeDepth).
	MaxDepth int
	// Decorate renders an entry's display name; nil for plain names.
	// Color rendering is supplied here by the caller so the renderer
	// stays free of terminal concerns.
	Decorate func(Entry) string
}

// treeFrame is one level of the explicit rendering stack.
type treeFrame struct {
	children []Entry
	idx      int
	prefix   string
}

// RenderTree writes the subtree rooted at root as nested text, depth
// first, directories before files at each level. Interior siblings use
// "├── ", the last child of a level uses "└── ". The traversal uses an
// explicit stack with a depth guard, so arbitrary nesting cannot
// overflow the call stack: levels past the guard are truncated with a
// marker. Entries must come from a recursive walk of root; annotated
// (skipped, broken, cyclic) entries render with their reason.
func RenderTree(w io.Writer, root string, entries []Entry, opts TreeOptions) error {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultTreeDepth
	}

	children := make(map[string][]Entry)
	for _, entry := range entries {
		parent := filepath.Dir(entry.Path)
		children[parent] = append(children[parent], entry)
	}

	for _, siblings := range children {
		SortEntries(siblings, SortName)
	}

	root = filepath.Clean(root)
	stack := []treeFrame{{children: children[root]}}

	for len(stack) > 0 {
		frame := &stack[len(stack)-1]

		if frame.idx >= len(frame.children) {
			stack = stack[:len(stack)-1]

			continue
		}

		entry := frame.children[frame.idx]
		frame.idx++

		last := frame.idx == len(frame.children)

		connector := "├── "
		childIndent := "│   "

		if last {
			connector = "└── "
			childIndent = "    "
		}

		if _, err := fmt.Fprintf(w, "%s%s%s\n", frame.prefix, connector, treeLabel(entry, opts.Decorate)); err != nil {
			return err
		}

		if !entry.IsDir() || entry.Err != nil {
			continue
		}

		childPrefix := frame.prefix + childIndent

		if len(stack) >= maxDepth {
			if _, err := fmt.Fprintf(w, "%s└── … (depth limit reached)\n", childPrefix); err != nil {
				return err
			}

			continue
		}

		if grandchildren := children[entry.Path]; len(grandchildren) > 0 {
			stack = append(stack, treeFrame{children: grandchildren, prefix: childPrefix})
		}
	}

	return nil
}

// treeLabel renders an entry's tree line, appending its annotation when
// the entry could not be fully traversed.
func treeLabel(entry Entry, decorate func(Entry) string) string {
	name := entry.Name
	if decorate != nil {
		name = decorate(entry)
	}

	switch {
	case entry.Err != nil:
		return name + " [unreadable]"
	case entry.Cycle:
		return name + " [cycle]"
	case entry.Broken:
		return name + " [broken link]"
	default:
		return name
	}
}
