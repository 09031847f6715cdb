package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/idelchi/filebyte/internal/filebyte"
)

func run(opts *options) error {
	logrus.SetOutput(os.Stderr)

	if opts.debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if opts.noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	if opts.mimeMode != "ext" && opts.mimeMode != "deep" {
		return fmt.Errorf("invalid mime mode %q: must be ext or deep", opts.mimeMode)
	}

	unit, err := filebyte.ParseSizeUnit(opts.sizeUnit)
	if err != nil {
		return err
	}

	switch {
	case opts.diskArg != "":
		return runDisk(opts, unit)
	case opts.file != "":
		return runFile(opts.file, unit)
	case opts.directory != "":
		return runDirectory(opts.directory, unit)
	default:
		return runScan(opts, unit, opts.path)
	}
}

// runScan walks root and dispatches to the requested view: duplicate
// groups, tree, properties analysis, or a plain listing.
func runScan(opts *options, unit filebyte.SizeUnit, root string) error {
	filter, err := filebyte.NewFilter(opts.search, opts.excluding)
	if err != nil {
		return err
	}

	sortKey, err := filebyte.ParseSortKey(opts.sortBy)
	if err != nil {
		return err
	}

	// Tree, properties and duplicate views need the whole subtree.
	recursive := opts.recursive || opts.tree || opts.properties || opts.duplicates

	walkOpts := filebyte.WalkOptions{
		Recursive: recursive,
		Filter:    filter,
		MaxDepth:  opts.depth,
		MinSize:   opts.minSize,
		Aggregate: opts.showSize && recursive,
		DeepMIME:  opts.mimeMode == "deep",
	}

	result, err := walkWithProgress(opts, root, walkOpts)
	if err != nil {
		return err
	}

	out := os.Stdout

	switch {
	case opts.duplicates:
		groups, stats := filebyte.FindDuplicates(result.Entries)
		printDuplicates(out, groups, stats, unit)
	case opts.tree:
		fmt.Fprintln(out, "\nDirectory Tree:")

		entries := append(result.Entries, result.Skipped...)
		if err := filebyte.RenderTree(out, root, entries, filebyte.TreeOptions{Decorate: treeDecorator()}); err != nil {
			return err
		}
	case opts.properties:
		filebyte.SortEntries(result.Entries, sortKey)
		printSummary(out, result, unit)
		printTypeStats(out, result.Entries)
		printAnalysis(out, result.Entries, unit)
	default:
		filebyte.SortEntries(result.Entries, sortKey)

		if len(result.Entries) == 0 {
			if opts.search != "" {
				fmt.Fprintf(out, "No files found matching pattern: %s\n", opts.search)
			} else {
				fmt.Fprintln(out, "No files found.")
			}
		} else {
			printEntries(out, result.Entries, unit, opts.showSize)
		}
	}

	printSkipped(out, result.Skipped)

	if opts.export != "" {
		filebyte.SortEntries(result.Entries, sortKey)

		if err := exportResult(opts, filter, result); err != nil {
			return err
		}

		fmt.Fprintf(out, "Results exported to %s\n", opts.export)
	}

	return nil
}

// walkWithProgress runs the walk with an in-place progress line on stderr
// when it is a terminal.
func walkWithProgress(opts *options, root string, walkOpts filebyte.WalkOptions) (*filebyte.Result, error) {
	enableProgress := !opts.debug && isatty.IsTerminal(os.Stderr.Fd())

	var progressHook func(entries, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progressHook = func(entries, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d entries, %s",
				entries, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	result, err := filebyte.Walk(context.Background(), root, walkOpts, progressHook)

	// Clear the status line.
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	return result, err
}

// exportResult serializes the sorted entries to the destination chosen by
// --export, inferring the format from the extension unless overridden.
func exportResult(opts *options, filter filebyte.Filter, result *filebyte.Result) error {
	format, err := exportFormat(opts)
	if err != nil {
		return err
	}

	doc := filebyte.ExportDocument{
		Root:        result.Root,
		GeneratedAt: time.Now(),
		Filter:      filter.String(),
		Entries:     result.Entries,
	}

	return filebyte.Export(doc, format, opts.export)
}

func exportFormat(opts *options) (filebyte.ExportFormat, error) {
	if opts.exportFormat != "" {
		return filebyte.ParseExportFormat(opts.exportFormat)
	}

	return filebyte.DetectExportFormat(opts.export)
}

// runDisk lists all mounts or shows one mount's details, optionally
// followed by a scan of its mount point.
func runDisk(opts *options, unit filebyte.SizeUnit) error {
	mounts, err := filebyte.SystemMounts{}.Mounts()
	if err != nil {
		return err
	}

	if strings.EqualFold(opts.diskArg, "list") {
		printDisks(os.Stdout, mounts, unit)

		return nil
	}

	mount, ok := filebyte.FindMount(mounts, opts.diskArg)
	if !ok {
		return fmt.Errorf("disk %q not found; use 'filebyte --disk list' to see available disks", opts.diskArg)
	}

	printDiskInfo(os.Stdout, mount, unit)

	if opts.tree || opts.properties || opts.duplicates {
		return runScan(opts, unit, mount.MountPoint)
	}

	return nil
}

// runFile shows the properties of a single file.
func runFile(path string, unit filebyte.SizeUnit) error {
	entry, err := filebyte.Probe(path)
	if err != nil {
		return err
	}

	printEntryDetails(os.Stdout, entry, unit)

	return nil
}

// runDirectory analyzes a directory as a whole: its own metadata plus the
// aggregate size of everything underneath it.
func runDirectory(path string, unit filebyte.SizeUnit) error {
	entry, err := filebyte.Probe(path)
	if err != nil {
		return err
	}

	if !entry.IsDir() {
		return fmt.Errorf("path %q is not a directory", path)
	}

	total, partial := filebyte.AggregateSize(path)
	entry.Size = total
	entry.Partial = partial

	printEntryDetails(os.Stdout, entry, unit)

	return nil
}
