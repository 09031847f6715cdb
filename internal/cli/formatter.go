package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/idelchi/filebyte/internal/filebyte"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2

	separatorWidth = 50
)

//nolint:gochecknoglobals // Terminal styles
var (
	dirStyle   = color.New(color.FgBlue, color.Bold)
	tagStyle   = color.New(color.FgBlue)
	sizeStyle  = color.New(color.FgGreen)
	countStyle = color.New(color.FgCyan)
	dateStyle  = color.New(color.FgYellow)
	permStyle  = color.New(color.FgMagenta)
	labelStyle = color.New(color.FgMagenta)
)

func separator(n int) string { return strings.Repeat("─", n) }

// printEntries renders the listing view: directories as "name [DIR]",
// files with either their size or their permissions and modification
// date.
func printEntries(w io.Writer, entries []filebyte.Entry, unit filebyte.SizeUnit, showSize bool) {
	for _, entry := range entries {
		switch {
		case entry.IsDir() && showSize:
			size := filebyte.FormatSize(entry.Size, unit)
			if entry.Partial {
				size += "+"
			}

			fmt.Fprintf(w, "%s %s %s\n", dirStyle.Sprint(entry.Name), countStyle.Sprint(size), tagStyle.Sprint("[DIR]"))
		case entry.IsDir():
			fmt.Fprintf(w, "%s %s\n", dirStyle.Sprint(entry.Name), tagStyle.Sprint("[DIR]"))
		case showSize:
			fmt.Fprintf(w, "%s %s\n", entryLabel(entry), sizeStyle.Sprint(filebyte.FormatSize(entry.Size, unit)))
		default:
			fmt.Fprintf(w, "%s %s %s\n",
				entryLabel(entry), permStyle.Sprint(entry.Perm), dateStyle.Sprint(modDate(entry)))
		}
	}
}

// entryLabel annotates symlink problems inline.
func entryLabel(entry filebyte.Entry) string {
	switch {
	case entry.Cycle:
		return entry.Name + " [cycle]"
	case entry.Broken:
		return entry.Name + " [broken link]"
	default:
		return entry.Name
	}
}

func modDate(entry filebyte.Entry) string {
	if entry.ModTime.IsZero() {
		return "unknown"
	}

	return entry.ModTime.UTC().Format("2006-01-02")
}

// printSkipped surfaces every entry the walk could not read, with the
// reason, so nothing is silently dropped.
func printSkipped(w io.Writer, skipped []filebyte.Entry) {
	if len(skipped) == 0 {
		return
	}

	fmt.Fprintf(w, "\nSkipped %d unreadable entries:\n", len(skipped))

	for _, entry := range skipped {
		fmt.Fprintf(w, "  %s (%v)\n", entry.Path, entry.Err)
	}
}

// printDuplicates renders the duplicate groups, largest first.
func printDuplicates(w io.Writer, groups []filebyte.DuplicateGroup, stats filebyte.DedupStats, unit filebyte.SizeUnit) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No duplicate files found.")
	} else {
		fmt.Fprintln(w, "Duplicate files found:")
		fmt.Fprintln(w, separator(separatorWidth))

		for _, group := range groups {
			fmt.Fprintf(w, "Size: %s (%s)\n",
				countStyle.Sprint(filebyte.FormatSize(group.Size, unit)),
				dateStyle.Sprintf("%d", len(group.Paths)))

			for _, path := range group.Paths {
				fmt.Fprintf(w, "  %s\n", path)
			}

			fmt.Fprintln(w)
		}
	}

	if len(stats.Failed) > 0 {
		fmt.Fprintf(w, "%d files could not be read and were excluded:\n", len(stats.Failed))

		for _, entry := range stats.Failed {
			fmt.Fprintf(w, "  %s (%v)\n", entry.Path, entry.Err)
		}
	}
}

// printSummary renders the directory header used by the properties view.
func printSummary(w io.Writer, result *filebyte.Result, unit filebyte.SizeUnit) {
	total := result.FileCount + result.DirCount

	fmt.Fprintf(w, "\nDirectory: %s\n", result.Root)
	fmt.Fprintf(w, "Total Items: %s (%s)\n",
		countStyle.Sprintf("%d", total),
		dateStyle.Sprintf("%d files, %d dirs", result.FileCount, result.DirCount))
	fmt.Fprintf(w, "Total Size: %s\n", sizeStyle.Sprint(filebyte.FormatSize(result.TotalBytes, unit)))
}

// printTypeStats renders media-type counts, most common first.
func printTypeStats(w io.Writer, entries []filebyte.Entry) {
	stats := filebyte.TypeStats(entries)

	files := 0
	for _, stat := range stats {
		files += stat.Count
	}

	if files == 0 {
		return
	}

	fmt.Fprintln(w, "\nFile Type Statistics:")
	fmt.Fprintln(w, separator(40))

	for _, stat := range stats {
		if stat.MIME == "unknown" {
			continue
		}

		pct := 100 * float64(stat.Count) / float64(files)
		fmt.Fprintf(w, "%s: %s files (%.1f%%)\n",
			labelStyle.Sprint(stat.MIME), countStyle.Sprintf("%d", stat.Count), pct)
	}

	fmt.Fprintf(w, "\nTotal Files: %s\n", countStyle.Sprintf("%d", files))
}

// printAnalysis renders the detailed analysis block: size and age
// distributions, extremes and a permissions summary.
func printAnalysis(w io.Writer, entries []filebyte.Entry, unit filebyte.SizeUnit) {
	total := len(entries)
	if total == 0 {
		return
	}

	fmt.Fprintln(w, "\nDetailed Analysis:")
	fmt.Fprintln(w, separator(separatorWidth))

	fmt.Fprintln(w, "\nSize Distribution:")

	for _, bucket := range filebyte.SizeDistribution(entries) {
		pct := 100 * float64(bucket.Count) / float64(total)
		fmt.Fprintf(w, "  %s: %s files (%.1f%%)\n",
			labelStyle.Sprint(bucket.Label), countStyle.Sprintf("%d", bucket.Count), pct)
	}

	fmt.Fprintln(w, "\nFile Age Distribution:")

	for _, bucket := range filebyte.AgeDistribution(entries, time.Now()) {
		pct := 100 * float64(bucket.Count) / float64(total)
		fmt.Fprintf(w, "  %s: %s files (%.1f%%)\n",
			labelStyle.Sprint(bucket.Label), countStyle.Sprintf("%d", bucket.Count), pct)
	}

	if largest, ok := filebyte.LargestFile(entries); ok {
		fmt.Fprintf(w, "\nLargest File: %s (%s)\n",
			countStyle.Sprint(largest.Name), sizeStyle.Sprint(filebyte.FormatSize(largest.Size, unit)))
	}

	if smallest, ok := filebyte.SmallestFile(entries); ok {
		fmt.Fprintf(w, "Smallest File: %s (%s)\n",
			countStyle.Sprint(smallest.Name), sizeStyle.Sprint(filebyte.FormatSize(smallest.Size, unit)))
	}

	perms := filebyte.SummarizePermissions(entries)

	fmt.Fprintln(w, "\nPermissions Summary:")
	fmt.Fprintf(w, "  Readable: %s files (%.1f%%)\n",
		countStyle.Sprintf("%d", perms.Readable), 100*float64(perms.Readable)/float64(total))
	fmt.Fprintf(w, "  Writable: %s files (%.1f%%)\n",
		countStyle.Sprintf("%d", perms.Writable), 100*float64(perms.Writable)/float64(total))
	fmt.Fprintf(w, "  Read-only: %s files (%.1f%%)\n",
		countStyle.Sprintf("%d", perms.ReadOnly), 100*float64(perms.ReadOnly)/float64(total))
	fmt.Fprintf(w, "  Read-write: %s files (%.1f%%)\n",
		countStyle.Sprintf("%d", perms.ReadWrite), 100*float64(perms.ReadWrite)/float64(total))
}

// printDisks renders one line per mounted filesystem.
func printDisks(w io.Writer, mounts []filebyte.Mount, unit filebyte.SizeUnit) {
	fmt.Fprintln(w, "\nAvailable disks:")
	fmt.Fprintln(w, separator(60))

	for _, mount := range mounts {
		fmt.Fprintf(w, "%s (%s) - Total: %s | Used: %s | Available: %s\n",
			dirStyle.Sprint(mount.Device),
			mount.MountPoint,
			countStyle.Sprint(filebyte.FormatSize(int64(mount.TotalBytes), unit)),   //nolint:gosec // Capacity fits int64
			color.RedString(filebyte.FormatSize(int64(mount.UsedBytes), unit)),      //nolint:gosec // Capacity fits int64
			sizeStyle.Sprint(filebyte.FormatSize(int64(mount.AvailableBytes()), unit))) //nolint:gosec // Capacity fits int64
	}
}

// printDiskInfo renders the detail block for one mount.
func printDiskInfo(w io.Writer, mount filebyte.Mount, unit filebyte.SizeUnit) {
	fmt.Fprintf(w, "\nDisk Information: %s\n", dirStyle.Sprint(mount.Device))

	tw := tabwriter.NewWriter(w, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(tw, "Mount Point:\t%s\n", countStyle.Sprint(mount.MountPoint))
	fmt.Fprintf(tw, "Filesystem:\t%s\n", mount.FSType)
	fmt.Fprintf(tw, "Total Space:\t%s\n", countStyle.Sprint(filebyte.FormatSize(int64(mount.TotalBytes), unit)))       //nolint:gosec // Capacity fits int64
	fmt.Fprintf(tw, "Used Space:\t%s\n", color.RedString(filebyte.FormatSize(int64(mount.UsedBytes), unit)))          //nolint:gosec // Capacity fits int64
	fmt.Fprintf(tw, "Available Space:\t%s\n", sizeStyle.Sprint(filebyte.FormatSize(int64(mount.AvailableBytes()), unit))) //nolint:gosec // Capacity fits int64
	fmt.Fprintf(tw, "Usage:\t%s\n", dateStyle.Sprintf("%.1f%%", mount.UsagePercent()))

	tw.Flush()
}

// printEntryDetails renders the full property block for a single probed
// entry (--file and --directory modes).
func printEntryDetails(w io.Writer, entry filebyte.Entry, unit filebyte.SizeUnit) {
	tw := tabwriter.NewWriter(w, 0, 4, TabSpacing, ' ', 0)

	size := filebyte.FormatSize(entry.Size, unit)
	if entry.Partial {
		size += " (partial: parts of the subtree were unreadable)"
	}

	fmt.Fprintf(tw, "Name:\t%s\n", entryDisplayName(entry))
	fmt.Fprintf(tw, "Path:\t%s\n", entry.Path)
	fmt.Fprintf(tw, "Kind:\t%s\n", entry.Kind)
	fmt.Fprintf(tw, "Size:\t%s\n", sizeStyle.Sprint(size))

	if !entry.CreateTime.IsZero() {
		fmt.Fprintf(tw, "Created:\t%s\n", dateStyle.Sprint(entry.CreateTime.UTC().Format("2006-01-02 15:04:05 UTC")))
	}

	if !entry.ModTime.IsZero() {
		fmt.Fprintf(tw, "Modified:\t%s\n", dateStyle.Sprint(entry.ModTime.UTC().Format("2006-01-02 15:04:05 UTC")))
	}

	fmt.Fprintf(tw, "Permissions:\t%s\n", permStyle.Sprint(entry.Perm))

	if entry.MIME != "" {
		fmt.Fprintf(tw, "Type:\t%s\n", labelStyle.Sprint(entry.MIME))
	}

	tw.Flush()
}

func entryDisplayName(entry filebyte.Entry) string {
	if entry.IsDir() {
		return dirStyle.Sprint(entry.Name)
	}

	return entryLabel(entry)
}

// treeDecorator colors directory names in tree output.
func treeDecorator() func(filebyte.Entry) string {
	return func(entry filebyte.Entry) string {
		if entry.IsDir() {
			return dirStyle.Sprint(entry.Name)
		}

		return entry.Name
	}
}
