package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/filebyte/internal/filebyte"
)

//nolint:gochecknoinits // Deterministic test output
func init() {
	color.NoColor = true
}

func sampleEntries() []filebyte.Entry {
	mod := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)

	return []filebyte.Entry{
		{Path: "/scan/docs", Name: "docs", Kind: filebyte.KindDirectory, ModTime: mod, Perm: "drwxr-xr-x"},
		{Path: "/scan/a.txt", Name: "a.txt", Kind: filebyte.KindFile, Size: 2048, ModTime: mod, Perm: "-rw-r--r--"},
	}
}

func TestPrintEntriesWithSizes(t *testing.T) {
	var sb strings.Builder

	printEntries(&sb, sampleEntries(), filebyte.UnitAuto, true)

	out := sb.String()

	assert.Contains(t, out, "docs 0 B [DIR]")
	assert.Contains(t, out, "a.txt 2 KB")
}

func TestPrintEntriesDefaultView(t *testing.T) {
	var sb strings.Builder

	printEntries(&sb, sampleEntries(), filebyte.UnitAuto, false)

	out := sb.String()

	assert.Contains(t, out, "docs [DIR]")
	assert.Contains(t, out, "a.txt -rw-r--r-- 2025-02-03")
	assert.NotContains(t, out, "2 KB", "sizes are hidden unless requested")
}

func TestPrintDuplicates(t *testing.T) {
	groups := []filebyte.DuplicateGroup{{
		Size:   2048,
		Digest: "deadbeef",
		Paths:  []string{"/scan/a", "/scan/b"},
	}}

	var sb strings.Builder

	printDuplicates(&sb, groups, filebyte.DedupStats{}, filebyte.UnitAuto)

	out := sb.String()

	assert.Contains(t, out, "Duplicate files found:")
	assert.Contains(t, out, "Size: 2 KB (2)")
	assert.Contains(t, out, "  /scan/a")
	assert.Contains(t, out, "  /scan/b")
}

func TestPrintDuplicatesNone(t *testing.T) {
	var sb strings.Builder

	printDuplicates(&sb, nil, filebyte.DedupStats{}, filebyte.UnitAuto)

	assert.Equal(t, "No duplicate files found.\n", sb.String())
}

func TestPrintSkipped(t *testing.T) {
	var sb strings.Builder

	printSkipped(&sb, nil)
	assert.Empty(t, sb.String(), "nothing to report when nothing was skipped")

	skipped := []filebyte.Entry{{
		Path: "/scan/locked",
		Name: "locked",
		Err:  &filebyte.AccessError{Path: "/scan/locked"},
	}}

	printSkipped(&sb, skipped)

	assert.Contains(t, sb.String(), "Skipped 1 unreadable entries:")
	assert.Contains(t, sb.String(), "/scan/locked")
}

func TestPrintDisks(t *testing.T) {
	mounts := []filebyte.Mount{{
		Device:     "/dev/sda1",
		MountPoint: "/",
		FSType:     "ext4",
		TotalBytes: 4 << 30,
		UsedBytes:  1 << 30,
	}}

	var sb strings.Builder

	printDisks(&sb, mounts, filebyte.UnitAuto)

	out := sb.String()

	assert.Contains(t, out, "/dev/sda1 (/)")
	assert.Contains(t, out, "Total: 4 GB")
	assert.Contains(t, out, "Used: 1 GB")
	assert.Contains(t, out, "Available: 3 GB")
}

func TestPrintDiskInfo(t *testing.T) {
	mount := filebyte.Mount{
		Device:     "/dev/sda1",
		MountPoint: "/",
		FSType:     "ext4",
		TotalBytes: 1000,
		UsedBytes:  250,
	}

	var sb strings.Builder

	printDiskInfo(&sb, mount, filebyte.UnitBytes)

	out := sb.String()

	assert.Contains(t, out, "Disk Information: /dev/sda1")
	assert.Contains(t, out, "ext4")
	assert.Contains(t, out, "25.0%")
}

func TestPrintEntryDetails(t *testing.T) {
	entry := filebyte.Entry{
		Path:    "/scan/a.txt",
		Name:    "a.txt",
		Kind:    filebyte.KindFile,
		Size:    5,
		ModTime: time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC),
		Perm:    "-rw-r--r--",
		MIME:    "text/plain",
	}

	var sb strings.Builder

	printEntryDetails(&sb, entry, filebyte.UnitAuto)

	out := sb.String()

	assert.Contains(t, out, "a.txt")
	assert.Contains(t, out, "file")
	assert.Contains(t, out, "5 B")
	assert.Contains(t, out, "text/plain")
	assert.Contains(t, out, "2025-02-03 10:00:00 UTC")
	require.NotContains(t, out, "Created:", "zero creation time is omitted")
}
