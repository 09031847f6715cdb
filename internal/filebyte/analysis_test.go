package filebyte

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeStats(t *testing.T) {
	entries := []Entry{
		{Name: "a.go", Kind: KindFile, MIME: "text/x-go"},
		{Name: "b.go", Kind: KindFile, MIME: "text/x-go"},
		{Name: "c.md", Kind: KindFile, MIME: "text/markdown"},
		{Name: "mystery", Kind: KindFile},
		{Name: "dir", Kind: KindDirectory},
	}

	stats := TypeStats(entries)

	require.Len(t, stats, 3)
	assert.Equal(t, TypeStat{MIME: "text/x-go", Count: 2}, stats[0])
	assert.Contains(t, stats, TypeStat{MIME: "unknown", Count: 1})
}

func TestSizeDistribution(t *testing.T) {
	entries := []Entry{
		{Name: "empty", Kind: KindFile, Size: 0},
		{Name: "tiny", Kind: KindFile, Size: 100},
		{Name: "small", Kind: KindFile, Size: 5 << 10},
		{Name: "medium", Kind: KindFile, Size: 2 << 20},
	}

	dist := SizeDistribution(entries)

	require.Len(t, dist, 4)
	assert.Equal(t, Distribution{Label: "Empty (0 B)", Count: 1}, dist[0])
	assert.Equal(t, Distribution{Label: "Tiny (< 1 KB)", Count: 1}, dist[1])
	assert.Equal(t, Distribution{Label: "Small (1 KB - 1 MB)", Count: 1}, dist[2])
	assert.Equal(t, Distribution{Label: "Medium (1 MB - 100 MB)", Count: 1}, dist[3])
}

func TestAgeDistribution(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	entries := []Entry{
		{Name: "fresh", Kind: KindFile, ModTime: now.Add(-time.Hour)},
		{Name: "recent", Kind: KindFile, ModTime: now.Add(-3 * 24 * time.Hour)},
		{Name: "ancient", Kind: KindFile, ModTime: now.Add(-2 * 365 * 24 * time.Hour)},
	}

	dist := AgeDistribution(entries, now)

	require.Len(t, dist, 3)
	assert.Equal(t, Distribution{Label: "Today", Count: 1}, dist[0])
	assert.Equal(t, Distribution{Label: "This Week", Count: 1}, dist[1])
	assert.Equal(t, Distribution{Label: "Older", Count: 1}, dist[2])
}

func TestLargestAndSmallestFile(t *testing.T) {
	entries := []Entry{
		{Name: "dir", Kind: KindDirectory, Size: 0},
		{Name: "empty", Kind: KindFile, Size: 0},
		{Name: "big", Kind: KindFile, Size: 1000},
		{Name: "small", Kind: KindFile, Size: 1},
	}

	largest, ok := LargestFile(entries)
	require.True(t, ok)
	assert.Equal(t, "big", largest.Name)

	smallest, ok := SmallestFile(entries)
	require.True(t, ok)
	assert.Equal(t, "small", smallest.Name, "empty files are not the smallest")

	_, ok = LargestFile(nil)
	assert.False(t, ok)
}

func TestSummarizePermissions(t *testing.T) {
	entries := []Entry{
		{Name: "rw", Perm: "-rw-r--r--"},
		{Name: "ro", Perm: "-r--r--r--"},
		{Name: "wo", Perm: "--w-------"},
	}

	summary := SummarizePermissions(entries)

	assert.Equal(t, 2, summary.Readable)
	assert.Equal(t, 2, summary.Writable)
	assert.Equal(t, 1, summary.ReadOnly)
	assert.Equal(t, 1, summary.ReadWrite)
}
