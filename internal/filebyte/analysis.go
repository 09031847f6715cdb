package filebyte

import (
	"sort"
	"strings"
	"time"
)

// TypeStat counts entries sharing a media type.
type TypeStat struct {
	MIME  string
	Count int
}

// Distribution is one labeled bucket of a histogram.
type Distribution struct {
	Label string
	Count int
}

// TypeStats tallies the media types of the file entries, most common
// first. Files without a recognized type are grouped under "unknown".
func TypeStats(entries []Entry) []TypeStat {
	counts := make(map[string]int)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		mime := entry.MIME
		if mime == "" {
			mime = "unknown"
		}

		counts[mime]++
	}

	stats := make([]TypeStat, 0, len(counts))
	for mime, count := range counts {
		stats = append(stats, TypeStat{MIME: mime, Count: count})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}

		return stats[i].MIME < stats[j].MIME
	})

	return stats
}

// sizeBuckets are the histogram thresholds for SizeDistribution; each
// bucket covers [min, max).
//
//nolint:gochecknoglobals // Static lookup table
var sizeBuckets = []struct {
	label    string
	min, max int64
}{
	{"Empty (0 B)", 0, 1},
	{"Tiny (< 1 KB)", 1, 1 << 10},
	{"Small (1 KB - 1 MB)", 1 << 10, 1 << 20},
	{"Medium (1 MB - 100 MB)", 1 << 20, 100 << 20},
	{"Large (100 MB - 1 GB)", 100 << 20, 1 << 30},
	{"Huge (> 1 GB)", 1 << 30, 1<<63 - 1},
}

// SizeDistribution buckets the entries by size. Buckets with no members
// are omitted.
func SizeDistribution(entries []Entry) []Distribution {
	var dist []Distribution

	for _, bucket := range sizeBuckets {
		count := 0

		for _, entry := range entries {
			if entry.Size >= bucket.min && entry.Size < bucket.max {
				count++
			}
		}

		if count > 0 {
			dist = append(dist, Distribution{Label: bucket.label, Count: count})
		}
	}

	return dist
}

// ageBuckets are the histogram thresholds for AgeDistribution, in seconds
// since modification.
//
//nolint:gochecknoglobals // Static lookup table
var ageBuckets = []struct {
	label    string
	min, max time.Duration
}{
	{"Today", 0, 24 * time.Hour},
	{"This Week", 24 * time.Hour, 7 * 24 * time.Hour},
	{"This Month", 7 * 24 * time.Hour, 30 * 24 * time.Hour},
	{"This Year", 30 * 24 * time.Hour, 365 * 24 * time.Hour},
	{"Older", 365 * 24 * time.Hour, 1<<63 - 1},
}

// AgeDistribution buckets the entries by time since last modification,
// relative to now. Buckets with no members are omitted.
func AgeDistribution(entries []Entry, now time.Time) []Distribution {
	var dist []Distribution

	for _, bucket := range ageBuckets {
		count := 0

		for _, entry := range entries {
			age := now.Sub(entry.ModTime)
			if age < 0 {
				age = 0
			}

			if age >= bucket.min && age < bucket.max {
				count++
			}
		}

		if count > 0 {
			dist = append(dist, Distribution{Label: bucket.label, Count: count})
		}
	}

	return dist
}

// LargestFile returns the largest non-directory entry.
func LargestFile(entries []Entry) (Entry, bool) {
	var largest Entry

	found := false

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !found || entry.Size > largest.Size {
			largest = entry
			found = true
		}
	}

	return largest, found
}

// SmallestFile returns the smallest non-empty, non-directory entry.
func SmallestFile(entries []Entry) (Entry, bool) {
	var smallest Entry

	found := false

	for _, entry := range entries {
		if entry.IsDir() || entry.Size == 0 {
			continue
		}

		if !found || entry.Size < smallest.Size {
			smallest = entry
			found = true
		}
	}

	return smallest, found
}

// PermSummary tallies owner permissions across entries.
type PermSummary struct {
	Readable  int
	Writable  int
	ReadOnly  int
	ReadWrite int
}

// SummarizePermissions tallies the owner permission bits of entries.
func SummarizePermissions(entries []Entry) PermSummary {
	var summary PermSummary

	for _, entry := range entries {
		if len(entry.Perm) < 3 {
			continue
		}

		readable := strings.HasPrefix(entry.Perm[1:], "r")
		writable := entry.Perm[2] == 'w'

		if readable {
			summary.Readable++
		}

		if writable {
			summary.Writable++
		}

		if readable && !writable {
			summary.ReadOnly++
		}

		if readable && writable {
			summary.ReadWrite++
		}
	}

	return summary
}
