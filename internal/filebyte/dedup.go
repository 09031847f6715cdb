package filebyte

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
)

// DedupStats summarizes a duplicate-detection run.
type DedupStats struct {
	// Files is the number of file entries considered.
	Files int
	// Candidates is the number of files that shared a size with at
	// least one other file and therefore had to be hashed.
	Candidates int
	// Failed lists files that could not be read while hashing, each
	// annotated with the reason. They are excluded from their bucket
	// without aborting the operation.
	Failed []Entry
}

// FindDuplicates groups the file entries into duplicate sets. Detection
// runs in two phases: files are first bucketed by exact size, then the
// remaining candidates are grouped by full-content SHA-256. Files with a
// unique size are never hashed. A digest match is treated as content
// equality. Groups are returned largest size first; a group always has at
// least two members.
func FindDuplicates(entries []Entry) ([]DuplicateGroup, DedupStats) {
	var stats DedupStats

	// Phase 1: bucket by size. Singleton buckets cannot hold duplicates.
	buckets := make(map[int64][]Entry)

	for _, entry := range entries {
		if entry.Kind != KindFile || entry.Err != nil {
			continue
		}

		stats.Files++
		buckets[entry.Size] = append(buckets[entry.Size], entry)
	}

	// Phase 2: hash candidate contents and group by digest.
	type groupKey struct {
		size   int64
		digest string
	}

	groups := make(map[groupKey][]string)

	for size, bucket := range buckets {
		if len(bucket) < 2 {
			continue
		}

		for _, entry := range bucket {
			stats.Candidates++

			digest, err := hashFile(entry.Path)
			if err != nil {
				logrus.WithField("path", entry.Path).WithError(err).Debug("excluding unreadable file")

				entry.Err = err
				stats.Failed = append(stats.Failed, entry)

				continue
			}

			key := groupKey{size: size, digest: digest}
			groups[key] = append(groups[key], entry.Path)
		}
	}

	duplicates := make([]DuplicateGroup, 0, len(groups))

	for key, paths := range groups {
		if len(paths) < 2 {
			continue
		}

		sort.Strings(paths)
		duplicates = append(duplicates, DuplicateGroup{Size: key.size, Digest: key.digest, Paths: paths})
	}

	sort.Slice(duplicates, func(i, j int) bool {
		if duplicates[i].Size != duplicates[j].Size {
			return duplicates[i].Size > duplicates[j].Size
		}

		return duplicates[i].Digest < duplicates[j].Digest
	})

	return duplicates, stats
}

// hashFile returns the hex SHA-256 of the file's full content.
func hashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", &ReadError{Path: path, Err: err}
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
