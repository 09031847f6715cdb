package filebyte

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scan(t *testing.T, root string) []Entry {
	t.Helper()

	result, err := Walk(context.Background(), root, WalkOptions{Recursive: true}, nil)
	require.NoError(t, err)

	return result.Entries
}

func TestFindDuplicates(t *testing.T) {
	root := t.TempDir()

	// Two identical files plus one with the same size but different
	// content.
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("same-content"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("same-content"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "c.txt"), []byte("diff-content"), 0o644))

	groups, stats := FindDuplicates(scan(t, root))

	require.Len(t, groups, 1, "same size alone is not duplication")
	assert.EqualValues(t, 12, groups[0].Size)
	assert.Equal(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "b.txt"),
	}, groups[0].Paths)
	assert.NotEmpty(t, groups[0].Digest)

	assert.Equal(t, 3, stats.Files)
	assert.Equal(t, 3, stats.Candidates, "all three share a size and were hashed")
	assert.Empty(t, stats.Failed)
}

func TestFindDuplicatesUniqueSizesSkipHashing(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "a"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b"), []byte("xx"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "c"), []byte("xxx"), 0o644))

	groups, stats := FindDuplicates(scan(t, root))

	assert.Empty(t, groups)
	assert.Equal(t, 0, stats.Candidates, "unique sizes are never hashed")
}

func TestFindDuplicatesIgnoresDirectories(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(root, "d1"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "d2"), 0o755))

	groups, stats := FindDuplicates(scan(t, root))

	assert.Empty(t, groups)
	assert.Equal(t, 0, stats.Files)
}

func TestFindDuplicatesUnreadableFileExcluded(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits work differently on windows")
	}

	if os.Geteuid() == 0 {
		t.Skip("running as root bypasses permission checks")
	}

	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "a"), []byte("payload"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b"), []byte("payload"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "c"), []byte("sealed!"), 0o000))

	groups, stats := FindDuplicates(scan(t, root))

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Paths, 2)

	require.Len(t, stats.Failed, 1, "the unreadable file is excluded, not fatal")
	assert.Error(t, stats.Failed[0].Err)

	var readErr *ReadError

	assert.ErrorAs(t, stats.Failed[0].Err, &readErr)
}

func TestHashFileMatchesKnownDigest(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "abc")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	digest, err := hashFile(path)
	require.NoError(t, err)

	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", digest)
}
