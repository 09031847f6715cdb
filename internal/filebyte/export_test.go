package filebyte

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportDoc() ExportDocument {
	mod := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	return ExportDocument{
		Root:        "/scan",
		GeneratedAt: time.Now(),
		Entries: []Entry{
			{Path: "/scan/z.txt", Name: "z.txt", Kind: KindFile, Size: 300, ModTime: mod, Perm: "-rw-r--r--", MIME: "text/plain"},
			{Path: "/scan/dir", Name: "dir", Kind: KindDirectory, Size: 0, ModTime: mod, Perm: "drwxr-xr-x"},
			{Path: "/scan/a.txt", Name: "a.txt", Kind: KindFile, Size: 100, ModTime: mod, Perm: "-rw-r--r--", MIME: "text/plain"},
		},
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	doc := exportDoc()

	var sb strings.Builder
	require.NoError(t, WriteJSON(doc, &sb))

	var parsed []struct {
		Path       string `json:"path"`
		Name       string `json:"name"`
		Kind       string `json:"kind"`
		SizeBytes  int64  `json:"size_bytes"`
		ModifiedAt string `json:"modified_at"`
		Perms      string `json:"permissions"`
		MIME       string `json:"mime"`
	}

	require.NoError(t, json.Unmarshal([]byte(sb.String()), &parsed))
	require.Len(t, parsed, 3)

	// Order and values survive exactly as passed; export never sorts.
	assert.Equal(t, "/scan/z.txt", parsed[0].Path)
	assert.EqualValues(t, 300, parsed[0].SizeBytes)
	assert.Equal(t, "/scan/dir", parsed[1].Path)
	assert.Equal(t, "directory", parsed[1].Kind)
	assert.Equal(t, "/scan/a.txt", parsed[2].Path)
	assert.EqualValues(t, 100, parsed[2].SizeBytes)

	assert.Equal(t, "2025-03-14T09:26:53Z", parsed[0].ModifiedAt, "timestamps are ISO-8601")
}

func TestWriteCSV(t *testing.T) {
	doc := exportDoc()
	// A name containing the delimiter and a quote must survive RFC 4180
	// quoting.
	doc.Entries[0].Name = `tricky,"name`

	var sb strings.Builder
	require.NoError(t, WriteCSV(doc, &sb))

	rows, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus one row per entry")

	assert.Equal(t, []string{"path", "name", "kind", "size_bytes", "modified_at", "permissions", "mime"}, rows[0])
	assert.Equal(t, `tricky,"name`, rows[1][1])
	assert.Equal(t, "300", rows[1][3])
	assert.Equal(t, "dir", rows[2][1])
	assert.Equal(t, "a.txt", rows[3][1])
}

func TestExportToFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, Export(exportDoc(), FormatJSON, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestExportUnwritableDestination(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "no", "such", "dir", "out.json")

	err := Export(exportDoc(), FormatJSON, dest)
	require.Error(t, err)

	var writeErr *WriteError

	assert.ErrorAs(t, err, &writeErr)
}

func TestParseExportFormat(t *testing.T) {
	format, err := ParseExportFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	format, err = ParseExportFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	_, err = ParseExportFormat("xml")
	require.Error(t, err)
}

func TestDetectExportFormat(t *testing.T) {
	format, err := DetectExportFormat("report.json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	format, err = DetectExportFormat("report.CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	_, err = DetectExportFormat("report.txt")
	require.Error(t, err)
}
