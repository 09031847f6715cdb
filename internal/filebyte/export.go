package filebyte

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ExportFormat selects the serialization format.
type ExportFormat int

const (
	// FormatJSON serializes an array of entry objects.
	FormatJSON ExportFormat = iota
	// FormatCSV serializes a header row plus one row per entry with
	// RFC 4180 quoting.
	FormatCSV
)

// ParseExportFormat parses a format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return 0, fmt.Errorf("invalid export format %q: must be json or csv", s)
	}
}

// DetectExportFormat infers the format from the destination extension.
func DetectExportFormat(path string) (ExportFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return 0, fmt.Errorf("cannot infer export format from %q: use a .json or .csv destination", path)
	}
}

// exportEntry is the serialized shape of an Entry. Field names and their
// order are stable across runs.
type exportEntry struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	SizeBytes   int64  `json:"size_bytes"`
	ModifiedAt  string `json:"modified_at"`
	Permissions string `json:"permissions"`
	MIME        string `json:"mime"`
}

// exportColumns is the CSV header, matching the JSON keys in the same
// order.
//
//nolint:gochecknoglobals // Format constant
var exportColumns = []string{"path", "name", "kind", "size_bytes", "modified_at", "permissions", "mime"}

func toExportEntry(e Entry) exportEntry {
	return exportEntry{
		Path:        e.Path,
		Name:        e.Name,
		Kind:        e.Kind.String(),
		SizeBytes:   e.Size,
		ModifiedAt:  e.ModTime.UTC().Format(time.RFC3339),
		Permissions: e.Perm,
		MIME:        e.MIME,
	}
}

// Export serializes the document to dest in the given format. The entry
// sequence is written exactly as passed, never reordered. An unwritable
// destination yields *WriteError; the analysis that produced the document
// is unaffected.
func Export(doc ExportDocument, format ExportFormat, dest string) error {
	file, err := os.Create(dest)
	if err != nil {
		return &WriteError{Path: dest, Err: err}
	}

	switch format {
	case FormatJSON:
		err = WriteJSON(doc, file)
	case FormatCSV:
		err = WriteCSV(doc, file)
	}

	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = closeErr
	}

	if err != nil {
		return &WriteError{Path: dest, Err: err}
	}

	return nil
}

// WriteJSON writes the document's entries as an indented JSON array of
// objects, one object per entry, in document order.
func WriteJSON(doc ExportDocument, w io.Writer) error {
	records := make([]exportEntry, 0, len(doc.Entries))
	for _, entry := range doc.Entries {
		records = append(records, toExportEntry(entry))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON export: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// WriteCSV writes a header row followed by one row per entry in document
// order. Fields containing delimiters or quotes are escaped by
// encoding/csv per RFC 4180.
func WriteCSV(doc ExportDocument, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportColumns); err != nil {
		return err
	}

	for _, entry := range doc.Entries {
		record := toExportEntry(entry)

		row := []string{
			record.Path,
			record.Name,
			record.Kind,
			strconv.FormatInt(record.SizeBytes, 10),
			record.ModifiedAt,
			record.Permissions,
			record.MIME,
		}

		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()

	return writer.Error()
}
