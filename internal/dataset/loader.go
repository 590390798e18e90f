package dataset

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/brandstudio/promptdesk/internal/catalog"
	"github.com/brandstudio/promptdesk/internal/payload"
)

// Loader reads reference rows from a record store export on disk.
type Loader struct {
	path string
}

// ReferenceRow is the parquet layout of an exported reference row. Every
// column is optional since operators rename and drop columns freely.
type ReferenceRow struct {
	ID             string `parquet:"id,optional"`
	PromptName     string `parquet:"prompt_name,optional"`
	BrandName      string `parquet:"brand_name,optional"`
	PromptCategory string `parquet:"prompt_category,optional"`
	Category       string `parquet:"category,optional"`
	PromptType     string `parquet:"prompt_type,optional"`
}

// NewLoader creates a new export loader
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// References implements catalog.Source over the export, filtered by brand.
func (l *Loader) References(ctx context.Context, brand string) ([]catalog.RawReference, error) {
	recs, err := l.Load()
	if err != nil {
		return nil, err
	}
	refs := make([]catalog.RawReference, 0, len(recs))
	for _, rec := range recs {
		refs = append(refs, catalog.ReferenceFromRecord(rec))
	}
	return catalog.FilterBrand(refs, brand), nil
}

// Load reads every row as a generic record.
func (l *Loader) Load() ([]payload.Record, error) {
	ext := strings.ToLower(filepath.Ext(l.path))

	switch ext {
	case ".parquet":
		return l.loadParquet()
	case ".jsonl":
		return l.loadJSONL()
	case ".json":
		return l.loadJSON()
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl, .json)", ext)
	}
}

// loadJSON reads a whole-file JSON export in any of the payload shapes.
func (l *Loader) loadJSON() ([]payload.Record, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export file: %w", err)
	}
	v := payload.Decode(data)
	if v == nil {
		return nil, fmt.Errorf("failed to parse JSON export %s", l.path)
	}
	recs := payload.Records(v)
	slog.Debug("Finished reading JSON export", "path", l.path, "shape", payload.Classify(v).String(), "total_records", len(recs))
	return recs, nil
}

// loadJSONL reads one record per line. Malformed lines are skipped.
func (l *Loader) loadJSONL() ([]payload.Record, error) {
	slog.Debug("Opening JSONL file", "path", l.path)

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file: %w", err)
	}
	defer file.Close()

	var records []payload.Record
	scanner := bufio.NewScanner(file)

	// Increase buffer size for large JSON lines
	const maxCapacity = 10 * 1024 * 1024 // 10MB per line
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil || record == nil {
			slog.Warn("Skipping malformed JSONL line", "path", l.path, "line", lineNum, "err", err)
			continue
		}

		records = append(records, payload.Record(record))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading export: %w", err)
	}

	slog.Debug("Finished reading JSONL file", "total_records", len(records), "total_lines", lineNum)

	return records, nil
}

// loadParquet loads records from a Parquet file
func (l *Loader) loadParquet() ([]payload.Record, error) {
	slog.Debug("Opening Parquet file", "path", l.path)

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[ReferenceRow](pf)
	defer reader.Close()

	var records []payload.Record
	rows := make([]ReferenceRow, 128) // Read in batches

	for {
		n, err := reader.Read(rows)
		for _, row := range rows[:n] {
			records = append(records, row.Record())
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	slog.Debug("Finished reading Parquet file", "total_records", len(records))

	return records, nil
}

// Record converts a parquet row to the generic shape the synonym table reads.
func (r ReferenceRow) Record() payload.Record {
	return payload.Record{
		"id":              r.ID,
		"prompt_name":     r.PromptName,
		"brand_name":      r.BrandName,
		"prompt_category": r.PromptCategory,
		"category":        r.Category,
		"prompt_type":     r.PromptType,
	}
}

// WriteParquet writes rows as a parquet export.
func WriteParquet(path string, rows []ReferenceRow) error {
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("failed to write parquet file: %w", err)
	}
	return nil
}

// RowFromReference converts a resolved reference to its export row.
func RowFromReference(ref catalog.RawReference) ReferenceRow {
	return ReferenceRow{
		ID:         ref.ID,
		PromptName: ref.PromptName,
		BrandName:  ref.BrandName,
		Category:   ref.Category,
	}
}

// Export writes references to path, choosing the format from the extension.
func Export(path string, refs []catalog.RawReference) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		rows := make([]ReferenceRow, 0, len(refs))
		for _, ref := range refs {
			rows = append(rows, RowFromReference(ref))
		}
		return WriteParquet(path, rows)
	case ".jsonl":
		return writeJSONL(path, refs)
	default:
		return fmt.Errorf("unsupported export format: %s (supported: .parquet, .jsonl)", ext)
	}
}

func writeJSONL(path string, refs []catalog.RawReference) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	for _, ref := range refs {
		if err := enc.Encode(ref); err != nil {
			return fmt.Errorf("failed to encode reference %s: %w", ref.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
