// internal/report/writer.go

// Package report flattens lookup results into the delimited output file.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"entsite/internal/models"
)

// utf8BOM lets spreadsheet tools detect the encoding of non-ASCII names.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Header is the fixed column set: parent rows leave ownership empty, child
// rows fill all three.
var Header = []string{"unit name", "website address", "ownership"}

// Write persists all results to path, overwriting any existing file. One
// parent row precedes each result's child rows; unresolved keys still get
// their (empty) parent row. Any failure here is fatal to the run.
func Write(results []models.LookupResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file %s: %w", path, err)
	}

	if _, err := f.Write(utf8BOM); err != nil {
		f.Close()
		return fmt.Errorf("write BOM: %w", err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(Header); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}

	for _, result := range results {
		if err := w.Write([]string{result.ParentName, result.OfficialWebsite, ""}); err != nil {
			f.Close()
			return fmt.Errorf("write parent row: %w", err)
		}
		for _, child := range result.Children {
			row := []string{child.Entity.Name, child.Website, strconv.Itoa(child.OwnershipPercent)}
			if err := w.Write(row); err != nil {
				f.Close()
				return fmt.Errorf("write child row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush report: %w", err)
	}

	return f.Close()
}

// DefaultPath derives a timestamped output path under dir, creating dir if
// absent.
func DefaultPath(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create results directory %s: %w", dir, err)
	}
	name := time.Now().Format("20060102150405") + ".csv"
	return filepath.Join(dir, name), nil
}
