// Package csvfile persists the analysis-ready output tables as CSV files,
// one per table, for the plotting and reporting consumers.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/climate-anomaly-etl/internal/domain"
)

const (
	globalFile     = "global.csv"
	hemisphereFile = "hemisphere.csv"
)

var (
	globalHeader     = []string{"Identifier", "ClimatePeriod", "Decade", "Year", "Month", "Anomaly", "TemperatureCategory"}
	hemisphereHeader = []string{"Hemisphere", "ClimatePeriod", "Decade", "Year", "Month", "Anomaly", "TemperatureCategory", "Season"}
)

// Writer writes both output tables into a directory. It implements
// pipeline.Loader.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a table writer rooted at dir. The directory is created
// on first load.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// LoadTables writes global.csv and hemisphere.csv. Unassigned labels become
// empty cells. Files are replaced wholesale; a batch run owns its output
// directory.
func (w *Writer) LoadTables(_ context.Context, global domain.GlobalTable, hemisphere domain.HemisphereTable) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	globalRows := make([][]string, 0, len(global))
	for _, rec := range global {
		globalRows = append(globalRows, recordFields(rec))
	}
	if err := w.writeFile(globalFile, globalHeader, globalRows); err != nil {
		return err
	}

	hemisphereRows := make([][]string, 0, len(hemisphere))
	for _, rec := range hemisphere {
		row := recordFields(rec.Record)
		row[0] = string(rec.Hemisphere)
		hemisphereRows = append(hemisphereRows, append(row, string(rec.Season)))
	}
	if err := w.writeFile(hemisphereFile, hemisphereHeader, hemisphereRows); err != nil {
		return err
	}

	w.logger.Info("tables written",
		"dir", w.dir,
		"global_rows", len(globalRows),
		"hemisphere_rows", len(hemisphereRows),
	)
	return nil
}

func (w *Writer) writeFile(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s rows: %w", name, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	return f.Close()
}

// recordFields renders the seven columns shared by both tables. The first
// column holds the identifier; hemisphere rows overwrite it with the
// hemisphere label.
func recordFields(rec domain.Record) []string {
	return []string{
		string(rec.Identifier),
		string(rec.ClimatePeriod),
		strconv.Itoa(rec.Decade),
		strconv.Itoa(rec.Year),
		string(rec.Month),
		strconv.FormatFloat(rec.Anomaly, 'f', 2, 64),
		string(rec.TemperatureCategory),
	}
}
