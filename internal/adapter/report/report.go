// Package report serializes the final MIN/MAX rows to the pipe-delimited
// precios.txt artifact consumed by downstream clients.
package report

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"github.com/lmaidana/surtidor-etl/internal/domain"
)

// header lists the published columns in order. Names match the upstream
// dataset (plus the leading MIN/MAX marker) so existing consumers keep
// parsing.
var header = []string{
	"indice_precio",
	"indice_tiempo",
	"direccion",
	"localidad",
	"producto",
	"precio",
	"idempresabandera",
	"empresabandera",
	"latitud",
	"longitud",
}

// Writer publishes final rows as the report artifact.
// It implements pipeline.Sink.
type Writer struct {
	path   string
	logger *slog.Logger
}

// NewWriter creates a report writer for the given path.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

// Publish sorts the rows by (city, category, label) and writes them with a
// header line, replacing the report atomically so readers never observe a
// partial file. An empty row set publishes a header-only report.
func (w *Writer) Publish(rows []domain.FinalRow) error {
	sorted := make([]domain.FinalRow, len(rows))
	copy(sorted, rows)
	// Lexical label order puts MAX before MIN.
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.City != b.City {
			return a.City < b.City
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Label < b.Label
	})

	tmp := w.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}

	if err := writeRows(f, sorted); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close report file: %w", err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publish report file: %w", err)
	}

	w.logger.Info("report published", "path", w.path, "rows", len(sorted))
	return nil
}

func writeRows(f *os.File, rows []domain.FinalRow) error {
	cw := csv.NewWriter(f)
	cw.Comma = '|'

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			string(r.Label),
			r.TimeIndex,
			r.Address,
			r.City,
			r.Product,
			r.PriceText,
			r.CompanyID,
			r.CompanyName,
			r.Latitude,
			r.Longitude,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}

// Read parses a published report back into final rows. The price text is
// preserved byte for byte alongside its parsed value.
func Read(path string) ([]domain.FinalRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = '|'

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse report: missing header")
	}

	rows := make([]domain.FinalRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("parse report: expected %d columns, got %d", len(header), len(rec))
		}
		price, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return nil, fmt.Errorf("parse report price %q: %w", rec[5], err)
		}
		rows = append(rows, domain.FinalRow{
			Label: domain.Label(rec[0]),
			ValidatedRecord: domain.ValidatedRecord{
				TimeIndex:   rec[1],
				Address:     rec[2],
				City:        rec[3],
				Product:     rec[4],
				Category:    domain.ClassifyProduct(rec[4]),
				Price:       price,
				PriceText:   rec[5],
				CompanyID:   rec[6],
				CompanyName: rec[7],
				Latitude:    rec[8],
				Longitude:   rec[9],
			},
		})
	}
	return rows, nil
}
