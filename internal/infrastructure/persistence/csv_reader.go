// Package persistence handles reading the source dataset and persisting
// derived calibration artifacts.
package persistence

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"github.com/vaultrisk/calibration/internal/domain/models"
	"github.com/vaultrisk/calibration/pkg/constants"
	"github.com/vaultrisk/calibration/pkg/errors"
	"github.com/vaultrisk/calibration/pkg/logger"
)

// CSVReader loads exploit rows from a header CSV file. Recognized columns
// (with fallback aliases) are technique|classification, targetType|
// target_type, amount|amount_m, name, name_lower and date; unrecognized
// columns are ignored and missing recognized columns default downstream.
type CSVReader struct {
	log logger.Logger
}

// NewCSVReader creates a CSVReader.
func NewCSVReader(log logger.Logger) *CSVReader {
	return &CSVReader{log: log.WithComponent(constants.ComponentDataset)}
}

// Read consumes the whole file in one shot. An absent or unreadable file is
// fatal for the run (missing_file); row-level issues never surface as errors.
func (r *CSVReader) Read(ctx context.Context, path string) ([]models.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.ErrMissingFile(path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.ErrMissingFile(path, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	var rows []models.RawRow
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A structurally broken line is a row-level issue: skip it.
			r.log.Warn(ctx, "skipping malformed csv line", logger.Fields{"error": err.Error()})
			continue
		}

		row := models.RawRow{
			Name:      cell(fields, columns, "name"),
			NameLower: cell(fields, columns, "name_lower"),
			Date:      cell(fields, columns, "date"),
		}
		if i, ok := columns["technique"]; ok {
			row.Technique = at(fields, i)
			row.HasTechnique = true
		}
		row.Classification = cell(fields, columns, "classification")
		if i, ok := columns["targetType"]; ok {
			row.TargetType = at(fields, i)
			row.HasTargetType = true
		}
		row.TargetTypeAlt = cell(fields, columns, "target_type")
		if i, ok := columns["amount"]; ok {
			row.Amount = at(fields, i)
			row.HasAmount = true
		}
		if i, ok := columns["amount_m"]; ok {
			row.AmountM = at(fields, i)
			row.HasAmountM = true
		}

		rows = append(rows, row)
	}

	r.log.Info(ctx, "dataset loaded", logger.Fields{"path": path, "rows": len(rows)})
	return rows, nil
}

func cell(fields []string, columns map[string]int, name string) string {
	if i, ok := columns[name]; ok {
		return at(fields, i)
	}
	return ""
}

func at(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}
