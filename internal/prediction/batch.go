package prediction

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alfandoo/Attrition-Predict/internal/features"
	"github.com/alfandoo/Attrition-Predict/internal/types"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a parsed CSV upload: trimmed header plus one record per data row.
type Table struct {
	Header     []string
	NameColumn string
	Rows       []features.Record
}

// ReadTable parses a UTF-8 (optionally BOM-prefixed) CSV stream. Header names and cells
// are trimmed; rows wider than the header are rejected, shorter rows leave the trailing
// columns missing. Quoting is strict: an unterminated or stray quote fails the whole file.
func ReadTable(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &FileProcessingError{Cause: errors.New("no columns to parse from file")}
		}
		return nil, &FileProcessingError{Cause: err}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := &Table{Header: header, NameColumn: features.DetectNameColumn(header)}
	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &FileProcessingError{Cause: err}
		}
		if len(cells) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, &FileProcessingError{
				Cause: fmt.Errorf("expected %d fields in line %d, saw %d", len(header), line, len(cells)),
			}
		}

		rec := make(features.Record, len(header))
		for i, name := range header {
			if _, dup := rec[name]; dup {
				continue
			}
			if i < len(cells) {
				rec[name] = features.CellValue(cells[i])
			} else {
				rec[name] = features.MissingValue()
			}
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// MissingColumns returns the required schema columns absent from the header.
func (t *Table) MissingColumns() []string {
	var missing []string
	for _, c := range features.ColumnNames() {
		if !slices.Contains(t.Header, c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// PredictCSV scores every row of a CSV upload. Structural problems (unreadable file,
// missing required columns) fail the whole request; a row that cannot be encoded or
// scored becomes an error entry and the remaining rows are still scored.
func (s *Service) PredictCSV(ctx context.Context, r io.Reader) (*types.BatchResponse, error) {
	table, err := ReadTable(r)
	if err != nil {
		return nil, err
	}
	if missing := table.MissingColumns(); len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing, Required: features.ColumnNames()}
	}
	if s.maxRows > 0 && len(table.Rows) > s.maxRows {
		return nil, &FileProcessingError{
			Cause: fmt.Errorf("file has %d rows, limit is %d", len(table.Rows), s.maxRows),
		}
	}

	results, err := s.predictRows(ctx, table)
	if err != nil {
		return nil, err
	}
	return &types.BatchResponse{Success: true, Results: results}, nil
}

// predictRows scores rows on a bounded worker pool. Results keep file order.
func (s *Service) predictRows(ctx context.Context, table *Table) ([]types.BatchRow, error) {
	results := make([]types.BatchRow, len(table.Rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, rec := range table.Rows {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.predictRow(i+1, rec, table.NameColumn)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) predictRow(index int, rec features.Record, nameColumn string) types.BatchRow {
	row := types.BatchRow{
		Index:        index,
		EmployeeName: features.NameFromRow(rec, nameColumn),
	}

	vec, err := features.Encode(rec)
	if err == nil {
		var class int
		class, row.Probability, err = s.score(vec)
		if err == nil {
			row.PredictedClass = class
			row.Prediction = types.BatchVerdictStay
			if class == ClassResign {
				row.Prediction = types.BatchVerdictResign
			}
			row.Confidence = types.FormatPercent(confidence(row.Probability))
			return row
		}
	}

	s.logger.Debug("row rejected", zap.Int("index", index), zap.Error(err))
	return types.BatchRow{
		Index:          index,
		EmployeeName:   row.EmployeeName,
		Prediction:     "Error: " + err.Error(),
		Probability:    types.Probability{},
		Confidence:     "0%",
		PredictedClass: -1,
	}
}
