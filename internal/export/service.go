// Package export flattens stored records into an XLSX workbook.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/inkform/inkform/internal/repository"
)

// Service is a tiny façade over the record store that produces XLSX bytes.
type Service struct {
	records repository.RecordRepository
	logger  *slog.Logger
}

func NewService(records repository.RecordRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{records: records, logger: logger}
}

var headers = []string{
	"Record ID",
	"Task ID",
	"Field Label",
	"Field Value",
	"Created At",
	"Updated At",
}

// ExportRecordsXLSX returns a workbook with one row per extracted field,
// newest records first. Records whose document is empty still get a row so
// every task id is visible in the sheet.
func (s *Service) ExportRecordsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	recs, err := s.records.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Records"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		fields := r.RawJSON.Fields
		if len(fields) == 0 {
			write(1, r.ID)
			write(2, r.TaskID)
			write(5, r.CreatedAt.Format(time.RFC3339))
			write(6, r.UpdatedAt.Format(time.RFC3339))
			row++
			continue
		}
		for _, field := range fields {
			write(1, r.ID)
			write(2, r.TaskID)
			write(3, field.Label)
			write(4, field.Value)
			write(5, r.CreatedAt.Format(time.RFC3339))
			write(6, r.UpdatedAt.Format(time.RFC3339))
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.records_xlsx",
		"records", len(recs),
		"rows", row-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
