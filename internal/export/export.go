// Package export renders reservations and transactions as xlsx workbooks
// for the back office. Dates are shown in the Jalali calendar alongside the
// stored Gregorian value.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mihman/internal/calendar"
	"mihman/internal/domain"
	"mihman/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

type Exporter struct {
	store  domain.Store
	path   string
	logger *zerolog.Logger
}

func NewExporter(store domain.Store, path string, logger *zerolog.Logger) *Exporter {
	return &Exporter{store: store, path: path, logger: logger}
}

// ExportReservations writes every reservation with a check-in inside
// [from, to] to an xlsx file and returns the file path.
func (e *Exporter) ExportReservations(ctx context.Context, from, to time.Time) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	reservations, err := e.store.ListReservationsByDateRange(ctx,
		calendar.FormatDate(from), calendar.FormatDate(to))
	if err != nil {
		return "", fmt.Errorf("error fetching reservations: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Reservations"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Check-in period: %s - %s (%s - %s)",
		calendar.FormatDate(from), calendar.FormatDate(to),
		calendar.FormatJalali(from), calendar.FormatJalali(to)))

	headers := []string{
		"ID", "Guest", "Hotel", "Check-in", "Check-in (Jalali)", "Check-out",
		"Nights", "Adults", "Children", "Total Price", "Status", "Created",
	}
	writeHeaderRow(f, sheetName, headers)

	for i, r := range reservations {
		row := i + 3
		jalaliIn := ""
		if parsed, err := calendar.ParseDate(r.CheckIn); err == nil {
			jalaliIn = calendar.FormatJalali(parsed)
		}
		values := []interface{}{
			r.ID, r.GuestID, r.HotelName, r.CheckIn, jalaliIn, r.CheckOut,
			r.Nights, r.Adults, r.Children, r.TotalPrice, r.BookingStatus,
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
		writeRow(f, sheetName, row, values)
	}

	_ = f.SetColWidth(sheetName, "A", "C", 25)
	_ = f.SetColWidth(sheetName, "D", "L", 16)

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", style)
	_ = f.MergeCell(sheetName, "A1", "L1")

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("reservations_%s_to_%s.xlsx",
		calendar.FormatDate(from), calendar.FormatDate(to))
	filePath := filepath.Join(e.path, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("rows", len(reservations)).Msg("reservations export created")
	return filePath, nil
}

// ExportTransactions writes the full ledger to an xlsx file.
func (e *Exporter) ExportTransactions(ctx context.Context) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	transactions, err := e.store.ListTransactions(ctx)
	if err != nil {
		return "", fmt.Errorf("error fetching transactions: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"ID", "Guest", "Reservation", "Amount", "Type", "Status",
		"Description", "Created", "Processed",
	}
	writeHeaderRow(f, sheetName, headers)

	for i, t := range transactions {
		row := i + 3
		processed := ""
		if t.ProcessedAt != nil {
			processed = t.ProcessedAt.Format("2006-01-02 15:04")
		}
		values := []interface{}{
			t.ID, t.GuestID, t.ReservationID, t.Amount, t.Type, t.Status,
			t.Description, t.CreatedAt.Format("2006-01-02 15:04"), processed,
		}
		writeRow(f, sheetName, row, values)
	}

	_ = f.SetColWidth(sheetName, "A", "C", 25)
	_ = f.SetColWidth(sheetName, "D", "I", 18)
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("transactions_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	filePath := filepath.Join(e.path, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("rows", len(transactions)).Msg("transactions export created")
	return filePath, nil
}

// DefaultRange is the export window used when the caller gives no dates.
func DefaultRange(now time.Time) (time.Time, time.Time) {
	return now.AddDate(0, -models.DefaultExportRangeMonthsBefore, 0),
		now.AddDate(0, models.DefaultExportRangeMonthsAfter, 0)
}

func writeHeaderRow(f *excelize.File, sheetName string, headers []string) {
	style, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, style)
	}
}

func writeRow(f *excelize.File, sheetName string, row int, values []interface{}) {
	for i, value := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheetName, cell, value)
	}
}
