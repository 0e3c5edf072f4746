package server

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/pai-learn/internal/store"
)

const (
	historySheet = "History"
	xlsxMIME     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (s *Server) handleAnalyticsExport(w http.ResponseWriter, r *http.Request) {
	records, ok := s.history(w, r)
	if !ok {
		return
	}

	data, err := historyWorkbook(records)
	if err != nil {
		logger(r.Context()).Error("analytics export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to export analytics")
		return
	}

	username := r.URL.Query().Get("username")
	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", username+"-history.xlsx"))
	_, _ = w.Write(data)
}

// historyWorkbook renders records as a single-sheet workbook, one row per
// test, oldest first.
func historyWorkbook(records []store.HistoryRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := []any{"Date", "Subject", "Topic", "Score", "Weak Concepts"}
	if err := f.SetSheetRow(historySheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}
	if err := f.SetCellStyle(historySheet, "A1", "E1", bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{rec.TestDate.UTC().Format("2006-01-02 15:04:05"), rec.Subject, rec.Topic, rec.Score, rec.WeakConcepts}
		if err := f.SetSheetRow(historySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(historySheet, "A", "E", 22); err != nil {
		return nil, fmt.Errorf("set widths: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
