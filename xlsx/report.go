// Package xlsx extracts analytics rows from the XLSX reports exported by the web
// analytics console.
package xlsx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/metrika-tools/metrika-app-sheets/analytics"
)

// Layout locates the parts of a report. Rows are 1-based.
type Layout struct {
	Sheet     string
	DateCell  string
	HeaderRow int
	DataRow   int
}

// Report is the date and the rows extracted from a single report file.
type Report struct {
	File    string
	Date    string
	Records []analytics.Record
}

type column struct {
	index int
	key   analytics.Key
}

func DefaultLayout() Layout {
	return Layout{
		Sheet:     "Отчет",
		DateCell:  "A1",
		HeaderRow: 5,
		DataRow:   7,
	}
}

// Extract reads the report rows from an XLSX file. If goals is not empty, the values
// in the goal columns of each row are summed into the GoalActions field.
func Extract(file string, layout Layout, goals []string) (*Report, error) {
	f, err := excelize.OpenFile(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	date, err := visitDate(f, layout)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(layout.Sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("error reading '%v' sheet (%w)", layout.Sheet, err)
	}

	header := []string{}
	if layout.HeaderRow > 0 && layout.HeaderRow <= len(rows) {
		header = rows[layout.HeaderRow-1]
	}

	columns, goalColumns := index(header, goals)
	records := []analytics.Record{}

	for r := layout.DataRow - 1; r >= 0 && r < len(rows); r++ {
		row := rows[r]
		record := analytics.NewRecord(date)

		for _, c := range columns {
			record[c.key] = value(f, layout.Sheet, row, c.index, r+1)
		}

		values := make([]any, 0, len(goalColumns))
		for _, ix := range goalColumns {
			values = append(values, value(f, layout.Sheet, row, ix, r+1))
		}

		sum, err := analytics.SumGoals(values...)
		if err != nil {
			return nil, fmt.Errorf("row %v: %w", r+1, err)
		}

		record[analytics.GoalActions] = analytics.GoalActions(sum)
		records = append(records, record)
	}

	return &Report{
		File:    file,
		Date:    date,
		Records: records,
	}, nil
}

// visitDate returns the last word of the date cell e.g. 01.03.2024 for 'Отчёт за период 01.03.2024'.
func visitDate(f *excelize.File, layout Layout) (string, error) {
	v, err := f.GetCellValue(layout.Sheet, layout.DateCell)
	if err != nil {
		return "", fmt.Errorf("error reading date cell %v!%v (%w)", layout.Sheet, layout.DateCell, err)
	}

	fields := strings.Fields(v)
	if len(fields) == 0 {
		return "", fmt.Errorf("missing report date in cell %v!%v", layout.Sheet, layout.DateCell)
	}

	return fields[len(fields)-1], nil
}

func index(header []string, goals []string) ([]column, []int) {
	columns := []column{}
	goalColumns := []int{}

	for i, h := range header {
		label := strings.TrimSpace(h)

		if key, ok := analytics.Lookup(label); ok {
			columns = append(columns, column{index: i, key: key})
		}

		for _, g := range goals {
			if strings.TrimSpace(g) == label && label != "" {
				goalColumns = append(goalColumns, i)
				break
			}
		}
	}

	return columns, goalColumns
}

// value returns the typed value of a cell: nil for an empty cell, int64 or float64 for
// a number, bool for a boolean and the raw text for anything else.
func value(f *excelize.File, sheet string, row []string, col int, rowNumber int) any {
	if col >= len(row) || row[col] == "" {
		return nil
	}

	raw := row[col]
	cell, err := excelize.CoordinatesToCellName(col+1, rowNumber)
	if err != nil {
		return raw
	}

	t, err := f.GetCellType(sheet, cell)
	if err != nil {
		return raw
	}

	switch t {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return i
		} else if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}

	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	}

	return raw
}
