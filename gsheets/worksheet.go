// Package gsheets wraps the Google Sheets API calls made against a single worksheet.
package gsheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"google.golang.org/api/sheets/v4"
)

// Worksheet is a single named tab of a Google Sheets spreadsheet.
type Worksheet struct {
	service       *sheets.Service
	spreadsheetID string
	properties    *sheets.SheetProperties
}

// Range is a single column range, e.g. C5:C10. Column and rows are 1-based and
// inclusive.
type Range struct {
	Column   int
	FirstRow int
	LastRow  int
}

// Update is the list of values to be written to a column range, one per row.
type Update struct {
	Range  Range
	Values []any
}

// Open finds the worksheet with the given title. Titles are matched ignoring case and
// leading/trailing whitespace.
func Open(ctx context.Context, service *sheets.Service, spreadsheetID string, title string) (*Worksheet, error) {
	spreadsheet, err := service.Spreadsheets.Get(spreadsheetID).
		Fields("spreadsheetId", "sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet (%w)", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties == nil {
			continue
		}

		if strings.ToLower(strings.TrimSpace(sheet.Properties.Title)) == strings.ToLower(strings.TrimSpace(title)) {
			return &Worksheet{
				service:       service,
				spreadsheetID: spreadsheetID,
				properties:    sheet.Properties,
			}, nil
		}
	}

	return nil, fmt.Errorf("unable to identify worksheet '%s'", title)
}

func (w *Worksheet) Title() string {
	return w.properties.Title
}

// Values returns the formatted values of every non-empty row of the worksheet. Trailing
// empty cells are omitted from each row.
func (w *Worksheet) Values(ctx context.Context) ([][]any, error) {
	response, err := w.service.Spreadsheets.Values.Get(w.spreadsheetID, quote(w.Title())).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from worksheet '%s' (%w)", w.Title(), err)
	}

	return response.Values, nil
}

// Update writes all the column ranges in a single batch update. Values are stored as is
// ('RAW') and nil values leave the cell unchanged.
func (w *Worksheet) Update(ctx context.Context, updates ...Update) error {
	if len(updates) == 0 {
		return nil
	}

	data := []*sheets.ValueRange{}
	for _, u := range updates {
		rows := make([][]any, len(u.Values))
		for i, v := range u.Values {
			rows[i] = []any{v}
		}

		data = append(data, &sheets.ValueRange{
			Range:          u.Range.In(w.Title()),
			MajorDimension: "ROWS",
			Values:         rows,
		})
	}

	rq := sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}

	if _, err := w.service.Spreadsheets.Values.BatchUpdate(w.spreadsheetID, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("error updating worksheet '%s' (%w)", w.Title(), err)
	}

	return nil
}

// FormatPercent sets the number format of the ranges to a percentage with the given
// pattern e.g. 0.00%.
func (w *Worksheet) FormatPercent(ctx context.Context, pattern string, ranges ...Range) error {
	if len(ranges) == 0 {
		return nil
	}

	requests := []*sheets.Request{}
	for _, r := range ranges {
		requests = append(requests, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: r.grid(w.properties.SheetId),
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						NumberFormat: &sheets.NumberFormat{
							Type:    "PERCENT",
							Pattern: pattern,
						},
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		})
	}

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	if _, err := w.service.Spreadsheets.BatchUpdate(w.spreadsheetID, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("error formatting worksheet '%s' (%w)", w.Title(), err)
	}

	return nil
}

// A1 returns the range in A1 notation. Column names are base-26 i.e. Z is followed
// by AA.
func (r Range) A1() string {
	column, err := excelize.ColumnNumberToName(r.Column)
	if err != nil {
		column = "?"
	}

	return fmt.Sprintf("%v%v:%v%v", column, r.FirstRow, column, r.LastRow)
}

// In returns the range qualified with a worksheet title e.g. 'Visits'!C5:C10.
func (r Range) In(title string) string {
	return fmt.Sprintf("%v!%v", quote(title), r.A1())
}

func (r Range) String() string {
	return r.A1()
}

func (r Range) grid(sheetID int64) *sheets.GridRange {
	return &sheets.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    int64(r.FirstRow - 1),
		EndRowIndex:      int64(r.LastRow),
		StartColumnIndex: int64(r.Column - 1),
		EndColumnIndex:   int64(r.Column),
		ForceSendFields:  []string{"SheetId", "StartRowIndex", "StartColumnIndex"},
	}
}

func quote(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
