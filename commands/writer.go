package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/metrika-tools/metrika-app-sheets/analytics"
	"github.com/metrika-tools/metrika-app-sheets/gsheets"
)

type worksheet interface {
	Title() string
	Values(ctx context.Context) ([][]any, error)
	Update(ctx context.Context, updates ...gsheets.Update) error
	FormatPercent(ctx context.Context, pattern string, ranges ...gsheets.Range) error
}

// column is a destination worksheet column (0-based) and the key it holds.
type column struct {
	key   analytics.Key
	index int
}

// index matches the worksheet header row against the canonical keys. A repeated header
// moves the key to the later column.
func index(header []any) []column {
	columns := []column{}
	seen := map[analytics.Key]int{}

	for i, v := range header {
		h, ok := v.(string)
		if !ok {
			continue
		}

		key, ok := analytics.ParseKey(h)
		if !ok {
			continue
		}

		if j, ok := seen[key]; ok {
			warnf("Duplicate '%v' column in worksheet header - using column %v", key, i+1)
			columns[j].index = i
			continue
		}

		seen[key] = len(columns)
		columns = append(columns, column{key: key, index: i})
	}

	return columns
}

// cursor returns the first row after the last row with data, ignoring the header row and
// the formula columns.
func cursor(values [][]any, formulas map[int]bool) int {
	last := 1

	for i, row := range values {
		if i == 0 {
			continue
		}

		for j, v := range row {
			if !formulas[j] && !blank(v) {
				last = i + 1
				break
			}
		}
	}

	return last + 1
}

// write stores the records in the worksheet starting at row, one batch update for all the
// columns with data. The percentage columns are then formatted with the percent pattern.
func write(ctx context.Context, ws worksheet, columns []column, row int, records []analytics.Record, pattern string) error {
	if len(records) == 0 {
		return nil
	}

	if len(columns) == 0 {
		warnf("No column headers found in worksheet '%v' - make sure the first row contains the column headers", ws.Title())
		return nil
	}

	last := row + len(records) - 1
	updates := []gsheets.Update{}

	for _, c := range columns {
		values := make([]any, len(records))
		empty := true

		for i, record := range records {
			values[i] = record[c.key]
			if !blank(values[i]) {
				empty = false
			}
		}

		if empty {
			debugf("%-24v no data", c.key)
			continue
		}

		updates = append(updates, gsheets.Update{
			Range: gsheets.Range{
				Column:   c.index + 1,
				FirstRow: row,
				LastRow:  last,
			},
			Values: values,
		})
	}

	if len(updates) == 0 {
		return nil
	}

	if err := ws.Update(ctx, updates...); err != nil {
		return err
	}

	for _, u := range updates {
		debugf("Updated %v", u.Range.In(ws.Title()))
	}

	infof("Wrote %v rows to worksheet '%v' (rows %v-%v)", len(records), ws.Title(), row, last)

	ranges := []gsheets.Range{}
	for _, k := range analytics.Percentages() {
		for _, c := range columns {
			if c.key == k {
				ranges = append(ranges, gsheets.Range{Column: c.index + 1, FirstRow: row, LastRow: last})
			}
		}
	}

	return ws.FormatPercent(ctx, pattern, ranges...)
}

func blank(v any) bool {
	if v == nil {
		return true
	}

	return strings.TrimSpace(fmt.Sprintf("%v", v)) == ""
}
