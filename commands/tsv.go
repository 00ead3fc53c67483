package commands

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/metrika-tools/metrika-app-sheets/analytics"
)

func recordsToTSV(f io.Writer, records []analytics.Record) error {
	keys := analytics.Keys()

	// ... header
	header := make([]string, len(keys))
	for i, k := range keys {
		header[i] = string(k)
	}

	// ... write to file
	w := csv.NewWriter(f)
	w.Comma = '\t'

	w.Write(header)
	for _, r := range records {
		record := make([]string, len(keys))
		for i, k := range keys {
			if v := r[k]; v != nil {
				record[i] = fmt.Sprintf("%v", v)
			}
		}

		w.Write(record)
	}

	w.Flush()

	return w.Error()
}
