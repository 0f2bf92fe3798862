package file

import (
	"encoding/csv"
	"io"
)

// writeCSVLine appends a single record without buffering the whole file.
func writeCSVLine(w io.Writer, record []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(record); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
