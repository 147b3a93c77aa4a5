package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"logtracker/entry"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, entries []entry.Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, e := range entries {
		if err := writer.Write(rowValues(e)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
