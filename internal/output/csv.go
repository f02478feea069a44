package output

import (
	"encoding/csv"
	"os"

	"github.com/dappdex/harvest/pkg/models"
)

// SaveCSV writes records to a CSV file with the fixed field schema as the
// header row. Every record is written with every field, in schema order, so
// columns never drift between rows.
func SaveCSV(records []models.Record, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(models.FieldOrder); err != nil {
		return err
	}

	row := make([]string, len(models.FieldOrder))
	for _, rec := range records {
		for i, field := range models.FieldOrder {
			row[i] = rec[field]
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
