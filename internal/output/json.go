package output

import (
	"encoding/json"
	"os"

	"github.com/dappdex/harvest/pkg/models"
)

// SaveJSON writes records as an indented JSON array to path
func SaveJSON(records []models.Record, path string) error {
	if records == nil {
		records = []models.Record{}
	}

	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
