// Package output writes the final ordered record sequence to disk.
package output

import (
	"path/filepath"
	"strings"

	"github.com/dappdex/harvest/pkg/models"
)

// Save writes records to path, picking the format from the file extension.
// Unknown extensions fall back to CSV.
func Save(records []models.Record, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SaveJSON(records, path)
	default:
		return SaveCSV(records, path)
	}
}
