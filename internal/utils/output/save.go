// Package output renders scan results as JSON, CSV or a terminal summary.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/law-makers/phonecrawl/pkg/models"
)

// Save writes the aggregate to path, choosing CSV for a .csv extension and JSON otherwise
func Save(agg models.AggregateResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		err = WriteCSV(file, agg)
	default:
		err = WriteJSON(file, agg)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}
