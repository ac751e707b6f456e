package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"astroscope/pkg/model"
)

// FileExport exports a list of person records to a JSON file.
func FileExport(people []model.Person, filename string) error {
	data, err := json.MarshalIndent(people, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal person list: %w", err)
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// FileImport imports a list of person records from a JSON file.
func FileImport(filename string) ([]model.Person, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var people []model.Person
	if err := json.Unmarshal(data, &people); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data: %w", err)
	}

	return people, nil
}

// ResultExport writes a chart result to a file. The content is written as-is:
// pretty-printed JSON text for structured results, the raw SVG document for
// vector images.
func ResultExport(result model.ChartResult, filename string) error {
	if result.Content == "" {
		return fmt.Errorf("no chart result to export")
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filename, []byte(result.Content), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
