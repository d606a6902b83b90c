package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/manhaj/coursesearch/core"
)

// seedRecord is one course row in a seed file. Level is free-form text and
// gets normalized into one of the three tiers.
type seedRecord struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Level       string `json:"level"`
	Skills      string `json:"skills"`
	Description string `json:"description"`
	Instructor  string `json:"instructor"`
}

// loadCatalogFile parses a JSON array of course records into catalog entries.
func loadCatalogFile(filename string) ([]*core.CatalogEntry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var records []seedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("seed file %s contains no courses", filename)
	}

	entries := make([]*core.CatalogEntry, len(records))
	for i, record := range records {
		entries[i] = &core.CatalogEntry{
			Title:       record.Title,
			Category:    record.Category,
			Level:       core.ParseLevel(record.Level),
			Skills:      record.Skills,
			Description: record.Description,
			Instructor:  record.Instructor,
		}
	}
	return entries, nil
}
