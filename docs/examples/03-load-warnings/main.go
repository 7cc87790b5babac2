package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/airspace/pkg/airspace"
)

func loadFile(path string) (*airspace.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Check if file exists
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("airspace file not found: %s", path)
		}
		return nil, err
	}

	// Bad records never fail the load; they come back as warnings
	catalog, warnings := airspace.LoadCatalog(
		[]airspace.Source{airspace.NewSource(path, data)},
		airspace.DefaultLoadOptions(),
	)
	for _, w := range warnings {
		switch w.Kind {
		case airspace.WarningEmptySource:
			log.Printf("Warning: %s contains no usable airspace", path)
		case airspace.WarningCatalogConflict:
			log.Printf("Duplicate: %s", w.Record)
		default:
			log.Printf("Skipped: %v", w)
		}
	}

	for kind, n := range airspace.CountWarnings(warnings) {
		log.Printf("%s: %d", kind, n)
	}

	return catalog, nil
}

func main() {
	catalog, err := loadFile("uk.txt")
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}
	fmt.Printf("Successfully loaded %d volumes\n", catalog.Len())

	// Try a file that does not exist
	_, err = loadFile("NONEXISTENT.txt")
	if err != nil {
		log.Printf("Expected error: %v", err)
	}
}
