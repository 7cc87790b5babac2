package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/beetlebugorg/airspace/pkg/airspace"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: quick-start FILE...")
	}

	// Read every file; the format is detected from the content
	var sources []airspace.Source
	for _, path := range os.Args[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatal(err)
		}
		sources = append(sources, airspace.NewSource(filepath.Base(path), data))
	}

	// Load into one catalog
	catalog, warnings := airspace.LoadCatalog(sources, airspace.DefaultLoadOptions())
	fmt.Printf("Volumes: %d (%d warnings)\n", catalog.Len(), len(warnings))

	// Controlled airspace and danger areas up to 10,000ft
	rule := airspace.FilterRule{
		Classes: []airspace.Class{airspace.ClassA, airspace.ClassD, airspace.ClassDanger},
		Window:  airspace.Window{Lower: 0, Upper: 10000},
	}
	selection := airspace.Select(catalog, rule)

	for _, e := range selection.Visible() {
		fmt.Printf("  %-10s %s\n", e.Class, e.Volume.Name())
	}
}
