package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/airspace/pkg/airspace"
)

func main() {
	data, err := os.ReadFile("uk.txt")
	if err != nil {
		log.Fatal(err)
	}
	catalog, _ := airspace.LoadCatalog(
		[]airspace.Source{airspace.NewSource("uk.txt", data)},
		airspace.DefaultLoadOptions(),
	)

	// Define viewport (London area)
	viewport := airspace.Bounds{
		MinLon: -0.7, MaxLon: 0.3,
		MinLat: 51.2, MaxLat: 51.7,
	}

	// Query R-tree index for volumes on screen
	volumes := catalog.InBounds(viewport)
	fmt.Printf("Volumes in view: %d\n", len(volumes))
	for _, v := range volumes {
		fmt.Printf("  %s\n", v)
	}

	// What is the aircraft inside right now?
	here := airspace.Point{Lat: 51.47, Lon: -0.45}
	for _, v := range catalog.Containing(here) {
		fmt.Printf("Inside %s, %s\n", v.Name(), v.Altitude())
	}
}
