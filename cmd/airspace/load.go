package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/beetlebugorg/airspace/pkg/airspace"
)

var loadCmd = &cobra.Command{
	Use:   "load FILE...",
	Short: "Load airspace files and report the catalog",
	Long: "Parses every file into one catalog and prints the volume count per class " +
		"followed by any load warnings. Files may mix structured and OpenAir formats.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codes, _ := cmd.Flags().GetStringSlice("classes")
		classes, err := parseClasses(codes)
		if err != nil {
			return err
		}

		store, warnings, err := openStore(args, classes)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printCatalog(out, store.Catalog())
		printWarnings(out, warnings)
		return nil
	},
}

func init() {
	loadCmd.Flags().StringSlice("classes", nil, "only load these classes (e.g. A,D,R,Q)")
	rootCmd.AddCommand(loadCmd)
}

// printCatalog writes the volume count per class in priority order.
func printCatalog(out io.Writer, c *airspace.Catalog) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Volumes:\t%d\n", c.Len())
	for _, class := range airspace.AllClasses() {
		if n := len(c.ByClass(class)); n > 0 {
			_, _ = fmt.Fprintf(w, "  %s:\t%d\n", class, n)
		}
	}
	if c.Len() > 0 {
		b := c.Bounds()
		_, _ = fmt.Fprintf(w, "Bounds:\t%.4f,%.4f .. %.4f,%.4f\n", b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
	}
	_ = w.Flush()
}
