package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var composeCmd = &cobra.Command{
	Use:   "compose FILE...",
	Short: "Compose the drawable set as GeoJSON",
	Long: "Selects volumes as the select command does, layers the overlay files on top " +
		"and writes the result as a GeoJSON FeatureCollection.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, warnings, err := openStore(args, nil)
		if err != nil {
			return err
		}

		rule, labels, settings, err := selectionFlags(cmd)
		if err != nil {
			return err
		}

		overlayPaths, _ := cmd.Flags().GetStringSlice("overlay")
		overlays, err := readSources(overlayPaths)
		if err != nil {
			return err
		}

		opts := settings.ComposeOptions()
		enable, _ := cmd.Flags().GetStringSlice("enable")
		opts.Enabled = append(opts.Enabled, enable...)

		set, composeWarnings := store.Compose(rule, labels, overlays, opts)
		warnings = append(warnings, composeWarnings...)

		data, err := set.GeoJSON()
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		} else if err := os.WriteFile(output, data, 0o644); err != nil {
			return eris.Wrapf(err, "write %s", output)
		}

		printWarnings(cmd.ErrOrStderr(), warnings)
		return nil
	},
}

func init() {
	addSelectionFlags(composeCmd)
	composeCmd.Flags().StringSlice("overlay", nil, "overlay zone files")
	composeCmd.Flags().StringSlice("enable", nil, "opt-in zones or groups to draw")
	composeCmd.Flags().StringP("output", "o", "", "write GeoJSON to file (default: stdout)")
	rootCmd.AddCommand(composeCmd)
}
