package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beetlebugorg/airspace/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "airspace",
	Short: "Load, filter and compose airspace data for a moving map",
	Long: "Reads structured (YAML/JSON) and OpenAir airspace files into one catalog, " +
		"selects volumes by class and altitude band, and layers overlay zones on top as GeoJSON.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
