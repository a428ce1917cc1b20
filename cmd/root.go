package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arc-moshe/GCO-RideAmigos/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "commute-reports",
	Short: "Commute program reporting pipeline",
	Long:  "Classifies commuter home/work locations into service areas, ZIP codes and counties, normalizes territories, and assembles the Tableau, GDOT, TDM and ESO audit reports.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
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
