package main

import (
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arc-moshe/GCO-RideAmigos/internal/zone"
)

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Manage reference zone layers",
}

var zonesFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and unpack the configured TIGER/Line archives",
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher := zone.NewFetcher(http.DefaultClient, cfg.Fetch.RatePerSec)
		paths, err := fetcher.Fetch(cmd.Context(), cfg.Fetch.URLs, cfg.Fetch.DataDir)
		if err != nil {
			return err
		}
		zap.L().Info("zone layers fetched",
			zap.Int("archives", len(cfg.Fetch.URLs)),
			zap.Int("files", len(paths)),
			zap.String("dir", cfg.Fetch.DataDir),
		)
		return nil
	},
}

var zonesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the manifest layers and report zone counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := zone.LoadManifest(cfg.Zones.Manifest)
		if err != nil {
			return err
		}
		layers, err := zone.LoadLayers(manifest)
		if err != nil {
			return err
		}
		zap.L().Info("zone layers loaded",
			zap.Int("service_areas", layers.ServiceArea.Len()),
			zap.Int("zctas", layers.ZCTA.Len()),
			zap.Int("counties", layers.County.Len()),
		)
		return nil
	},
}

func init() {
	zonesCmd.AddCommand(zonesFetchCmd)
	zonesCmd.AddCommand(zonesCheckCmd)
	rootCmd.AddCommand(zonesCmd)
}
