package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arc-moshe/GCO-RideAmigos/internal/export"
	"github.com/arc-moshe/GCO-RideAmigos/internal/ingest"
	"github.com/arc-moshe/GCO-RideAmigos/internal/model"
	"github.com/arc-moshe/GCO-RideAmigos/internal/report"
	"github.com/arc-moshe/GCO-RideAmigos/internal/zone"
)

var (
	processUsersPath string
	processTripsPath string
	processStart     string
	processEnd       string
	processOut       string
	processZones     string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the report pipeline on Users and Trips extracts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		start, err := time.Parse("2006-01-02", processStart)
		if err != nil {
			return eris.Wrapf(err, "parse --start %q", processStart)
		}
		end, err := time.Parse("2006-01-02", processEnd)
		if err != nil {
			return eris.Wrapf(err, "parse --end %q", processEnd)
		}

		manifestPath := processZones
		if manifestPath == "" {
			manifestPath = cfg.Zones.Manifest
		}
		manifest, err := zone.LoadManifest(manifestPath)
		if err != nil {
			return err
		}

		// The two extracts and the three shapefiles load independently.
		var (
			users  []model.User
			trips  []model.Trip
			layers *zone.Layers
		)
		var g errgroup.Group
		g.Go(func() error {
			rows, err := ingest.ReadXLSX(processUsersPath)
			if err != nil {
				return err
			}
			users, err = ingest.ParseUsers(ingest.FilterUsers(rows))
			return err
		})
		g.Go(func() error {
			rows, err := ingest.ReadXLSX(processTripsPath)
			if err != nil {
				return err
			}
			trips, err = ingest.ParseTrips(ingest.FilterTrips(rows))
			return err
		})
		g.Go(func() error {
			var err error
			layers, err = zone.LoadLayers(manifest)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		result, err := report.Process(ctx, users, trips, layers, start, end)
		if err != nil {
			return err
		}

		if err := export.WriteBundle(processOut, result.Tables()); err != nil {
			return err
		}

		zap.L().Info("process complete",
			zap.String("run_id", result.RunID),
			zap.String("out", processOut),
		)
		return nil
	},
}

func init() {
	processCmd.Flags().StringVar(&processUsersPath, "users", "", "Users extract XLSX path")
	processCmd.Flags().StringVar(&processTripsPath, "trips", "", "Trips extract XLSX path")
	processCmd.Flags().StringVar(&processStart, "start", "", "reporting period start (YYYY-MM-DD)")
	processCmd.Flags().StringVar(&processEnd, "end", "", "reporting period end (YYYY-MM-DD)")
	processCmd.Flags().StringVar(&processOut, "out", "reports.zip", "output bundle path")
	processCmd.Flags().StringVar(&processZones, "zones", "", "zone manifest path (default from config)")
	processCmd.MarkFlagRequired("users")
	processCmd.MarkFlagRequired("trips")
	processCmd.MarkFlagRequired("start")
	processCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(processCmd)
}
