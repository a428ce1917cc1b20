package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arc-moshe/GCO-RideAmigos/internal/export"
	"github.com/arc-moshe/GCO-RideAmigos/internal/ingest"
	"github.com/arc-moshe/GCO-RideAmigos/internal/report"
	"github.com/arc-moshe/GCO-RideAmigos/internal/zone"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upload server for report generation",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Layers load once at startup; every request reuses them.
		manifest, err := zone.LoadManifest(cfg.Zones.Manifest)
		if err != nil {
			return err
		}
		layers, err := zone.LoadLayers(manifest)
		if err != nil {
			return err
		}

		maxUpload := int64(cfg.Server.MaxUploadMB) << 20

		// Set up routes
		mux := http.NewServeMux()

		mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		})

		mux.HandleFunc("POST /process", func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
			if err := r.ParseMultipartForm(maxUpload); err != nil {
				http.Error(w, `{"error":"invalid multipart form"}`, http.StatusBadRequest)
				return
			}

			start, err := time.Parse("2006-01-02", r.FormValue("start"))
			if err != nil {
				http.Error(w, `{"error":"start must be YYYY-MM-DD"}`, http.StatusBadRequest)
				return
			}
			end, err := time.Parse("2006-01-02", r.FormValue("end"))
			if err != nil {
				http.Error(w, `{"error":"end must be YYYY-MM-DD"}`, http.StatusBadRequest)
				return
			}

			users, err := readUpload(r, "users", ingest.FilterUsers, ingest.ParseUsers)
			if err != nil {
				http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadRequest)
				return
			}
			trips, err := readUpload(r, "trips", ingest.FilterTrips, ingest.ParseTrips)
			if err != nil {
				http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadRequest)
				return
			}

			result, err := report.Process(r.Context(), users, trips, layers, start, end)
			if err != nil {
				zap.L().Error("request processing failed", zap.Error(err))
				http.Error(w, `{"error":"processing failed"}`, http.StatusInternalServerError)
				return
			}

			w.Header().Set("Content-Type", "application/zip")
			w.Header().Set("Content-Disposition",
				fmt.Sprintf("attachment; filename=%q", "reports-"+result.RunID+".zip"))
			if err := export.WriteBundleTo(w, result.Tables()); err != nil {
				zap.L().Error("bundle streaming failed",
					zap.String("run_id", result.RunID),
					zap.Error(err),
				)
			}
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// readUpload reads one multipart XLSX field, prefilters the rows and
// parses them with the given parser.
func readUpload[T any](r *http.Request, field string, filter func([][]string) [][]string, parse func([][]string) ([]T, error)) ([]T, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, eris.Errorf("missing %s upload", field)
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s upload", field)
	}
	rows, err := ingest.ReadXLSXBytes(data)
	if err != nil {
		return nil, err
	}
	return parse(filter(rows))
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
