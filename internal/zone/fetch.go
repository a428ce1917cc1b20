package zone

import (
	"archive/zip"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Fetcher downloads and unpacks TIGER/Line zone archives. Census servers
// throttle aggressive clients, so downloads share one rate limiter.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher creates a Fetcher. ratePerSec bounds download starts per
// second; values <= 0 fall back to 1.
func NewFetcher(client *http.Client, ratePerSec float64) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if ratePerSec <= 0 {
		ratePerSec = 1
	}
	return &Fetcher{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), 1),
	}
}

// Fetch downloads each archive URL into destDir and extracts its shapefile
// components alongside it. Returns the extracted file paths.
func (f *Fetcher) Fetch(ctx context.Context, urls []string, destDir string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, eris.Wrap(err, "zone: create data dir")
	}

	log := zap.L().With(zap.String("component", "zone.fetcher"))
	var extracted []string
	for _, url := range urls {
		if err := f.limiter.Wait(ctx); err != nil {
			return extracted, eris.Wrap(err, "zone: rate limit wait")
		}

		zipPath := filepath.Join(destDir, filepath.Base(url))
		log.Info("downloading zone archive", zap.String("url", url))
		if err := f.download(ctx, url, zipPath); err != nil {
			return extracted, err
		}

		paths, err := extractZIP(zipPath, destDir)
		if err != nil {
			return extracted, err
		}
		extracted = append(extracted, paths...)
		log.Info("zone archive extracted",
			zap.String("archive", filepath.Base(zipPath)),
			zap.Int("files", len(paths)),
		)
	}
	return extracted, nil
}

func (f *Fetcher) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return eris.Wrap(err, "zone: build request")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return eris.Wrapf(err, "zone: download %s", url)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("zone: download %s returned status %d", url, resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return eris.Wrap(err, "zone: create file")
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, resp.Body); err != nil {
		return eris.Wrap(err, "zone: write file")
	}
	return nil
}

// extractZIP extracts all regular files from a ZIP archive to destDir,
// flattening entry paths and refusing entries that escape the directory.
func extractZIP(zipPath, destDir string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, eris.Wrap(err, "zone: open archive")
	}
	defer r.Close() //nolint:errcheck

	var extracted []string
	for _, entry := range r.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		destPath := filepath.Join(destDir, filepath.Base(entry.Name))
		if !strings.HasPrefix(filepath.Clean(destPath), filepath.Clean(destDir)+string(os.PathSeparator)) {
			return extracted, eris.Errorf("zone: illegal archive path %q", entry.Name)
		}

		rc, err := entry.Open()
		if err != nil {
			return extracted, eris.Wrapf(err, "zone: open archive entry %s", entry.Name)
		}
		out, err := os.Create(destPath)
		if err != nil {
			_ = rc.Close()
			return extracted, eris.Wrapf(err, "zone: create %s", destPath)
		}
		if _, err := io.Copy(out, rc); err != nil {
			_ = out.Close()
			_ = rc.Close()
			return extracted, eris.Wrapf(err, "zone: extract %s", entry.Name)
		}
		_ = out.Close()
		_ = rc.Close()
		extracted = append(extracted, destPath)
	}
	return extracted, nil
}
