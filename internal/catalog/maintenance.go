package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"picbox/internal/logging"
)

const maintenanceBatchSize = 100

// ErrMaintenanceBusy indicates another process holds the maintenance lock.
var ErrMaintenanceBusy = errors.New("maintenance already running")

// RegenReport summarizes a thumbnail regeneration run.
type RegenReport struct {
	Regenerated int
	Skipped     int
}

// SweepReport summarizes an orphan sweep.
type SweepReport struct {
	RemovedFiles []string
	DanglingRows []int64
}

// RegenerateThumbnails rebuilds the thumbnail of every picture from its
// stored original. Pictures whose original has gone missing are skipped and
// counted; they are reported by SweepOrphans instead. The run is guarded by a
// cross-process file lock.
func (e *Engine) RegenerateThumbnails(ctx context.Context) (*RegenReport, error) {
	unlock, err := e.lockMaintenance()
	if err != nil {
		return nil, err
	}
	defer unlock()

	report := &RegenReport{}
	var cursor int64
	for {
		batch, err := e.store.PicturesAfter(ctx, cursor, maintenanceBatchSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		if len(batch) == 0 {
			break
		}
		for _, pic := range batch {
			cursor = pic.ID
			thumbnail, err := e.files.Regenerate(pic.Filename)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					report.Skipped++
					e.logger.Warn("original missing, thumbnail not regenerated",
						logging.Int64("picture_id", pic.ID),
						logging.String("file", pic.Filename),
					)
					continue
				}
				return nil, fmt.Errorf("%w: picture %d: %w", ErrStorage, pic.ID, err)
			}
			if thumbnail != pic.Thumbnail {
				if err := e.store.UpdatePictureThumbnail(ctx, pic.ID, thumbnail); err != nil {
					return nil, fmt.Errorf("%w: %w", ErrStorage, err)
				}
			}
			report.Regenerated++
		}
	}

	e.logger.Info("thumbnails regenerated",
		logging.Int("regenerated", report.Regenerated),
		logging.Int("skipped", report.Skipped),
	)
	return report, nil
}

// SweepOrphans reconciles the content store against the catalog: files no
// row references are removed, and rows whose original file has gone missing
// are reported as dangling (but kept; removing rows is the owner's call). The
// run is guarded by a cross-process file lock.
func (e *Engine) SweepOrphans(ctx context.Context) (*SweepReport, error) {
	unlock, err := e.lockMaintenance()
	if err != nil {
		return nil, err
	}
	defer unlock()

	known, err := e.store.AllArtifactNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	entries, err := os.ReadDir(e.files.Root())
	if err != nil {
		return nil, fmt.Errorf("%w: read content store: %w", ErrStorage, err)
	}

	report := &SweepReport{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := known[name]; ok {
			continue
		}
		if err := e.files.Delete(name); err != nil {
			return nil, fmt.Errorf("%w: remove orphan %s: %w", ErrStorage, name, err)
		}
		report.RemovedFiles = append(report.RemovedFiles, name)
	}

	var cursor int64
	for {
		batch, err := e.store.PicturesAfter(ctx, cursor, maintenanceBatchSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		if len(batch) == 0 {
			break
		}
		for _, pic := range batch {
			cursor = pic.ID
			path, err := e.files.Path(pic.Filename)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrStorage, err)
			}
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				report.DanglingRows = append(report.DanglingRows, pic.ID)
			}
		}
	}

	e.logger.Info("content store swept",
		logging.Int("removed_files", len(report.RemovedFiles)),
		logging.Int("dangling_rows", len(report.DanglingRows)),
	)
	return report, nil
}

// lockMaintenance takes the cross-process maintenance lock. Only one
// regeneration or sweep may run against a data directory at a time.
func (e *Engine) lockMaintenance() (func(), error) {
	lock := flock.New(filepath.Join(e.cfg.Paths.DataDir, "maintenance.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("%w: acquire maintenance lock: %w", ErrStorage, err)
	}
	if !locked {
		return nil, ErrMaintenanceBusy
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			e.logger.Error("failed to release maintenance lock", logging.Error(err))
		}
	}, nil
}
