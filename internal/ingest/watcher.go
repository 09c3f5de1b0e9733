package ingest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/ostrem/partmatch/internal/catalog"
	"github.com/ostrem/partmatch/internal/record"
)

// EventCallback is called after a watcher-driven catalog change.
// kind is "catalog.created" or "catalog.updated".
type EventCallback func(kind string, name string)

// Watch starts an fsnotify watcher on the drop directory and ingests
// every CSV/XLSX file created or written there as a catalog named after
// the file stem, until ctx is cancelled. Re-dropping a file replaces
// the catalog it produced. Decode failures are logged and skipped; the
// watcher never takes the service down. It calls cb (if non-nil) after
// each successful ingestion.
func Watch(ctx context.Context, dir string, store *catalog.Store, maxRows int, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}
	logger.Info("watcher: started", slog.String("dir", dir))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			ext := strings.ToLower(filepath.Ext(ev.Name))
			if ext != ".csv" && ext != ".xlsx" {
				continue
			}
			if info, statErr := os.Stat(ev.Name); statErr != nil || info.IsDir() {
				continue
			}

			records, ingestErr := ingestFile(ev.Name, maxRows)
			if ingestErr != nil {
				logger.Warn("watcher: ingest failed",
					slog.String("path", ev.Name),
					slog.String("error", ingestErr.Error()))
				continue
			}

			name := strings.TrimSuffix(filepath.Base(ev.Name), ext)
			_, created := store.UpsertByName(name, records)
			kind := "catalog.updated"
			if created {
				kind = "catalog.created"
			}
			logger.Info("watcher: catalog ingested",
				slog.String("name", name),
				slog.Int("records", len(records)),
				slog.String("op", kind))
			if cb != nil {
				cb(kind, name)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

func ingestFile(path string, maxRows int) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := Decode(filepath.Base(path), f, maxRows)
	if err != nil {
		return nil, err
	}
	return record.Sanitize(rows), nil
}
