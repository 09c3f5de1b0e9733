package ingest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ostrem/partmatch/internal/catalog"
)

func TestWatch_IngestsDroppedCSV(t *testing.T) {
	dir := t.TempDir()
	store := catalog.NewStore()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var kinds []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, dir, store, 0, logger, func(kind, _ string) {
			mu.Lock()
			kinds = append(kinds, kind)
			mu.Unlock()
		})
	}()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "acme.csv")
	if err := os.WriteFile(path, []byte("Part Number,Manufacturer\nA1,Acme\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		list, _ := store.List()
		if len(list) == 1 {
			if list[0].Name != "acme" {
				t.Errorf("name = %q, want acme", list[0].Name)
			}
			if len(list[0].Records) != 1 {
				t.Errorf("records = %d, want 1", len(list[0].Records))
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for catalog ingestion")
		case <-time.After(50 * time.Millisecond):
		}
	}

	mu.Lock()
	gotCreated := len(kinds) > 0 && kinds[0] == "catalog.created"
	mu.Unlock()
	if !gotCreated {
		t.Errorf("callback kinds = %v, want catalog.created first", kinds)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatch_IgnoresUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	store := catalog.NewStore()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = Watch(ctx, dir, store, 0, logger, nil) }()
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	if list, _ := store.List(); len(list) != 0 {
		t.Errorf("catalogs = %d, want 0", len(list))
	}
}
