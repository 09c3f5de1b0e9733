// Package testutil provides shared test helpers for building seeded
// reconciliation sessions.
package testutil

import (
	"strings"
	"testing"

	"github.com/ostrem/partmatch/internal/catalog"
	"github.com/ostrem/partmatch/internal/reconcile"
)

// Service creates a reconciliation service over a fresh in-memory store
// with no narrator and no row cap.
func Service(t *testing.T) *reconcile.Service {
	t.Helper()
	return reconcile.NewService(catalog.NewStore(), nil, 0, nil)
}

// CSVFile wraps inline CSV content as an upload.
func CSVFile(name, body string) reconcile.UploadFile {
	return reconcile.UploadFile{Name: name, Body: strings.NewReader(body)}
}
