// Package reconcile coordinates the session store with the match,
// insights, report, and brief computations. Every derived view is
// recomputed from store snapshots on each call.
package reconcile

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ostrem/partmatch/internal/brief"
	"github.com/ostrem/partmatch/internal/catalog"
	"github.com/ostrem/partmatch/internal/ingest"
	"github.com/ostrem/partmatch/internal/insights"
	"github.com/ostrem/partmatch/internal/match"
	"github.com/ostrem/partmatch/internal/record"
	"github.com/ostrem/partmatch/internal/report"
)

const detailSampleSize = 5

// Notifier receives session-change events (for SSE fan-out).
type Notifier func(kind string, data map[string]string)

// Service is the application service behind the API and MCP surfaces.
type Service struct {
	store    *catalog.Store
	narrator brief.Narrator
	maxRows  int
	notify   Notifier
}

// NewService creates a service. narrator and notify may be nil.
func NewService(store *catalog.Store, narrator brief.Narrator, maxRows int, notify Notifier) *Service {
	return &Service{store: store, narrator: narrator, maxRows: maxRows, notify: notify}
}

// CatalogSummary describes one catalog for list responses.
type CatalogSummary struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	UploadedAt           time.Time `json:"uploaded_at"`
	Records              int       `json:"records"`
	DuplicateIdentifiers int       `json:"duplicate_identifiers"`
	Active               bool      `json:"active"`
}

// CatalogDetail is a summary plus a bounded record sample.
type CatalogDetail struct {
	CatalogSummary
	Sample []record.Record `json:"sample"`
}

// UploadFile is one uploaded file body with its original filename.
type UploadFile struct {
	Name string
	Body io.Reader
}

// UploadCatalog decodes and sanitizes an uploaded file into a new
// catalog. An empty name defaults to the filename stem.
func (s *Service) UploadCatalog(_ context.Context, name string, file UploadFile) (catalog.Catalog, error) {
	records, err := s.ingest(file)
	if err != nil {
		return catalog.Catalog{}, err
	}
	if name == "" {
		name = stem(file.Name)
	}
	c := s.store.Save(name, records)
	s.publish("catalog.created", map[string]string{"id": c.ID.String(), "name": c.Name})
	return c, nil
}

// ReplaceCatalog overwrites an existing catalog's contents in place.
func (s *Service) ReplaceCatalog(_ context.Context, id uuid.UUID, name string, file UploadFile) (catalog.Catalog, error) {
	records, err := s.ingest(file)
	if err != nil {
		return catalog.Catalog{}, err
	}
	if name == "" {
		name = stem(file.Name)
	}
	c, err := s.store.Replace(id, name, records)
	if err != nil {
		return catalog.Catalog{}, err
	}
	s.publish("catalog.updated", map[string]string{"id": c.ID.String(), "name": c.Name})
	return c, nil
}

// DeleteCatalog removes a catalog; the active selection is cleared when
// it pointed there.
func (s *Service) DeleteCatalog(_ context.Context, id uuid.UUID) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.publish("catalog.deleted", map[string]string{"id": id.String()})
	return nil
}

// ActivateCatalog selects the active catalog.
func (s *Service) ActivateCatalog(_ context.Context, id uuid.UUID) error {
	if err := s.store.SetActive(id); err != nil {
		return err
	}
	s.publish("catalog.activated", map[string]string{"id": id.String()})
	return nil
}

// Catalogs lists all catalogs in upload order.
func (s *Service) Catalogs(_ context.Context) []CatalogSummary {
	list, active := s.store.List()
	out := make([]CatalogSummary, 0, len(list))
	for _, c := range list {
		out = append(out, summarize(c, c.ID == active))
	}
	return out
}

// Catalog returns one catalog with a record sample.
func (s *Service) Catalog(_ context.Context, id uuid.UUID) (CatalogDetail, error) {
	c, err := s.store.Get(id)
	if err != nil {
		return CatalogDetail{}, err
	}
	_, active := s.store.List()
	sample := c.Records
	if len(sample) > detailSampleSize {
		sample = sample[:detailSampleSize]
	}
	return CatalogDetail{
		CatalogSummary: summarize(c, c.ID == active),
		Sample:         sample,
	}, nil
}

// UploadRequests replaces the client request set with the records from
// the given files, concatenated in upload order. Returns the record count.
func (s *Service) UploadRequests(_ context.Context, files []UploadFile) (int, error) {
	var all []record.Record
	for _, file := range files {
		records, err := s.ingest(file)
		if err != nil {
			return 0, err
		}
		all = append(all, records...)
	}
	s.store.SetRequests(all)
	s.publish("requests.replaced", map[string]string{})
	return len(all), nil
}

// Match recomputes the partition of the current request set against the
// active catalog. query, when non-empty, filters the found pairs; the
// missing list is never filtered. Absent catalog or requests yield an
// empty partition.
func (s *Service) Match(_ context.Context, query string) match.Result {
	res := s.matchAll()
	res.Found = insights.FilterFound(res.Found, query)
	return res
}

// InsightsReport bundles every aggregate view.
type InsightsReport struct {
	Coverage         insights.CoverageStats  `json:"coverage"`
	Duplicates       insights.DuplicateStats `json:"duplicates"`
	TopManufacturers []insights.TopEntry     `json:"top_manufacturers"`
	TopFamilies      []insights.TopEntry     `json:"top_families"`
}

// Insights recomputes coverage, duplicate, and distribution aggregates.
func (s *Service) Insights(_ context.Context) InsightsReport {
	res := s.matchAll()
	return InsightsReport{
		Coverage:         insights.Coverage(res),
		Duplicates:       insights.Duplicates(s.store.Requests()),
		TopManufacturers: insights.TopManufacturers(res.Found),
		TopFamilies:      insights.TopFamilies(res.Found),
	}
}

// Export renders the current match state as quoted CSV.
func (s *Service) Export(_ context.Context) []byte {
	requests := s.store.Requests()
	res := s.matchAll()
	return report.EncodeCSV(report.Build(requests, res))
}

// Brief asks the narrator for a coverage summary over the current
// session. Narrator failures are returned verbatim; they never affect
// match or insight state.
func (s *Service) Brief(ctx context.Context) (string, error) {
	if s.narrator == nil {
		return "", errors.New("no narrator configured")
	}
	active, _ := s.store.Active()
	requests := s.store.Requests()
	res := s.matchAll()
	payload := brief.BuildPayload(active.Name, active.Records, requests, res)
	return s.narrator.Narrate(ctx, payload.Prompt())
}

// Lookup finds the active-catalog record for a raw identifier. The
// identifier is normalized the same way catalog keys are.
func (s *Service) Lookup(_ context.Context, identifier string) (record.Record, bool) {
	active, ok := s.store.Active()
	if !ok {
		return record.Record{}, false
	}
	key := strings.ToUpper(strings.TrimSpace(identifier))
	return match.BuildIndex(active.Records).Lookup(key)
}

func (s *Service) matchAll() match.Result {
	var catalogRecords []record.Record
	if active, ok := s.store.Active(); ok {
		catalogRecords = active.Records
	}
	idx := match.BuildIndex(catalogRecords)
	return match.Match(idx, s.store.Requests())
}

func (s *Service) ingest(file UploadFile) ([]record.Record, error) {
	rows, err := ingest.Decode(file.Name, file.Body, s.maxRows)
	if err != nil {
		return nil, err
	}
	return record.Sanitize(rows), nil
}

func (s *Service) publish(kind string, data map[string]string) {
	if s.notify != nil {
		s.notify(kind, data)
	}
}

func summarize(c catalog.Catalog, active bool) CatalogSummary {
	return CatalogSummary{
		ID:                   c.ID,
		Name:                 c.Name,
		UploadedAt:           c.UploadedAt,
		Records:              len(c.Records),
		DuplicateIdentifiers: match.BuildIndex(c.Records).Collisions(),
		Active:               active,
	}
}

func stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
