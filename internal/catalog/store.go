// Package catalog holds the in-memory session state: uploaded catalogs,
// the active-catalog selection, and the current client request set.
// All state lives for the process lifetime; derived views are always
// recomputed from snapshots handed out here.
package catalog

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ostrem/partmatch/internal/apperr"
	"github.com/ostrem/partmatch/internal/record"
)

// Catalog is a named, timestamped sequence of records with a stable
// identity across replaces.
type Catalog struct {
	ID         uuid.UUID
	Name       string
	UploadedAt time.Time
	Records    []record.Record
}

// Store is the single writer/many reader session state. Mutations are
// serialized by the mutex; reads return copies so callers operate on
// immutable snapshots.
type Store struct {
	mu       sync.RWMutex
	catalogs []*Catalog
	active   uuid.UUID // uuid.Nil when no catalog is active
	requests []record.Record

	now func() time.Time
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Save creates a new catalog from the given records.
func (s *Store) Save(name string, records []record.Record) Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &Catalog{
		ID:         uuid.New(),
		Name:       name,
		UploadedAt: s.now(),
		Records:    records,
	}
	s.catalogs = append(s.catalogs, c)
	return snapshot(c)
}

// Replace overwrites a catalog's name, records, and timestamp in place,
// preserving its identity (and active status, if selected).
func (s *Store) Replace(id uuid.UUID, name string, records []record.Record) (Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(id)
	if c == nil {
		return Catalog{}, apperr.ErrNotFound
	}
	c.Name = name
	c.Records = records
	c.UploadedAt = s.now()
	return snapshot(c), nil
}

// UpsertByName replaces the first catalog with the given name, or saves
// a new one. Returns the catalog and whether it was created. Used by
// drop-directory ingestion, where re-dropping a file means replace.
func (s *Store) UpsertByName(name string, records []record.Record) (Catalog, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.catalogs {
		if c.Name == name {
			c.Records = records
			c.UploadedAt = s.now()
			return snapshot(c), false
		}
	}
	c := &Catalog{
		ID:         uuid.New(),
		Name:       name,
		UploadedAt: s.now(),
		Records:    records,
	}
	s.catalogs = append(s.catalogs, c)
	return snapshot(c), true
}

// Delete removes a catalog. If it was active, the selection becomes none.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.catalogs {
		if c.ID == id {
			s.catalogs = append(s.catalogs[:i], s.catalogs[i+1:]...)
			if s.active == id {
				s.active = uuid.Nil
			}
			return nil
		}
	}
	return apperr.ErrNotFound
}

// SetActive selects the active catalog.
func (s *Store) SetActive(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(id) == nil {
		return apperr.ErrNotFound
	}
	s.active = id
	return nil
}

// Active returns a snapshot of the active catalog, or ok=false when no
// catalog is selected. Absence is a valid state, not an error.
func (s *Store) Active() (Catalog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.active == uuid.Nil {
		return Catalog{}, false
	}
	c := s.find(s.active)
	if c == nil {
		return Catalog{}, false
	}
	return snapshot(c), true
}

// Get returns a snapshot of one catalog.
func (s *Store) Get(id uuid.UUID) (Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.find(id)
	if c == nil {
		return Catalog{}, apperr.ErrNotFound
	}
	return snapshot(c), nil
}

// List returns snapshots of all catalogs in upload order, plus the
// active selection (uuid.Nil when none).
func (s *Store) List() ([]Catalog, uuid.UUID) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Catalog, 0, len(s.catalogs))
	for _, c := range s.catalogs {
		out = append(out, snapshot(c))
	}
	return out, s.active
}

// SetRequests replaces the client request set wholesale.
func (s *Store) SetRequests(records []record.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = records
}

// Requests returns a snapshot of the current client request set.
func (s *Store) Requests() []record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]record.Record, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Store) find(id uuid.UUID) *Catalog {
	for _, c := range s.catalogs {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// snapshot copies the catalog with its record slice so later replaces
// cannot reach a handed-out view. Records themselves are never mutated.
func snapshot(c *Catalog) Catalog {
	records := make([]record.Record, len(c.Records))
	copy(records, c.Records)
	return Catalog{
		ID:         c.ID,
		Name:       c.Name,
		UploadedAt: c.UploadedAt,
		Records:    records,
	}
}
