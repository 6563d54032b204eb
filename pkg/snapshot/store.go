package snapshot

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	// ErrSnapshotExists is returned when a snapshot already exists for
	// the same (organization, vendor, date) key. It is an expected
	// condition, surfaced to the caller and never retried internally.
	ErrSnapshotExists = errors.New("snapshot already exists for this date")

	// ErrNotFound is returned when no snapshot matches a lookup.
	ErrNotFound = errors.New("snapshot not found")
)

// Store persists snapshots and changelog entries. Implementations must
// enforce the per-day uniqueness key at write time.
type Store interface {
	Insert(ctx context.Context, s *Snapshot) error
	Latest(ctx context.Context, orgID, vendorID string) (*Snapshot, error)
	Range(ctx context.Context, orgID, vendorID string, from, to time.Time) ([]Snapshot, error)
	AppendChange(ctx context.Context, e ChangeLogEntry) error
	Changes(ctx context.Context, orgID, vendorID string, limit int) ([]ChangeLogEntry, error)
}

type snapKey struct {
	org    string
	vendor string
	day    string
}

// MemoryStore keeps snapshots in memory. It backs tests and single-run
// CLI invocations where history does not need to outlive the process.
type MemoryStore struct {
	mu      sync.Mutex
	byKey   map[snapKey]*Snapshot
	changes []ChangeLogEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byKey: make(map[snapKey]*Snapshot)}
}

func keyFor(s *Snapshot) snapKey {
	return snapKey{org: s.OrganizationID, vendor: s.VendorID, day: s.Date.Format("2006-01-02")}
}

func (m *MemoryStore) Insert(_ context.Context, s *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := keyFor(s)
	if _, ok := m.byKey[k]; ok {
		return ErrSnapshotExists
	}
	cp := *s
	m.byKey[k] = &cp
	return nil
}

func (m *MemoryStore) Latest(_ context.Context, orgID, vendorID string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *Snapshot
	for k, s := range m.byKey {
		if k.org != orgID || k.vendor != vendorID {
			continue
		}
		if latest == nil || s.Date.After(latest.Date) {
			latest = s
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *MemoryStore) Range(_ context.Context, orgID, vendorID string, from, to time.Time) ([]Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Snapshot
	for k, s := range m.byKey {
		if k.org != orgID || k.vendor != vendorID {
			continue
		}
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *MemoryStore) AppendChange(_ context.Context, e ChangeLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changes = append(m.changes, e)
	return nil
}

func (m *MemoryStore) Changes(_ context.Context, orgID, vendorID string, limit int) ([]ChangeLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ChangeLogEntry
	for i := len(m.changes) - 1; i >= 0; i-- {
		e := m.changes[i]
		if e.OrganizationID != orgID || e.VendorID != vendorID {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
