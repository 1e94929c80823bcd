package session

import (
	"log"
	"sort"
	"sync"
	"time"

	"kpiboard/domain/core"
	"kpiboard/domain/table"
	"kpiboard/internal/errors"
)

// Entry is one uploaded table held for the life of a browser session.
// Table and Descriptors are written once at upload and only read after
// that.
type Entry struct {
	ID          core.ID
	Filename    string
	UploadedAt  time.Time
	LastSeen    time.Time
	Table       *table.Table
	Descriptors []table.ColumnDescriptor
	SourceRows  int
	Truncated   bool
}

// Registry keeps uploaded tables in memory, keyed by id. Entries that
// sit idle past the TTL are swept by a background janitor. There is no
// persistence: a restart forgets every table.
type Registry struct {
	mu      sync.RWMutex
	entries map[core.ID]*Entry
	ttl     time.Duration

	stop chan struct{}
	once sync.Once
}

// NewRegistry starts a registry whose janitor wakes on every sweep
// interval. A TTL of zero or below disables eviction.
func NewRegistry(ttl, sweep time.Duration) *Registry {
	r := &Registry{
		entries: make(map[core.ID]*Entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	if ttl > 0 {
		if sweep <= 0 {
			sweep = time.Minute
		}
		go r.janitor(sweep)
	}
	return r
}

// Put registers a table under a fresh id and returns the stored entry.
func (r *Registry) Put(e Entry) *Entry {
	now := time.Now()
	e.ID = core.NewID()
	e.UploadedAt = now
	e.LastSeen = now

	r.mu.Lock()
	r.entries[e.ID] = &e
	r.mu.Unlock()

	log.Printf("[Registry] stored table %s (%s, %d rows)", e.ID, e.Filename, e.Table.RowCount())
	snapshot := e
	return &snapshot
}

// Get returns a snapshot of the entry and refreshes its idle clock.
func (r *Registry) Get(id core.ID) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, errors.NotFound("table")
	}
	e.LastSeen = time.Now()
	snapshot := *e
	return &snapshot, nil
}

// Delete drops an entry, reporting whether it existed.
func (r *Registry) Delete(id core.ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	return true
}

// List returns entry snapshots, most recent upload first.
func (r *Registry) List() []*Entry {
	r.mu.RLock()
	out := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		snapshot := *e
		out = append(out, &snapshot)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out
}

// Len reports how many tables are currently held.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Close stops the janitor. Safe to call more than once.
func (r *Registry) Close() {
	r.once.Do(func() { close(r.stop) })
}

func (r *Registry) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.sweep(time.Now())
		case <-r.stop:
			return
		}
	}
}

// sweep drops entries idle past the TTL, reporting how many went.
func (r *Registry) sweep(now time.Time) int {
	cutoff := now.Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.entries {
		if e.LastSeen.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[Registry] swept %d idle table(s), %d remain", removed, len(r.entries))
	}
	return removed
}
