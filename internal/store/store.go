// Package store owns the authoritative local task collection and the last
// fetched aggregate snapshot, reconciling both with the remote store.
package store

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"taskflow/internal/service"
)

// Store holds the local copy of the task collection, ordered by
// server-reported insertion order, plus the last Stats snapshot. Local
// mutations are applied only after the remote call succeeds; a failed call
// leaves the collection untouched.
type Store struct {
	api service.API

	mu        sync.Mutex
	tasks     []service.Task
	stats     service.Stats
	haveStats bool
	loaded    bool
	loadErr   error

	// statsSeq numbers stats refreshes; statsApplied records the highest
	// sequence whose response has been applied. A stale response (lower
	// sequence) is dropped, so the latest issued refresh wins even when
	// responses arrive out of order.
	statsSeq     uint64
	statsApplied uint64
}

// New creates a Store backed by the given API.
func New(api service.API) *Store {
	return &Store{api: api}
}

// Load fetches the task collection and the stats snapshot concurrently.
// Both must complete before the store is considered loaded; if either fails
// the store enters an error state exposed via Err. Calling Load again
// retries both fetches.
func (s *Store) Load(ctx context.Context) error {
	var (
		tasks []service.Task
		stats service.Stats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.api.ListTasks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.api.TaskStats(gctx)
		return err
	})

	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.loaded = false
		s.loadErr = err
		return err
	}

	seq := s.nextStatsSeq()
	s.tasks = tasks
	s.applyStats(seq, stats)
	s.loaded = true
	s.loadErr = nil
	return nil
}

// Loaded reports whether the store has completed a successful Load.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Err returns the failure from the last Load attempt, if any.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Tasks returns a copy of the collection in display order. Callers get
// read-only snapshots; the store keeps exclusive ownership of its state.
func (s *Store) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Stats returns the last fetched snapshot. The second result is false until
// a snapshot has been fetched.
func (s *Store) Stats() (service.Stats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats, s.haveStats
}

// Find returns the task with the given ID.
func (s *Store) Find(id string) (service.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Create validates the draft, creates the task remotely and, on success,
// appends the server-returned task (with its assigned ID) to the collection
// and refreshes the stats snapshot.
func (s *Store) Create(ctx context.Context, draft service.TaskDraft) (service.Task, error) {
	if err := draft.Validate(); err != nil {
		return service.Task{}, err
	}

	created, err := s.api.CreateTask(ctx, draft)
	if err != nil {
		return service.Task{}, err
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, created)
	s.mu.Unlock()

	s.RefreshStats(ctx)
	return created, nil
}

// Update sends the full replacement task to the remote store. On success the
// matching local entry is replaced by ID (only that entry, never a full
// reload) and the stats snapshot is refreshed. On failure the collection is
// unchanged.
func (s *Store) Update(ctx context.Context, id string, draft service.TaskDraft) (service.Task, error) {
	if err := draft.Validate(); err != nil {
		return service.Task{}, err
	}

	updated, err := s.api.UpdateTask(ctx, id, draft)
	if err != nil {
		return service.Task{}, err
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i] = updated
			break
		}
	}
	s.mu.Unlock()

	s.RefreshStats(ctx)
	return updated, nil
}

// Delete requests remote deletion. On success the entry is removed from the
// collection by ID and the stats snapshot is refreshed; on failure the entry
// remains.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteTask(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.RefreshStats(ctx)
	return nil
}

// RefreshStats fetches a fresh snapshot from the server. Stats are always a
// separate round trip, never computed from the local collection: the server
// stays the single source of truth for aggregates, at the cost of a brief
// window where list and stats reflect different points in time. Refresh
// failures are swallowed; the previous snapshot simply remains visible until
// the next refresh.
func (s *Store) RefreshStats(ctx context.Context) {
	s.mu.Lock()
	seq := s.nextStatsSeq()
	s.mu.Unlock()

	stats, err := s.api.TaskStats(ctx)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.applyStats(seq, stats)
	s.mu.Unlock()
}

// nextStatsSeq allocates a sequence number for a refresh. Callers must hold
// mu.
func (s *Store) nextStatsSeq() uint64 {
	s.statsSeq++
	return s.statsSeq
}

// applyStats installs a snapshot unless a later refresh already has.
// Callers must hold mu.
func (s *Store) applyStats(seq uint64, stats service.Stats) {
	if seq < s.statsApplied {
		return
	}
	s.stats = stats
	s.haveStats = true
	s.statsApplied = seq
}
