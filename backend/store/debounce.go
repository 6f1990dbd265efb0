package store

import (
	"sync"
	"time"

	"project/backend/models"
)

type progressKey struct {
	userID     uint
	courseCode string
}

// DebouncedWriter wraps a ProgressStore and coalesces Save calls per
// (user, course) key. High-frequency callers (video position ticks) can
// save after every event; only the latest snapshot within the window
// reaches the underlying store. Load and Reset pass through, with Reset
// discarding any pending write for the key.
type DebouncedWriter struct {
	inner  ProgressStore
	window time.Duration

	mu      sync.Mutex
	pending map[progressKey]models.Snapshot
	timers  map[progressKey]*time.Timer
}

func NewDebouncedWriter(inner ProgressStore, window time.Duration) *DebouncedWriter {
	return &DebouncedWriter{
		inner:   inner,
		window:  window,
		pending: make(map[progressKey]models.Snapshot),
		timers:  make(map[progressKey]*time.Timer),
	}
}

func (w *DebouncedWriter) Load(userID uint, courseCode string) (*models.Snapshot, error) {
	w.mu.Lock()
	if snap, ok := w.pending[progressKey{userID, courseCode}]; ok {
		w.mu.Unlock()
		return &snap, nil
	}
	w.mu.Unlock()
	return w.inner.Load(userID, courseCode)
}

func (w *DebouncedWriter) Save(userID uint, courseCode string, snap models.Snapshot) error {
	k := progressKey{userID, courseCode}
	w.mu.Lock()
	defer w.mu.Unlock()
	if existing, ok := w.pending[k]; ok && existing.SavedAt.After(snap.SavedAt) {
		return nil
	}
	w.pending[k] = snap
	if _, armed := w.timers[k]; !armed {
		w.timers[k] = time.AfterFunc(w.window, func() {
			w.flushKey(k)
		})
	}
	return nil
}

func (w *DebouncedWriter) Reset(userID uint, courseCode string) error {
	k := progressKey{userID, courseCode}
	w.mu.Lock()
	delete(w.pending, k)
	if t, ok := w.timers[k]; ok {
		t.Stop()
		delete(w.timers, k)
	}
	w.mu.Unlock()
	return w.inner.Reset(userID, courseCode)
}

// Flush writes every pending snapshot immediately. Called on shutdown.
func (w *DebouncedWriter) Flush() {
	w.mu.Lock()
	entries := make(map[progressKey]models.Snapshot, len(w.pending))
	for k, snap := range w.pending {
		entries[k] = snap
		if t, ok := w.timers[k]; ok {
			t.Stop()
		}
	}
	w.pending = make(map[progressKey]models.Snapshot)
	w.timers = make(map[progressKey]*time.Timer)
	w.mu.Unlock()

	for k, snap := range entries {
		// A failed write is re-queued so a transient outage never
		// silently drops progress.
		if err := w.inner.Save(k.userID, k.courseCode, snap); err != nil {
			_ = w.Save(k.userID, k.courseCode, snap)
		}
	}
}

func (w *DebouncedWriter) flushKey(k progressKey) {
	w.mu.Lock()
	snap, ok := w.pending[k]
	delete(w.pending, k)
	delete(w.timers, k)
	w.mu.Unlock()
	if !ok {
		return
	}
	if err := w.inner.Save(k.userID, k.courseCode, snap); err != nil {
		_ = w.Save(k.userID, k.courseCode, snap)
	}
}
