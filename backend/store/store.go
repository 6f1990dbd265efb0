// Package store is the persistence boundary for learner progress
// snapshots. Core derivation logic never touches it directly; callers
// load a snapshot once per course session, work in memory, and save
// after each mutation.
package store

import "project/backend/models"

// ProgressStore persists one snapshot per (user, course) pair.
//
// Load returns (nil, nil) when no snapshot exists. Implementations map
// I/O failures to engine.ErrStoreUnavailable so callers can keep serving
// the in-memory state and retry the save later.
type ProgressStore interface {
	Load(userID uint, courseCode string) (*models.Snapshot, error)
	Save(userID uint, courseCode string, snap models.Snapshot) error
	Reset(userID uint, courseCode string) error
}
