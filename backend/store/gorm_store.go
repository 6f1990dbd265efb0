package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"project/backend/engine"
	"project/backend/models"
)

// ProgressRecord is the database row backing one snapshot.
type ProgressRecord struct {
	gorm.Model
	UserID     uint           `gorm:"uniqueIndex:idx_progress_user_course"`
	CourseCode string         `gorm:"uniqueIndex:idx_progress_user_course"`
	Payload    datatypes.JSON `gorm:"not null"`
	SavedAt    time.Time
}

// GormStore is the durable ProgressStore backend.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Load(userID uint, courseCode string) (*models.Snapshot, error) {
	var rec ProgressRecord
	err := s.DB.Where("user_id = ? AND course_code = ?", userID, courseCode).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(rec.Payload), &snap); err != nil {
		// A payload we cannot read is as good as no snapshot; the
		// reconciler falls back to a fresh state.
		return nil, nil
	}
	return &snap, nil
}

// Save upserts the snapshot. Last write wins by SavedAt: a payload older
// than what is already stored is dropped.
func (s *GormStore) Save(userID uint, courseCode string, snap models.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	var existing ProgressRecord
	err = s.DB.Where("user_id = ? AND course_code = ?", userID, courseCode).First(&existing).Error
	if err == nil && existing.SavedAt.After(snap.SavedAt) {
		return nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}

	rec := ProgressRecord{
		UserID:     userID,
		CourseCode: courseCode,
		Payload:    datatypes.JSON(payload),
		SavedAt:    snap.SavedAt,
	}
	err = s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "saved_at", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *GormStore) Reset(userID uint, courseCode string) error {
	// Hard delete so a later save can re-create the row cleanly.
	err := s.DB.Unscoped().
		Where("user_id = ? AND course_code = ?", userID, courseCode).
		Delete(&ProgressRecord{}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}
	return nil
}
