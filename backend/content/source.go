// Package content supplies read-only course definitions. The progress
// engine treats course content as versionless: whatever the source
// returns on a given load is the truth for that session.
package content

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"project/backend/engine"
	"project/backend/models"
)

// Source returns the full content bundle for one course code.
type Source interface {
	Course(courseCode string) (*models.CourseContent, error)
}

// CourseRecord stores a course definition as one JSON document, the
// shape the hosted content provider serves it in.
type CourseRecord struct {
	gorm.Model
	Code    string         `gorm:"uniqueIndex"`
	Payload datatypes.JSON `gorm:"not null"`
}

// GormSource reads course definitions from the database.
type GormSource struct {
	DB *gorm.DB
}

func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{DB: db}
}

func (s *GormSource) Course(courseCode string) (*models.CourseContent, error) {
	var rec CourseRecord
	err := s.DB.Where("code = ?", courseCode).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}

	var cc models.CourseContent
	if err := json.Unmarshal([]byte(rec.Payload), &cc); err != nil {
		return nil, fmt.Errorf("course %s: bad content payload: %w", courseCode, err)
	}
	normalize(&cc)
	return &cc, nil
}

// StaticSource serves courses from memory. Used in tests and for
// fixture-driven deployments.
type StaticSource struct {
	courses map[string]models.CourseContent
}

func NewStaticSource(courses ...models.CourseContent) *StaticSource {
	s := &StaticSource{courses: make(map[string]models.CourseContent)}
	for _, cc := range courses {
		s.courses[cc.Course.Code] = cc
	}
	return s
}

func (s *StaticSource) Course(courseCode string) (*models.CourseContent, error) {
	cc, ok := s.courses[courseCode]
	if !ok {
		return nil, engine.ErrNotFound
	}
	normalize(&cc)
	return &cc, nil
}

// normalize fills derived and defaulted fields a content author may omit.
func normalize(cc *models.CourseContent) {
	cc.Course.TotalModules = len(cc.Modules)
	for i := range cc.Modules {
		cc.Modules[i].Number = i
		if cc.Modules[i].Quiz.PassingScore <= 0 {
			cc.Modules[i].Quiz.PassingScore = models.DefaultPassingScore
		}
	}
	for i := range cc.Qubits {
		q := &cc.Qubits[i]
		if q.Attempted == 0 {
			q.Unattempted = q.TotalQuestions
		}
	}
}
