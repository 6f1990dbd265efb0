package models

import "time"

// LearnerProgress is the course-level aggregate shown on the learner dashboard.
type LearnerProgress struct {
	OverallProgress    int       `json:"overall_progress"` // 0..100
	LessonsCompleted   int       `json:"lessons_completed"`
	TotalLessons       int       `json:"total_lessons"`
	QuizzesPassed      int       `json:"quizzes_passed"`
	QuestionsAttempted int       `json:"questions_attempted"`
	QuestionsCorrect   int       `json:"questions_correct"`
	AverageScore       int       `json:"average_score"` // 0..100
	TimeSpentSeconds   int       `json:"time_spent_seconds"`
	LastAccessedAt     time.Time `json:"last_accessed_at"`
	CertificateEarned  bool      `json:"certificate_earned"`
}

// Snapshot is the persisted serialization of all progress-bearing state
// for one (learner, course) pair. Content fields inside Modules are
// carried along but fresh content always wins on reconciliation.
type Snapshot struct {
	Modules   []Module        `json:"modules"`
	Qubits    []QubitsModule  `json:"qubits_modules"`
	Dashboard QubitsDashboard `json:"qubits_dashboard"`
	Progress  LearnerProgress `json:"learner_progress"`
	SavedAt   time.Time       `json:"saved_at"`
}
