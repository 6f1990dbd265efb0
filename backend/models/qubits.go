package models

import "time"

// QubitsModule is the per-module view of the practice question bank.
// Every field is derived from practice results; the question bank itself
// is never mutated.
type QubitsModule struct {
	ModuleID       string `json:"module_id"`
	Title          string `json:"title"`
	TotalQuestions int    `json:"total_questions"`
	Attempted      int    `json:"attempted_questions"`
	Correct        int    `json:"correct_answers"`
	Incorrect      int    `json:"incorrect_answers"`
	Unattempted    int    `json:"unattempted"`
	Accuracy       int    `json:"accuracy"` // 0..100
}

// QubitsDashboard aggregates practice activity across a course.
// TotalCorrect is kept alongside the percentage so accuracy can be
// recomputed as a true weighted average instead of an average of
// session scores.
type QubitsDashboard struct {
	TotalQuizzes            int       `json:"total_quizzes"`
	TotalQuestionsAttempted int       `json:"total_questions_attempted"`
	TotalCorrect            int       `json:"total_correct"`
	OverallAccuracy         int       `json:"overall_accuracy"` // 0..100
	TimeSpentSeconds        int       `json:"time_spent_seconds"`
	Streak                  int       `json:"streak"` // consecutive passing sessions
	LastPracticeDate        time.Time `json:"last_practice_date"`
}
