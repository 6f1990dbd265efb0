package models

import "gorm.io/gorm"

// QuizAttempt records one graded submission against a module quiz.
type QuizAttempt struct {
	gorm.Model
	AttemptID       string `gorm:"uniqueIndex"`
	UserID          uint   `gorm:"index"`
	CourseCode      string `gorm:"index"`
	QuizID          string `gorm:"index"`
	AttemptNumber   int
	Score           int
	Passed          bool
	TotalQuestions  int
	CorrectAnswers  int
	DurationSeconds int
}
