package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/content"
	"project/backend/engine"
	"project/backend/models"
	"project/backend/store"
	"project/backend/utils"
)

type QuizController struct {
	courses *CourseController
	DB      *gorm.DB
	Cfg     *config.Config
}

func NewQuizController(db *gorm.DB, cfg *config.Config, st store.ProgressStore, src content.Source, logger *log.Logger) *QuizController {
	return &QuizController{
		courses: NewCourseController(db, cfg, st, src, logger),
		DB:      db,
		Cfg:     cfg,
	}
}

type QuizAnswerInput struct {
	QuestionID      string   `json:"questionId" validate:"required"`
	SelectedAnswers []string `json:"selectedAnswers"`
}

type QuizSubmitInput struct {
	EnrollmentID    string            `json:"enrollmentId"`
	QuizID          string            `json:"quizId"`
	Answers         []QuizAnswerInput `json:"answers" validate:"required,dive"`
	DurationSeconds int               `json:"durationSeconds" validate:"min=0"`
}

// SubmitQuiz grades a quiz submission, updates the learner's snapshot,
// and records the attempt.
func (qc *QuizController) SubmitQuiz(c *fiber.Ctx) error {
	user, err := qc.courses.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	courseCode := c.Params("code")
	quizID := c.Params("quizId")

	var input QuizSubmitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}
	if input.QuizID != "" && input.QuizID != quizID {
		return utils.BadRequest(c, "Quiz id mismatch")
	}

	// Attempt gate before any grading work.
	var attemptsUsed int64
	err = qc.DB.Model(&models.QuizAttempt{}).
		Where("user_id = ? AND course_code = ? AND quiz_id = ?", user.ID, courseCode, quizID).
		Count(&attemptsUsed).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if qc.Cfg.QuizMaxAttempts > 0 && int(attemptsUsed) >= qc.Cfg.QuizMaxAttempts {
		return utils.Forbidden(c, "No attempts left")
	}

	_, state, degraded, err := qc.courses.loadState(user, courseCode)
	if err != nil {
		return qc.courses.respondCourseError(c, err)
	}
	if degraded {
		return utils.Fail(c, fiber.StatusServiceUnavailable, "Progress store unavailable, retry")
	}

	answers := make(map[string][]string, len(input.Answers))
	for _, a := range input.Answers {
		answers[a.QuestionID] = a.SelectedAnswers
	}

	result, modules, err := engine.ApplyQuizGrade(state.Modules, quizID, answers, qc.courses.unlockOpts())
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return utils.NotFound(c, "Quiz not found")
	case errors.Is(err, engine.ErrForbidden):
		return utils.Forbidden(c, "Quiz is locked")
	case err != nil:
		return utils.InternalServerError(c, "Could not grade quiz")
	}
	state.Modules = modules

	now := time.Now().UTC()
	state.Progress.QuestionsAttempted += result.TotalQuestions
	state.Progress.QuestionsCorrect += result.CorrectAnswers
	state.Progress.TimeSpentSeconds += input.DurationSeconds
	state.Progress = engine.RecomputeCourse(state.Modules, state.Progress, now)

	attempt := models.QuizAttempt{
		AttemptID:       uuid.NewString(),
		UserID:          user.ID,
		CourseCode:      courseCode,
		QuizID:          quizID,
		AttemptNumber:   int(attemptsUsed) + 1,
		Score:           result.Score,
		Passed:          result.Passed,
		TotalQuestions:  result.TotalQuestions,
		CorrectAnswers:  result.CorrectAnswers,
		DurationSeconds: input.DurationSeconds,
	}
	if err := qc.DB.Create(&attempt).Error; err != nil {
		return utils.InternalServerError(c, "Could not record attempt")
	}

	qc.courses.saveState(user.ID, courseCode, state, now)

	return utils.Data(c, fiber.StatusOK, fiber.Map{
		"attemptId":      attempt.AttemptID,
		"score":          result.Score,
		"passed":         result.Passed,
		"totalQuestions": result.TotalQuestions,
		"correctAnswers": result.CorrectAnswers,
		"attemptNumber":  attempt.AttemptNumber,
		"answers":        result.PerQuestion,
	})
}

// GetAttempts lists the learner's graded attempts for one quiz.
func (qc *QuizController) GetAttempts(c *fiber.Ctx) error {
	user, err := qc.courses.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	courseCode := c.Params("code")
	quizID := c.Params("quizId")

	var attempts []models.QuizAttempt
	err = qc.DB.Where("user_id = ? AND course_code = ? AND quiz_id = ?", user.ID, courseCode, quizID).
		Order("attempt_number asc").
		Find(&attempts).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	out := make([]fiber.Map, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, fiber.Map{
			"attemptId":     a.AttemptID,
			"attemptNumber": a.AttemptNumber,
			"score":         a.Score,
			"passed":        a.Passed,
			"submittedAt":   a.CreatedAt,
		})
	}
	return utils.Data(c, fiber.StatusOK, out)
}
