package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/content"
	"project/backend/engine"
	"project/backend/store"
	"project/backend/utils"
)

// QubitsController serves the spaced-practice question bank views and
// grades practice sessions.
type QubitsController struct {
	courses *CourseController
}

func NewQubitsController(db *gorm.DB, cfg *config.Config, st store.ProgressStore, src content.Source, logger *log.Logger) *QubitsController {
	return &QubitsController{courses: NewCourseController(db, cfg, st, src, logger)}
}

func (qc *QubitsController) GetQubits(c *fiber.Ctx) error {
	user, err := qc.courses.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	courseCode := c.Params("code")

	_, state, _, err := qc.courses.loadState(user, courseCode)
	if err != nil {
		return qc.courses.respondCourseError(c, err)
	}

	return utils.Data(c, fiber.StatusOK, fiber.Map{
		"qubits_modules":   state.Qubits,
		"qubits_dashboard": state.Dashboard,
	}, fiber.Map{
		"time_spent": engine.FormatDuration(state.Dashboard.TimeSpentSeconds),
	})
}

type PracticeCompleteInput struct {
	Results        []engine.PracticeResult `json:"results"`
	ElapsedSeconds int                     `json:"elapsedSeconds" validate:"min=0"`
}

// CompletePractice grades a finished practice session and rolls its
// results into the per-module counters and the dashboard.
func (qc *QubitsController) CompletePractice(c *fiber.Ctx) error {
	user, err := qc.courses.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	courseCode := c.Params("code")

	var input PracticeCompleteInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	_, state, degraded, err := qc.courses.loadState(user, courseCode)
	if err != nil {
		return qc.courses.respondCourseError(c, err)
	}
	if degraded {
		return utils.Fail(c, fiber.StatusServiceUnavailable, "Progress store unavailable, retry")
	}

	now := time.Now().UTC()
	outcome, err := engine.GradePracticeSession(state.Qubits, state.Dashboard, input.Results, input.ElapsedSeconds, now)
	if errors.Is(err, engine.ErrNoEligibleQuestions) {
		return utils.Fail(c, fiber.StatusUnprocessableEntity, "No eligible questions in session")
	}
	if err != nil {
		return utils.InternalServerError(c, "Could not grade session")
	}

	state.Qubits = outcome.Modules
	state.Dashboard = outcome.Dashboard
	state.Progress.TimeSpentSeconds += input.ElapsedSeconds
	state.Progress = engine.RecomputeCourse(state.Modules, state.Progress, now)
	qc.courses.saveState(user.ID, courseCode, state, now)

	return utils.Data(c, fiber.StatusOK, fiber.Map{
		"score":            outcome.Score,
		"xp_awarded":       outcome.XPAwarded,
		"qubits_modules":   outcome.Modules,
		"qubits_dashboard": outcome.Dashboard,
	}, fiber.Map{
		"time_spent": engine.FormatDuration(outcome.Dashboard.TimeSpentSeconds),
	})
}
