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
	"project/backend/models"
	"project/backend/store"
	"project/backend/utils"
)

type CourseController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Store  store.ProgressStore
	Source content.Source
	Logger *log.Logger
}

func NewCourseController(db *gorm.DB, cfg *config.Config, st store.ProgressStore, src content.Source, logger *log.Logger) *CourseController {
	return &CourseController{DB: db, Cfg: cfg, Store: st, Source: src, Logger: logger}
}

func (cc *CourseController) unlockOpts() engine.UnlockOptions {
	return engine.UnlockOptions{SingleLessonUnlock: cc.Cfg.SingleLessonUnlock}
}

// currentUser resolves the authenticated user set by the auth middleware.
func (cc *CourseController) currentUser(c *fiber.Ctx) (models.User, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		id, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
		if err != nil {
			return models.User{}, err
		}
		userID = id
	}
	var user models.User
	if err := cc.DB.First(&user, userID).Error; err != nil {
		return models.User{}, fiber.NewError(fiber.StatusUnauthorized, "Unknown user")
	}
	return user, nil
}

// loadState resolves course content and reconciles it with the saved
// snapshot for this user. A load failure on the snapshot side is not
// fatal: the caller receives a fresh-derived state plus degraded=true so
// it can decide whether the operation is safe to continue.
func (cc *CourseController) loadState(user models.User, courseCode string) (*models.CourseContent, engine.InitialState, bool, error) {
	if !user.MayAccess(courseCode) {
		return nil, engine.InitialState{}, false, engine.ErrForbidden
	}

	courseContent, err := cc.Source.Course(courseCode)
	if err != nil {
		return nil, engine.InitialState{}, false, err
	}

	degraded := false
	snap, err := cc.Store.Load(user.ID, courseCode)
	if err != nil {
		cc.Logger.Printf("progress load failed for user=%d course=%s: %v", user.ID, courseCode, err)
		degraded = true
		snap = nil
	}

	return courseContent, engine.ReconcileWith(*courseContent, snap, cc.unlockOpts()), degraded, nil
}

// saveState persists the session state. Failures are logged, never
// surfaced: the in-memory state already went back to the client and the
// debounced writer retries queued snapshots.
func (cc *CourseController) saveState(userID uint, courseCode string, state engine.InitialState, now time.Time) {
	snap := models.Snapshot{
		Modules:   state.Modules,
		Qubits:    state.Qubits,
		Dashboard: state.Dashboard,
		Progress:  state.Progress,
		SavedAt:   now,
	}
	if err := cc.Store.Save(userID, courseCode, snap); err != nil {
		cc.Logger.Printf("progress save failed for user=%d course=%s: %v", userID, courseCode, err)
	}
}

func (cc *CourseController) respondCourseError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, engine.ErrForbidden):
		return utils.Forbidden(c, "Course is not in your allow-list")
	case errors.Is(err, engine.ErrNotFound):
		return utils.NotFound(c, "Course not found")
	case errors.Is(err, engine.ErrStoreUnavailable):
		return utils.Fail(c, fiber.StatusServiceUnavailable, "Progress store unavailable, retry")
	default:
		return utils.InternalServerError(c, "Could not load course")
	}
}

// GetCourse loads a course with the learner's reconciled progress state.
func (cc *CourseController) GetCourse(c *fiber.Ctx) error {
	user, err := cc.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	courseCode := c.Params("code")

	courseContent, state, degraded, err := cc.loadState(user, courseCode)
	if err != nil {
		return cc.respondCourseError(c, err)
	}

	now := time.Now().UTC()
	state.Progress = engine.RecomputeCourse(state.Modules, state.Progress, now)
	if !degraded {
		cc.saveState(user.ID, courseCode, state, now)
	}

	return utils.Data(c, fiber.StatusOK, fiber.Map{
		"course":           courseContent.Course,
		"modules":          state.Modules,
		"qubits_modules":   state.Qubits,
		"qubits_dashboard": state.Dashboard,
		"learner_progress": state.Progress,
	}, fiber.Map{
		"time_spent": engine.FormatDuration(state.Progress.TimeSpentSeconds),
		"degraded":   degraded,
	})
}

type LessonProgressInput struct {
	Percent  int `json:"percent" validate:"min=0,max=100"`
	Position int `json:"position" validate:"min=0"`
}

// UpdateLessonProgress records a playback/reading progress tick.
func (cc *CourseController) UpdateLessonProgress(c *fiber.Ctx) error {
	user, err := cc.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	courseCode := c.Params("code")
	lessonID := c.Params("lessonId")

	var input LessonProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	_, state, degraded, err := cc.loadState(user, courseCode)
	if err != nil {
		return cc.respondCourseError(c, err)
	}
	if degraded {
		// Mutating on top of a fresh fallback state would clobber real
		// progress once the store comes back.
		return utils.Fail(c, fiber.StatusServiceUnavailable, "Progress store unavailable, retry")
	}

	modules, ok := engine.ApplyLessonProgress(state.Modules, lessonID, input.Percent, input.Position, cc.unlockOpts())
	if !ok {
		return utils.NotFound(c, "Lesson not found")
	}
	state.Modules = modules

	now := time.Now().UTC()
	state.Progress = engine.RecomputeCourse(state.Modules, state.Progress, now)
	cc.saveState(user.ID, courseCode, state, now)

	return utils.Data(c, fiber.StatusOK, fiber.Map{
		"modules":          state.Modules,
		"learner_progress": state.Progress,
	})
}

// CompleteLesson marks a lesson done and re-derives unlock state.
func (cc *CourseController) CompleteLesson(c *fiber.Ctx) error {
	user, err := cc.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	courseCode := c.Params("code")
	lessonID := c.Params("lessonId")

	_, state, degraded, err := cc.loadState(user, courseCode)
	if err != nil {
		return cc.respondCourseError(c, err)
	}
	if degraded {
		return utils.Fail(c, fiber.StatusServiceUnavailable, "Progress store unavailable, retry")
	}

	modules, ok := engine.ApplyLessonComplete(state.Modules, lessonID, cc.unlockOpts())
	if !ok {
		return utils.NotFound(c, "Lesson not found")
	}
	state.Modules = modules

	now := time.Now().UTC()
	state.Progress = engine.RecomputeCourse(state.Modules, state.Progress, now)
	cc.saveState(user.ID, courseCode, state, now)

	return utils.Data(c, fiber.StatusOK, fiber.Map{
		"modules":          state.Modules,
		"learner_progress": state.Progress,
	})
}

// ResetProgress deletes the learner's snapshot and returns the clean
// first-module-unlocked state. Calling it twice is a no-op the second time.
func (cc *CourseController) ResetProgress(c *fiber.Ctx) error {
	user, err := cc.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	courseCode := c.Params("code")

	if !user.MayAccess(courseCode) {
		return utils.Forbidden(c, "Course is not in your allow-list")
	}
	courseContent, err := cc.Source.Course(courseCode)
	if err != nil {
		return cc.respondCourseError(c, err)
	}

	if err := cc.Store.Reset(user.ID, courseCode); err != nil {
		return utils.Fail(c, fiber.StatusServiceUnavailable, "Progress store unavailable, retry")
	}

	state := engine.FreshStateWith(*courseContent, cc.unlockOpts())
	return utils.Data(c, fiber.StatusOK, fiber.Map{
		"modules":          state.Modules,
		"qubits_modules":   state.Qubits,
		"qubits_dashboard": state.Dashboard,
		"learner_progress": state.Progress,
	})
}
