package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project/backend/engine"
	"project/backend/models"
)

func savedSnapshotFor(content models.CourseContent) models.Snapshot {
	state := engine.FreshState(content)
	modules := completeAllLessons(state.Modules, 0)
	modules[0].Lessons[0].LastPosition = 240
	return models.Snapshot{
		Modules:   modules,
		Qubits:    state.Qubits,
		Dashboard: models.QubitsDashboard{TotalQuizzes: 2, TotalQuestionsAttempted: 12, TotalCorrect: 9, OverallAccuracy: 75, Streak: 2, LastPracticeDate: time.Now()},
		Progress:  models.LearnerProgress{LessonsCompleted: 2, TotalLessons: 6, OverallProgress: 33},
		SavedAt:   time.Now(),
	}
}

func TestReconcileWithoutSnapshotBuildsFreshState(t *testing.T) {
	content := testCourse(3, 2)
	state := engine.Reconcile(content, nil)

	assert.Equal(t, models.StatusInProgress, state.Modules[0].Status)
	assert.Equal(t, models.StatusLocked, state.Modules[1].Status)
	assert.Equal(t, 6, state.Progress.TotalLessons)
}

func TestReconcileRestoresSavedProgress(t *testing.T) {
	content := testCourse(3, 2)
	saved := savedSnapshotFor(content)

	state := engine.Reconcile(content, &saved)

	assert.Equal(t, models.StatusCompleted, state.Modules[0].Status)
	assert.Equal(t, 100, state.Modules[0].Progress)
	assert.Equal(t, 240, state.Modules[0].Lessons[0].LastPosition)
	assert.Equal(t, models.QuizNotStarted, state.Modules[0].Quiz.Status)
	assert.Equal(t, models.StatusNotStarted, state.Modules[1].Status)
	assert.Equal(t, 2, state.Dashboard.TotalQuizzes)
	assert.Equal(t, 33, state.Progress.OverallProgress)
}

func TestReconcileFreshContentWinsForContentFields(t *testing.T) {
	content := testCourse(2, 2)
	saved := savedSnapshotFor(content)
	// Content team renamed a lesson and swapped a question since the save.
	saved.Modules[0].Lessons[0].Title = "Old Title"
	saved.Modules[0].Quiz.Questions = []models.Question{{ID: "stale", Correct: []string{"x"}}}

	state := engine.Reconcile(content, &saved)

	assert.Equal(t, "Lesson 0.0", state.Modules[0].Lessons[0].Title)
	assert.Equal(t, "m0-q0", state.Modules[0].Quiz.Questions[0].ID)
}

func TestReconcileModuleAddedDiscardsSnapshot(t *testing.T) {
	saved := savedSnapshotFor(testCourse(2, 2))
	fresh := testCourse(3, 2)

	state := engine.Reconcile(fresh, &saved)

	require.Len(t, state.Modules, 3)
	assert.Equal(t, models.StatusInProgress, state.Modules[0].Status)
	assert.Equal(t, 0, state.Modules[0].Progress)
	assert.Equal(t, models.StatusLocked, state.Modules[1].Status)
	assert.Equal(t, 0, state.Dashboard.TotalQuizzes)
}

func TestReconcileLessonCountChangeDiscardsSnapshot(t *testing.T) {
	saved := savedSnapshotFor(testCourse(2, 2))
	fresh := testCourse(2, 3)

	state := engine.Reconcile(fresh, &saved)
	assert.Equal(t, 0, state.Modules[0].Progress)
	assert.Equal(t, models.StatusInProgress, state.Modules[0].Status)
}

func TestReconcileLastPositionNeverRegresses(t *testing.T) {
	content := testCourse(2, 2)
	saved := savedSnapshotFor(content)
	saved.Modules[0].Lessons[0].LastPosition = 500

	state := engine.Reconcile(content, &saved)
	assert.Equal(t, 500, state.Modules[0].Lessons[0].LastPosition)

	// Saved position zero against a fresh default stays zero.
	saved.Modules[0].Lessons[0].LastPosition = 0
	state = engine.Reconcile(content, &saved)
	assert.Equal(t, 0, state.Modules[0].Lessons[0].LastPosition)
}

func TestReconcileBestScoreKept(t *testing.T) {
	content := testCourse(1, 1)
	saved := savedSnapshotFor(content)
	saved.Modules[0].Quiz.Status = models.QuizPassed
	saved.Modules[0].Quiz.BestScore = 85

	state := engine.Reconcile(content, &saved)
	assert.Equal(t, models.QuizPassed, state.Modules[0].Quiz.Status)
	assert.Equal(t, 85, state.Modules[0].Quiz.BestScore)
}

func TestReconcileDoesNotMutateInputs(t *testing.T) {
	content := testCourse(2, 2)
	saved := savedSnapshotFor(content)

	contentBefore := models.CloneModules(content.Modules)
	savedBefore := models.CloneModules(saved.Modules)

	engine.Reconcile(content, &saved)

	assert.Equal(t, contentBefore, content.Modules)
	assert.Equal(t, savedBefore, saved.Modules)
}

func TestFreshStateIsDeterministic(t *testing.T) {
	content := testCourse(3, 2)
	a := engine.FreshState(content)
	b := engine.FreshState(content)
	assert.Equal(t, a, b)
}

func TestFreshStateWithSingleLessonUnlock(t *testing.T) {
	content := testCourse(2, 3)
	state := engine.FreshStateWith(content, engine.UnlockOptions{SingleLessonUnlock: true})

	lessons := state.Modules[0].Lessons
	assert.Equal(t, models.StatusNotStarted, lessons[0].Status)
	assert.Equal(t, models.StatusLocked, lessons[1].Status)
	assert.Equal(t, models.StatusLocked, lessons[2].Status)
}

func TestReconcileWithKeepsLaterLessonsLocked(t *testing.T) {
	content := testCourse(1, 3)
	opts := engine.UnlockOptions{SingleLessonUnlock: true}

	state := engine.FreshStateWith(content, opts)
	modules, ok := engine.ApplyLessonComplete(state.Modules, "m0-l0", opts)
	require.True(t, ok)

	saved := models.Snapshot{
		Modules:  modules,
		Progress: state.Progress,
		SavedAt:  time.Now(),
	}

	// A reload must not re-derive lesson 2 open while lesson 1 is still
	// unfinished.
	state = engine.ReconcileWith(content, &saved, opts)
	assert.Equal(t, models.StatusCompleted, state.Modules[0].Lessons[0].Status)
	assert.Equal(t, models.StatusNotStarted, state.Modules[0].Lessons[1].Status)
	assert.Equal(t, models.StatusLocked, state.Modules[0].Lessons[2].Status)
}
