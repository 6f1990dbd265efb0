package engine_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project/backend/engine"
	"project/backend/models"
)

func practiceBank() []models.QubitsModule {
	return []models.QubitsModule{
		{ModuleID: "m0", TotalQuestions: 10, Unattempted: 10},
		{ModuleID: "m1", TotalQuestions: 10, Unattempted: 10},
	}
}

func sessionResults(moduleID string, correct, incorrect int) []engine.PracticeResult {
	var out []engine.PracticeResult
	for i := 0; i < correct; i++ {
		out = append(out, engine.PracticeResult{QuestionID: fmt.Sprintf("%s-q%d", moduleID, i), IsCorrect: true})
	}
	for i := 0; i < incorrect; i++ {
		out = append(out, engine.PracticeResult{QuestionID: fmt.Sprintf("%s-q%d", moduleID, correct+i), IsCorrect: false})
	}
	return out
}

func TestPracticeSessionScoreAndXP(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	results := sessionResults("m0", 6, 4) // 10 questions, 6 correct

	outcome, err := engine.GradePracticeSession(practiceBank(), models.QubitsDashboard{Streak: 3}, results, 300, now)
	require.NoError(t, err)

	assert.Equal(t, 60, outcome.Score)
	assert.Equal(t, 15, outcome.XPAwarded)
	assert.Equal(t, 0, outcome.Dashboard.Streak) // 60 < 70 resets
	assert.Equal(t, 300, outcome.Dashboard.TimeSpentSeconds)
	assert.Equal(t, now, outcome.Dashboard.LastPracticeDate)
}

func TestPracticeSessionModuleCounters(t *testing.T) {
	results := append(sessionResults("m0", 3, 1), sessionResults("m1", 1, 1)...)

	outcome, err := engine.GradePracticeSession(practiceBank(), models.QubitsDashboard{}, results, 120, time.Now())
	require.NoError(t, err)

	m0 := outcome.Modules[0]
	assert.Equal(t, 4, m0.Attempted)
	assert.Equal(t, 3, m0.Correct)
	assert.Equal(t, 1, m0.Incorrect)
	assert.Equal(t, 75, m0.Accuracy)
	assert.Equal(t, 6, m0.Unattempted)

	m1 := outcome.Modules[1]
	assert.Equal(t, 2, m1.Attempted)
	assert.Equal(t, 50, m1.Accuracy)

	assert.Equal(t, 1, outcome.Dashboard.TotalQuizzes)
	assert.Equal(t, 6, outcome.Dashboard.TotalQuestionsAttempted)
	assert.Equal(t, 67, outcome.Dashboard.OverallAccuracy) // 4/6
}

func TestPracticeAccuracyIsWeightedAcrossSessions(t *testing.T) {
	bank := practiceBank()
	dash := models.QubitsDashboard{}

	// Session 1: 2/2. Session 2: 1/8. A naive average of session scores
	// would say 56; the weighted running average is 3/10 = 30.
	outcome, err := engine.GradePracticeSession(bank, dash, sessionResults("m0", 2, 0), 60, time.Now())
	require.NoError(t, err)
	outcome, err = engine.GradePracticeSession(outcome.Modules, outcome.Dashboard, sessionResults("m1", 1, 7), 60, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 30, outcome.Dashboard.OverallAccuracy)
	assert.Equal(t, 10, outcome.Dashboard.TotalQuestionsAttempted)
}

func TestPracticeStreakIncrementsOnPassingScore(t *testing.T) {
	outcome, err := engine.GradePracticeSession(practiceBank(), models.QubitsDashboard{Streak: 2}, sessionResults("m0", 7, 3), 60, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 70, outcome.Score)
	assert.Equal(t, 3, outcome.Dashboard.Streak)
}

func TestPracticeSessionRejectsNoEligibleQuestions(t *testing.T) {
	dash := models.QubitsDashboard{TotalQuizzes: 5}

	_, err := engine.GradePracticeSession(practiceBank(), dash, nil, 60, time.Now())
	assert.ErrorIs(t, err, engine.ErrNoEligibleQuestions)

	// Unresolvable question ids are just as ineligible.
	_, err = engine.GradePracticeSession(practiceBank(), dash, []engine.PracticeResult{
		{QuestionID: "mystery-q1", IsCorrect: true},
	}, 60, time.Now())
	assert.ErrorIs(t, err, engine.ErrNoEligibleQuestions)
}

func TestPracticeSessionDropsUnknownModuleResults(t *testing.T) {
	results := append(sessionResults("m0", 2, 0), engine.PracticeResult{QuestionID: "nope-q1", IsCorrect: false})

	outcome, err := engine.GradePracticeSession(practiceBank(), models.QubitsDashboard{}, results, 60, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 100, outcome.Score)
	assert.Equal(t, 2, outcome.Dashboard.TotalQuestionsAttempted)
}

func TestPracticeSessionDoesNotMutateInputs(t *testing.T) {
	bank := practiceBank()
	dash := models.QubitsDashboard{Streak: 1}

	_, err := engine.GradePracticeSession(bank, dash, sessionResults("m0", 1, 1), 10, time.Now())
	require.NoError(t, err)

	assert.Equal(t, practiceBank(), bank)
	assert.Equal(t, 1, dash.Streak)
	assert.Equal(t, 0, dash.TotalQuizzes)
}
