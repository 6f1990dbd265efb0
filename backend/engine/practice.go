package engine

import (
	"strings"
	"time"

	"project/backend/models"
)

// PracticeResult is one answered question from a Qubits session.
type PracticeResult struct {
	QuestionID string `json:"question_id"`
	IsCorrect  bool   `json:"is_correct"`
}

// SessionOutcome is the result of grading one practice session: the
// session score plus the updated practice-bank views.
type SessionOutcome struct {
	Score     int                    `json:"score"` // 0..100
	XPAwarded int                    `json:"xp_awarded"`
	Modules   []models.QubitsModule  `json:"qubits_modules"`
	Dashboard models.QubitsDashboard `json:"qubits_dashboard"`
}

// xpPerScore is the fixed score-to-XP ratio: xp = round(score/4).
const xpPerScore = 4

// GradePracticeSession grades a multi-module practice session. Results
// are attributed to modules by the module-id prefix on question ids
// ("<moduleID>-..."); results that resolve to no known module are
// dropped. A session with zero resolvable results is rejected with
// ErrNoEligibleQuestions before any counter moves.
func GradePracticeSession(modules []models.QubitsModule, dashboard models.QubitsDashboard, results []PracticeResult, elapsedSeconds int, now time.Time) (SessionOutcome, error) {
	eligible := make([]PracticeResult, 0, len(results))
	moduleOf := make(map[string]int, len(results))
	for _, r := range results {
		idx, ok := resolveModule(modules, r.QuestionID)
		if !ok {
			continue
		}
		moduleOf[r.QuestionID] = idx
		eligible = append(eligible, r)
	}
	if len(eligible) == 0 {
		return SessionOutcome{}, ErrNoEligibleQuestions
	}

	out := SessionOutcome{
		Modules:   models.CloneQubits(modules),
		Dashboard: dashboard,
	}

	correct := 0
	for _, r := range eligible {
		m := &out.Modules[moduleOf[r.QuestionID]]
		m.Attempted++
		if r.IsCorrect {
			m.Correct++
			correct++
		} else {
			m.Incorrect++
		}
	}
	for i := range out.Modules {
		m := &out.Modules[i]
		m.Accuracy = roundPercent(m.Correct, m.Attempted)
		m.Unattempted = m.TotalQuestions - m.Attempted
		if m.Unattempted < 0 {
			m.Unattempted = 0
		}
	}

	out.Score = roundPercent(correct, len(eligible))
	out.XPAwarded = (out.Score + xpPerScore/2) / xpPerScore

	d := &out.Dashboard
	d.TotalQuizzes++
	d.TotalQuestionsAttempted += len(eligible)
	d.TotalCorrect += correct
	// Weighted running average over all attempted questions, not an
	// average of session scores.
	d.OverallAccuracy = roundPercent(d.TotalCorrect, d.TotalQuestionsAttempted)
	if elapsedSeconds > 0 {
		d.TimeSpentSeconds += elapsedSeconds
	}
	if out.Score >= UnlockThreshold {
		d.Streak++
	} else {
		d.Streak = 0
	}
	d.LastPracticeDate = now

	return out, nil
}

// resolveModule maps a question id to the practice module whose id
// prefixes it.
func resolveModule(modules []models.QubitsModule, questionID string) (int, bool) {
	for i, m := range modules {
		if m.ModuleID != "" && strings.HasPrefix(questionID, m.ModuleID+"-") {
			return i, true
		}
	}
	return 0, false
}
