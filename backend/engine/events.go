package engine

import "project/backend/models"

// ApplyLessonProgress records a playback/reading progress tick for a
// lesson and returns the re-derived module list. Events against a locked
// lesson are ignored rather than failed, since a stale client can emit
// them. The second return is false when the lesson id is unknown.
//
// Progress and position are monotonic within a session: a tick can never
// move either backwards.
func ApplyLessonProgress(modules []models.Module, lessonID string, percent, position int, opts UnlockOptions) ([]models.Module, bool) {
	out := models.CloneModules(modules)
	mi, li, ok := findLesson(out, lessonID)
	if !ok {
		return modules, false
	}
	l := &out[mi].Lessons[li]
	if l.Status == models.StatusLocked {
		return modules, true
	}

	percent = clampPercent(percent)
	if percent > l.Progress {
		l.Progress = percent
	}
	if position > l.LastPosition {
		l.LastPosition = position
	}
	switch {
	case l.Progress >= 100:
		l.Progress = 100
		l.Status = models.StatusCompleted
	case l.Progress > 0 && l.Status == models.StatusNotStarted:
		l.Status = models.StatusInProgress
	}

	return rederive(out, opts), true
}

// ApplyLessonComplete marks a lesson finished regardless of its current
// progress percentage.
func ApplyLessonComplete(modules []models.Module, lessonID string, opts UnlockOptions) ([]models.Module, bool) {
	out := models.CloneModules(modules)
	mi, li, ok := findLesson(out, lessonID)
	if !ok {
		return modules, false
	}
	l := &out[mi].Lessons[li]
	if l.Status == models.StatusLocked {
		return modules, true
	}
	l.Progress = 100
	l.Status = models.StatusCompleted
	return rederive(out, opts), true
}

// ApplyQuizGrade grades a submission against the quiz with the given id
// and folds the updated quiz back into the module list, re-deriving
// unlocks so a pass can open the next module. Returns ErrNotFound for an
// unknown quiz id and ErrForbidden when the quiz is still locked.
func ApplyQuizGrade(modules []models.Module, quizID string, answers map[string][]string, opts UnlockOptions) (GradeResult, []models.Module, error) {
	out := models.CloneModules(modules)
	mi := -1
	for i := range out {
		if out[i].Quiz.ID == quizID {
			mi = i
			break
		}
	}
	if mi < 0 {
		return GradeResult{}, modules, ErrNotFound
	}
	if out[mi].Quiz.Status == models.QuizLocked {
		return GradeResult{}, modules, ErrForbidden
	}

	result, updated := GradeQuiz(out[mi].Quiz, answers)
	out[mi].Quiz = updated
	return result, rederive(out, opts), nil
}

// rederive recomputes module aggregates and lock state after a mutation.
// Aggregation runs before unlock derivation because the next-module rule
// reads the previous module's progress.
func rederive(modules []models.Module, opts UnlockOptions) []models.Module {
	for i := range modules {
		modules[i] = RecomputeModule(modules[i])
	}
	return DeriveUnlocksWith(modules, opts)
}

func findLesson(modules []models.Module, lessonID string) (int, int, bool) {
	for i := range modules {
		for k := range modules[i].Lessons {
			if modules[i].Lessons[k].ID == lessonID {
				return i, k, true
			}
		}
	}
	return 0, 0, false
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
