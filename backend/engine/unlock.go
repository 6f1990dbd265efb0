package engine

import "project/backend/models"

// UnlockThreshold is the module progress percentage that unlocks the
// next module without passing the quiz.
const UnlockThreshold = 70

// UnlockOptions tunes unlock behavior. The zero value is the default
// rule set: entering a module unlocks all of its lessons at once.
type UnlockOptions struct {
	// SingleLessonUnlock restores the legacy behavior where entering a
	// module unlocks only its first lesson; later lessons still unlock
	// one by one as the previous lesson completes.
	SingleLessonUnlock bool
}

// DeriveUnlocks recomputes the lock state of every module, lesson and
// quiz from completion facts alone. It is pure and idempotent: the input
// is never mutated and re-running it on its own output is a no-op.
func DeriveUnlocks(modules []models.Module) []models.Module {
	return DeriveUnlocksWith(modules, UnlockOptions{})
}

func DeriveUnlocksWith(modules []models.Module, opts UnlockOptions) []models.Module {
	out := models.CloneModules(modules)
	for i := range out {
		m := &out[i]

		unlocked := i == 0
		if i > 0 {
			prev := out[i-1]
			unlocked = prev.Progress >= UnlockThreshold || prev.Quiz.Status == models.QuizPassed
		}
		if unlocked && m.Status == models.StatusLocked {
			enterModule(m, i, opts)
		}

		if m.Status != models.StatusLocked {
			unlockSequentialLessons(m)
		}

		// The quiz opens once every lesson is done. A module with no
		// lessons counts as all-complete.
		if m.Status != models.StatusLocked && allLessonsCompleted(*m) && m.Quiz.Status == models.QuizLocked {
			m.Quiz.Status = models.QuizNotStarted
		}
	}
	return out
}

// enterModule transitions a locked module into the not-started state and
// opens its lessons.
func enterModule(m *models.Module, index int, opts UnlockOptions) {
	if index == 0 && len(m.Lessons) > 0 {
		m.Status = models.StatusInProgress
	} else {
		m.Status = models.StatusNotStarted
	}
	for k := range m.Lessons {
		if opts.SingleLessonUnlock && k > 0 {
			break
		}
		if m.Lessons[k].Status == models.StatusLocked {
			m.Lessons[k].Status = models.StatusNotStarted
		}
	}
}

// unlockSequentialLessons opens lesson k+1 once lesson k completes.
func unlockSequentialLessons(m *models.Module) {
	for k := 0; k+1 < len(m.Lessons); k++ {
		if m.Lessons[k].Status == models.StatusCompleted && m.Lessons[k+1].Status == models.StatusLocked {
			m.Lessons[k+1].Status = models.StatusNotStarted
		}
	}
}

func allLessonsCompleted(m models.Module) bool {
	for _, l := range m.Lessons {
		if l.Status != models.StatusCompleted {
			return false
		}
	}
	return true
}
