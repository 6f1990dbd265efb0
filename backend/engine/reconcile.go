package engine

import "project/backend/models"

// InitialState is the in-memory state a course session starts from.
type InitialState struct {
	Modules   []models.Module        `json:"modules"`
	Qubits    []models.QubitsModule  `json:"qubits_modules"`
	Dashboard models.QubitsDashboard `json:"qubits_dashboard"`
	Progress  models.LearnerProgress `json:"learner_progress"`
}

// Reconcile merges freshly loaded course content with a previously saved
// snapshot. Saved state wins for progress-bearing fields; fresh content
// wins for everything else (titles, question banks, URLs). When the
// snapshot's module or lesson cardinality disagrees with the fresh
// content the snapshot is discarded and a clean first-module-unlocked
// state is returned. Neither input is mutated.
func Reconcile(content models.CourseContent, saved *models.Snapshot) InitialState {
	return ReconcileWith(content, saved, UnlockOptions{})
}

// ReconcileWith is Reconcile with explicit unlock options, so the
// sequential-lesson rule survives a reload instead of being re-derived
// away.
func ReconcileWith(content models.CourseContent, saved *models.Snapshot, opts UnlockOptions) InitialState {
	if saved == nil || !shapeMatches(content.Modules, saved.Modules) {
		return FreshStateWith(content, opts)
	}

	modules := models.CloneModules(content.Modules)
	for i := range modules {
		sm := saved.Modules[i]
		modules[i].Status = sm.Status
		modules[i].Progress = sm.Progress
		for k := range modules[i].Lessons {
			sl := sm.Lessons[k]
			l := &modules[i].Lessons[k]
			l.Status = sl.Status
			l.Progress = sl.Progress
			// Playback position never moves backwards on merge.
			if sl.LastPosition > l.LastPosition {
				l.LastPosition = sl.LastPosition
			}
		}
		modules[i].Quiz.Status = sm.Quiz.Status
		if sm.Quiz.BestScore > modules[i].Quiz.BestScore {
			modules[i].Quiz.BestScore = sm.Quiz.BestScore
		}
	}

	qubits := models.CloneQubits(content.Qubits)
	if len(saved.Qubits) > 0 {
		qubits = models.CloneQubits(saved.Qubits)
	}
	dashboard := content.Dashboard
	if !saved.Dashboard.LastPracticeDate.IsZero() || saved.Dashboard.TotalQuizzes > 0 {
		dashboard = saved.Dashboard
	}

	return InitialState{
		Modules:   DeriveUnlocksWith(modules, opts),
		Qubits:    qubits,
		Dashboard: dashboard,
		Progress:  saved.Progress,
	}
}

// FreshState builds the clean-slate state for a course: module 0 in
// progress with its lessons ready, everything else locked.
func FreshState(content models.CourseContent) InitialState {
	return FreshStateWith(content, UnlockOptions{})
}

// FreshStateWith is FreshState with explicit unlock options.
func FreshStateWith(content models.CourseContent, opts UnlockOptions) InitialState {
	modules := models.CloneModules(content.Modules)
	for i := range modules {
		modules[i].Status = models.StatusLocked
		modules[i].Progress = 0
		for k := range modules[i].Lessons {
			modules[i].Lessons[k].Status = models.StatusLocked
			modules[i].Lessons[k].Progress = 0
			modules[i].Lessons[k].LastPosition = 0
		}
		modules[i].Quiz.Status = models.QuizLocked
		modules[i].Quiz.BestScore = 0
	}

	state := InitialState{
		Modules:   DeriveUnlocksWith(modules, opts),
		Qubits:    models.CloneQubits(content.Qubits),
		Dashboard: content.Dashboard,
		Progress:  content.Progress,
	}
	state.Progress.TotalLessons = countLessons(state.Modules)
	return state
}

func shapeMatches(fresh, saved []models.Module) bool {
	if len(fresh) != len(saved) {
		return false
	}
	for i := range fresh {
		if len(fresh[i].Lessons) != len(saved[i].Lessons) {
			return false
		}
	}
	return true
}

func countLessons(modules []models.Module) int {
	n := 0
	for _, m := range modules {
		n += len(m.Lessons)
	}
	return n
}
