package engine

import (
	"math"
	"time"

	"project/backend/models"
)

// RecomputeModule rolls lesson progress up into the module's progress
// percentage and status. A locked module keeps its status.
func RecomputeModule(m models.Module) models.Module {
	out := m
	out.Progress = meanLessonProgress(m.Lessons)

	if m.Status == models.StatusLocked {
		return out
	}
	switch {
	case len(m.Lessons) > 0 && allLessonsCompleted(m):
		out.Status = models.StatusCompleted
	case anyLessonStarted(m):
		out.Status = models.StatusInProgress
	}
	return out
}

// RecomputeCourse rolls all module state up into the learner's
// course-level aggregate. Counters that are fed by events rather than
// derived from modules (time spent, question tallies) carry over from
// the prior aggregate.
func RecomputeCourse(modules []models.Module, prior models.LearnerProgress, now time.Time) models.LearnerProgress {
	out := prior

	totalLessons := 0
	completed := 0
	progressSum := 0
	quizzesPassed := 0
	scoreSum := 0
	scoredQuizzes := 0
	for _, m := range modules {
		for _, l := range m.Lessons {
			totalLessons++
			progressSum += l.Progress
			if l.Status == models.StatusCompleted {
				completed++
			}
		}
		switch m.Quiz.Status {
		case models.QuizPassed:
			quizzesPassed++
			scoreSum += m.Quiz.BestScore
			scoredQuizzes++
		case models.QuizFailed:
			scoreSum += m.Quiz.BestScore
			scoredQuizzes++
		}
	}

	out.TotalLessons = totalLessons
	out.LessonsCompleted = completed
	out.OverallProgress = 0
	if totalLessons > 0 {
		out.OverallProgress = roundPercent(progressSum, totalLessons*100)
	}
	out.QuizzesPassed = quizzesPassed
	out.AverageScore = 0
	if scoredQuizzes > 0 {
		out.AverageScore = int(math.Round(float64(scoreSum) / float64(scoredQuizzes)))
	}
	out.CertificateEarned = totalLessons > 0 && out.OverallProgress == 100 && quizzesPassed == len(modules)
	out.LastAccessedAt = now
	return out
}

func meanLessonProgress(lessons []models.Lesson) int {
	if len(lessons) == 0 {
		return 0
	}
	sum := 0
	for _, l := range lessons {
		sum += l.Progress
	}
	return int(math.Round(float64(sum) / float64(len(lessons))))
}

func anyLessonStarted(m models.Module) bool {
	for _, l := range m.Lessons {
		if l.Progress > 0 || l.Status == models.StatusCompleted {
			return true
		}
	}
	return false
}

// roundPercent returns round(100*num/den) clamped to [0,100].
func roundPercent(num, den int) int {
	if den <= 0 || num <= 0 {
		return 0
	}
	p := int(math.Round(100 * float64(num) / float64(den)))
	if p > 100 {
		return 100
	}
	return p
}
