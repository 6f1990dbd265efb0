package engine

import "project/backend/models"

// QuestionResult is the per-question verdict of a graded submission.
type QuestionResult struct {
	QuestionID string   `json:"question_id"`
	Selected   []string `json:"selected"`
	Correct    bool     `json:"correct"`
}

// GradeResult is the outcome of grading one quiz submission.
type GradeResult struct {
	Score          int              `json:"score"` // 0..100
	Passed         bool             `json:"passed"`
	TotalQuestions int              `json:"total_questions"`
	CorrectAnswers int              `json:"correct_answers"`
	PerQuestion    []QuestionResult `json:"answers"`
}

// GradeQuiz grades a submitted answer set against the quiz's answer key
// and returns the result together with the updated quiz (status and
// best-score high-water mark). A question is correct only when the
// submitted option set equals the correct set exactly; there is no
// partial credit. Answers for unknown question ids are ignored, and a
// question with no submitted answer counts as incorrect.
func GradeQuiz(quiz models.Quiz, answers map[string][]string) (GradeResult, models.Quiz) {
	result := GradeResult{TotalQuestions: len(quiz.Questions)}

	totalPoints := 0
	earnedPoints := 0
	for _, q := range quiz.Questions {
		totalPoints += q.Weight()
		selected := answers[q.ID]
		correct := sameOptionSet(selected, q.Correct)
		if correct {
			earnedPoints += q.Weight()
			result.CorrectAnswers++
		}
		result.PerQuestion = append(result.PerQuestion, QuestionResult{
			QuestionID: q.ID,
			Selected:   append([]string(nil), selected...),
			Correct:    correct,
		})
	}

	result.Score = roundPercent(earnedPoints, totalPoints)
	result.Passed = totalPoints > 0 && result.Score >= quiz.EffectivePassingScore()

	// Question content is read-only, so the updated quiz can share the
	// questions slice with the input.
	updated := quiz
	if result.Passed {
		updated.Status = models.QuizPassed
	} else {
		updated.Status = models.QuizFailed
	}
	if result.Score > updated.BestScore {
		updated.BestScore = result.Score
	}
	return result, updated
}

// sameOptionSet compares two option-id lists as sets.
func sameOptionSet(submitted, correct []string) bool {
	set := make(map[string]struct{}, len(submitted))
	for _, id := range submitted {
		set[id] = struct{}{}
	}
	if len(set) != len(correct) {
		return false
	}
	for _, id := range correct {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}
