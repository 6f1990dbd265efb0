package engine_test

import (
	"fmt"

	"project/backend/engine"
	"project/backend/models"
)

// testCourse builds a course with the given number of modules, each with
// lessonsPer lessons and a two-question quiz, in the fully-locked shape
// content arrives in.
func testCourse(moduleCount, lessonsPer int) models.CourseContent {
	var modules []models.Module
	var qubits []models.QubitsModule
	for i := 0; i < moduleCount; i++ {
		moduleID := fmt.Sprintf("m%d", i)
		var lessons []models.Lesson
		for k := 0; k < lessonsPer; k++ {
			lessons = append(lessons, models.Lesson{
				ID:          fmt.Sprintf("%s-l%d", moduleID, k),
				Title:       fmt.Sprintf("Lesson %d.%d", i, k),
				ContentType: "video",
				Status:      models.StatusLocked,
			})
		}
		modules = append(modules, models.Module{
			ID:      moduleID,
			Number:  i,
			Title:   fmt.Sprintf("Module %d", i),
			Lessons: lessons,
			Status:  models.StatusLocked,
			Quiz: models.Quiz{
				ID:           moduleID + "-quiz",
				PassingScore: 70,
				Status:       models.QuizLocked,
				Questions: []models.Question{
					{ID: moduleID + "-q0", Options: []string{"a", "b", "c"}, Correct: []string{"a"}},
					{ID: moduleID + "-q1", Options: []string{"a", "b", "c"}, Correct: []string{"b", "c"}},
				},
			},
		})
		qubits = append(qubits, models.QubitsModule{
			ModuleID:       moduleID,
			Title:          fmt.Sprintf("Module %d", i),
			TotalQuestions: 10,
			Unattempted:    10,
		})
	}
	return models.CourseContent{
		Course:  models.Course{ID: "c1", Code: "GO101", Title: "Course", TotalModules: moduleCount},
		Modules: modules,
		Qubits:  qubits,
	}
}

func completeAllLessons(modules []models.Module, moduleIdx int) []models.Module {
	out := modules
	for _, l := range modules[moduleIdx].Lessons {
		out, _ = engine.ApplyLessonComplete(out, l.ID, engine.UnlockOptions{})
	}
	return out
}
