package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/content"
	"project/backend/controllers"
	"project/backend/middleware"
	"project/backend/store"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, st store.ProgressStore, src content.Source, logger *log.Logger) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	authMiddleware := middleware.AuthMiddleware(cfg)
	app.Get("/api/user/profile", authMiddleware, authController.GetProfile)

	// Progress overview
	progressController := controllers.NewProgressController(db, cfg)
	app.Get("/api/progress/overview", authMiddleware, progressController.GetOverview)

	// Course playback and unlock state
	courseController := controllers.NewCourseController(db, cfg, st, src, logger)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/:code", courseController.GetCourse)
	courses.Post("/:code/lessons/:lessonId/progress", courseController.UpdateLessonProgress)
	courses.Post("/:code/lessons/:lessonId/complete", courseController.CompleteLesson)
	courses.Delete("/:code/progress", courseController.ResetProgress)

	// Quizzes
	quizController := controllers.NewQuizController(db, cfg, st, src, logger)
	courses.Post("/:code/quizzes/:quizId/submit", quizController.SubmitQuiz)
	courses.Get("/:code/quizzes/:quizId/attempts", quizController.GetAttempts)

	// Qubits practice bank
	qubitsController := controllers.NewQubitsController(db, cfg, st, src, logger)
	courses.Get("/:code/qubits", qubitsController.GetQubits)
	courses.Post("/:code/practice/complete", qubitsController.CompletePractice)
}
