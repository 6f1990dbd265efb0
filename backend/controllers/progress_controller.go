package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

// GetOverview summarizes the learner's graded activity across courses.
func (pc *ProgressController) GetOverview(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var totalAttempts int64
	if err := pc.DB.Model(&models.QuizAttempt{}).
		Where("user_id = ?", userID).
		Count(&totalAttempts).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	// A quiz counts as passed once, no matter how many passing attempts.
	var quizzesPassed int64
	pc.DB.Model(&models.QuizAttempt{}).
		Where("user_id = ? AND passed = ?", userID, true).
		Distinct("quiz_id").
		Count(&quizzesPassed)

	var avgScore float64
	pc.DB.Model(&models.QuizAttempt{}).
		Where("user_id = ?", userID).
		Select("COALESCE(AVG(score), 0)").
		Scan(&avgScore)

	var last models.QuizAttempt
	lastErr := pc.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		First(&last).Error

	data := fiber.Map{
		"total_attempts": totalAttempts,
		"quizzes_passed": quizzesPassed,
		"average_score":  int(avgScore + 0.5),
	}
	if lastErr == nil {
		data["last_attempt_at"] = last.CreatedAt
	}
	return utils.Data(c, fiber.StatusOK, data)
}
