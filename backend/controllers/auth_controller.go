package controllers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"
)

var validate = validator.New()

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

type RegisterInput struct {
	Username           string `json:"username" validate:"required,min=3"`
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required,min=8"`
	AllowedCourseCodes string `json:"allowed_course_codes"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	user := models.User{
		Username:           input.Username,
		Email:              strings.ToLower(input.Email),
		Role:               "user",
		AllowedCourseCodes: input.AllowedCourseCodes,
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}
	user.PasswordHash = string(hash)

	if err := ac.DB.Create(&user).Error; err != nil {
		return utils.Conflict(c, "User already exists")
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.Data(c, fiber.StatusCreated, fiber.Map{
		"user_id":  user.ID,
		"username": user.Username,
		"token":    token,
	})
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var user models.User
	err := ac.DB.Where("email = ?", strings.ToLower(input.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Unauthorized(c, "Invalid credentials")
	}
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.Data(c, fiber.StatusOK, fiber.Map{
		"user_id":              user.ID,
		"username":             user.Username,
		"role":                 user.Role,
		"allowed_course_codes": user.AllowedCourseCodes,
		"token":                token,
	})
}

func (ac *AuthController) GetProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	return utils.Data(c, fiber.StatusOK, fiber.Map{
		"user_id":              user.ID,
		"username":             user.Username,
		"email":                user.Email,
		"role":                 user.Role,
		"allowed_course_codes": user.AllowedCourseCodes,
	})
}
