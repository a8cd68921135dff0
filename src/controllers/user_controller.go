package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/theleywin/Backend-Pulse-Feed/src/lib"
	"github.com/theleywin/Backend-Pulse-Feed/src/models"
)

type UserController struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func NewUserController(db *gorm.DB, log *logrus.Logger) *UserController {
	return &UserController{DB: db, Log: log}
}

// APIUsers returns the full user list. The same handler sits behind the API
// guard at /api/users and on the open public group; only the authorization
// policy differs.
func (uc *UserController) APIUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := uc.DB.Find(&users).Error; err != nil {
		uc.Log.WithError(err).Error("Failed to load users")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.ErrorResponse("Failed to fetch users"))
	}

	userDtos := make([]models.UserDto, 0, len(users))
	for _, user := range users {
		userDtos = append(userDtos, models.UserDto{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"users": userDtos,
	})
}
