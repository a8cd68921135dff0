package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/theleywin/Backend-Pulse-Feed/src/lib"
	"github.com/theleywin/Backend-Pulse-Feed/src/models"
	"github.com/theleywin/Backend-Pulse-Feed/src/session"
)

type NotificationController struct {
	DB       *gorm.DB
	Sessions *session.Store
	Log      *logrus.Logger
}

func NewNotificationController(db *gorm.DB, sessions *session.Store, log *logrus.Logger) *NotificationController {
	return &NotificationController{DB: db, Sessions: sessions, Log: log}
}

// NotificationsPage lists the session user's notifications, newest first
func (nc *NotificationController) NotificationsPage(c *fiber.Ctx) error {
	rec := nc.Sessions.Current(c)

	var notifications []models.Notification
	err := nc.DB.Where("user_id = ?", rec.UserID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		nc.Log.WithError(err).Error("Failed to load notifications")
	}

	return c.Render("notifications", fiber.Map{
		"Username":      rec.Username,
		"Notifications": notifications,
		"Flashes":       nc.Sessions.PopFlashes(c),
	})
}

// APIUserNotifications returns the named user's notifications, newest
// first. One handler serves both public notification paths.
func (nc *NotificationController) APIUserNotifications(c *fiber.Ctx) error {
	// Buscar el usuario del path
	var user models.User
	if err := nc.DB.Where("username = ?", c.Params("username")).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(lib.ErrorResponse("User not found"))
		}
		nc.Log.WithError(err).Error("Failed to look up user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.ErrorResponse("Failed to fetch user"))
	}

	var notifications []models.Notification
	err := nc.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		nc.Log.WithError(err).Error("Failed to load notifications")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.ErrorResponse("Failed to fetch notifications"))
	}

	notificationDtos := make([]models.NotificationDto, 0, len(notifications))
	for _, notification := range notifications {
		notificationDtos = append(notificationDtos, models.NotificationDto{
			ID:        notification.ID,
			Message:   notification.Message,
			IsRead:    notification.IsRead,
			CreatedAt: notification.CreatedAt,
			PostID:    notification.PostID,
		})
	}

	return c.JSON(fiber.Map{
		"notifications": notificationDtos,
	})
}

// APIMarkNotificationsRead flips every unread notification of the named
// user to read in one UPDATE. Idempotent: a re-run with nothing unread is a
// no-op that still reports success.
func (nc *NotificationController) APIMarkNotificationsRead(c *fiber.Ctx) error {
	var user models.User
	if err := nc.DB.Where("username = ?", c.Params("username")).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(lib.ErrorResponse("User not found"))
		}
		nc.Log.WithError(err).Error("Failed to look up user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.ErrorResponse("Failed to fetch user"))
	}

	result := nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true)
	if result.Error != nil {
		nc.Log.WithError(result.Error).WithField("username", user.Username).Error("Failed to mark notifications as read")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.ErrorResponse("Failed to mark notifications as read"))
	}

	return c.JSON(lib.MessageResponse("Notifications marked as read"))
}
