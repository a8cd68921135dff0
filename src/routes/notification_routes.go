package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-Pulse-Feed/src/controllers"
	"github.com/theleywin/Backend-Pulse-Feed/src/middleware"
)

// NotificationRoutes sets up the notifications page and the public
// notification APIs. The legacy `_21201532` paths stay reachable; each pair
// shares one handler.
func NotificationRoutes(app *fiber.App, notification *controllers.NotificationController, guard *middleware.SessionGuard) {
	app.Get("/notifications", guard.RequireWeb, notification.NotificationsPage)

	for _, prefix := range []string{"/api/public/notifications", "/api/public/notifications_21201532"} {
		app.Get(prefix+"/:username", notification.APIUserNotifications)
		app.Post(prefix+"/:username/mark-read", notification.APIMarkNotificationsRead)
	}
}
