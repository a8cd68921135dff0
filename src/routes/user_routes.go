package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-Pulse-Feed/src/controllers"
	"github.com/theleywin/Backend-Pulse-Feed/src/middleware"
)

// UserRoutes sets up the gated and public user listing APIs
func UserRoutes(app *fiber.App, user *controllers.UserController, guard *middleware.SessionGuard) {
	app.Get("/api/users", guard.RequireAPI, user.APIUsers)
	app.Get("/api/public/users", user.APIUsers)
}
