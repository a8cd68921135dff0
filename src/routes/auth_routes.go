package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-Pulse-Feed/src/controllers"
)

// AuthRoutes sets up the root redirect plus login, registration, and logout
func AuthRoutes(app *fiber.App, auth *controllers.AuthController) {
	app.Get("/", auth.Home)
	app.Get("/login", auth.LoginPage)
	app.Post("/login", auth.Login)
	app.Get("/register", auth.RegisterPage)
	app.Post("/register", auth.Register)
	app.Get("/logout", auth.Logout)
}
