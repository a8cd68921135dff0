package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-Pulse-Feed/src/controllers"
	"github.com/theleywin/Backend-Pulse-Feed/src/middleware"
)

// PostRoutes sets up the post pages, the gated posts API, and the public
// creation endpoint that fans out notifications
func PostRoutes(app *fiber.App, post *controllers.PostController, guard *middleware.SessionGuard) {
	app.Get("/dashboard", guard.RequireWeb, post.Dashboard)
	app.Get("/posts", guard.RequireWeb, post.PostsPage)
	app.Get("/create_post", guard.RequireWeb, post.CreatePostPage)
	app.Post("/create_post", guard.RequireWeb, post.CreatePost)

	app.Get("/api/posts", guard.RequireAPI, post.APIPosts)

	// Grupo público: sin sesión, el autor viene en el payload
	app.Get("/api/public/posts_21201532", post.APIPosts)
	app.Post("/api/public/posts_21201532", post.APICreatePost)
}
