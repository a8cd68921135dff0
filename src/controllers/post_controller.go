package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/theleywin/Backend-Pulse-Feed/src/lib"
	"github.com/theleywin/Backend-Pulse-Feed/src/metrics"
	"github.com/theleywin/Backend-Pulse-Feed/src/models"
	"github.com/theleywin/Backend-Pulse-Feed/src/session"
)

type PostController struct {
	DB       *gorm.DB
	Sessions *session.Store
	Log      *logrus.Logger
}

func NewPostController(db *gorm.DB, sessions *session.Store, log *logrus.Logger) *PostController {
	return &PostController{DB: db, Sessions: sessions, Log: log}
}

// Dashboard shows the session user's 5 most recent posts
func (pc *PostController) Dashboard(c *fiber.Ctx) error {
	rec := pc.Sessions.Current(c)

	var posts []models.Post
	err := pc.DB.Where("user_id = ?", rec.UserID).
		Order("created_at DESC").
		Limit(5).
		Find(&posts).Error
	if err != nil {
		pc.Log.WithError(err).Error("Failed to load dashboard posts")
	}

	return c.Render("dashboard", fiber.Map{
		"Username": rec.Username,
		"Posts":    posts,
		"Flashes":  pc.Sessions.PopFlashes(c),
	})
}

// PostsPage lists every post across all users, newest first
func (pc *PostController) PostsPage(c *fiber.Ctx) error {
	posts, err := pc.allPosts()
	if err != nil {
		pc.Log.WithError(err).Error("Failed to load posts")
	}

	return c.Render("posts", fiber.Map{
		"Posts":   posts,
		"Flashes": pc.Sessions.PopFlashes(c),
	})
}

// CreatePostPage renders the post creation form
func (pc *PostController) CreatePostPage(c *fiber.Ctx) error {
	return c.Render("create_post", fiber.Map{
		"Flashes": pc.Sessions.PopFlashes(c),
	})
}

// CreatePost creates a post owned by the session user. This form path does
// NOT fan out notifications; only the public API creation does.
func (pc *PostController) CreatePost(c *fiber.Ctx) error {
	rec := pc.Sessions.Current(c)

	title := c.FormValue("title")
	content := c.FormValue("content")

	if title == "" || content == "" {
		return pc.createPostFailed(c, "error", "Title and content are required")
	}

	newPost := models.Post{
		Title:   title,
		Content: content,
		UserID:  rec.UserID,
	}

	if err := pc.DB.Create(&newPost).Error; err != nil {
		pc.Log.WithError(err).WithField("user_id", rec.UserID).Error("Failed to create post")
		return pc.createPostFailed(c, "error", "Failed to create post. Please try again.")
	}

	metrics.IncrementPostCreated("form")
	if err := pc.Sessions.Flash(c, "success", "Post created successfully!"); err != nil {
		pc.Log.WithError(err).Error("Failed to flash post creation")
	}
	return c.Redirect("/posts")
}

// APIPosts returns every post as JSON, newest first, with the author's
// username. Registered both behind the API guard and on the public group.
func (pc *PostController) APIPosts(c *fiber.Ctx) error {
	posts, err := pc.allPosts()
	if err != nil {
		pc.Log.WithError(err).Error("Failed to load posts")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.ErrorResponse("Failed to fetch posts"))
	}

	postDtos := make([]models.PostDto, 0, len(posts))
	for _, post := range posts {
		postDtos = append(postDtos, toPostDto(post))
	}

	return c.JSON(fiber.Map{
		"posts": postDtos,
	})
}

// APICreatePost creates a post for the user named in the payload and fans
// out one notification per other user. The post insert and the notification
// batch are two separate commits: a failure between them leaves the post
// durable with no notifications written.
func (pc *PostController) APICreatePost(c *fiber.Ctx) error {
	var payload struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Username string `json:"username"`
	}

	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.ErrorResponse("No data provided"))
	}

	if payload.Title == "" || payload.Content == "" || payload.Username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.ErrorResponse("Title, content, and username are required"))
	}

	// El autor viene en el payload; este endpoint es público
	var user models.User
	if err := pc.DB.Where("username = ?", payload.Username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(lib.ErrorResponse("User not found"))
		}
		pc.Log.WithError(err).Error("Failed to look up author")
		return pc.createFailedJSON(c, err)
	}

	newPost := models.Post{
		Title:   payload.Title,
		Content: payload.Content,
		UserID:  user.ID,
	}

	// Commit 1: el post
	if err := pc.DB.Create(&newPost).Error; err != nil {
		pc.Log.WithError(err).WithField("username", user.Username).Error("Failed to create post")
		return pc.createFailedJSON(c, err)
	}

	// Commit 2: una notificación por cada otro usuario
	fannedOut, err := pc.fanOutNotifications(&newPost, &user)
	if err != nil {
		pc.Log.WithError(err).WithField("post_id", newPost.ID).Error("Notification fan-out failed after post commit")
		return pc.createFailedJSON(c, err)
	}

	metrics.IncrementPostCreated("api")
	metrics.AddNotificationsFannedOut(fannedOut)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully",
		"post": models.PostDto{
			ID:        newPost.ID,
			Title:     newPost.Title,
			Content:   newPost.Content,
			Author:    user.Username,
			CreatedAt: newPost.CreatedAt,
		},
	})
}

// fanOutNotifications writes one unread notification per user other than
// the author, in a single batch insert. Returns how many rows were written.
func (pc *PostController) fanOutNotifications(post *models.Post, author *models.User) (int, error) {
	var recipients []models.User
	if err := pc.DB.Where("id <> ?", author.ID).Find(&recipients).Error; err != nil {
		return 0, fmt.Errorf("failed to load recipients: %w", err)
	}

	if len(recipients) == 0 {
		return 0, nil
	}

	notifications := make([]models.Notification, 0, len(recipients))
	for _, recipient := range recipients {
		notifications = append(notifications, models.Notification{
			UserID:  recipient.ID,
			PostID:  post.ID,
			Message: fmt.Sprintf("New post by %s: %s", author.Username, post.Title),
			IsRead:  false,
		})
	}

	if err := pc.DB.Create(&notifications).Error; err != nil {
		return 0, fmt.Errorf("failed to create notifications: %w", err)
	}

	return len(notifications), nil
}

func (pc *PostController) allPosts() ([]models.Post, error) {
	var posts []models.Post
	err := pc.DB.Preload("Author").
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (pc *PostController) createPostFailed(c *fiber.Ctx, category, message string) error {
	if err := pc.Sessions.Flash(c, category, message); err != nil {
		pc.Log.WithError(err).Error("Failed to flash post creation error")
	}
	return c.Render("create_post", fiber.Map{
		"Flashes": pc.Sessions.PopFlashes(c),
	})
}

// createFailedJSON is the one error surface that exposes details to the
// caller.
func (pc *PostController) createFailedJSON(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Failed to create post",
		"details": err.Error(),
	})
}

// Helper function to convert Post model to PostDto
func toPostDto(post models.Post) models.PostDto {
	return models.PostDto{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Author:    post.Author.Username,
		CreatedAt: post.CreatedAt,
	}
}
