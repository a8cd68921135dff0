package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/theleywin/Backend-Pulse-Feed/src/metrics"
	"github.com/theleywin/Backend-Pulse-Feed/src/models"
	"github.com/theleywin/Backend-Pulse-Feed/src/session"
)

// AuthController handles registration, login, logout, and the root
// redirect. Dependencies are injected at startup instead of read from a
// package-level variable.
type AuthController struct {
	DB       *gorm.DB
	Sessions *session.Store
	Log      *logrus.Logger
}

func NewAuthController(db *gorm.DB, sessions *session.Store, log *logrus.Logger) *AuthController {
	return &AuthController{DB: db, Sessions: sessions, Log: log}
}

// Home redirects to the dashboard when logged in, otherwise to the login page
func (ac *AuthController) Home(c *fiber.Ctx) error {
	if ac.Sessions.Current(c).Authenticated() {
		return c.Redirect("/dashboard")
	}
	return c.Redirect("/login")
}

// LoginPage renders the login form with any pending flashes
func (ac *AuthController) LoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Flashes": ac.Sessions.PopFlashes(c),
	})
}

// Login authenticates a user by username and password and binds the session
func (ac *AuthController) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	// Buscar el usuario por username
	var user models.User
	err := ac.DB.Where("username = ?", username).First(&user).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		ac.Log.WithError(err).Error("Failed to look up user for login")
	}

	// Usuario desconocido y contraseña incorrecta responden igual
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.IncrementLogin("invalid")
		if ferr := ac.Sessions.Flash(c, "error", "Invalid username or password"); ferr != nil {
			ac.Log.WithError(ferr).Error("Failed to flash login error")
		}
		return c.Render("login", fiber.Map{
			"Flashes": ac.Sessions.PopFlashes(c),
		})
	}

	if err := ac.Sessions.Login(c, user.ID, user.Username); err != nil {
		ac.Log.WithError(err).Error("Failed to establish session")
		return c.Render("login", fiber.Map{
			"Flashes": []session.Flash{{Category: "error", Message: "Invalid username or password"}},
		})
	}

	metrics.IncrementLogin("success")
	if err := ac.Sessions.Flash(c, "success", "Login successful!"); err != nil {
		ac.Log.WithError(err).Error("Failed to flash login success")
	}
	return c.Redirect("/dashboard")
}

// RegisterPage renders the registration form
func (ac *AuthController) RegisterPage(c *fiber.Ctx) error {
	return c.Render("register", fiber.Map{
		"Flashes": ac.Sessions.PopFlashes(c),
	})
}

// Register validates the registration form, hashes the password, and creates the user
func (ac *AuthController) Register(c *fiber.Ctx) error {
	username := c.FormValue("username")
	email := c.FormValue("email")
	password := c.FormValue("password")
	confirmPassword := c.FormValue("confirm_password")

	// Las validaciones cortan en el primer fallo, en este orden
	if password != confirmPassword {
		metrics.IncrementRegistration("mismatch")
		return ac.registerFailed(c, "Passwords do not match")
	}

	var existingUser models.User
	if err := ac.DB.Where("username = ?", username).First(&existingUser).Error; err == nil {
		metrics.IncrementRegistration("duplicate")
		return ac.registerFailed(c, "Username already exists")
	}

	if err := ac.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		metrics.IncrementRegistration("duplicate")
		return ac.registerFailed(c, "Email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 11)
	if err != nil {
		ac.Log.WithError(err).Error("Failed to hash password")
		metrics.IncrementRegistration("failed")
		return ac.registerFailed(c, "Registration failed. Please try again.")
	}

	newUser := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	// Una carrera de unicidad termina aquí; el error nunca llega al navegador
	if err := ac.DB.Create(&newUser).Error; err != nil {
		ac.Log.WithError(err).WithField("username", username).Error("Failed to create user")
		metrics.IncrementRegistration("failed")
		return ac.registerFailed(c, "Registration failed. Please try again.")
	}

	metrics.IncrementRegistration("success")
	if err := ac.Sessions.Flash(c, "success", "Registration successful! Please login."); err != nil {
		ac.Log.WithError(err).Error("Failed to flash registration success")
	}
	return c.Redirect("/login")
}

// Logout clears the session unconditionally and redirects to the login page
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Sessions.Destroy(c); err != nil {
		ac.Log.WithError(err).Error("Failed to destroy session")
	}

	// Flash sobre una sesión anónima nueva para que /login lo muestre
	if err := ac.Sessions.Flash(c, "info", "You have been logged out"); err != nil {
		ac.Log.WithError(err).Error("Failed to flash logout message")
	}
	return c.Redirect("/login")
}

func (ac *AuthController) registerFailed(c *fiber.Ctx, message string) error {
	if err := ac.Sessions.Flash(c, "error", message); err != nil {
		ac.Log.WithError(err).Error("Failed to flash registration error")
	}
	return c.Render("register", fiber.Map{
		"Flashes": ac.Sessions.PopFlashes(c),
	})
}
