package controllers_test

import (
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/theleywin/Backend-Pulse-Feed/src/models"
)

func TestRegister_CreatesUserWithHashedPassword(t *testing.T) {
	a := newTestApp(t)

	register(t, a, "alice", "alice@x.com", "pw123")

	var user models.User
	require.NoError(t, a.DB.Where("username = ?", "alice").First(&user).Error)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.NotEqual(t, "pw123", user.PasswordHash, "raw password must never be stored")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123")))
	assert.False(t, user.CreatedAt.IsZero())
}

func TestRegister_PasswordMismatchCreatesNothing(t *testing.T) {
	a := newTestApp(t)

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("email", "alice@x.com")
	form.Set("password", "pw123")
	form.Set("confirm_password", "other")

	resp := doForm(t, a, "/register", form, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Passwords do not match")

	var count int64
	require.NoError(t, a.DB.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	a := newTestApp(t)
	register(t, a, "alice", "alice@x.com", "pw123")

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("email", "other@x.com")
	form.Set("password", "pw123")
	form.Set("confirm_password", "pw123")

	resp := doForm(t, a, "/register", form, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Username already exists")

	var count int64
	require.NoError(t, a.DB.Model(&models.User{}).Where("username = ?", "alice").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	a := newTestApp(t)
	register(t, a, "alice", "alice@x.com", "pw123")

	form := url.Values{}
	form.Set("username", "bob")
	form.Set("email", "alice@x.com")
	form.Set("password", "pw123")
	form.Set("confirm_password", "pw123")

	resp := doForm(t, a, "/register", form, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Email already exists")

	var count int64
	require.NoError(t, a.DB.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLogin_EstablishesSessionForCorrectCredentials(t *testing.T) {
	a := newTestApp(t)
	register(t, a, "alice", "alice@x.com", "pw123")

	cookie := login(t, a, "alice", "pw123")

	resp := doGet(t, a, "/dashboard", cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Welcome, alice")
}

func TestLogin_WrongPasswordDoesNotAuthenticate(t *testing.T) {
	a := newTestApp(t)
	register(t, a, "alice", "alice@x.com", "pw123")

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("password", "wrong")

	resp := doForm(t, a, "/login", form, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Invalid username or password")

	// La sesión anónima del flash no debe pasar el guard
	cookie := sessionCookie(t, resp)
	guarded := doGet(t, a, "/dashboard", cookie)
	assert.Equal(t, fiber.StatusFound, guarded.StatusCode)
	assert.Equal(t, "/login", guarded.Header.Get("Location"))
}

func TestLogin_UnknownUserGetsSameMessage(t *testing.T) {
	a := newTestApp(t)

	form := url.Values{}
	form.Set("username", "ghost")
	form.Set("password", "pw123")

	resp := doForm(t, a, "/login", form, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Invalid username or password")
}

func TestLogout_InvalidatesSessionEvenWithValidToken(t *testing.T) {
	a := newTestApp(t)
	register(t, a, "alice", "alice@x.com", "pw123")
	cookie := login(t, a, "alice", "pw123")

	resp := doGet(t, a, "/logout", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	// El token original sigue firmado correctamente, pero su registro ya no existe
	guarded := doGet(t, a, "/dashboard", cookie)
	assert.Equal(t, fiber.StatusFound, guarded.StatusCode)
	assert.Equal(t, "/login", guarded.Header.Get("Location"))
}

func TestHome_RedirectsBySessionState(t *testing.T) {
	a := newTestApp(t)

	resp := doGet(t, a, "/", nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	register(t, a, "alice", "alice@x.com", "pw123")
	cookie := login(t, a, "alice", "pw123")

	resp = doGet(t, a, "/", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}
