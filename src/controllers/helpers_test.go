package controllers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/theleywin/Backend-Pulse-Feed/src/app"
	"github.com/theleywin/Backend-Pulse-Feed/src/config"
	"github.com/theleywin/Backend-Pulse-Feed/src/session"
)

// newTestApp builds a full application against an in-memory sqlite database
// and an in-process redis, so every test exercises the real wiring.
func newTestApp(t *testing.T) *app.App {
	t.Helper()

	mr := miniredis.RunT(t)

	dbName := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &config.Config{
		Port:             "0",
		AppEnv:           "test",
		DBPath:           fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName),
		RedisAddr:        mr.Addr(),
		SessionSecret:    "test-secret",
		SessionTTLHours:  1,
		CORSAllowOrigins: "*",
	}

	a, err := app.New(cfg)
	require.NoError(t, err)
	return a
}

func doForm(t *testing.T, a *app.App, path string, form url.Values, cookie *http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := a.Fiber.Test(req, int((10 * time.Second).Milliseconds()))
	require.NoError(t, err)
	return resp
}

func doGet(t *testing.T, a *app.App, path string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := a.Fiber.Test(req, int((10 * time.Second).Milliseconds()))
	require.NoError(t, err)
	return resp
}

func doJSON(t *testing.T, a *app.App, method, path, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Fiber.Test(req, int((10 * time.Second).Milliseconds()))
	require.NoError(t, err)
	return resp
}

func register(t *testing.T, a *app.App, username, email, password string) {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("email", email)
	form.Set("password", password)
	form.Set("confirm_password", password)

	resp := doForm(t, a, "/register", form, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode, "registration should redirect to login")
}

// login registers nothing; it authenticates an existing user and returns
// the session cookie.
func login(t *testing.T, a *app.App, username, password string) *http.Cookie {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	resp := doForm(t, a, "/login", form, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode, "login should redirect to dashboard")
	return sessionCookie(t, resp)
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}

	t.Fatal("session cookie not set")
	return nil
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
