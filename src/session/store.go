package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// Cookie que transporta el token firmado con el session id
	CookieName = "pulsefeed_session"

	keyPrefix = "sess:"
	localsKey = "session"
)

// Flash is a one-shot message pending on a session, shown by the next page
// render and cleared in the same step.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Record is the server-side session state stored in redis under
// sess:<sid>. Anonymous sessions (UserID == 0) are valid; they exist so
// flash messages work on the login and register pages.
type Record struct {
	SID      string  `json:"-"`
	UserID   uint    `json:"user_id"`
	Username string  `json:"username"`
	Flashes  []Flash `json:"flashes,omitempty"`
}

// Authenticated reports whether the record is bound to a user.
func (r *Record) Authenticated() bool {
	return r != nil && r.UserID > 0
}

// Store resolves client-held session tokens to redis records.
type Store struct {
	rdb    *redis.Client
	secret []byte
	ttl    time.Duration
}

func NewStore(rdb *redis.Client, secret string, ttl time.Duration) *Store {
	return &Store{
		rdb:    rdb,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Current resolves the request's session without creating one. It returns
// nil when the cookie is absent, the token does not verify, or the redis
// record is gone (logged out or expired) — a still-valid token whose record
// was destroyed no longer resolves.
func (s *Store) Current(c *fiber.Ctx) *Record {
	if rec, ok := c.Locals(localsKey).(*Record); ok {
		return rec
	}

	tokenString := c.Cookies(CookieName)
	if tokenString == "" {
		return nil
	}

	sid, err := parseSessionToken(tokenString, s.secret)
	if err != nil {
		return nil
	}

	data, err := s.rdb.Get(c.Context(), keyPrefix+sid).Bytes()
	if err != nil {
		return nil
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil
	}
	rec.SID = sid

	c.Locals(localsKey, &rec)
	return &rec
}

// Start returns the request's session, creating an anonymous one (and
// setting its cookie) if none resolves. The record is cached in Locals so
// every call within one request sees the same session.
func (s *Store) Start(c *fiber.Ctx) (*Record, error) {
	if rec := s.Current(c); rec != nil {
		return rec, nil
	}

	rec := &Record{SID: uuid.NewString()}
	if err := s.save(c, rec); err != nil {
		return nil, err
	}

	tokenString, err := signSessionToken(rec.SID, s.secret, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Expires:  time.Now().Add(s.ttl),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	c.Locals(localsKey, rec)
	return rec, nil
}

// Login binds the request's session to the authenticated user.
func (s *Store) Login(c *fiber.Ctx, userID uint, username string) error {
	rec, err := s.Start(c)
	if err != nil {
		return err
	}

	rec.UserID = userID
	rec.Username = username
	return s.save(c, rec)
}

// Destroy deletes the session record and expires the cookie. Safe to call
// when no session exists.
func (s *Store) Destroy(c *fiber.Ctx) error {
	rec := s.Current(c)
	c.Locals(localsKey, nil)

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  time.Now().Add(-1 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	if rec == nil {
		return nil
	}
	return s.rdb.Del(c.Context(), keyPrefix+rec.SID).Err()
}

// Flash queues a one-shot message on the session, creating the session if
// needed.
func (s *Store) Flash(c *fiber.Ctx, category, message string) error {
	rec, err := s.Start(c)
	if err != nil {
		return err
	}

	rec.Flashes = append(rec.Flashes, Flash{Category: category, Message: message})
	return s.save(c, rec)
}

// PopFlashes returns the pending flashes and clears them, like Flask's
// get_flashed_messages. A missing session yields no flashes.
func (s *Store) PopFlashes(c *fiber.Ctx) []Flash {
	rec := s.Current(c)
	if rec == nil || len(rec.Flashes) == 0 {
		return nil
	}

	flashes := rec.Flashes
	rec.Flashes = nil
	// Un fallo al guardar puede repetir un flash, nunca perderlo
	_ = s.save(c, rec)
	return flashes
}

func (s *Store) save(c *fiber.Ctx, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return s.rdb.Set(c.Context(), keyPrefix+rec.SID, data, s.ttl).Err()
}
