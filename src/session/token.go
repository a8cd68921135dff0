package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Generates a signed token carrying the session id. The token is the only
// thing the client holds; the session data itself lives in redis.
func signSessionToken(sid string, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secret)
}

// Verifies a session token and extracts the session id from it
func parseSessionToken(tokenString string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Método de firma inválido")
		}
		return secret, nil
	})

	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Token inválido")
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Token inválido")
	}

	return sid, nil
}
