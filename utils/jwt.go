package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenTTL is how long a game session token stays valid.
const SessionTokenTTL = 72 * time.Hour

// GenerateSessionJWT signs an HS256 token naming one game session.
func GenerateSessionJWT(sessionID string, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sessionId": sessionID,
		"exp":       time.Now().Add(SessionTokenTTL).Unix(),
	})
	return token.SignedString(secret)
}

// ParseSessionJWT validates a session token and returns its session id.
func ParseSessionJWT(tokenString string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	id, _ := claims["sessionId"].(string)
	if id == "" {
		return "", errors.New("sessionId claim missing")
	}
	return id, nil
}
