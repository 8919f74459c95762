package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Overridable via JWT_SECRET; the default is for local dev only.
var secretKey = func() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("supersecret")
}()

// TokenTTL is the only invalidation mechanism: there is no revocation list.
const TokenTTL = 24 * time.Hour

// TokenClaims is what a verified token proves about the caller.
type TokenClaims struct {
	UserID  int64
	Email   string
	IsAdmin bool
}

func GenerateToken(email string, userId int64, isAdmin bool) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":   email,
		"userId":  userId,
		"isAdmin": isAdmin,
		"exp":     time.Now().Add(TokenTTL).Unix(),
	})
	return token.SignedString(secretKey)
}

func VerifyToken(token string) (TokenClaims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil {
		return TokenClaims{}, errors.New("could not parse token")
	}
	if !parsedToken.Valid {
		return TokenClaims{}, errors.New("invalid token")
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, errors.New("invalid token claims")
	}
	userId, ok := claims["userId"].(float64)
	if !ok {
		return TokenClaims{}, errors.New("invalid token claims")
	}
	email, _ := claims["email"].(string)
	isAdmin, _ := claims["isAdmin"].(bool)

	return TokenClaims{UserID: int64(userId), Email: email, IsAdmin: isAdmin}, nil
}
