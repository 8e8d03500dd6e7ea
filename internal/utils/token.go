package utils

import (
	"debitcard-backend/config"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is the lifetime of an issued access token.
const TokenTTL = 72 * time.Hour

var (
	ErrMissingAuthHeader = errors.New("authorization header is required")
	ErrBearerNotFound    = errors.New("bearer token not found")
	ErrMissingTokenID    = errors.New("token has no jti claim")
)

func GenerateToken(userID uint) (string, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return "", err
	}

	// jti keeps tokens issued within the same second distinct; revocation is keyed on it.
	now := time.Now()
	claims := jwt.MapClaims{
		"jti":     uuid.NewString(),
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func ValidateToken(tokenString string) (jwt.MapClaims, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// TokenRemainingLife returns how long the token in claims stays valid.
func TokenRemainingLife(claims jwt.MapClaims) (time.Duration, error) {
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return 0, err
	}
	if exp == nil {
		return 0, fmt.Errorf("token has no expiration")
	}
	return time.Until(exp.Time), nil
}

// TokenID returns the jti claim.
func TokenID(claims jwt.MapClaims) (string, error) {
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return "", ErrMissingTokenID
	}
	return jti, nil
}

func ExtractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrBearerNotFound
	}

	return strings.TrimPrefix(authHeader, bearerPrefix), nil
}
