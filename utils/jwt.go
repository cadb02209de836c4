package utils

import (
	"errors"
	"time"

	"carrental/config"

	"github.com/golang-jwt/jwt"
)

const defaultSecret = "carrental-dev-secret"

func secretKey() []byte {
	if config.AppConfig.JWTSecret == "" {
		return []byte(defaultSecret)
	}
	return []byte(config.AppConfig.JWTSecret)
}

// TokenClaims is the identity carried by an access token.
type TokenClaims struct {
	Subject string
	Email   string
	Role    string
}

// GenerateToken creates a signed JWT for the given user. The token expires after duration.
func GenerateToken(subject, email, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"role":  role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractClaims validates tokenString and returns its subject, email and role.
func ExtractClaims(tokenString string) (*TokenClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)

	return &TokenClaims{Subject: sub, Email: email, Role: role}, nil
}
