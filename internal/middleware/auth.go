package middleware

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/prubianes/guit-app-api/internal/errors"
	"github.com/prubianes/guit-app-api/internal/models"
)

const issuer = "guit-api"

// UserIDKey is the gin context key holding the authenticated user ID.
const UserIDKey = "userID"

// JWTClaims represents the claims in the JWT
type JWTClaims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs an HS256 access token for user valid for expiry.
func GenerateAccessToken(user *models.User, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken validates tokenString and returns its claims.
func ParseAccessToken(tokenString, secret string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, fmt.Errorf("invalid access token")
	}
	return claims, nil
}

// AuthMiddleware verifies the bearer token and sets the user in the context.
// When required is false every request passes through untouched.
func AuthMiddleware(secret string, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !required {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header is required"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid authorization header format"))
			return
		}

		claims, err := ParseAccessToken(strings.TrimSpace(parts[1]), secret)
		if err != nil {
			abortWithError(c, apperrors.Wrap(apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid or expired token"), err))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// SameUser rejects an authenticated request whose user id path parameter
// names someone else. Unauthenticated requests pass, so it belongs after
// AuthMiddleware. Malformed ids are left to the handler.
func SameUser(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authed, ok := c.Get(UserIDKey)
		if !ok {
			c.Next()
			return
		}
		pathID, err := strconv.ParseUint(c.Param(param), 10, strconv.IntSize)
		if uid, _ := authed.(uint); err == nil && uint(pathID) != uid {
			abortWithError(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
