package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/health-portal/internal/config"
	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// IssueToken signs the session token carried by every authenticated request.
func IssueToken(cfg *config.Config, userID, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(cfg.JWTTTLHours) * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header", "Authentication required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header", "Authorization header must be a Bearer token.")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			code := "invalid_token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				code = "token_expired"
			}
			abortUnauthorized(c, code, "Session is invalid or expired.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims", "Session is invalid or expired.")
			return
		}

		userID, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)
		if userID == "" || email == "" || !identity.ValidRole(role) {
			abortUnauthorized(c, "invalid_token_payload", "Session is invalid or expired.")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserEmail, email)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.Abort()
		httperr.Forbidden(c, "role_forbidden", "Your account type cannot perform this action.")
	}
}

// Actor returns the identity resolved by AuthMiddleware.
func Actor(c *gin.Context) identity.Actor {
	return identity.Actor{
		UserID: c.GetString(ContextUserID),
		Email:  c.GetString(ContextUserEmail),
		Role:   c.GetString(ContextUserRole),
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.Abort()
	httperr.Write(c, http.StatusUnauthorized, code, message)
}
