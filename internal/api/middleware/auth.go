package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tannerdj/wokelens/internal/domain"
	"github.com/tannerdj/wokelens/internal/session"
)

const scopeKey = "scope"

// Scope resolves the caller's scope and stores it on the Gin context.
// A Bearer token yields a user scope from the token subject; otherwise an
// X-Session-ID header (or session_id query parameter) yields a session scope.
// Anonymous callers proceed with a zero scope and can only read legacy
// scope-less records.
func Scope(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			userID, err := subjectFromToken(strings.TrimPrefix(auth, "Bearer "), jwtSecret)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid token",
				})
				return
			}
			c.Set(scopeKey, domain.UserScope(userID))
			c.Next()
			return
		}

		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			sessionID = c.Query("session_id")
		}
		if sessionID != "" {
			if !session.Valid(sessionID) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error": "Invalid session id",
				})
				return
			}
			c.Set(scopeKey, domain.SessionScope(sessionID))
		}

		c.Next()
	}
}

// ScopeFrom returns the resolved scope, zero when the caller is anonymous.
func ScopeFrom(c *gin.Context) domain.Scope {
	if v, exists := c.Get(scopeKey); exists {
		if scope, ok := v.(domain.Scope); ok {
			return scope
		}
	}
	return domain.Scope{}
}

func subjectFromToken(raw, secret string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return sub, nil
}
