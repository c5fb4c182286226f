// Package auth implements password hashing and the JWT-based request
// authentication for the API.
//
// The authenticated user is carried as an explicit Context value on the
// request, populated once by the middleware. Handlers read it with
// FromContext, there is no ambient global session state.
package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNoToken      = errors.New("this endpoint requires a bearer token")
	ErrTokenInvalid = errors.New("the bearer token is invalid or expired")
)

// Context identifies the authenticated user of a request.
type Context struct {
	UserID uuid.UUID
	Email  string
}

// contextKey is the gin context key the middleware stores the Context under.
const contextKey = "pocketfolio:auth"

// HashPassword hashes a password for storage.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// CheckPassword verifies a password against the stored hash.
func CheckPassword(hash []byte, password string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}

// NewToken issues a signed JWT for the user.
func NewToken(secret string, lifetime time.Duration, userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(lifetime).Unix(),
	})

	return token.SignedString([]byte(secret))
}

// ParseToken validates a JWT and returns the Context it carries.
func ParseToken(secret, tokenString string) (Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Context{}, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Context{}, ErrTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Context{}, ErrTokenInvalid
	}

	email, _ := claims["email"].(string)

	return Context{UserID: userID, Email: email}, nil
}

// Middleware authenticates requests with a bearer token and stores the
// resulting Context on the request. Requests without a valid token are
// rejected with 401.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrNoToken.Error()})
			return
		}

		authContext, err := ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(contextKey, authContext)
		c.Next()
	}
}

// FromContext returns the authenticated user of the request. The second
// return value is false when the request did not pass the middleware.
func FromContext(c *gin.Context) (Context, bool) {
	value, exists := c.Get(contextKey)
	if !exists {
		return Context{}, false
	}

	authContext, ok := value.(Context)
	return authContext, ok
}
