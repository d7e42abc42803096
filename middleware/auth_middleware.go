package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserIDKey   = "userID"
	ContextUsernameKey = "username"
)

type lectureClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
}

type AuthHandler interface {
	AuthMiddleware() gin.HandlerFunc
}

type authHandler struct {
	jwks *keyfunc.JWKS
}

func NewAuthHandler(jwksURL string) (AuthHandler, error) {
	options := keyfunc.Options{
		RefreshErrorHandler: func(err error) {
			log.Printf("There was an error with the jwt.Keyfunc\nError: %s", err.Error())
		},
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  time.Minute * 5,
		RefreshTimeout:    time.Second * 10,
		RefreshUnknownKID: true,
	}

	jwks, err := keyfunc.Get(jwksURL, options)
	if err != nil {
		return nil, err
	}

	return &authHandler{jwks: jwks}, nil
}

func (h *authHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		var claims lectureClaims
		token, err := jwt.ParseWithClaims(tokenString, &claims, h.jwks.Keyfunc)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		username := claims.Username
		if username == "" {
			username = claims.Subject
		}
		c.Set(ContextUserIDKey, claims.Subject)
		c.Set(ContextUsernameKey, username)

		c.Next()
	}
}
