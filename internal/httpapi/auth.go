package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexanderramin/sprintdesk/internal/contract"
	"github.com/alexanderramin/sprintdesk/internal/repository"
	"github.com/alexanderramin/sprintdesk/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "user_id"

// JWTAuth accepts an HS256 bearer token whose subject is an active user.
func JWTAuth(secret []byte, users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			unauthorized(c, "missing bearer token")
			return
		}
		var claims jwt.RegisteredClaims
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), &claims,
			func(*jwt.Token) (any, error) { return secret, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid || claims.Subject == "" {
			unauthorized(c, "invalid token")
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.Subject)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && !user.IsActive) {
			unauthorized(c, "unknown user")
			return
		}
		if err != nil {
			writeError(c, slog.Default(), err)
			return
		}
		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, contract.Error{Code: contract.ErrUnauthorized, Message: msg})
}

// currentUser is the id JWTAuth stored on the request.
func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}
