package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"postforge-api/internal/domain"
)

// identityKey is the gin context key the authenticated identity is
// stored under
const identityKey = "identity"

// Auth returns a middleware that requires a valid JWT bearer token and
// stores the authenticated identity in the request context
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromHeader(c, jwtSecret)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid or missing authorization",
				},
			})
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth returns a middleware that extracts the identity when a
// valid bearer token is present and continues anonymously otherwise.
// Public form endpoints use this: access rules decide per form whether
// anonymous visitors are allowed.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, ok := identityFromHeader(c, jwtSecret); ok {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

// GetIdentity returns the identity stored by the auth middleware, or
// the anonymous identity when none was set
func GetIdentity(c *gin.Context) domain.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return domain.Identity{}
	}
	identity, ok := value.(domain.Identity)
	if !ok {
		return domain.Identity{}
	}
	return identity
}

// identityFromHeader parses the Authorization header into an identity.
// Roles come from the "roles" claim; the user ID from "user_id" or
// "sub".
func identityFromHeader(c *gin.Context, jwtSecret string) (domain.Identity, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return domain.Identity{}, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return domain.Identity{}, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return domain.Identity{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Identity{}, false
	}

	var userIDStr string
	if uid, ok := claims["user_id"].(string); ok {
		userIDStr = uid
	} else if sub, ok := claims["sub"].(string); ok {
		userIDStr = sub
	} else {
		return domain.Identity{}, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return domain.Identity{}, false
	}

	var roles []string
	if rawRoles, ok := claims["roles"].([]interface{}); ok {
		for _, r := range rawRoles {
			if role, ok := r.(string); ok {
				roles = append(roles, role)
			}
		}
	}

	return domain.Identity{ID: userID, Roles: roles}, true
}
