// Auth verifies a bearer JWT's subject names an active account. This
// service only ever consumes tokens — it has no endpoint that issues
// them, so there is no login flow here, only verification.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// AuthAccountIDKey is the gin context key the verified account id
	// (the token's sub claim) is stored under.
	AuthAccountIDKey = "auth_account_id"
)

// AccountVerifier is the one call Auth makes past the token itself:
// confirming the account named by sub still exists and is active.
type AccountVerifier interface {
	VerifyAccount(ctx context.Context, accountID string) error
}

// AuthConfig configures Auth.
type AuthConfig struct {
	Secret    string
	Issuer    string
	Verifier  AccountVerifier
	SkipPaths []string
}

// Auth requires a "Bearer <jwt>" Authorization header, validates the
// token's signature and expiry, and checks its sub claim against the
// account store before letting the request through.
func Auth(config *AuthConfig) gin.HandlerFunc {
	skip := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authorization header is required")
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		accountID, err := parseSubject(parts[1], config.Secret, config.Issuer)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		if err := config.Verifier.VerifyAccount(c.Request.Context(), accountID); err != nil {
			abortUnauthorized(c, "account is not active")
			return
		}

		c.Set(AuthAccountIDKey, accountID)
		c.Next()
	}
}

func parseSubject(tokenString, secret, issuer string) (string, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	if issuer != "" {
		if iss, _ := claims["iss"].(string); iss != issuer {
			return "", fmt.Errorf("invalid token issuer")
		}
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("missing sub claim")
	}
	return sub, nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
		"request_id": GetRequestID(c),
		"timestamp":  time.Now().UTC(),
	})
}

// GetAuthAccountID returns the account id Auth verified for this request.
func GetAuthAccountID(c *gin.Context) string {
	if id, exists := c.Get(AuthAccountIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
