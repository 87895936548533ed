package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

const ContextKeySecurity = "security_context"

// Claims is the JWT payload: company scope plus an explicit capability list.
// Capabilities come from the token, never from request parameters.
type Claims struct {
	CompanyID    uuid.UUID `json:"company_id"`
	UserID       uuid.UUID `json:"user_id"`
	Capabilities []string  `json:"capabilities"`
	jwt.RegisteredClaims
}

// Security returns Gin middleware that validates JWT bearer tokens and
// injects the caller's SecurityContext.
func Security(secret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "missing or invalid authorization header")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		}, jwt.WithIssuer(issuer))
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		caps := make(map[domain.Capability]bool, len(claims.Capabilities))
		for _, cap := range claims.Capabilities {
			caps[domain.Capability(cap)] = true
		}

		c.Set(ContextKeySecurity, domain.SecurityContext{
			CompanyID:    claims.CompanyID,
			UserID:       claims.UserID,
			Capabilities: caps,
		})
		c.Next()
	}
}

// GetSecurityContext extracts the caller's SecurityContext from the Gin context.
func GetSecurityContext(c *gin.Context) (domain.SecurityContext, error) {
	val, exists := c.Get(ContextKeySecurity)
	if !exists {
		return domain.SecurityContext{}, domain.ErrUnauthorized
	}
	return val.(domain.SecurityContext), nil
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": "UNAUTHORIZED", "message": msg},
	})
}
