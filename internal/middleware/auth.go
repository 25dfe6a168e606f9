package middleware

import (
	"net/http"
	"os"
	"strings"

	"taxengine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}
	return []byte(secret)
}

// parseClaims pulls the JWT from the access_token cookie or the Authorization
// header and validates it. Tokens are issued by the identity gateway; this
// service only verifies them.
func parseClaims(c *gin.Context) (jwt.MapClaims, bool) {
	// Try cookie first, fallback to Authorization header
	tokenString, cookieErr := c.Cookie("access_token")
	if cookieErr != nil || tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return nil, false
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
			return nil, false
		}
		tokenString = parts[1]
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return GetJWTSecret(), nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return nil, false
	}
	return claims, true
}

// RequireAuth validates the JWT and stores the caller's identity on the
// context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseClaims(c)
		if !ok {
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// RequirePermission validates the JWT and checks that every required
// permission code is present in the token's permissions claim. The admin
// role always passes.
func RequirePermission(requiredPerms ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseClaims(c)
		if !ok {
			return
		}
		setIdentity(c, claims)

		if role, _ := claims["role"].(string); role == "admin" {
			c.Next()
			return
		}

		permSet := claimPermissions(claims)
		for _, required := range requiredPerms {
			if !permSet[required] {
				c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: missing permission '"+required+"'"))
				return
			}
		}

		c.Next()
	}
}

func setIdentity(c *gin.Context, claims jwt.MapClaims) {
	c.Set("userID", claims["sub"])
	if role, ok := claims["role"].(string); ok {
		c.Set("userRole", role)
	}
}

func claimPermissions(claims jwt.MapClaims) map[string]bool {
	raw, _ := claims["permissions"].([]interface{})
	permSet := make(map[string]bool, len(raw))
	for _, p := range raw {
		if s, ok := p.(string); ok {
			permSet[s] = true
		}
	}
	return permSet
}

// UserID returns the authenticated caller's subject claim, or "" for
// unauthenticated contexts.
func UserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
