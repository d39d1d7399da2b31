package middleware

import (
	"context"
	"strconv"
	"strings"

	"warbler/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// TokenRevoked reports whether a token's jti has been revoked (e.g. by
// logout). It is injected by the server during setup to avoid an import
// cycle with the cache package. When nil, no revocation check is performed.
var TokenRevoked func(ctx context.Context, jti string) bool

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// tokenClaims carries the parsed claims handlers care about.
type tokenClaims struct {
	UserID uint
	JTI    string
	Expiry int64 // unix seconds; 0 when the token has no exp claim
}

// parseToken validates the bearer token and extracts its claims.
func parseToken(tokenString string) (tokenClaims, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return tokenClaims{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return tokenClaims{}, false
	}

	// User ID travels in the "sub" claim (RFC 7519 subject).
	subStr, ok := claims["sub"].(string)
	if !ok {
		return tokenClaims{}, false
	}
	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return tokenClaims{}, false
	}

	parsed := tokenClaims{UserID: uint(userID)}
	parsed.JTI, _ = claims["jti"].(string)
	if exp, expOk := claims["exp"].(float64); expOk {
		parsed.Expiry = int64(exp)
	}
	return parsed, true
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	tokenString, ok := bearerToken(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	claims, ok := parseToken(tokenString)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	if TokenRevoked != nil && claims.JTI != "" && TokenRevoked(c.UserContext(), claims.JTI) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Token has been revoked",
		})
	}

	c.Locals("userID", claims.UserID)
	c.Locals("jti", claims.JTI)
	c.Locals("tokenExp", claims.Expiry)

	return c.Next()
}

// AuthOptional resolves the current user when a valid bearer token is present
// but lets anonymous requests through. The home timeline uses this: anonymous
// callers get the distinct not-logged-in variant rather than a 401.
func AuthOptional(c *fiber.Ctx) error {
	tokenString, ok := bearerToken(c)
	if !ok {
		return c.Next()
	}

	claims, ok := parseToken(tokenString)
	if !ok {
		return c.Next()
	}

	if TokenRevoked != nil && claims.JTI != "" && TokenRevoked(c.UserContext(), claims.JTI) {
		return c.Next()
	}

	c.Locals("userID", claims.UserID)
	c.Locals("jti", claims.JTI)
	c.Locals("tokenExp", claims.Expiry)

	return c.Next()
}
