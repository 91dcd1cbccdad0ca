package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/i18n"
)

var ErrInvalidToken = errors.New("invalid token")

// ScopeGrant lets a caller mint currency for the user it acts for. Learners'
// own access tokens never carry it; the course backend's service tokens do.
const ScopeGrant = "economy:grant"

const scopesKey = "scopes"

// Identity is what a valid access token says about its bearer.
type Identity struct {
	UserID string
	Scopes []string
}

// TokenValidator checks access tokens issued by the auth provider with the
// shared HMAC secret.
type TokenValidator struct {
	secret []byte
}

func NewTokenValidator(secret string) *TokenValidator {
	return &TokenValidator{secret: []byte(secret)}
}

// Validate returns the user id from the sub claim and the space separated
// scope claim.
func (v *TokenValidator) Validate(tokenStr string) (Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return Identity{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	if typ, _ := claims["type"].(string); typ != "access" {
		return Identity{}, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}, ErrInvalidToken
	}
	scope, _ := claims["scope"].(string)
	return Identity{UserID: sub, Scopes: strings.Fields(scope)}, nil
}

func AuthMiddleware(v *TokenValidator, tr *i18n.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			Fail(c, tr, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := v.Validate(parts[1])
		if err != nil {
			Fail(c, tr, http.StatusUnauthorized, "unauthorized")
			return
		}

		c.Set("userId", id.UserID)
		c.Set(scopesKey, id.Scopes)

		c.Next()
	}
}

// RequireScope rejects callers whose token lacks scope. It runs after
// AuthMiddleware.
func RequireScope(tr *i18n.Translator, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(c.GetStringSlice(scopesKey), scope) {
			Fail(c, tr, http.StatusForbidden, "forbidden")
			return
		}
		c.Next()
	}
}
