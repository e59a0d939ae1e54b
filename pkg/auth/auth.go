package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dossinstitute/eventquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

const principalKey = "principal"

// Principal identifies the caller of an operation: the wallet address the
// token was issued for and the role it carries. Services receive it
// explicitly so tests can simulate multiple callers.
type Principal struct {
	Wallet string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}

type claims struct {
	Wallet string `json:"wallet"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type TokenAuth struct {
	secret []byte
}

func NewTokenAuth(secret string) *TokenAuth {
	return &TokenAuth{secret: []byte(secret)}
}

// IssueToken signs a bearer token for the given principal. Used by the
// operator tooling and by tests.
func (t *TokenAuth) IssueToken(p Principal) (string, error) {
	now := time.Now()
	c := claims{
		Wallet: p.Wallet,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
}

func (t *TokenAuth) parse(tokenString string) (*Principal, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || c.Wallet == "" {
		return nil, errors.New("invalid token")
	}
	return &Principal{Wallet: c.Wallet, Role: c.Role}, nil
}

// Middleware authenticates the request and stores the caller principal in the
// gin context. Authorization decisions stay in the service layer.
func (t *TokenAuth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Info("missing authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Info("invalid authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		principal, err := t.parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			log.Info("invalid bearer token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid auth token"})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated caller stored by Middleware.
func PrincipalFromContext(c *gin.Context) (*Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok
}
