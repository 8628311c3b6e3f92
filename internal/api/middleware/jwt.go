package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/TraderJoe97/StackFlow/internal/config"
	"github.com/TraderJoe97/StackFlow/internal/domain/user"
	"github.com/TraderJoe97/StackFlow/internal/repository"
	"github.com/TraderJoe97/StackFlow/pkg/types"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	SessionCookie = "token"
	// RefreshedTokenHeader carries a renewed token for Bearer clients.
	RefreshedTokenHeader = "X-Refreshed-Token"
)

var jwtKey []byte

// Init sets the JWT signing key.
func Init() {
	jwtKey = []byte(config.JwtSecret)
}

// GenerateToken issues a signed session token for u.
var GenerateToken = func(u user.User, expireDuration time.Duration) (string, *types.Claims, error) {
	now := time.Now()
	claims := &types.Claims{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.RoleTitle(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(expireDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    config.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(jwtKey)
	if err != nil {
		return "", nil, err
	}
	return signedToken, claims, nil
}

// ParseToken validates and extracts claims.
func ParseToken(tokenStr string) (*types.Claims, error) {
	claims := &types.Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func SetSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", config.IsProduction, true)
}

func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", config.IsProduction, true)
}

// TokenFromRequest reads the Bearer header first and falls back to the
// session cookie. It returns "" when neither is present.
func TokenFromRequest(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", false
		}
		return parts[1], true
	}
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie == "" {
		return "", true
	}
	return cookie, true
}

// JWTAuthMiddleware validates the session token, rejects logged-out sessions
// and renews the token once less than half of the session window is left.
// The renewed token does not invalidate the old one, which stays usable
// until its own expiry or an explicit logout.
func JWTAuthMiddleware(repos *repository.Repos) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := TokenFromRequest(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization required (header or cookie)"})
			return
		}

		claims, err := ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token: " + err.Error()})
			return
		}

		if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			return
		}

		revoked, err := repos.Session.IsRevoked(claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session has been logged out"})
			return
		}

		if claims.ExpiresAt != nil && time.Until(claims.ExpiresAt.Time) < config.SessionTTL/2 {
			renewed, ok := renew(c, repos, claims)
			if !ok {
				return
			}
			claims = renewed
		}

		c.Set("claims", claims)
		c.Next()
	}
}

func renew(c *gin.Context, repos *repository.Repos, old *types.Claims) (*types.Claims, bool) {
	u, err := repos.User.GetUserByID(old.UserID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account no longer exists"})
		return nil, false
	}
	token, claims, err := GenerateToken(u, config.SessionTTL)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return nil, false
	}
	SetSessionCookie(c, token, config.SessionTTL)
	c.Header(RefreshedTokenHeader, token)
	return claims, true
}
