package middleware

import (
	"net/http"
	"time"

	"restohub-api/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries session identity. Identity is a tagged variant: a
// user session has AccountID set and Admin false; an admin session has
// Admin true and no meaningful AccountID. Nothing downstream may treat
// an admin as an account row.
type Claims struct {
	AccountID uint `json:"account_id"`
	Admin     bool `json:"admin"`
	jwt.RegisteredClaims
}

const cookieName = "jwt"

// IssueUserSession mints a signed token for an account.
func IssueUserSession(accountID uint) (string, error) {
	return sign(Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// IssueAdminSession mints a signed admin token. Admins are identified
// by the role claim alone, never by an account id.
func IssueAdminSession() (string, error) {
	return sign(Claims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

func sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

// SetSessionCookie attaches the token as an httpOnly, SameSite=Lax
// cookie with a 15-day expiry.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, token, int(config.SessionTTL.Seconds()), "/", "", false, true)
}

// ClearSessionCookie logs the caller out.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
}

// AuthRequired validates the jwt cookie and injects claims into context
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(cookieName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Login required"})
			c.Abort()
			return
		}
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return config.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired session"})
			c.Abort()
			return
		}
		c.Set("accountID", claims.AccountID)
		c.Set("isAdmin", claims.Admin)
		c.Next()
	}
}

// UserRequired rejects admin sessions: the route needs a real account.
func UserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAdmin(c) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "This route requires a user account"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired enforces the admin role claim.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetAccountID extracts the caller's account ID from context
func GetAccountID(c *gin.Context) uint {
	val, _ := c.Get("accountID")
	id, _ := val.(uint)
	return id
}

// IsAdmin reports whether the session carries the admin role claim
func IsAdmin(c *gin.Context) bool {
	val, _ := c.Get("isAdmin")
	admin, _ := val.(bool)
	return admin
}
