package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/carsapi/internal/common"
	"github.com/dmitrijs2005/carsapi/internal/server/auth"
	"github.com/gin-gonic/gin"
)

// CookieJar writes the session cookies. All of them are HttpOnly.
type CookieJar struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (j CookieJar) set(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(ttl.Seconds()), "/", "", j.Secure, true)
}

// SetPair stores both tokens of a fresh login.
func (j CookieJar) SetPair(c *gin.Context, pair *auth.TokenPair) {
	j.set(c, common.AccessTokenCookieName, pair.AccessToken, j.AccessTTL)
	j.set(c, common.RefreshTokenCookieName, pair.RefreshToken, j.RefreshTTL)
}

// SetAccess overwrites the access token cookie.
func (j CookieJar) SetAccess(c *gin.Context, token string) {
	j.set(c, common.AccessTokenCookieName, token, j.AccessTTL)
}

// Clear expires both session cookies.
func (j CookieJar) Clear(c *gin.Context) {
	j.set(c, common.AccessTokenCookieName, "", -time.Second)
	j.set(c, common.RefreshTokenCookieName, "", -time.Second)
}

// credentials reads the (access, refresh) slots; absent cookies are "".
func credentials(c *gin.Context) (access, refresh string) {
	access, _ = c.Cookie(common.AccessTokenCookieName)
	refresh, _ = c.Cookie(common.RefreshTokenCookieName)
	return access, refresh
}
