package common

// Names of the two credential slots. Both are carried as HTTP cookies.
const (
	AccessTokenCookieName  = "jwt"
	RefreshTokenCookieName = "refresh"
)

// RequestIDHeaderName is echoed on every response by the request logger.
const RequestIDHeaderName = "X-Request-ID"
