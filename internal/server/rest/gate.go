package rest

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/carsapi/internal/logging"
	"github.com/dmitrijs2005/carsapi/internal/server/auth"
	"github.com/dmitrijs2005/carsapi/internal/server/metrics"
	"github.com/gin-gonic/gin"
)

// ProtectedHandler receives the gate's decision explicitly.
type ProtectedHandler func(c *gin.Context, out auth.Outcome)

// TokenValidator decides on a request's (access, refresh) pair.
type TokenValidator interface {
	Validate(ctx context.Context, access, refresh string) (auth.Outcome, error)
}

// Gate applies the token validator to incoming requests.
type Gate struct {
	validator TokenValidator
	cookies   CookieJar
	metrics   *metrics.Metrics
	logger    logging.Logger
}

func NewGate(v TokenValidator, cookies CookieJar, m *metrics.Metrics, l logging.Logger) *Gate {
	return &Gate{validator: v, cookies: cookies, metrics: m, logger: l.With("module", "auth_gate")}
}

// Check evaluates the request's credential cookies. It has no side effects
// on the response.
func (g *Gate) Check(c *gin.Context) (auth.Outcome, error) {
	access, refresh := credentials(c)
	return g.validator.Validate(c.Request.Context(), access, refresh)
}

// Protect wraps h so it only runs for authorized requests. A renewed access
// token is written to the access cookie before h runs.
func (g *Gate) Protect(h ProtectedHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := g.Check(c)
		if err != nil {
			g.logger.Error(c.Request.Context(), "token renewal failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		switch {
		case !out.Authorized:
			g.observe(metrics.OutcomeDenied)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Unauthorized"})
			return
		case out.Renewed():
			g.observe(metrics.OutcomeRenewed)
			g.cookies.SetAccess(c, out.RenewedAccessToken)
		default:
			g.observe(metrics.OutcomeAuthorized)
		}

		h(c, out)
	}
}

// RequireAnonymous rejects requests that already carry a usable session,
// renewable or not, with 409.
func (g *Gate) RequireAnonymous(c *gin.Context) {
	out, err := g.Check(c)
	if err != nil {
		g.logger.Error(c.Request.Context(), "session check failed", "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if out.Authorized {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"message": "Already logged in"})
		return
	}
	c.Next()
}

func (g *Gate) observe(outcome string) {
	if g.metrics != nil {
		g.metrics.ObserveAuth(outcome)
	}
}
