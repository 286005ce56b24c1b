package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/carsapi/internal/common"
	"github.com/dmitrijs2005/carsapi/internal/logging"
	"github.com/dmitrijs2005/carsapi/internal/server/auth"
	"github.com/dmitrijs2005/carsapi/internal/server/services"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionHandler serves register, login and logout.
type SessionHandler struct {
	users   *services.UserService
	cookies CookieJar
	logger  logging.Logger
}

func NewSessionHandler(us *services.UserService, cookies CookieJar, l logging.Logger) *SessionHandler {
	return &SessionHandler{users: us, cookies: cookies, logger: l.With("module", "session_handler")}
}

func (h *SessionHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	u, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"username": u.UserName})
}

func (h *SessionHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	pair, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
			return
		}
		writeError(c, h.logger, err)
		return
	}

	h.cookies.SetPair(c, pair)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Logout clears both cookies. The body is never wrapped in the refresh
// envelope since the renewed token is discarded along with the session.
func (h *SessionHandler) Logout(c *gin.Context, _ auth.Outcome) {
	h.cookies.Clear(c)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
