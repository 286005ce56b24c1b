package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/carsapi/internal/common"
	"github.com/dmitrijs2005/carsapi/internal/logging"
	"github.com/dmitrijs2005/carsapi/internal/server/auth"
	"github.com/dmitrijs2005/carsapi/internal/server/config"
	"github.com/dmitrijs2005/carsapi/internal/server/metrics"
	"github.com/dmitrijs2005/carsapi/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/carsapi/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type harness struct {
	t       *testing.T
	now     time.Time
	codec   *auth.Codec
	metrics *metrics.Metrics
	router  *gin.Engine
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &harness{t: t, now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BcryptCost = bcrypt.MinCost

	codec, err := auth.NewCodec([]byte(cfg.SecretKey), cfg.SigningAlgorithm)
	require.NoError(t, err)
	h.codec = codec.WithClock(func() time.Time { return h.now })

	logger := logging.NewNopLogger()
	issuer := auth.NewIssuer(h.codec, cfg.AccessTokenValidityDuration, cfg.RefreshTokenValidityDuration)
	validator := auth.NewValidator(h.codec, issuer, logger)
	rm := repomanager.NewMemoryRepositoryManager()
	cookies := CookieJar{AccessTTL: cfg.AccessTokenValidityDuration, RefreshTTL: cfg.RefreshTokenValidityDuration}
	h.metrics = metrics.New()

	h.router = NewRouter(Handlers{
		Gate:     NewGate(validator, cookies, h.metrics, logger),
		Sessions: NewSessionHandler(services.NewUserService(nil, rm, issuer, cfg, logger), cookies, logger),
		Vehicles: NewVehicleHandler(services.NewVehicleService(nil, rm, logger), logger),
		Metrics:  h.metrics,
		Logger:   logger,
	})
	return h
}

func (h *harness) advance(d time.Duration) { h.now = h.now.Add(d) }

// do sends body (marshalled to JSON unless it is a string) with the given
// cookies attached.
func (h *harness) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	h.t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(h.t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

// login registers username and logs in, returning the session cookies.
func (h *harness) login(username, password string) []*http.Cookie {
	h.t.Helper()
	rec := h.do(http.MethodPost, "/v1/register/", map[string]string{"username": username, "password": password})
	require.Equal(h.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = h.do(http.MethodPost, "/v1/login/", map[string]string{"username": username, "password": password})
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())

	return sessionCookies(h.t, rec)
}

func sessionCookies(t *testing.T, rec *httptest.ResponseRecorder) []*http.Cookie {
	t.Helper()
	var out []*http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == common.AccessTokenCookieName || c.Name == common.RefreshTokenCookieName {
			out = append(out, c)
		}
	}
	return out
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

// onlyRefresh keeps the refresh cookie, as a client would after the access
// cookie expired.
func onlyRefresh(cookies []*http.Cookie) []*http.Cookie {
	for _, c := range cookies {
		if c.Name == common.RefreshTokenCookieName {
			return []*http.Cookie{c}
		}
	}
	return nil
}

func sampleCar() map[string]any {
	return map[string]any{
		"brand":     "Lada",
		"model":     "Niva",
		"year_made": 1977,
		"fuel":      "Бензин",
		"gear":      "Механика",
		"mileage":   120000,
		"price":     300000,
	}
}
