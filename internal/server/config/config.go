// Package config handles configuration for the carsapi server: defaults,
// environment (optionally seeded from a .env file), a JSON overlay and
// command-line flags, applied in that order.
package config

import "time"

// Config holds runtime settings for the server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the REST API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects in-memory storage.
//   - SecretKey: HMAC secret for signing JWTs. Do not use the default in prod.
//   - SigningAlgorithm: JWT algorithm, one of HS256, HS384, HS512.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - BcryptCost: cost factor for stored password hashes.
//   - LogLevel / LogBackend: logging verbosity and implementation (slog or zap).
//   - SecureCookies: mark credential cookies Secure (HTTPS only).
type Config struct {
	EndpointAddrHTTP             string
	DatabaseDSN                  string
	SecretKey                    string
	SigningAlgorithm             string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	BcryptCost                   int
	LogLevel                     string
	LogBackend                   string
	SecureCookies                bool
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8000"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.SigningAlgorithm = "HS256"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.RefreshTokenValidityDuration = 24 * time.Hour
	c.BcryptCost = 10
	c.LogLevel = "info"
	c.LogBackend = "slog"
	c.SecureCookies = false
}

// LoadConfig builds a Config by applying defaults, then the environment,
// then an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
