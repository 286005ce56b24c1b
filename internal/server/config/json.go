package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/carsapi/internal/flagx"
	"github.com/dmitrijs2005/carsapi/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Durations use
// timex.Duration, so both "60m" and integer nanoseconds are accepted.
// SecureCookies is a pointer so an explicit false differs from absence.
type JsonConfig struct {
	EndpointAddrHTTP             string         `json:"endpoint_addr_http"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	SigningAlgorithm             string         `json:"signing_algorithm"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	BcryptCost                   int            `json:"bcrypt_cost"`
	LogLevel                     string         `json:"log_level"`
	LogBackend                   string         `json:"log_backend"`
	SecureCookies                *bool          `json:"secure_cookies"`
}

// parseJson loads the file named by -c / -config (if any) and copies every
// field that is set in the file into config. Unreadable files and invalid
// JSON panic: a broken config file must stop startup.
func parseJson(config *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SigningAlgorithm != "" {
		config.SigningAlgorithm = c.SigningAlgorithm
	}
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration > 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.BcryptCost > 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.LogBackend != "" {
		config.LogBackend = c.LogBackend
	}
	if c.SecureCookies != nil {
		config.SecureCookies = *c.SecureCookies
	}
}
