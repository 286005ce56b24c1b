package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/carsapi/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv overlays values from environment variables.
//
// A dotenv file is loaded first: the one named by -env, or ./.env if it
// exists. Variables already present in the process environment win over the
// file. A missing default file is not an error; a missing explicit one or an
// unparsable file panics, like the JSON loader.
//
// Recognised variables:
//
//	HTTP_ADDR, DATABASE_DSN, SECRET_KEY, ALGORITHM,
//	ACCESS_TOKEN_TTL, REFRESH_TOKEN_TTL (Go durations, e.g. "60m"),
//	BCRYPT_COST, LOG_LEVEL, LOG_BACKEND, SECURE_COOKIES
func parseEnv(config *Config) {
	loadEnvFile(flagx.EnvFilePath())

	setString(&config.EndpointAddrHTTP, "HTTP_ADDR")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.SecretKey, "SECRET_KEY")
	setString(&config.SigningAlgorithm, "ALGORITHM")
	setDuration(&config.AccessTokenValidityDuration, "ACCESS_TOKEN_TTL")
	setDuration(&config.RefreshTokenValidityDuration, "REFRESH_TOKEN_TTL")
	setInt(&config.BcryptCost, "BCRYPT_COST")
	setString(&config.LogLevel, "LOG_LEVEL")
	setString(&config.LogBackend, "LOG_BACKEND")
	setBool(&config.SecureCookies, "SECURE_COOKIES")
}

func loadEnvFile(path string) {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	err := godotenv.Load(path)
	if err == nil {
		return
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return
	}
	panic(err)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
