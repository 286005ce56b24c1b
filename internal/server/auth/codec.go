// Package auth implements the token lifecycle: a signed, expiring JWT codec,
// an issuer that mints access/refresh pairs, and a validator that decides
// whether a request's credentials authorize it, renewing the access token
// from a still-valid refresh token when needed.
//
// All types here are immutable after construction and safe for concurrent use.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/carsapi/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the wire shape of both access and refresh tokens:
// {"id": <subject>, "iat": <unix>, "exp": <unix>}.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Payload is the verified content of a decoded token.
type Payload struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

var signingMethods = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// Codec signs and verifies tokens with one secret and one HMAC algorithm.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	now    func() time.Time
}

// NewCodec validates the key material and algorithm name (case-insensitive).
func NewCodec(secret []byte, algorithm string) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty signing secret")
	}
	method, ok := signingMethods[strings.ToUpper(algorithm)]
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Codec{secret: key, method: method, now: time.Now}, nil
}

// WithClock returns a copy of the codec that reads the current time from now.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	cp := *c
	cp.now = now
	return &cp
}

// Now is the codec's notion of the current time.
func (c *Codec) Now() time.Time {
	return c.now()
}

// Algorithm returns the configured algorithm name, e.g. "HS256".
func (c *Codec) Algorithm() string {
	return c.method.Alg()
}

// Encode signs a token for subject. Timestamps have second precision.
func (c *Codec) Encode(subject string, expiresAt, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(c.method, Claims{
		UserID: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrTokenEncoding, err)
	}
	return tokenString, nil
}

// Decode verifies signature, algorithm and expiry and returns the payload.
//
// Errors match (errors.Is) exactly one of common.ErrTokenMalformed,
// common.ErrTokenSignature or common.ErrTokenExpired. A token is expired
// once now >= exp; no leeway is applied.
func (c *Codec) Decode(tokenString string) (*Payload, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}
	if !token.Valid {
		return nil, common.ErrTokenMalformed
	}
	if claims.UserID == "" || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing subject or expiry", common.ErrTokenMalformed)
	}

	p := &Payload{
		Subject:   claims.UserID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		p.IssuedAt = claims.IssuedAt.Time
	}
	return p, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", common.ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", common.ErrTokenSignature, err)
	default:
		return fmt.Errorf("%w: %w", common.ErrTokenMalformed, err)
	}
}
