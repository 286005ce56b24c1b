package auth

import (
	"fmt"
	"time"
)

// Default lifetimes of the two tokens.
const (
	DefaultAccessTTL  = 60 * time.Minute
	DefaultRefreshTTL = 24 * time.Hour
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
// Both are self-contained tokens of the same shape bound to the same subject.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Issuer mints tokens through a Codec. It keeps no state between calls.
type Issuer struct {
	codec      *Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewIssuer falls back to the default lifetimes for non-positive TTLs.
func NewIssuer(codec *Codec, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &Issuer{codec: codec, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssuePair is called by login after the credentials have been verified.
func (i *Issuer) IssuePair(subject string) (*TokenPair, error) {
	now := i.codec.Now()

	access, err := i.codec.Encode(subject, now.Add(i.accessTTL), now)
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}
	refresh, err := i.codec.Encode(subject, now.Add(i.refreshTTL), now)
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// IssueAccess mints a fresh access token only: iat=now, exp=now+accessTTL.
func (i *Issuer) IssueAccess(subject string) (string, error) {
	now := i.codec.Now()
	return i.codec.Encode(subject, now.Add(i.accessTTL), now)
}

// AccessTTL is the effective access token lifetime.
func (i *Issuer) AccessTTL() time.Duration { return i.accessTTL }

// RefreshTTL is the effective refresh token lifetime.
func (i *Issuer) RefreshTTL() time.Duration { return i.refreshTTL }
