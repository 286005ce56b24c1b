package auth

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/carsapi/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatorFixture struct {
	codec     *Codec
	issuer    *Issuer
	validator *Validator
	setNow    func(time.Time)
	start     time.Time
}

func newValidatorFixture(t *testing.T) *validatorFixture {
	t.Helper()
	start := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	now, set := fixedClock(start)
	c := newTestCodec(t, "validator-secret").WithClock(now)
	iss := NewIssuer(c, DefaultAccessTTL, DefaultRefreshTTL)
	return &validatorFixture{
		codec:     c,
		issuer:    iss,
		validator: NewValidator(c, iss, logging.NewNopLogger()),
		setNow:    set,
		start:     start,
	}
}

func (f *validatorFixture) token(t *testing.T, subject string, iat time.Time, ttl time.Duration) string {
	t.Helper()
	tok, err := f.codec.Encode(subject, iat.Add(ttl), iat)
	require.NoError(t, err)
	return tok
}

func TestValidate_DecisionTable(t *testing.T) {
	f := newValidatorFixture(t)
	other, err := NewCodec([]byte("someone-else"), "HS256")
	require.NoError(t, err)
	forged, err := other.Encode("mallory", f.start.Add(time.Hour), f.start)
	require.NoError(t, err)

	validAccess := f.token(t, "alice", f.start, time.Hour)
	expiredAccess := f.token(t, "alice", f.start.Add(-2*time.Hour), time.Hour)
	validRefresh := f.token(t, "alice", f.start, 24*time.Hour)
	expiredRefresh := f.token(t, "alice", f.start.Add(-48*time.Hour), 24*time.Hour)

	tests := []struct {
		name           string
		access         string
		refresh        string
		wantAuthorized bool
		wantRenewed    bool
	}{
		{name: "valid access", access: validAccess, wantAuthorized: true},
		{name: "valid access, garbage refresh", access: validAccess, refresh: "junk", wantAuthorized: true},
		{name: "expired access, valid refresh", access: expiredAccess, refresh: validRefresh, wantAuthorized: true, wantRenewed: true},
		{name: "absent access, valid refresh", refresh: validRefresh, wantAuthorized: true, wantRenewed: true},
		{name: "malformed access, valid refresh", access: "x.y.z", refresh: validRefresh, wantAuthorized: true, wantRenewed: true},
		{name: "forged access, valid refresh", access: forged, refresh: validRefresh, wantAuthorized: true, wantRenewed: true},
		{name: "expired access, expired refresh", access: expiredAccess, refresh: expiredRefresh},
		{name: "expired access, forged refresh", access: expiredAccess, refresh: forged},
		{name: "absent access, malformed refresh", refresh: "nope"},
		{name: "expired access, no refresh", access: expiredAccess},
		{name: "nothing presented"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := f.validator.Validate(context.Background(), tt.access, tt.refresh)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAuthorized, out.Authorized)
			assert.Equal(t, tt.wantRenewed, out.Renewed())
			if tt.wantAuthorized {
				assert.Equal(t, "alice", out.Subject)
			} else {
				assert.Equal(t, Denied, out)
			}
		})
	}
}

func TestValidate_RenewalUsesRefreshSubjectAndFreshExpiry(t *testing.T) {
	f := newValidatorFixture(t)

	refresh := f.token(t, "bob", f.start, 24*time.Hour)

	renewalAt := f.start.Add(17*time.Hour + 3*time.Minute)
	f.setNow(renewalAt)

	out, err := f.validator.Validate(context.Background(), "", refresh)
	require.NoError(t, err)
	require.True(t, out.Renewed())

	p, err := f.codec.Decode(out.RenewedAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "bob", p.Subject)
	assert.True(t, p.IssuedAt.Equal(renewalAt))
	assert.True(t, p.ExpiresAt.Equal(renewalAt.Add(60*time.Minute)),
		"renewed expiry must be 60m from renewal, not the refresh token's %v", p.ExpiresAt)
}

func TestValidate_RefreshWindowIsHardCeiling(t *testing.T) {
	f := newValidatorFixture(t)

	pair, err := f.issuer.IssuePair("carol")
	require.NoError(t, err)

	f.setNow(f.start.Add(23 * time.Hour))
	out, err := f.validator.Validate(context.Background(), pair.AccessToken, pair.RefreshToken)
	require.NoError(t, err)
	require.True(t, out.Renewed())

	// the renewed access token outlives the refresh token by up to an hour,
	// but once both are gone the client must log in again
	f.setNow(f.start.Add(24*time.Hour + 61*time.Minute))
	out, err = f.validator.Validate(context.Background(), out.RenewedAccessToken, pair.RefreshToken)
	require.NoError(t, err)
	assert.False(t, out.Authorized)
}
