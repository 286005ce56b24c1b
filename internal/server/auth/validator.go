package auth

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/carsapi/internal/logging"
)

// Outcome is the authorization decision for one request.
type Outcome struct {
	Authorized bool
	// Subject is the identity the request acts as; empty when denied.
	Subject string
	// RenewedAccessToken is set when the access token was absent or invalid
	// and a new one was minted from the refresh token. The caller must hand
	// it to the client.
	RenewedAccessToken string
}

// Renewed reports whether a new access token was minted.
func (o Outcome) Renewed() bool {
	return o.RenewedAccessToken != ""
}

// Denied is the zero Outcome.
var Denied = Outcome{}

// Validator evaluates the (access, refresh) credential pair.
type Validator struct {
	codec  *Codec
	issuer *Issuer
	logger logging.Logger
}

func NewValidator(codec *Codec, issuer *Issuer, logger logging.Logger) *Validator {
	return &Validator{codec: codec, issuer: issuer, logger: logger.With("module", "token_validator")}
}

// Validate decides on the presented tokens; an empty string means absent.
//
//	access valid                          → authorized
//	access absent/invalid, refresh valid  → authorized, access renewed
//	otherwise                             → denied
//
// Every decode failure counts as "invalid"; the kind is only logged.
// The refresh token is never reissued. The returned error is non-nil only
// when minting the renewed token fails.
func (v *Validator) Validate(ctx context.Context, access, refresh string) (Outcome, error) {
	if access != "" {
		payload, err := v.codec.Decode(access)
		if err == nil {
			return Outcome{Authorized: true, Subject: payload.Subject}, nil
		}
		v.logger.Debug(ctx, "access token rejected", "reason", err.Error())
	}

	if refresh == "" {
		return Denied, nil
	}

	payload, err := v.codec.Decode(refresh)
	if err != nil {
		v.logger.Debug(ctx, "refresh token rejected", "reason", err.Error())
		return Denied, nil
	}

	renewed, err := v.issuer.IssueAccess(payload.Subject)
	if err != nil {
		return Denied, fmt.Errorf("renew access token: %w", err)
	}

	v.logger.Debug(ctx, "access token renewed", "subject", payload.Subject)
	return Outcome{Authorized: true, Subject: payload.Subject, RenewedAccessToken: renewed}, nil
}
