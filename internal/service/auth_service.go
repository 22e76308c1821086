package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/auth"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/core"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/token"
)

// AuthService handles the two sides of the token protocol: issuing a token
// after password verification, and resolving a presented token back into a
// request-scoped principal.
type AuthService struct {
	store    core.CredentialStore
	issuer   *token.Issuer
	verifier *token.Verifier
}

func NewAuthService(
	store core.CredentialStore,
	issuer *token.Issuer,
	verifier *token.Verifier,
) *AuthService {
	return &AuthService{
		store:    store,
		issuer:   issuer,
		verifier: verifier,
	}
}

// Login verifies the submitted credentials and issues a signed token.
// An unknown identity and a wrong password both return ErrInvalidCredentials;
// the distinction is logged at debug level only.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	logger := log.Ctx(ctx)

	identity, err := s.store.FindIdentity(ctx, req.ID)
	if err != nil {
		if errors.Is(err, core.ErrIdentityNotFound) {
			logger.Debug().Str("id", req.ID).Msg("login for unknown identity")
			return nil, httpError(http.StatusUnauthorized, ErrInvalidCredentials)
		}
		return nil, httpError(http.StatusInternalServerError, err)
	}

	if !auth.VerifyPassword(req.Password, identity.PasswordHash) {
		logger.Debug().Str("id", req.ID).Msg("login with wrong password")
		return nil, httpError(http.StatusUnauthorized, ErrInvalidCredentials)
	}

	signed, expiresAt, err := s.issuer.Issue(identity.ID, identity.Role)
	if err != nil {
		return nil, httpError(http.StatusInternalServerError, err)
	}

	logger.Info().
		Str("sub", identity.ID).
		Str("role", identity.Role).
		Time("expires_at", expiresAt).
		Msg("token.issued")

	return &LoginResult{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// Resolve turns a raw bearer token into a principal. Missing, malformed,
// badly signed and expired tokens all fold into ErrUnauthenticated; the
// sub-reason only reaches the logs.
func (s *AuthService) Resolve(ctx context.Context, rawToken string) (*core.Principal, error) {
	logger := log.Ctx(ctx)

	if rawToken == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.verifier.Parse(rawToken)
	if err != nil {
		logger.Debug().Err(err).Msg("token rejected")
		return nil, ErrUnauthenticated
	}

	if s.verifier.Expired(claims) {
		logger.Debug().Str("sub", claims.Subject).Time("exp", claims.Expiry()).Msg("token expired")
		return nil, ErrUnauthenticated
	}

	return &core.Principal{
		Subject:     claims.Subject,
		Authorities: claims.Authorities(),
	}, nil
}
