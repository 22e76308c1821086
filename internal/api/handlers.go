package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/api/middleware"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/api/presenter"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/buildinfo"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/service"
)

// DecodePayload decodes a JSON request body into dest with strict field checking.
func DecodePayload(r *http.Request, dest any, allowEmpty bool) error {
	switch r.Header.Get("Content-Type") {
	case "application/json", "":
		// strict encoding for JSON
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(dest); err != nil {
			if !errors.Is(err, io.EOF) || !allowEmpty {
				return err
			}
		}
		// ensure there's no extra data
		if dec.More() {
			return errors.New("extra data in request body")
		}
		return nil
	default:
		return errors.New("unsupported content type")
	}
}

// handleHealth responds with a simple OK status to indicate the server is healthy.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleAbout responds with service information including version and commit hash.
func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, buildinfo.GetBuildInfo(), http.StatusOK)
}

type LoginPayload struct {
	// ID is the login identifier.
	ID string `json:"id"`

	// Password is the plaintext credential, verified against the stored hash.
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// handleLogin verifies credentials and returns a signed token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	var payload LoginPayload
	if err := DecodePayload(r, &payload, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode login payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.ID == "" || payload.Password == "" {
		presenter.Error(w, r, "id and password are required", http.StatusBadRequest)
		return
	}

	result, err := s.authService.Login(ctx, service.LoginRequest{
		ID:       payload.ID,
		Password: payload.Password,
	})
	if err != nil {
		presenter.Err(w, r, err, "login failed")
		return
	}

	presenter.JSON(w, r, LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	}, http.StatusOK)
}

// handleMe returns the principal resolved for the current request.
// The policy table must require authentication for this route.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalCtx(r.Context())
	if principal == nil {
		// reachable only with a misconfigured policy table
		presenter.Error(w, r, "authentication required", http.StatusUnauthorized)
		return
	}
	presenter.JSON(w, r, principal, http.StatusOK)
}

type IdentityView struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// handleListIdentities lists stored identities without their password hashes.
func (s *Server) handleListIdentities(w http.ResponseWriter, r *http.Request) {
	identities, err := s.store.ListIdentities(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to list identities")
		presenter.Error(w, r, "failed to list identities", http.StatusInternalServerError)
		return
	}

	views := make([]IdentityView, 0, len(identities))
	for _, identity := range identities {
		views = append(views, IdentityView{
			ID:   identity.ID,
			Role: identity.Role,
		})
	}
	presenter.JSON(w, r, views, http.StatusOK)
}

type PolicyEntryView struct {
	Pattern string `json:"pattern"`
	Require string `json:"require"`
	Role    string `json:"role,omitempty"`
	When    string `json:"when,omitempty"`
}

// handlePolicy exposes the loaded policy table for operators.
func (s *Server) handlePolicy(w http.ResponseWriter, r *http.Request) {
	entries := s.policyTable.Entries()
	views := make([]PolicyEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, PolicyEntryView{
			Pattern: entry.Pattern,
			Require: string(entry.Require),
			Role:    entry.Role,
			When:    entry.When,
		})
	}
	presenter.JSON(w, r, views, http.StatusOK)
}
