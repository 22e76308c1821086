package api

import (
	"net/http"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/api/middleware"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/core"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/policy"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/service"
)

type Server struct {
	authService *service.AuthService
	store       core.CredentialStore
	policyTable *policy.Table
}

func NewServer(
	authService *service.AuthService,
	store core.CredentialStore,
	policyTable *policy.Table,
) *Server {
	return &Server{
		authService: authService,
		store:       store,
		policyTable: policyTable,
	}
}

// Routes wires up the handler tree. Every request passes correlation,
// logging, principal resolution and policy enforcement before reaching a
// handler; the policy table alone decides which routes demand what.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)

	mux.HandleFunc("POST "+LoginRoute, s.handleLogin)
	mux.HandleFunc("GET "+MeRoute, s.handleMe)

	mux.HandleFunc("GET "+ListIdentitiesRoute, s.handleListIdentities)
	mux.HandleFunc("GET "+PolicyRoute, s.handlePolicy)

	return middleware.RecoverMiddleware(
		middleware.CorrelationIDMiddleware(
			middleware.LoggingMiddleware(
				middleware.ResolvePrincipal(s.authService.Resolve)(
					middleware.EnforcePolicy(s.policyTable)(
						mux,
					),
				),
			),
		),
	)
}
