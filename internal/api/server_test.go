package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/auth"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/core"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/policy"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/service"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/store"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/token"
)

var testSecret = []byte("api-test-secret")

func testHandler(t *testing.T) http.Handler {
	t.Helper()

	hash, err := auth.HashPassword("pepperoni")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	credStore := store.NewInMemoryCredentialStore([]core.Identity{
		{ID: "alice", PasswordHash: hash, Role: "MANAGER"},
		{ID: "bob", PasswordHash: hash, Role: "STAFF"},
	})

	policyTable, err := policy.New([]core.PolicyEntry{
		{Pattern: AdminParent + "*", Require: core.RequireRole, Role: "MANAGER"},
		{Pattern: MeRoute, Require: core.RequireAuthenticated},
		{Pattern: "*", Require: core.RequirePublic},
	})
	if err != nil {
		t.Fatalf("building policy table: %v", err)
	}

	authService := service.NewAuthService(
		credStore,
		token.NewIssuer(testSecret, time.Hour, nil),
		token.NewVerifier(testSecret, nil),
	)

	return NewServer(authService, credStore, policyTable).Routes()
}

func doRequest(t *testing.T, handler http.Handler, method, path, bearer, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, handler http.Handler, id, password string) string {
	t.Helper()

	rec := doRequest(t, handler, "POST", LoginRoute, "", `{"id":"`+id+`","password":"`+password+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login for %s returned status %d: %s", id, rec.Code, rec.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	return resp.Token
}

func TestPublicRoutes(t *testing.T) {
	handler := testHandler(t)

	if rec := doRequest(t, handler, "GET", HealthCheckRoute, "", ""); rec.Code != http.StatusOK {
		t.Errorf("healthz = %d, want 200", rec.Code)
	}
	if rec := doRequest(t, handler, "GET", AboutRoute, "", ""); rec.Code != http.StatusOK {
		t.Errorf("about = %d, want 200", rec.Code)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	handler := testHandler(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "Wrong Password", body: `{"id":"alice","password":"hawaii"}`, want: http.StatusUnauthorized},
		{name: "Unknown Identity", body: `{"id":"mallory","password":"pepperoni"}`, want: http.StatusUnauthorized},
		{name: "Missing Fields", body: `{"id":"alice"}`, want: http.StatusBadRequest},
		{name: "Unknown Fields", body: `{"id":"alice","password":"pepperoni","admin":true}`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, handler, "POST", LoginRoute, "", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestLoginFailureBodiesAreUniform(t *testing.T) {
	handler := testHandler(t)

	wrongPassword := doRequest(t, handler, "POST", LoginRoute, "", `{"id":"alice","password":"hawaii"}`)
	unknownID := doRequest(t, handler, "POST", LoginRoute, "", `{"id":"mallory","password":"x"}`)

	var a, b struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(wrongPassword.Body.Bytes(), &a); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if err := json.Unmarshal(unknownID.Body.Bytes(), &b); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if a.Error != b.Error {
		t.Errorf("rejection bodies differ (%q vs %q); username enumeration possible", a.Error, b.Error)
	}
}

func TestMeRequiresAuthentication(t *testing.T) {
	handler := testHandler(t)

	tests := []struct {
		name   string
		bearer string
	}{
		{name: "No Token"},
		{name: "Garbage Token", bearer: "garbage"},
		{name: "Wrong Secret", bearer: foreignToken(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, handler, "GET", MeRoute, tt.bearer, "")
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func foreignToken(t *testing.T) string {
	t.Helper()
	signed, _, err := token.NewIssuer([]byte("some-other-service-secret"), time.Hour, nil).Issue("alice", "MANAGER")
	if err != nil {
		t.Fatalf("issuing foreign token: %v", err)
	}
	return signed
}

func TestEndToEnd(t *testing.T) {
	handler := testHandler(t)

	managerToken := login(t, handler, "alice", "pepperoni")
	staffToken := login(t, handler, "bob", "pepperoni")

	// the resolved principal carries the subject and the one-element authority set
	rec := doRequest(t, handler, "GET", MeRoute, managerToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("me = %d: %s", rec.Code, rec.Body.String())
	}
	var principal core.Principal
	if err := json.Unmarshal(rec.Body.Bytes(), &principal); err != nil {
		t.Fatalf("decoding principal: %v", err)
	}
	if principal.Subject != "alice" {
		t.Errorf("subject = %q, want alice", principal.Subject)
	}
	if len(principal.Authorities) != 1 || principal.Authorities[0] != "MANAGER" {
		t.Errorf("authorities = %v, want [MANAGER]", principal.Authorities)
	}

	// role-restricted admin route
	if rec := doRequest(t, handler, "GET", ListIdentitiesRoute, managerToken, ""); rec.Code != http.StatusOK {
		t.Errorf("admin route with MANAGER = %d, want 200", rec.Code)
	}
	if rec := doRequest(t, handler, "GET", ListIdentitiesRoute, staffToken, ""); rec.Code != http.StatusForbidden {
		t.Errorf("admin route with STAFF = %d, want 403", rec.Code)
	}
	if rec := doRequest(t, handler, "GET", ListIdentitiesRoute, "", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("admin route anonymous = %d, want 401", rec.Code)
	}
}

func TestAdminResponsesNeverLeakHashes(t *testing.T) {
	handler := testHandler(t)
	managerToken := login(t, handler, "alice", "pepperoni")

	rec := doRequest(t, handler, "GET", ListIdentitiesRoute, managerToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin route = %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "$2a$") || strings.Contains(rec.Body.String(), "password") {
		t.Errorf("identity listing leaks password material: %s", rec.Body.String())
	}
}

func TestDenyResponsesCarryCorrelationID(t *testing.T) {
	handler := testHandler(t)

	rec := doRequest(t, handler, "GET", ListIdentitiesRoute, "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if rec.Header().Get("X-Correlation-ID") == "" {
		t.Error("deny response is missing the correlation ID header")
	}

	var resp struct {
		Error         string `json:"error"`
		CorrelationID string `json:"correlation_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Error != "authentication required" {
		t.Errorf("error = %q, want the uniform message", resp.Error)
	}
	if resp.CorrelationID == "" {
		t.Error("deny body is missing the correlation ID")
	}
}

func TestTokenPropagation(t *testing.T) {
	// a downstream service must be able to forward the bearer token
	// unmodified; simulate this by reusing the exact header value
	handler := testHandler(t)
	managerToken := login(t, handler, "alice", "pepperoni")

	first := doRequest(t, handler, "GET", MeRoute, managerToken, "")
	second := doRequest(t, handler, "GET", ListIdentitiesRoute, managerToken, "")
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Errorf("forwarded token rejected: me=%d admin=%d", first.Code, second.Code)
	}
}
