package api

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/about"

	LoginRoute = "/v1/auth/login"
	MeRoute    = "/v1/auth/me"

	AdminParent         = "/v1/admin/"
	ListIdentitiesRoute = AdminParent + "identities"
	PolicyRoute         = AdminParent + "policy"
)
