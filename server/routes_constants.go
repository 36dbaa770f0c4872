package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// RouteAPIPrefix mirrors every route for the browser client, which calls /api/...
	RouteAPIPrefix = "/api"

	RouteLogin    = "/login"
	RouteProducts = "/products"
	RouteProduct  = "/products/{id}"
	RouteHealth   = "/healthz"
)
