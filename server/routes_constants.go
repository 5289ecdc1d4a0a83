package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Local account routes
	RouteRegister  = "/register"
	RouteLogin     = "/login"
	RouteLogout    = "/logout"
	RouteProtected = "/protected"

	// LinkedIn routes
	RouteLinkedInAuth            = "/linkedin/auth"
	RouteLinkedInCallback        = "/linkedin/callback"
	RouteLinkedInIsAuthenticated = "/linkedin/isLinkedInAuthenticated"
	RouteLinkedInStats           = "/linkedin/stats"
	RouteLinkedInDisconnect      = "/linkedin/disconnect"
	RouteLinkedInProfile         = "/linkedin/profile"

	// Health check
	RouteHealthz = "/healthz"
)
