package server

func (s *Server) initRoutes() {
	// LOCAL ACCOUNTS
	s.RegisterRouteHandler("POST "+RouteRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteProtected, ChainMiddleware(s.ProtectedHandler(), s.APIMiddleware(s.RequireSession())...))

	// LINKEDIN
	s.RegisterRouteHandler("GET "+RouteLinkedInAuth, ChainMiddleware(s.LinkedInAuthHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RouteLinkedInCallback, ChainMiddleware(s.LinkedInCallbackHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLinkedInIsAuthenticated, ChainMiddleware(s.IsLinkedInAuthenticatedHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RouteLinkedInStats, ChainMiddleware(s.LinkedInStatsHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteHandler("POST "+RouteLinkedInDisconnect, ChainMiddleware(s.LinkedInDisconnectHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RouteLinkedInProfile, ChainMiddleware(s.LinkedInProfileHandler(), s.APIMiddleware(s.RequireSession())...))

	// Health check, no middleware
	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthzHandler())
}
