package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/linkedin-post-stats/auth"
	"github.com/jrsteele09/linkedin-post-stats/internal/config"
	"github.com/jrsteele09/linkedin-post-stats/linkedin"
	"github.com/jrsteele09/linkedin-post-stats/sessions"
	"github.com/jrsteele09/linkedin-post-stats/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Repos holds the storage backends the server is built on.
type Repos struct {
	Users    users.UserRepo
	Sessions sessions.Repo
}

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	mux     *http.ServeMux
	handler http.Handler
	routes  []string
	config  config.Config

	auth      *auth.Service
	sessions  *sessions.Manager
	connector *linkedin.Connector
	stats     *linkedin.StatsClient
	profile   *linkedin.ProfileClient
}

// New wires the services over repos and registers every route.
// LinkedIn clients accept opts, which tests use to redirect outbound calls.
func New(cfg config.Config, repos Repos, opts ...linkedin.Option) (*Server, error) {
	if repos.Users == nil || repos.Sessions == nil {
		return nil, errors.New("[server.New] user and session repos are required")
	}

	userService, err := users.NewService(repos.Users)
	if err != nil {
		return nil, errors.Wrap(err, "[server.New] users.NewService")
	}
	sessionManager, err := sessions.NewManager(repos.Sessions, cfg.GetSessionSecret(), sessions.WithMaxAge(cfg.GetMaxSessionAge()))
	if err != nil {
		return nil, errors.Wrap(err, "[server.New] sessions.NewManager")
	}
	authService, err := auth.NewService(userService, sessionManager)
	if err != nil {
		return nil, errors.Wrap(err, "[server.New] auth.NewService")
	}
	connector, err := linkedin.NewConnector(cfg, cfg.GetClientBaseURL(), sessionManager, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "[server.New] linkedin.NewConnector")
	}
	stats, err := linkedin.NewStatsClient(cfg, sessionManager, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "[server.New] linkedin.NewStatsClient")
	}
	profile, err := linkedin.NewProfileClient(cfg, sessionManager, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "[server.New] linkedin.NewProfileClient")
	}

	s := &Server{
		env:       cfg.GetEnv(),
		mux:       http.NewServeMux(),
		config:    cfg,
		auth:      authService,
		sessions:  sessionManager,
		connector: connector,
		stats:     stats,
		profile:   profile,
	}
	s.initRoutes()
	s.handler = s.corsHandler(s.mux)
	s.logRoutes()

	if cfg.GetLinkedInPostID() == "" {
		log.Warn().Msg("LINKEDIN_POST_ID is not set, stats requests will fail")
	}
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			log.Debug().Msgf("[%s] %s", colourMethod(parts[0]), parts[1])
		} else {
			log.Debug().Msgf("[%s] %s", colourMethod(""), parts[0])
		}
	}
}
