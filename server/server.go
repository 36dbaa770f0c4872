package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-stock-server/auth"
	"github.com/jrsteele09/go-stock-server/internal/config"
	"github.com/jrsteele09/go-stock-server/products"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	handler  http.Handler
	routes   []string
	config   config.Config
	products *products.Service
	issuer   *auth.Issuer
	guard    *auth.Guard
}

// New wires the product service, the login issuer and the bearer guard
// around repo. credential is the single token accepted on protected routes.
func New(config config.Config, repo products.Repo, credential string) (*Server, error) {
	issuer, err := auth.NewIssuer(config.GetAdminUsername(), config.GetAdminPassword(), credential)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create issuer: %w", err)
	}

	s := &Server{
		env:      config.GetEnv(),
		mux:      http.NewServeMux(),
		config:   config,
		products: products.NewService(repo),
		issuer:   issuer,
		guard:    auth.NewGuard(credential),
	}
	// CORS sits in front of the mux so preflight requests never hit a method-bound route.
	s.handler = s.CorsMiddleware(s.mux.ServeHTTP)

	s.initRoutes()
	s.logRoutes()

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

// Routes returns the registered patterns in registration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	color, ok := methodColors[method]
	if !ok {
		color = Gray
	}
	log.Debug().Msgf("[%s%s%s] %s", color, paddedMethod, ResetColor, path)
}
