// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/ava-labs/collectiblevm/config"
)

const BaseURL = "/ext"

var _ Server = (*server)(nil)

type PathAdder interface {
	// AddRoute registers a route to a handler.
	AddRoute(handler http.Handler, base, endpoint string) error
}

// Server maintains the HTTP router
type Server interface {
	PathAdder
	// Dispatch starts the API server
	Dispatch() error
	// Shutdown this server
	Shutdown() error
}

// Wrapper wraps the root handler of the server.
type Wrapper interface {
	WrapHandler(h http.Handler) http.Handler
}

type server struct {
	baseURL string

	// log this server writes to
	log logging.Logger

	shutdownTimeout time.Duration

	// Maps endpoints to handlers
	router *router

	srv *http.Server

	// Listener used to serve traffic
	listener net.Listener
}

// New returns an instance of a Server.
func New(
	baseURL string,
	log logging.Logger,
	listener net.Listener,
	httpConfig config.HTTPConfig,
	wrappers ...Wrapper,
) Server {
	router := newRouter()
	allowedHostsHandler := filterInvalidHosts(router, httpConfig.AllowedHosts)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   httpConfig.AllowedOrigins,
		AllowCredentials: true,
	}).Handler(allowedHostsHandler)
	var handler http.Handler = gziphandler.GzipHandler(corsHandler)

	for _, wrapper := range wrappers {
		handler = wrapper.WrapHandler(handler)
	}

	log.Info("API created",
		zap.Strings("allowedOrigins", httpConfig.AllowedOrigins),
		zap.Strings("allowedHosts", httpConfig.AllowedHosts),
	)

	return &server{
		baseURL:         baseURL,
		log:             log,
		shutdownTimeout: httpConfig.ShutdownTimeout,
		router:          router,
		srv: &http.Server{
			Handler:           handler,
			ReadTimeout:       httpConfig.ReadTimeout,
			ReadHeaderTimeout: httpConfig.ReadHeaderTimeout,
			WriteTimeout:      httpConfig.WriteTimeout,
			IdleTimeout:       httpConfig.IdleTimeout,
		},
		listener: listener,
	}
}

func (s *server) Dispatch() error {
	s.log.Info("API server listening",
		zap.Stringer("address", s.listener.Addr()),
	)
	return s.srv.Serve(s.listener)
}

func (s *server) AddRoute(handler http.Handler, base, endpoint string) error {
	url := fmt.Sprintf("%s/%s", s.baseURL, base)
	s.log.Info("adding route",
		zap.String("url", url),
		zap.String("endpoint", endpoint),
	)
	return s.router.AddRouter(url, endpoint, handler)
}

func (s *server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	err := s.srv.Shutdown(ctx)
	cancel()

	// If shutdown times out, make sure the server is still shutdown.
	_ = s.srv.Close()
	return err
}
