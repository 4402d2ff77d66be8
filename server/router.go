// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
)

var errAlreadyReserved = errors.New("route is either already aliased or already maps to a handle")

type router struct {
	lock   sync.RWMutex
	router *mux.Router

	// base -> endpoint -> handler
	routes map[string]map[string]http.Handler
}

func newRouter() *router {
	return &router{
		router: mux.NewRouter(),
		routes: make(map[string]map[string]http.Handler),
	}
}

func (r *router) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	r.router.ServeHTTP(writer, request)
}

func (r *router) AddRouter(base, endpoint string, handler http.Handler) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	endpoints, exists := r.routes[base]
	if !exists {
		endpoints = make(map[string]http.Handler)
		r.routes[base] = endpoints
	}
	if _, exists := endpoints[endpoint]; exists {
		return fmt.Errorf("%w: %s", errAlreadyReserved, base+endpoint)
	}
	endpoints[endpoint] = handler
	r.router.Handle(base+endpoint, handler)
	return nil
}
