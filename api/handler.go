// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import "net/http"

// Name is the JSON-RPC service every read and write method is registered
// under.
const Name = "collectible"

// Handler is an HTTP handler mounted at [server.BaseURL]/[Path].
type Handler struct {
	Path    string
	Handler http.Handler
}

type HandlerFactory[T any] interface {
	New(t T) (Handler, error)
}
