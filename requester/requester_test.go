// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package requester

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type echoArgs struct {
	Message string `json:"message"`
}

func TestSendRequest(t *testing.T) {
	require := require.New(t)

	var (
		gotMethod string
		gotHeader string
		gotQuery  string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
			ID     json.RawMessage `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotMethod = req.Method
		gotHeader = r.Header.Get("X-Test")
		gotQuery = r.URL.Query().Get("q")

		var args echoArgs
		_ = json.Unmarshal(req.Params, &args)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"result":  args,
			"id":      req.ID,
		})
	}))
	defer srv.Close()

	r := New(srv.URL, "collectible")
	reply := new(echoArgs)
	require.NoError(r.SendRequest(
		context.Background(),
		"echo",
		&echoArgs{Message: "hello"},
		reply,
		WithHeader("X-Test", "header"),
		WithQueryParam("q", "query"),
	))
	require.Equal("collectible.echo", gotMethod)
	require.Equal("header", gotHeader)
	require.Equal("query", gotQuery)
	require.Equal("hello", reply.Message)
}

func TestSendRequestBadStatus(t *testing.T) {
	require := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := New(srv.URL, "collectible").SendRequest(context.Background(), "ping", nil, new(struct{}))
	require.ErrorIs(err, ErrBadStatusCode)
}
