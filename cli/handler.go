// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"github.com/ava-labs/collectiblevm/pebble"
	"github.com/ava-labs/collectiblevm/state"
	"github.com/ava-labs/collectiblevm/utils"
)

const keystoreNamespace = "keystore"

// Handler stores the keys and the default endpoint used by the command line
// client.
type Handler struct {
	db state.Database
}

// New opens the keystore under [dir].
func New(dir string) (*Handler, error) {
	path, err := utils.InitSubDirectory(dir, keystoreNamespace)
	if err != nil {
		return nil, err
	}
	db, _, err := pebble.New(path, pebble.NewDefaultConfig())
	if err != nil {
		return nil, err
	}
	return NewWithDatabase(db), nil
}

func NewWithDatabase(db state.Database) *Handler {
	return &Handler{db: db}
}

func (h *Handler) Close() error {
	return h.db.Close()
}
