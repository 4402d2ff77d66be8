// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/collectiblevm/chain"
	"github.com/ava-labs/collectiblevm/codec"
)

// NewRegistry returns the auth parser used to decode transactions.
func NewRegistry() (*codec.TypeParser[chain.Auth], error) {
	r := codec.NewTypeParser[chain.Auth]()
	errs := &wrappers.Errs{}
	errs.Add(
		r.Register(&ED25519{}, UnmarshalED25519),
	)
	return r, errs.Err
}
