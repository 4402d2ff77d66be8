// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/collectible"
	"github.com/ava-labs/collectiblevm/state"
)

type (
	ActionRegistry = *codec.TypeParser[Action]
	AuthRegistry   = *codec.TypeParser[Auth]
	OutputRegistry = *codec.TypeParser[Output]
)

type Rules interface {
	// Should almost always be constant (unless there is a fork of
	// a live network)
	GetChainID() ids.ID

	GetValidityWindow() int64 // in milliseconds

	// Collection returns the collection every action executes against.
	Collection() *collectible.Collection
}

type Action interface {
	codec.Typed

	// Payable reports whether a transaction carrying this action may attach
	// a non-zero value.
	Payable() bool

	// Size is the number of bytes written by [Marshal].
	Size() int

	// Marshal encodes the action (without the type ID).
	Marshal(p *codec.Packer)

	// Execute applies the action to [mu]. When it returns an error all
	// changes made during the transaction are reverted.
	//
	// [value] has already been debited from [actor] when Execute is called.
	Execute(
		ctx context.Context,
		r Rules,
		mu state.Mutable,
		timestamp int64,
		actor codec.Address,
		txID ids.ID,
		value uint64,
	) (Output, error)
}

// Output is the typed result of a successful action.
type Output interface {
	codec.Typed

	Marshal(p *codec.Packer)
}

type Auth interface {
	codec.Typed

	// Verify checks that the auth is valid for [msg].
	Verify(ctx context.Context, msg []byte) error

	// Actor is the account executing the transaction.
	Actor() codec.Address

	// Size is the number of bytes written by [Marshal].
	Size() int

	// Marshal encodes the auth (without the type ID).
	Marshal(p *codec.Packer)
}

type AuthFactory interface {
	Sign(msg []byte) (Auth, error)
	Address() codec.Address
}

// Listener is notified after every transaction the processor records.
type Listener interface {
	Executed(ctx context.Context, tx *Transaction, result *Result)
}
