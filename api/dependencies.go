// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/collectiblevm/chain"
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/collectible"
	"github.com/ava-labs/collectiblevm/genesis"
	"github.com/ava-labs/collectiblevm/state"
)

type VM interface {
	Genesis() *genesis.Genesis
	ChainID() ids.ID
	NetworkID() uint32
	Tracer() trace.Tracer
	Logger() logging.Logger
	ActionRegistry() chain.ActionRegistry
	OutputRegistry() chain.OutputRegistry
	AuthRegistry() chain.AuthRegistry
	Rules() chain.Rules
	Collection() *collectible.Collection
	Height() uint64
	ImmutableState(ctx context.Context) (state.Immutable, error)
	Balance(ctx context.Context, addr codec.Address) (uint64, error)
	Submit(ctx context.Context, tx *chain.Transaction) (*chain.Result, error)
	SubmitBytes(ctx context.Context, raw []byte) (*chain.Transaction, *chain.Result, error)
	GetResult(ctx context.Context, txID ids.ID) (*chain.Result, bool, error)
	AddListener(l chain.Listener)
}
