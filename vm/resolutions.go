// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/collectiblevm/chain"
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/collectible"
	"github.com/ava-labs/collectiblevm/genesis"
	"github.com/ava-labs/collectiblevm/state"
	"github.com/ava-labs/collectiblevm/storage"
)

func (vm *VM) ChainID() ids.ID {
	return vm.chainID
}

func (vm *VM) NetworkID() uint32 {
	return vm.networkID
}

func (vm *VM) Genesis() *genesis.Genesis {
	return vm.genesis
}

func (vm *VM) Tracer() trace.Tracer {
	return vm.tracer
}

func (vm *VM) Logger() logging.Logger {
	return vm.log
}

func (vm *VM) Gatherer() prometheus.Gatherer {
	return vm.gatherer
}

func (vm *VM) ActionRegistry() chain.ActionRegistry {
	return vm.actionRegistry
}

func (vm *VM) OutputRegistry() chain.OutputRegistry {
	return vm.outputRegistry
}

func (vm *VM) AuthRegistry() chain.AuthRegistry {
	return vm.authRegistry
}

func (vm *VM) Rules() chain.Rules {
	return vm.rules
}

func (vm *VM) Collection() *collectible.Collection {
	return vm.collection
}

// Height is the number of transactions executed.
func (vm *VM) Height() uint64 {
	return vm.processor.Height()
}

// ImmutableState returns a read-only view of the latest committed state.
func (vm *VM) ImmutableState(context.Context) (state.Immutable, error) {
	if !vm.initialized.Load() {
		return nil, ErrNotInitialized
	}
	return vm.processor.State(), nil
}

func (vm *VM) Balance(ctx context.Context, addr codec.Address) (uint64, error) {
	im, err := vm.ImmutableState(ctx)
	if err != nil {
		return 0, err
	}
	return storage.GetBalance(ctx, im, addr)
}
