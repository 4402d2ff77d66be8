// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/ava-labs/collectiblevm/actions"
	"github.com/ava-labs/collectiblevm/auth"
	"github.com/ava-labs/collectiblevm/chain"
	"github.com/ava-labs/collectiblevm/collectible"
	"github.com/ava-labs/collectiblevm/config"
	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/genesis"
	"github.com/ava-labs/collectiblevm/registry"
	"github.com/ava-labs/collectiblevm/state"
	"github.com/ava-labs/collectiblevm/storage"

	htrace "github.com/ava-labs/collectiblevm/trace"
)

const chainNamespace = "chain"

// VM owns the database and the transaction processor of a single collection.
type VM struct {
	log     logging.Logger
	config  config.Config
	genesis *genesis.Genesis

	tracer   trace.Tracer
	gatherer metrics.MultiGatherer
	db       state.Database

	networkID uint32
	chainID   ids.ID

	actionRegistry chain.ActionRegistry
	outputRegistry chain.OutputRegistry
	authRegistry   chain.AuthRegistry

	collection *collectible.Collection
	rules      *genesis.Rules
	processor  *chain.Processor

	initialized atomic.Bool
}

func New(log logging.Logger, cfg config.Config, g *genesis.Genesis) *VM {
	return &VM{
		log:     log,
		config:  cfg,
		genesis: g,
	}
}

// Initialize opens the database and writes the genesis state the first time
// the database is used. Reopening a database created from another genesis
// fails with [ErrGenesisMismatch].
func (vm *VM) Initialize(ctx context.Context) (err error) {
	if err := vm.genesis.Verify(); err != nil {
		return err
	}
	genesisID, err := vm.genesis.ID()
	if err != nil {
		return err
	}
	vm.networkID = vm.config.NetworkID
	vm.chainID = genesisID
	if len(vm.config.ChainID) > 0 {
		vm.chainID, err = ids.FromString(vm.config.ChainID)
		if err != nil {
			return fmt.Errorf("%w: invalid chainID", err)
		}
	}

	vm.tracer, err = htrace.New(&vm.config.TraceConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, vm.close())
		}
	}()
	vm.gatherer = metrics.NewPrefixGatherer()

	switch vm.config.DatabaseType {
	case config.MemoryDatabase:
		vm.db = memdb.New()
	default:
		vm.db, err = storage.New(vm.config.Pebble, vm.config.DataDir, vm.gatherer)
		if err != nil {
			return err
		}
	}

	vm.actionRegistry, vm.outputRegistry, err = actions.NewRegistry()
	if err != nil {
		return err
	}
	vm.authRegistry, err = auth.NewRegistry()
	if err != nil {
		return err
	}

	vm.collection, err = collectible.New(vm.genesis.CollectionConfig(), registry.NewState())
	if err != nil {
		return err
	}
	vm.rules = genesis.NewRules(vm.networkID, vm.chainID, vm.collection)

	if err := vm.loadGenesis(ctx, genesisID); err != nil {
		return err
	}

	chainRegistry := prometheus.NewRegistry()
	if err := vm.gatherer.Register(chainNamespace, chainRegistry); err != nil {
		return err
	}
	vm.processor, err = chain.NewProcessor(ctx, vm.log, vm.tracer, vm.rules, vm.db, chainRegistry)
	if err != nil {
		return err
	}
	vm.initialized.Store(true)

	vm.log.Info("initialized vm",
		zap.Uint32("networkID", vm.networkID),
		zap.Stringer("chainID", vm.chainID),
		zap.Stringer("genesisID", genesisID),
		zap.Uint64("height", vm.processor.Height()),
	)
	return nil
}

func (vm *VM) loadGenesis(ctx context.Context, genesisID ids.ID) error {
	ctx, span := vm.tracer.Start(ctx, "VM.loadGenesis")
	defer span.End()

	stored, exists, err := storage.GetGenesis(ctx, state.NewReader(vm.db))
	if err != nil {
		return err
	}
	if exists {
		if stored != genesisID {
			return fmt.Errorf("%w: stored=%s provided=%s", ErrGenesisMismatch, stored, genesisID)
		}
		vm.log.Debug("genesis already loaded", zap.Stringer("genesisID", genesisID))
		return nil
	}

	mu := state.NewSimpleMutable(state.NewReader(vm.db))
	if err := vm.genesis.InitializeState(ctx, vm.tracer, mu, vm.collection); err != nil {
		return err
	}
	if err := storage.SetGenesis(ctx, mu, genesisID); err != nil {
		return err
	}
	batch := vm.db.NewBatch()
	if err := mu.Commit(batch); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	vm.log.Info("loaded genesis",
		zap.Stringer("genesisID", genesisID),
		zap.Int("allocations", len(vm.genesis.CustomAllocation)),
	)
	return nil
}

// Submit executes [tx] and returns its recorded result.
func (vm *VM) Submit(ctx context.Context, tx *chain.Transaction) (*chain.Result, error) {
	if !vm.initialized.Load() {
		return nil, ErrNotInitialized
	}
	ctx, span := vm.tracer.Start(ctx, "VM.Submit")
	defer span.End()

	return vm.processor.Execute(ctx, tx)
}

// SubmitBytes parses a signed transaction and executes it.
func (vm *VM) SubmitBytes(ctx context.Context, raw []byte) (*chain.Transaction, *chain.Result, error) {
	if len(raw) > consts.NetworkSizeLimit {
		return nil, nil, fmt.Errorf("%w: size=%d", ErrTxTooLarge, len(raw))
	}
	tx, err := chain.ParseTx(raw, vm.actionRegistry, vm.authRegistry)
	if err != nil {
		return nil, nil, err
	}
	result, err := vm.Submit(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	return tx, result, nil
}

// GetResult returns the result recorded for [txID].
func (vm *VM) GetResult(ctx context.Context, txID ids.ID) (*chain.Result, bool, error) {
	if !vm.initialized.Load() {
		return nil, false, ErrNotInitialized
	}
	return vm.processor.GetResult(ctx, txID)
}

func (vm *VM) AddListener(l chain.Listener) {
	vm.processor.AddListener(l)
}

// Shutdown closes the database and flushes pending spans.
func (vm *VM) Shutdown(context.Context) error {
	if !vm.initialized.CompareAndSwap(true, false) {
		return nil
	}
	return vm.close()
}

// close releases the database and tracer opened by [Initialize].
func (vm *VM) close() error {
	errs := wrappers.Errs{}
	if vm.db != nil {
		errs.Add(vm.db.Close())
	}
	errs.Add(vm.tracer.Close())
	return errs.Err
}
