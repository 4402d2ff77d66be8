// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/collectiblevm/actions"
	"github.com/ava-labs/collectiblevm/auth"
	"github.com/ava-labs/collectiblevm/chain"
	"github.com/ava-labs/collectiblevm/config"
	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/crypto/ed25519"
	"github.com/ava-labs/collectiblevm/genesis"
	"github.com/ava-labs/collectiblevm/utils"
)

func newFactory(t *testing.T) *auth.ED25519Factory {
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(t, err)
	return auth.NewED25519Factory(priv)
}

func newTestVM(t *testing.T, cfg config.Config, g *genesis.Genesis) *VM {
	vm := New(logging.NoLog{}, cfg, g)
	require.NoError(t, vm.Initialize(context.Background()))
	return vm
}

func signTx(t *testing.T, vm *VM, factory chain.AuthFactory, action chain.Action, value uint64) *chain.Transaction {
	base := &chain.Base{
		Timestamp: utils.UnixRMilli(-1, consts.ValidityWindow),
		ChainID:   vm.ChainID(),
		Value:     value,
	}
	tx, err := chain.NewTx(base, action).Sign(factory, vm.ActionRegistry(), vm.AuthRegistry())
	require.NoError(t, err)
	return tx
}

func TestVMMint(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	admin := newFactory(t)
	alice := newFactory(t)
	g := genesis.New(admin.Address(), "ipfs://collection/", []*genesis.CustomAllocation{
		{Address: alice.Address().String(), Balance: 10 * consts.DefaultUnitPrice},
	})
	cfg := config.NewDefaultConfig()
	cfg.DatabaseType = config.MemoryDatabase
	vm := newTestVM(t, cfg, g)
	defer func() { require.NoError(vm.Shutdown(ctx)) }()

	genesisID, err := g.ID()
	require.NoError(err)
	require.Equal(genesisID, vm.ChainID())
	require.Equal(uint64(0), vm.Height())

	tx := signTx(t, vm, alice, &actions.Mint{Count: 2}, 2*consts.DefaultUnitPrice)
	result, err := vm.Submit(ctx, tx)
	require.NoError(err)
	require.True(result.Success, string(result.Error))
	require.Equal(uint64(1), vm.Height())

	stored, ok, err := vm.GetResult(ctx, tx.ID())
	require.NoError(err)
	require.True(ok)
	require.Equal(result, stored)

	im, err := vm.ImmutableState(ctx)
	require.NoError(err)
	tokens, err := vm.Collection().TokensOfOwner(ctx, im, alice.Address())
	require.NoError(err)
	require.Equal([]uint64{0, 1}, tokens)

	bal, err := vm.Balance(ctx, alice.Address())
	require.NoError(err)
	require.Equal(8*consts.DefaultUnitPrice, bal)
}

func TestVMSubmitBytes(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	admin := newFactory(t)
	cfg := config.NewDefaultConfig()
	cfg.DatabaseType = config.MemoryDatabase
	vm := newTestVM(t, cfg, genesis.New(admin.Address(), "B/", nil))
	defer func() { require.NoError(vm.Shutdown(ctx)) }()

	tx := signTx(t, vm, admin, &actions.Reserve{Count: 1}, 0)
	parsed, result, err := vm.SubmitBytes(ctx, tx.Bytes())
	require.NoError(err)
	require.Equal(tx.ID(), parsed.ID())
	require.True(result.Success)

	_, _, err = vm.SubmitBytes(ctx, tx.Bytes())
	require.ErrorIs(err, chain.ErrDuplicateTx)

	_, _, err = vm.SubmitBytes(ctx, make([]byte, consts.NetworkSizeLimit+1))
	require.ErrorIs(err, ErrTxTooLarge)
}

func TestVMReopen(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	admin := newFactory(t)
	g := genesis.New(admin.Address(), "B/", nil)
	cfg := config.NewDefaultConfig()
	cfg.DataDir = t.TempDir()

	vm := newTestVM(t, cfg, g)
	result, err := vm.Submit(ctx, signTx(t, vm, admin, &actions.Reserve{Count: 2}, 0))
	require.NoError(err)
	require.True(result.Success)
	require.NoError(vm.Shutdown(ctx))

	vm = newTestVM(t, cfg, g)
	require.Equal(uint64(1), vm.Height())
	im, err := vm.ImmutableState(ctx)
	require.NoError(err)
	supply, err := vm.Collection().TotalSupply(ctx, im)
	require.NoError(err)
	require.Equal(uint64(2), supply)
	require.NoError(vm.Shutdown(ctx))

	other := genesis.New(admin.Address(), "C/", nil)
	vm = New(logging.NoLog{}, cfg, other)
	require.ErrorIs(vm.Initialize(ctx), ErrGenesisMismatch)

	vm = newTestVM(t, cfg, g)
	require.NoError(vm.Shutdown(ctx))
}

func TestVMInitializeReleasesDatabase(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	admin := newFactory(t)
	cfg := config.NewDefaultConfig()
	cfg.DataDir = t.TempDir()

	bad := genesis.New(admin.Address(), "B/", []*genesis.CustomAllocation{
		{Address: "not-an-address", Balance: 1},
	})
	vm := New(logging.NoLog{}, cfg, bad)
	require.Error(vm.Initialize(ctx))
	require.NoError(vm.Shutdown(ctx))

	// The failed attempt must not hold the database lock.
	vm = newTestVM(t, cfg, genesis.New(admin.Address(), "B/", nil))
	require.Equal(uint64(0), vm.Height())
	require.NoError(vm.Shutdown(ctx))
}

func TestVMNotInitialized(t *testing.T) {
	require := require.New(t)

	vm := New(logging.NoLog{}, config.NewDefaultConfig(), genesis.Default())
	_, err := vm.Submit(context.Background(), nil)
	require.ErrorIs(err, ErrNotInitialized)
	require.NoError(vm.Shutdown(context.Background()))
}
