// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/state"
)

var (
	addrA = codec.CreateAddress(0, ids.GenerateTestID())
	addrB = codec.CreateAddress(0, ids.GenerateTestID())
)

func TestBalance(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.NewInMemoryStore()

	bal, err := GetBalance(ctx, mu, addrA)
	require.NoError(err)
	require.Zero(bal)

	bal, err = AddBalance(ctx, mu, addrA, 10)
	require.NoError(err)
	require.Equal(uint64(10), bal)

	_, err = SubBalance(ctx, mu, addrA, 11)
	require.ErrorIs(err, ErrInvalidBalance)

	bal, err = SubBalance(ctx, mu, addrA, 10)
	require.NoError(err)
	require.Zero(bal)

	// empty accounts are pruned
	_, err = mu.GetValue(ctx, BalanceKey(addrA))
	require.ErrorIs(err, database.ErrNotFound)

	require.NoError(SetBalance(ctx, mu, addrB, ^uint64(0)))
	_, err = AddBalance(ctx, mu, addrB, 1)
	require.ErrorIs(err, ErrInvalidBalance)
}

func TestScalars(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.NewInMemoryStore()

	admin, err := GetAdmin(ctx, mu)
	require.NoError(err)
	require.Equal(codec.EmptyAddress, admin)
	require.NoError(SetAdmin(ctx, mu, addrA))
	admin, err = GetAdmin(ctx, mu)
	require.NoError(err)
	require.Equal(addrA, admin)

	require.NoError(SetSupply(ctx, mu, 13))
	supply, err := GetSupply(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(13), supply)

	require.NoError(SetMaxLevel(ctx, mu, 4))
	maxLevel, err := GetMaxLevel(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(4), maxLevel)

	require.NoError(SetBaseURI(ctx, mu, "B/"))
	uri, err := GetBaseURI(ctx, mu)
	require.NoError(err)
	require.Equal("B/", uri)
	require.ErrorIs(SetBaseURI(ctx, mu, string(make([]byte, MaxBaseURISize+1))), ErrBaseURITooLarge)

	require.NoError(SetTreasury(ctx, mu, 7))
	treasury, err := GetTreasury(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(7), treasury)
}

func TestLevelDefaultsToZero(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.NewInMemoryStore()

	level, err := GetLevel(ctx, mu, 42)
	require.NoError(err)
	require.Zero(level)

	require.NoError(SetLevel(ctx, mu, 42, 3))
	level, err = GetLevel(ctx, mu, 42)
	require.NoError(err)
	require.Equal(uint64(3), level)
}

func TestAllowlistKeys(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.NewInMemoryStore()

	require.NoError(SetAllowlistSlot(ctx, mu, 0, addrA))
	require.NoError(SetAllowlistLen(ctx, mu, 1))
	require.NoError(SetAllowlistMember(ctx, mu, addrA, true))

	member, err := IsAllowlistMember(ctx, mu, addrA)
	require.NoError(err)
	require.True(member)
	slot, err := GetAllowlistSlot(ctx, mu, 0)
	require.NoError(err)
	require.Equal(addrA, slot)

	require.NoError(SetAllowlistMember(ctx, mu, addrA, false))
	member, err = IsAllowlistMember(ctx, mu, addrA)
	require.NoError(err)
	require.False(member)

	slot, err = GetAllowlistSlot(ctx, mu, 5)
	require.NoError(err)
	require.Equal(codec.EmptyAddress, slot)
}

func TestHolderIndex(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.NewInMemoryStore()

	_, ok, err := GetOwner(ctx, mu, 0)
	require.NoError(err)
	require.False(ok)

	require.NoError(SetOwner(ctx, mu, 0, addrA))
	require.NoError(SetHolderToken(ctx, mu, addrA, 0, 0))
	require.NoError(SetHolderCount(ctx, mu, addrA, 1))

	owner, ok, err := GetOwner(ctx, mu, 0)
	require.NoError(err)
	require.True(ok)
	require.Equal(addrA, owner)

	id, err := GetHolderToken(ctx, mu, addrA, 0)
	require.NoError(err)
	require.Zero(id)
	_, err = GetHolderToken(ctx, mu, addrA, 1)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestGenesisMarker(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.NewInMemoryStore()

	_, ok, err := GetGenesis(ctx, mu)
	require.NoError(err)
	require.False(ok)

	id := ids.GenerateTestID()
	require.NoError(SetGenesis(ctx, mu, id))
	got, ok, err := GetGenesis(ctx, mu)
	require.NoError(err)
	require.True(ok)
	require.Equal(id, got)
}

func TestCorruptValue(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.NewInMemoryStore()

	require.NoError(mu.Insert(ctx, SupplyKey(), []byte{1, 2}))
	_, err := GetSupply(ctx, mu)
	require.ErrorIs(err, ErrInvalidValue)
}
