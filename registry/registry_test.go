// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/state"
)

func TestStateRegistry(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.NewInMemoryStore()
	r := NewState()

	alice := codec.CreateAddress(0, ids.GenerateTestID())
	bob := codec.CreateAddress(0, ids.GenerateTestID())

	exists, err := r.Exists(ctx, mu, 0)
	require.NoError(err)
	require.False(exists)
	_, err = r.OwnerOf(ctx, mu, 0)
	require.ErrorIs(err, ErrNonexistentToken)

	require.NoError(r.Mint(ctx, mu, alice, 0))
	require.NoError(r.Mint(ctx, mu, bob, 1))
	require.NoError(r.Mint(ctx, mu, alice, 2))
	require.ErrorIs(r.Mint(ctx, mu, bob, 2), ErrAlreadyMinted)
	require.ErrorIs(r.Mint(ctx, mu, codec.EmptyAddress, 3), ErrZeroAddress)

	owner, err := r.OwnerOf(ctx, mu, 2)
	require.NoError(err)
	require.Equal(alice, owner)

	balance, err := r.BalanceOf(ctx, mu, alice)
	require.NoError(err)
	require.Equal(uint64(2), balance)

	tokens, err := r.TokensOfOwner(ctx, mu, alice)
	require.NoError(err)
	require.Equal([]uint64{0, 2}, tokens)

	tokens, err = r.TokensOfOwner(ctx, mu, codec.CreateAddress(0, ids.GenerateTestID()))
	require.NoError(err)
	require.Empty(tokens)
}
