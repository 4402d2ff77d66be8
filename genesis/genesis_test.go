// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/collectible"
	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/registry"
	"github.com/ava-labs/collectiblevm/state"
	"github.com/ava-labs/collectiblevm/storage"
	"github.com/ava-labs/collectiblevm/trace"
)

var (
	testAdmin = codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
	testUser  = codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
)

func TestParseJSON(t *testing.T) {
	require := require.New(t)

	g := New(testAdmin, "ipfs://base/", []*CustomAllocation{
		{Address: testUser.String(), Balance: 10},
	})
	b, err := g.Bytes()
	require.NoError(err)

	parsed, err := Parse(b)
	require.NoError(err)
	require.Equal(g, parsed)
}

func TestParseYAML(t *testing.T) {
	require := require.New(t)

	raw := "admin: " + codec.MustAddressBech32(consts.HRP, testAdmin) + "\n" +
		"baseURI: ipfs://base/\n" +
		"maxSupply: 10\n" +
		"customAllocation:\n" +
		"  - address: " + testUser.String() + "\n" +
		"    balance: 7\n"

	g, err := Parse([]byte(raw))
	require.NoError(err)
	require.Equal("ipfs://base/", g.BaseURI)
	require.Equal(uint64(10), g.MaxSupply)
	require.Equal(consts.DefaultMaxPerMint, g.MaxPerMint)
	require.Equal(consts.DefaultUnitPrice, g.UnitPrice)
	require.Equal(consts.DefaultMaxLevel, g.MaxLevel)
	require.Len(g.CustomAllocation, 1)

	admin, err := g.AdminAddress()
	require.NoError(err)
	require.Equal(testAdmin, admin)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		genesis func() *Genesis
		err     error
	}{
		{
			name: "valid",
			genesis: func() *Genesis {
				return New(testAdmin, "B/", nil)
			},
		},
		{
			name: "missing admin",
			genesis: func() *Genesis {
				return New(codec.EmptyAddress, "B/", nil)
			},
			err: collectible.ErrZeroAddress,
		},
		{
			name: "no admin field",
			genesis: func() *Genesis {
				g := Default()
				g.BaseURI = "B/"
				return g
			},
			err: ErrMissingAdmin,
		},
		{
			name: "missing base uri",
			genesis: func() *Genesis {
				return New(testAdmin, "", nil)
			},
			err: collectible.ErrMissingBaseURI,
		},
		{
			name: "zero supply",
			genesis: func() *Genesis {
				g := New(testAdmin, "B/", nil)
				g.MaxSupply = 0
				return g
			},
			err: collectible.ErrInvalidMaxSupply,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.genesis().Verify(), tt.err)
		})
	}
}

func TestID(t *testing.T) {
	require := require.New(t)

	a := New(testAdmin, "B/", nil)
	b := New(testAdmin, "B/", nil)
	idA, err := a.ID()
	require.NoError(err)
	idB, err := b.ID()
	require.NoError(err)
	require.Equal(idA, idB)

	b.MaxLevel++
	idB, err = b.ID()
	require.NoError(err)
	require.NotEqual(idA, idB)
}

func TestInitializeState(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	g := New(testAdmin, "B/", []*CustomAllocation{
		{Address: testUser.String(), Balance: 5},
		{Address: testUser.String(), Balance: 6},
	})
	c, err := collectible.New(g.CollectionConfig(), registry.NewState())
	require.NoError(err)

	mu := state.NewInMemoryStore()
	require.NoError(g.InitializeState(ctx, trace.Noop, mu, c))

	admin, err := c.Admin(ctx, mu)
	require.NoError(err)
	require.Equal(testAdmin, admin)

	uri, err := c.BaseURI(ctx, mu)
	require.NoError(err)
	require.Equal("B/", uri)

	maxLevel, err := c.MaxLevel(ctx, mu)
	require.NoError(err)
	require.Equal(consts.DefaultMaxLevel, maxLevel)

	balance, err := storage.GetBalance(ctx, mu, testUser)
	require.NoError(err)
	require.Equal(uint64(11), balance)

	// A second initialization is rejected.
	require.ErrorIs(g.InitializeState(ctx, trace.Noop, mu, c), collectible.ErrAlreadyInitialized)
}

func TestRules(t *testing.T) {
	require := require.New(t)

	c, err := collectible.New(collectible.DefaultConfig(), registry.NewState())
	require.NoError(err)
	chainID := ids.GenerateTestID()
	r := NewRules(7, chainID, c)
	require.Equal(uint32(7), r.NetworkID())
	require.Equal(chainID, r.GetChainID())
	require.Equal(consts.ValidityWindow, r.GetValidityWindow())
	require.Equal(c, r.Collection())
}
