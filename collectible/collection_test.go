// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package collectible

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/registry"
	"github.com/ava-labs/collectiblevm/state"
	"github.com/ava-labs/collectiblevm/storage"
)

const (
	testBaseURI = "B/"
	testPrice   = 100
)

var (
	admin = codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
	alice = codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
	bob   = codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
)

func newTestCollection(t *testing.T, cfg Config) (*Collection, *state.InMemoryStore) {
	t.Helper()
	require := require.New(t)

	c, err := New(cfg, registry.NewState())
	require.NoError(err)
	mu := state.NewInMemoryStore()
	require.NoError(c.Initialize(context.Background(), mu, admin, testBaseURI, consts.DefaultMaxLevel))
	return c, mu
}

func testConfig() Config {
	return Config{
		MaxSupply:  1000,
		MaxPerMint: 3,
		UnitPrice:  testPrice,
	}
}

func TestConfigVerify(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		err  error
	}{
		{
			name: "default",
			cfg:  DefaultConfig(),
		},
		{
			name: "zero supply",
			cfg:  Config{MaxPerMint: 1},
			err:  ErrInvalidMaxSupply,
		},
		{
			name: "zero per mint",
			cfg:  Config{MaxSupply: 1},
			err:  ErrInvalidMaxPerMint,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, registry.NewState())
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestInitialize(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	c, err := New(testConfig(), registry.NewState())
	require.NoError(err)
	mu := state.NewInMemoryStore()

	require.ErrorIs(c.Initialize(ctx, mu, admin, "", 4), ErrMissingBaseURI)
	require.ErrorIs(c.Initialize(ctx, mu, codec.EmptyAddress, testBaseURI, 4), ErrZeroAddress)
	require.NoError(c.Initialize(ctx, mu, admin, testBaseURI, 4))
	require.ErrorIs(c.Initialize(ctx, mu, alice, testBaseURI, 4), ErrAlreadyInitialized)

	supply, err := c.TotalSupply(ctx, mu)
	require.NoError(err)
	require.Zero(supply)
	maxLevel, err := c.MaxLevel(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(4), maxLevel)
	slots, err := c.Allowlist(ctx, mu)
	require.NoError(err)
	require.Empty(slots)
	level, err := c.Level(ctx, mu, 0)
	require.NoError(err)
	require.Zero(level)
}

func TestAdminSetters(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c, mu := newTestCollection(t, testConfig())

	require.ErrorIs(c.SetBaseURI(ctx, mu, alice, "X/"), ErrNotAuthorized)
	require.ErrorIs(c.SetMaxLevel(ctx, mu, alice, 9), ErrNotAuthorized)

	require.NoError(c.SetBaseURI(ctx, mu, admin, "X/"))
	uri, err := c.BaseURI(ctx, mu)
	require.NoError(err)
	require.Equal("X/", uri)

	require.NoError(c.SetMaxLevel(ctx, mu, admin, 9))
	maxLevel, err := c.MaxLevel(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(9), maxLevel)
}

func TestTransferAdmin(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c, mu := newTestCollection(t, testConfig())

	require.ErrorIs(c.TransferAdmin(ctx, mu, alice, alice), ErrNotAuthorized)
	require.ErrorIs(c.TransferAdmin(ctx, mu, admin, codec.EmptyAddress), ErrZeroAddress)
	require.NoError(c.TransferAdmin(ctx, mu, admin, alice))

	current, err := c.Admin(ctx, mu)
	require.NoError(err)
	require.Equal(alice, current)

	_, err = c.Reserve(ctx, mu, admin, 1)
	require.ErrorIs(err, ErrNotAuthorized)
	_, err = c.Reserve(ctx, mu, alice, 1)
	require.NoError(err)
}

// Construct, paid mint of 3, then reserve 10.
func TestMintThenReserve(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c, mu := newTestCollection(t, testConfig())

	minted, err := c.MintBatch(ctx, mu, alice, 3, 3*testPrice)
	require.NoError(err)
	require.Equal([]uint64{0, 1, 2}, minted)

	supply, err := c.TotalSupply(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(3), supply)
	for _, id := range minted {
		owner, err := c.OwnerOf(ctx, mu, id)
		require.NoError(err)
		require.Equal(alice, owner)
		level, err := c.Level(ctx, mu, id)
		require.NoError(err)
		require.Equal(uint64(1), level)
	}
	uri, err := c.TokenURI(ctx, mu, 0)
	require.NoError(err)
	require.Equal("B/0/1", uri)

	reserved, err := c.Reserve(ctx, mu, admin, 10)
	require.NoError(err)
	require.Len(reserved, 10)
	require.Equal(uint64(3), reserved[0])
	require.Equal(uint64(12), reserved[9])

	supply, err = c.TotalSupply(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(13), supply)
	for id := uint64(3); id < 13; id++ {
		owner, err := c.OwnerOf(ctx, mu, id)
		require.NoError(err)
		require.Equal(admin, owner)
		level, err := c.Level(ctx, mu, id)
		require.NoError(err)
		require.Zero(level)
	}

	tokens, err := c.TokensOfOwner(ctx, mu, alice)
	require.NoError(err)
	require.Equal([]uint64{0, 1, 2}, tokens)

	treasury, err := c.Treasury(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(3*testPrice), treasury)
}

func TestReserve(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c, mu := newTestCollection(t, testConfig())

	_, err := c.Reserve(ctx, mu, alice, 1)
	require.ErrorIs(err, ErrNotAuthorized)

	_, err = c.Reserve(ctx, mu, admin, 1001)
	require.ErrorIs(err, ErrCapacityExceeded)
	require.Contains(err.Error(), "not enough remaining supply")

	reserved, err := c.Reserve(ctx, mu, admin, 0)
	require.NoError(err)
	require.Empty(reserved)

	reserved, err = c.Reserve(ctx, mu, admin, 1000)
	require.NoError(err)
	require.Len(reserved, 1000)

	_, err = c.Reserve(ctx, mu, admin, 1)
	require.ErrorIs(err, ErrCapacityExceeded)
	_, err = c.MintBatch(ctx, mu, alice, 1, testPrice)
	require.ErrorIs(err, ErrCapacityExceeded)
}

func TestMintBatchErrors(t *testing.T) {
	tests := []struct {
		name    string
		count   uint64
		payment uint64
		reserve uint64
		err     error
	}{
		{
			name:    "zero count",
			count:   0,
			payment: testPrice,
			err:     ErrLimitExceeded,
		},
		{
			name:    "over limit",
			count:   4,
			payment: 4 * testPrice,
			err:     ErrLimitExceeded,
		},
		{
			name:    "over limit and over capacity",
			count:   1001,
			payment: 1001 * testPrice,
			err:     ErrLimitExceeded,
		},
		{
			name:    "over limit with supply exhausted",
			count:   4,
			payment: 4 * testPrice,
			reserve: 1000,
			err:     ErrLimitExceeded,
		},
		{
			name:    "over capacity",
			count:   3,
			payment: 3 * testPrice,
			reserve: 998,
			err:     ErrCapacityExceeded,
		},
		{
			name:    "one unit short",
			count:   1,
			payment: testPrice - 1,
			err:     ErrInsufficientPayment,
		},
		{
			name:    "one unit short for batch",
			count:   3,
			payment: 3*testPrice - 1,
			err:     ErrInsufficientPayment,
		},
		{
			name:    "exact",
			count:   3,
			payment: 3 * testPrice,
		},
		{
			name:    "overpay is kept",
			count:   2,
			payment: 5 * testPrice,
		},
		{
			name:    "last tokens",
			count:   2,
			payment: 2 * testPrice,
			reserve: 998,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			c, mu := newTestCollection(t, testConfig())
			if tt.reserve > 0 {
				_, err := c.Reserve(ctx, mu, admin, tt.reserve)
				require.NoError(err)
			}

			minted, err := c.MintBatch(ctx, mu, alice, tt.count, tt.payment)
			require.ErrorIs(err, tt.err)

			supply, serr := c.TotalSupply(ctx, mu)
			require.NoError(serr)
			treasury, terr := c.Treasury(ctx, mu)
			require.NoError(terr)
			if tt.err != nil {
				require.Equal(tt.reserve, supply)
				require.Zero(treasury)
				return
			}
			require.Len(minted, int(tt.count))
			require.Equal(tt.reserve+tt.count, supply)
			require.Equal(tt.payment, treasury)
		})
	}
}

func TestMintOne(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c, mu := newTestCollection(t, testConfig())

	_, err := c.MintOne(ctx, mu, alice, testPrice-1)
	require.ErrorIs(err, ErrInsufficientPayment)
	_, err = c.MintOne(ctx, mu, alice, testPrice+1)
	require.ErrorIs(err, ErrPaymentMismatch)

	id, err := c.MintOne(ctx, mu, alice, testPrice)
	require.NoError(err)
	require.Zero(id)
	id, err = c.MintOne(ctx, mu, bob, testPrice)
	require.NoError(err)
	require.Equal(uint64(1), id)

	level, err := c.Level(ctx, mu, 1)
	require.NoError(err)
	require.Equal(uint64(1), level)
	uri, err := c.TokenURI(ctx, mu, 1)
	require.NoError(err)
	require.Equal("B/1/1", uri)
}

func TestSequentialIdentifiers(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c, mu := newTestCollection(t, Config{MaxSupply: 20, MaxPerMint: 3, UnitPrice: testPrice})

	seen := make(map[uint64]struct{})
	for i := uint64(0); ; i++ {
		var (
			issued []uint64
			err    error
		)
		if i%2 == 0 {
			issued, err = c.MintBatch(ctx, mu, alice, 3, 3*testPrice)
		} else {
			issued, err = c.Reserve(ctx, mu, admin, 2)
		}
		if err != nil {
			require.ErrorIs(err, ErrCapacityExceeded)
			break
		}
		for _, id := range issued {
			_, ok := seen[id]
			require.False(ok)
			seen[id] = struct{}{}
		}
	}

	supply, err := c.TotalSupply(ctx, mu)
	require.NoError(err)
	require.LessOrEqual(supply, uint64(20))
	require.Len(seen, int(supply))
	for id := uint64(0); id < supply; id++ {
		require.Contains(seen, id)
	}
}

func TestTokenURI(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c, mu := newTestCollection(t, testConfig())

	_, err := c.TokenURI(ctx, mu, 0)
	require.ErrorIs(err, ErrInvalidToken)

	_, err = c.Reserve(ctx, mu, admin, 2)
	require.NoError(err)
	_, err = c.IncrementLevel(ctx, mu, 1)
	require.NoError(err)

	for id, want := range []string{"B/0/0", "B/1/1"} {
		uri, err := c.TokenURI(ctx, mu, uint64(id))
		require.NoError(err)
		require.Equal(want, uri)
	}
	_, err = c.TokenURI(ctx, mu, 2)
	require.ErrorIs(err, ErrInvalidToken)

	// recomputed on every call
	require.NoError(c.SetBaseURI(ctx, mu, admin, "C/"))
	uri, err := c.TokenURI(ctx, mu, 1)
	require.NoError(err)
	require.Equal("C/1/1", uri)
}

func TestIncrementLevel(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c, mu := newTestCollection(t, testConfig())

	_, err := c.IncrementLevel(ctx, mu, 0)
	require.ErrorIs(err, ErrInvalidToken)

	_, err = c.Reserve(ctx, mu, admin, 1)
	require.NoError(err)
	for i := uint64(1); i <= consts.DefaultMaxLevel; i++ {
		level, err := c.IncrementLevel(ctx, mu, 0)
		require.NoError(err)
		require.Equal(i, level)
	}
	_, err = c.IncrementLevel(ctx, mu, 0)
	require.ErrorIs(err, ErrLevelCeilingReached)

	level, err := c.Level(ctx, mu, 0)
	require.NoError(err)
	require.Equal(uint64(consts.DefaultMaxLevel), level)
}

// Lowering the ceiling below a level already reached is accepted. The
// token keeps its level and can no longer be incremented.
func TestLowerMaxLevelBelowExisting(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c, mu := newTestCollection(t, testConfig())

	_, err := c.Reserve(ctx, mu, admin, 1)
	require.NoError(err)
	for i := 0; i < 3; i++ {
		_, err = c.IncrementLevel(ctx, mu, 0)
		require.NoError(err)
	}

	require.NoError(c.SetMaxLevel(ctx, mu, admin, 1))
	level, err := c.Level(ctx, mu, 0)
	require.NoError(err)
	require.Equal(uint64(3), level)

	_, err = c.IncrementLevel(ctx, mu, 0)
	require.ErrorIs(err, ErrLevelCeilingReached)
	uri, err := c.TokenURI(ctx, mu, 0)
	require.NoError(err)
	require.Equal("B/0/3", uri)
}

func TestUpgrade(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c, mu := newTestCollection(t, testConfig())

	_, err := c.Upgrade(ctx, mu, alice, 0)
	require.ErrorIs(err, ErrInvalidToken)

	_, err = c.MintBatch(ctx, mu, alice, 1, testPrice)
	require.NoError(err)

	_, err = c.Upgrade(ctx, mu, alice, 0)
	require.ErrorIs(err, ErrNotOnAllowlist)
	require.ErrorIs(err, ErrNotAuthorized)

	added, err := c.AddToAllowlist(ctx, mu, admin, alice)
	require.NoError(err)
	require.True(added)
	level, err := c.Upgrade(ctx, mu, alice, 0)
	require.NoError(err)
	require.Equal(uint64(2), level)

	removed, err := c.RemoveFromAllowlist(ctx, mu, admin, alice)
	require.NoError(err)
	require.True(removed)
	_, err = c.Upgrade(ctx, mu, alice, 0)
	require.ErrorIs(err, ErrNotOnAllowlist)

	level, err = c.Level(ctx, mu, 0)
	require.NoError(err)
	require.Equal(uint64(2), level)
}

func TestUpgradeCeiling(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c, mu := newTestCollection(t, testConfig())

	_, err := c.MintBatch(ctx, mu, alice, 1, testPrice)
	require.NoError(err)
	_, err = c.AddToAllowlist(ctx, mu, admin, bob)
	require.NoError(err)

	for i := uint64(2); i <= consts.DefaultMaxLevel; i++ {
		level, err := c.Upgrade(ctx, mu, bob, 0)
		require.NoError(err)
		require.Equal(i, level)
	}
	_, err = c.Upgrade(ctx, mu, bob, 0)
	require.ErrorIs(err, ErrLevelCeilingReached)
}

func TestAllowlist(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c, mu := newTestCollection(t, testConfig())

	_, err := c.AddToAllowlist(ctx, mu, alice, alice)
	require.ErrorIs(err, ErrNotAuthorized)
	_, err = c.RemoveFromAllowlist(ctx, mu, alice, alice)
	require.ErrorIs(err, ErrNotAuthorized)

	// add is idempotent
	added, err := c.AddToAllowlist(ctx, mu, admin, alice)
	require.NoError(err)
	require.True(added)
	added, err = c.AddToAllowlist(ctx, mu, admin, alice)
	require.NoError(err)
	require.False(added)
	slots, err := c.Allowlist(ctx, mu)
	require.NoError(err)
	require.Equal([]codec.Address{alice}, slots)
	allowed, err := c.IsAllowed(ctx, mu, alice)
	require.NoError(err)
	require.True(allowed)

	// removing a non-member changes nothing
	removed, err := c.RemoveFromAllowlist(ctx, mu, admin, bob)
	require.NoError(err)
	require.False(removed)
	slots, err = c.Allowlist(ctx, mu)
	require.NoError(err)
	require.Equal([]codec.Address{alice}, slots)

	_, err = c.AddToAllowlist(ctx, mu, admin, bob)
	require.NoError(err)

	// removal clears the slot in place
	removed, err = c.RemoveFromAllowlist(ctx, mu, admin, alice)
	require.NoError(err)
	require.True(removed)
	slots, err = c.Allowlist(ctx, mu)
	require.NoError(err)
	require.Equal([]codec.Address{codec.EmptyAddress, bob}, slots)
	allowed, err = c.IsAllowed(ctx, mu, alice)
	require.NoError(err)
	require.False(allowed)

	removed, err = c.RemoveFromAllowlist(ctx, mu, admin, alice)
	require.NoError(err)
	require.False(removed)

	// re-adding appends a new slot
	_, err = c.AddToAllowlist(ctx, mu, admin, alice)
	require.NoError(err)
	slots, err = c.Allowlist(ctx, mu)
	require.NoError(err)
	require.Equal([]codec.Address{codec.EmptyAddress, bob, alice}, slots)

	// only the first matching slot is cleared
	_, err = c.RemoveFromAllowlist(ctx, mu, admin, bob)
	require.NoError(err)
	slots, err = c.Allowlist(ctx, mu)
	require.NoError(err)
	require.Equal([]codec.Address{codec.EmptyAddress, codec.EmptyAddress, alice}, slots)
}

func TestWithdraw(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c, mu := newTestCollection(t, testConfig())

	_, err := c.Withdraw(ctx, mu, admin)
	require.ErrorIs(err, ErrNothingToWithdraw)

	_, err = c.MintBatch(ctx, mu, alice, 2, 2*testPrice+7)
	require.NoError(err)
	_, err = c.Deposit(ctx, mu, 3)
	require.NoError(err)

	_, err = c.Withdraw(ctx, mu, alice)
	require.ErrorIs(err, ErrNotAuthorized)

	amount, err := c.Withdraw(ctx, mu, admin)
	require.NoError(err)
	require.Equal(uint64(2*testPrice+10), amount)

	treasury, err := c.Treasury(ctx, mu)
	require.NoError(err)
	require.Zero(treasury)
	bal, err := storage.GetBalance(ctx, mu, admin)
	require.NoError(err)
	require.Equal(amount, bal)

	_, err = c.Withdraw(ctx, mu, admin)
	require.ErrorIs(err, ErrNothingToWithdraw)
}

func TestDepositOverflow(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c, mu := newTestCollection(t, testConfig())

	_, err := c.Deposit(ctx, mu, ^uint64(0))
	require.NoError(err)
	_, err = c.Deposit(ctx, mu, 1)
	require.ErrorIs(err, ErrTreasuryOverflow)
}
