// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain_test

import (
	"context"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/collectiblevm/actions"
	"github.com/ava-labs/collectiblevm/auth"
	"github.com/ava-labs/collectiblevm/chain"
	"github.com/ava-labs/collectiblevm/collectible"
	"github.com/ava-labs/collectiblevm/crypto/ed25519"
	"github.com/ava-labs/collectiblevm/genesis"
	"github.com/ava-labs/collectiblevm/registry"
	"github.com/ava-labs/collectiblevm/state"
	"github.com/ava-labs/collectiblevm/trace"
)

const (
	testPrice   = 100
	testBalance = 1_000
	testNow     = int64(1_700_000_000_000)
)

type testEnv struct {
	db        *memdb.Database
	rules     *genesis.Rules
	processor *chain.Processor

	actionRegistry chain.ActionRegistry
	outputRegistry chain.OutputRegistry
	authRegistry   chain.AuthRegistry

	admin *auth.ED25519Factory
	alice *auth.ED25519Factory
}

func newFactory(t *testing.T) *auth.ED25519Factory {
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(t, err)
	return auth.NewED25519Factory(priv)
}

func newTestEnv(t *testing.T) *testEnv {
	require := require.New(t)
	ctx := context.Background()

	env := &testEnv{
		db:    memdb.New(),
		admin: newFactory(t),
		alice: newFactory(t),
	}
	var err error
	env.actionRegistry, env.outputRegistry, err = actions.NewRegistry()
	require.NoError(err)
	env.authRegistry, err = auth.NewRegistry()
	require.NoError(err)

	g := genesis.New(env.admin.Address(), "B/", []*genesis.CustomAllocation{
		{Address: env.alice.Address().String(), Balance: testBalance},
	})
	g.UnitPrice = testPrice
	c, err := collectible.New(g.CollectionConfig(), registry.NewState())
	require.NoError(err)
	env.rules = genesis.NewRules(1, ids.GenerateTestID(), c)

	mu := state.NewSimpleMutable(state.NewReader(env.db))
	require.NoError(g.InitializeState(ctx, trace.Noop, mu, c))
	require.NoError(mu.Commit(env.db))

	env.processor = env.newProcessor(t)
	return env
}

func (e *testEnv) newProcessor(t *testing.T) *chain.Processor {
	p, err := chain.NewProcessor(
		context.Background(),
		logging.NoLog{},
		trace.Noop,
		e.rules,
		e.db,
		prometheus.NewRegistry(),
	)
	require.NoError(t, err)
	p.SetClock(func() time.Time { return time.UnixMilli(testNow) })
	return p
}

func (e *testEnv) newTx(
	t *testing.T,
	factory chain.AuthFactory,
	action chain.Action,
	value uint64,
) *chain.Transaction {
	base := &chain.Base{
		Timestamp: testNow + 10_000,
		ChainID:   e.rules.GetChainID(),
		Value:     value,
	}
	tx, err := chain.NewTx(base, action).Sign(factory, e.actionRegistry, e.authRegistry)
	require.NoError(t, err)
	return tx
}
