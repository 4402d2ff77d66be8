// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/state"
)

type ActionTest struct {
	Action Action

	Rules     Rules
	State     state.Mutable
	Timestamp int64
	Actor     codec.Address
	ActionID  ids.ID
	Value     uint64

	ExpectedOutputs Output
	ExpectedErr     error

	// Assertion runs against [State] after a successful Execute.
	Assertion func(context.Context, *testing.T, state.Mutable)
}

type ActionTestSuite struct {
	Tests    map[string]ActionTest
	Teardown func()
}

func (suite *ActionTestSuite) Run(t *testing.T) {
	for testName := range suite.Tests {
		t.Run(testName, func(t *testing.T) {
			require := require.New(t)
			test := suite.Tests[testName]
			ctx := context.TODO()

			output, err := test.Action.Execute(ctx, test.Rules, test.State, test.Timestamp, test.Actor, test.ActionID, test.Value)

			require.ErrorIs(err, test.ExpectedErr)
			if test.ExpectedErr != nil {
				require.Nil(output)
				return
			}
			require.Equal(test.ExpectedOutputs, output)
			if test.Assertion != nil {
				test.Assertion(ctx, t, test.State)
			}
		})
	}

	if suite.Teardown != nil {
		suite.Teardown()
	}
}
