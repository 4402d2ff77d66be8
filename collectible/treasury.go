// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package collectible

import (
	"context"
	"fmt"

	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/state"
	"github.com/ava-labs/collectiblevm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

func (*Collection) Treasury(ctx context.Context, im state.Immutable) (uint64, error) {
	return storage.GetTreasury(ctx, im)
}

// Deposit credits [amount] to the treasury and returns the new balance.
func (*Collection) Deposit(ctx context.Context, mu state.Mutable, amount uint64) (uint64, error) {
	bal, err := storage.GetTreasury(ctx, mu)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Add(bal, amount)
	if err != nil {
		return 0, fmt.Errorf("%w: balance=%d amount=%d", ErrTreasuryOverflow, bal, amount)
	}
	return nbal, storage.SetTreasury(ctx, mu, nbal)
}

// Withdraw moves the whole treasury to the administrator's account and
// returns the amount moved.
func (*Collection) Withdraw(ctx context.Context, mu state.Mutable, actor codec.Address) (uint64, error) {
	if err := requireAdmin(ctx, mu, actor); err != nil {
		return 0, err
	}
	bal, err := storage.GetTreasury(ctx, mu)
	if err != nil {
		return 0, err
	}
	if bal == 0 {
		return 0, ErrNothingToWithdraw
	}
	if _, err := storage.AddBalance(ctx, mu, actor, bal); err != nil {
		return 0, err
	}
	return bal, storage.SetTreasury(ctx, mu, 0)
}
