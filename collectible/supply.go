// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package collectible

import (
	"context"
	"fmt"

	"github.com/ava-labs/collectiblevm/state"
	"github.com/ava-labs/collectiblevm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// TotalSupply returns the number of identifiers issued so far. Identifiers
// are exactly [0, TotalSupply).
func (*Collection) TotalSupply(ctx context.Context, im state.Immutable) (uint64, error) {
	return storage.GetSupply(ctx, im)
}

// checkCapacity returns the first identifier of the next [n] that would be
// issued without reserving them.
func (c *Collection) checkCapacity(ctx context.Context, im state.Immutable, n uint64) (uint64, error) {
	supply, err := storage.GetSupply(ctx, im)
	if err != nil {
		return 0, err
	}
	next, err := smath.Add(supply, n)
	if err != nil || next > c.cfg.MaxSupply {
		return 0, fmt.Errorf(
			"%w: supply=%d requested=%d max=%d",
			ErrCapacityExceeded,
			supply,
			n,
			c.cfg.MaxSupply,
		)
	}
	return supply, nil
}

// reserveCapacity advances the supply counter by [n] and returns the first
// identifier of the reserved range [first, first+n).
func (c *Collection) reserveCapacity(ctx context.Context, mu state.Mutable, n uint64) (uint64, error) {
	first, err := c.checkCapacity(ctx, mu, n)
	if err != nil {
		return 0, err
	}
	return first, storage.SetSupply(ctx, mu, first+n)
}
