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

type issuance uint8

const (
	reservedIssuance issuance = iota
	paidIssuance
)

// Reserve issues [n] identifiers to the administrator without payment.
// Reserved tokens start at level 0.
func (c *Collection) Reserve(
	ctx context.Context,
	mu state.Mutable,
	actor codec.Address,
	n uint64,
) ([]uint64, error) {
	if err := requireAdmin(ctx, mu, actor); err != nil {
		return nil, err
	}
	first, err := c.reserveCapacity(ctx, mu, n)
	if err != nil {
		return nil, err
	}
	return c.issue(ctx, mu, actor, first, n, reservedIssuance)
}

// Price returns the payment required to mint [n] tokens.
func (c *Collection) Price(n uint64) (uint64, error) {
	return smath.Mul(n, c.cfg.UnitPrice)
}

// MintBatch issues [n] identifiers to [actor] in exchange for [payment],
// which is credited to the treasury in full. Paid tokens start at level 1.
func (c *Collection) MintBatch(
	ctx context.Context,
	mu state.Mutable,
	actor codec.Address,
	n uint64,
	payment uint64,
) ([]uint64, error) {
	if n == 0 || n > c.cfg.MaxPerMint {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrLimitExceeded, n, c.cfg.MaxPerMint)
	}
	if _, err := c.checkCapacity(ctx, mu, n); err != nil {
		return nil, err
	}
	required, err := c.Price(n)
	if err != nil || payment < required {
		return nil, fmt.Errorf(
			"%w: paid=%d count=%d unitPrice=%d",
			ErrInsufficientPayment,
			payment,
			n,
			c.cfg.UnitPrice,
		)
	}
	if _, err := c.Deposit(ctx, mu, payment); err != nil {
		return nil, err
	}
	first, err := c.reserveCapacity(ctx, mu, n)
	if err != nil {
		return nil, err
	}
	return c.issue(ctx, mu, actor, first, n, paidIssuance)
}

// MintOne is [MintBatch] of a single token paid with exactly the unit price.
func (c *Collection) MintOne(
	ctx context.Context,
	mu state.Mutable,
	actor codec.Address,
	payment uint64,
) (uint64, error) {
	switch {
	case payment < c.cfg.UnitPrice:
		return 0, fmt.Errorf("%w: paid=%d unitPrice=%d", ErrInsufficientPayment, payment, c.cfg.UnitPrice)
	case payment > c.cfg.UnitPrice:
		return 0, fmt.Errorf("%w: paid=%d unitPrice=%d", ErrPaymentMismatch, payment, c.cfg.UnitPrice)
	}
	ids, err := c.MintBatch(ctx, mu, actor, 1, payment)
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// issue registers [first, first+n) to [to] and sets the initial level of
// each identifier according to how it was issued.
func (c *Collection) issue(
	ctx context.Context,
	mu state.Mutable,
	to codec.Address,
	first uint64,
	n uint64,
	kind issuance,
) ([]uint64, error) {
	var level uint64
	switch kind {
	case reservedIssuance:
		level = 0
	case paidIssuance:
		level = 1
	default:
		return nil, fmt.Errorf("unknown issuance %d", kind)
	}

	issued := make([]uint64, 0, n)
	for id := first; id < first+n; id++ {
		if err := c.reg.Mint(ctx, mu, to, id); err != nil {
			return nil, err
		}
		if err := storage.SetLevel(ctx, mu, id, level); err != nil {
			return nil, err
		}
		issued = append(issued, id)
	}
	return issued, nil
}
