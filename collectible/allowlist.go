// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package collectible

import (
	"context"

	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/state"
	"github.com/ava-labs/collectiblevm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// The allowlist is an append-only sequence of slots plus a membership set.
// Removing an address clears its membership and overwrites the first slot
// holding it with [codec.EmptyAddress]. The sequence never shrinks.

func (*Collection) IsAllowed(ctx context.Context, im state.Immutable, addr codec.Address) (bool, error) {
	return storage.IsAllowlistMember(ctx, im, addr)
}

// AddToAllowlist appends [addr] unless it is already a member. It reports
// whether a slot was appended.
func (*Collection) AddToAllowlist(ctx context.Context, mu state.Mutable, actor, addr codec.Address) (bool, error) {
	if err := requireAdmin(ctx, mu, actor); err != nil {
		return false, err
	}
	member, err := storage.IsAllowlistMember(ctx, mu, addr)
	if err != nil {
		return false, err
	}
	if member {
		return false, nil
	}
	n, err := storage.GetAllowlistLen(ctx, mu)
	if err != nil {
		return false, err
	}
	nn, err := smath.Add(n, 1)
	if err != nil {
		return false, err
	}
	if err := storage.SetAllowlistSlot(ctx, mu, n, addr); err != nil {
		return false, err
	}
	if err := storage.SetAllowlistLen(ctx, mu, nn); err != nil {
		return false, err
	}
	return true, storage.SetAllowlistMember(ctx, mu, addr, true)
}

// RemoveFromAllowlist revokes [addr] if it is a member. It reports whether
// membership changed.
func (*Collection) RemoveFromAllowlist(ctx context.Context, mu state.Mutable, actor, addr codec.Address) (bool, error) {
	if err := requireAdmin(ctx, mu, actor); err != nil {
		return false, err
	}
	member, err := storage.IsAllowlistMember(ctx, mu, addr)
	if err != nil {
		return false, err
	}
	if !member {
		return false, nil
	}
	if err := storage.SetAllowlistMember(ctx, mu, addr, false); err != nil {
		return false, err
	}
	n, err := storage.GetAllowlistLen(ctx, mu)
	if err != nil {
		return false, err
	}
	for i := uint64(0); i < n; i++ {
		slot, err := storage.GetAllowlistSlot(ctx, mu, i)
		if err != nil {
			return false, err
		}
		if slot == addr {
			return true, storage.SetAllowlistSlot(ctx, mu, i, codec.EmptyAddress)
		}
	}
	return true, nil
}

// Allowlist returns every slot in append order, cleared slots included.
func (*Collection) Allowlist(ctx context.Context, im state.Immutable) ([]codec.Address, error) {
	n, err := storage.GetAllowlistLen(ctx, im)
	if err != nil {
		return nil, err
	}
	slots := make([]codec.Address, 0, n)
	for i := uint64(0); i < n; i++ {
		slot, err := storage.GetAllowlistSlot(ctx, im, i)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
