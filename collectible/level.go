// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package collectible

import (
	"context"
	"fmt"

	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/state"
	"github.com/ava-labs/collectiblevm/storage"
)

// Level returns the level of [id]. Identifiers that were never issued read 0.
func (*Collection) Level(ctx context.Context, im state.Immutable, id uint64) (uint64, error) {
	return storage.GetLevel(ctx, im, id)
}

func (*Collection) MaxLevel(ctx context.Context, im state.Immutable) (uint64, error) {
	return storage.GetMaxLevel(ctx, im)
}

// SetMaxLevel replaces the level ceiling. Tokens already above the new
// ceiling keep their level.
func (*Collection) SetMaxLevel(ctx context.Context, mu state.Mutable, actor codec.Address, level uint64) error {
	if err := requireAdmin(ctx, mu, actor); err != nil {
		return err
	}
	return storage.SetMaxLevel(ctx, mu, level)
}

func (c *Collection) requireToken(ctx context.Context, im state.Immutable, id uint64) error {
	exists, err := c.reg.Exists(ctx, im, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %d", ErrInvalidToken, id)
	}
	return nil
}

// IncrementLevel raises the level of [id] by one and returns the new level.
// It is open to any caller.
func (c *Collection) IncrementLevel(ctx context.Context, mu state.Mutable, id uint64) (uint64, error) {
	if err := c.requireToken(ctx, mu, id); err != nil {
		return 0, err
	}
	level, err := storage.GetLevel(ctx, mu, id)
	if err != nil {
		return 0, err
	}
	maxLevel, err := storage.GetMaxLevel(ctx, mu)
	if err != nil {
		return 0, err
	}
	// >= so a lowered ceiling still stops tokens already past it
	if level >= maxLevel {
		return 0, fmt.Errorf("%w: token=%d level=%d max=%d", ErrLevelCeilingReached, id, level, maxLevel)
	}
	level++
	return level, storage.SetLevel(ctx, mu, id, level)
}

// Upgrade is [IncrementLevel] restricted to allowlisted callers.
func (c *Collection) Upgrade(ctx context.Context, mu state.Mutable, actor codec.Address, id uint64) (uint64, error) {
	if err := c.requireToken(ctx, mu, id); err != nil {
		return 0, err
	}
	allowed, err := c.IsAllowed(ctx, mu, actor)
	if err != nil {
		return 0, err
	}
	if !allowed {
		return 0, fmt.Errorf("%w: %s", ErrNotOnAllowlist, actor)
	}
	return c.IncrementLevel(ctx, mu, id)
}
