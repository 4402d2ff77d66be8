// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package collectible

import (
	"context"
	"strconv"

	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/state"
	"github.com/ava-labs/collectiblevm/storage"
)

// TokenURI returns BaseURI + id + "/" + level for an issued [id].
func (c *Collection) TokenURI(ctx context.Context, im state.Immutable, id uint64) (string, error) {
	if err := c.requireToken(ctx, im, id); err != nil {
		return "", err
	}
	baseURI, err := storage.GetBaseURI(ctx, im)
	if err != nil {
		return "", err
	}
	level, err := storage.GetLevel(ctx, im, id)
	if err != nil {
		return "", err
	}
	return baseURI + strconv.FormatUint(id, 10) + "/" + strconv.FormatUint(level, 10), nil
}

func (*Collection) BaseURI(ctx context.Context, im state.Immutable) (string, error) {
	return storage.GetBaseURI(ctx, im)
}

func (*Collection) SetBaseURI(ctx context.Context, mu state.Mutable, actor codec.Address, uri string) error {
	if err := requireAdmin(ctx, mu, actor); err != nil {
		return err
	}
	return storage.SetBaseURI(ctx, mu, uri)
}

func (c *Collection) OwnerOf(ctx context.Context, im state.Immutable, id uint64) (codec.Address, error) {
	if err := c.requireToken(ctx, im, id); err != nil {
		return codec.EmptyAddress, err
	}
	return c.reg.OwnerOf(ctx, im, id)
}

func (c *Collection) TokensOfOwner(ctx context.Context, im state.Immutable, owner codec.Address) ([]uint64, error) {
	return c.reg.TokensOfOwner(ctx, im, owner)
}
