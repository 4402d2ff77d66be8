// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package collectible implements a bounded collection of sequentially
// numbered tokens, each carrying a level that allowlisted addresses can
// advance up to a ceiling.
//
// Every mutator operates on a [state.Mutable] and leaves it untouched when
// a precondition fails. Callers that need all-or-nothing semantics across
// registry writes run the call inside a view they can roll back.
package collectible

import (
	"context"

	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/registry"
	"github.com/ava-labs/collectiblevm/state"
	"github.com/ava-labs/collectiblevm/storage"
)

// Config holds the parameters fixed when the collection is created.
type Config struct {
	MaxSupply  uint64 `json:"maxSupply" yaml:"maxSupply"`
	MaxPerMint uint64 `json:"maxPerMint" yaml:"maxPerMint"`
	UnitPrice  uint64 `json:"unitPrice" yaml:"unitPrice"`
}

func DefaultConfig() Config {
	return Config{
		MaxSupply:  consts.DefaultMaxSupply,
		MaxPerMint: consts.DefaultMaxPerMint,
		UnitPrice:  consts.DefaultUnitPrice,
	}
}

func (c Config) Verify() error {
	if c.MaxSupply == 0 {
		return ErrInvalidMaxSupply
	}
	if c.MaxPerMint == 0 {
		return ErrInvalidMaxPerMint
	}
	return nil
}

type Collection struct {
	cfg Config
	reg registry.Registry
}

func New(cfg Config, reg registry.Registry) (*Collection, error) {
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	return &Collection{cfg: cfg, reg: reg}, nil
}

func (c *Collection) Config() Config {
	return c.cfg
}

func (c *Collection) Registry() registry.Registry {
	return c.reg
}

// Initialize writes the mutable parameters of a new collection. It may only
// be called once per state.
func (*Collection) Initialize(
	ctx context.Context,
	mu state.Mutable,
	admin codec.Address,
	baseURI string,
	maxLevel uint64,
) error {
	if admin == codec.EmptyAddress {
		return ErrZeroAddress
	}
	if len(baseURI) == 0 {
		return ErrMissingBaseURI
	}
	current, err := storage.GetAdmin(ctx, mu)
	if err != nil {
		return err
	}
	if current != codec.EmptyAddress {
		return ErrAlreadyInitialized
	}
	if err := storage.SetAdmin(ctx, mu, admin); err != nil {
		return err
	}
	if err := storage.SetBaseURI(ctx, mu, baseURI); err != nil {
		return err
	}
	if err := storage.SetMaxLevel(ctx, mu, maxLevel); err != nil {
		return err
	}
	if err := storage.SetSupply(ctx, mu, 0); err != nil {
		return err
	}
	return storage.SetAllowlistLen(ctx, mu, 0)
}
