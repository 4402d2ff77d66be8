// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//go:generate go run go.uber.org/mock/mockgen -source=registry.go -destination=registrytest/mock_registry.go -package=registrytest

// Package registry defines the identity registry the collection issues
// tokens through and a reference implementation backed by state.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/state"
	"github.com/ava-labs/collectiblevm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	ErrAlreadyMinted    = errors.New("token already minted")
	ErrNonexistentToken = errors.New("nonexistent token")
	ErrZeroAddress      = errors.New("mint to the zero address")

	_ Registry = (*State)(nil)
)

// Registry tracks which address holds each issued identifier.
type Registry interface {
	// Mint assigns [id] to [to]. It fails if [id] is already assigned.
	Mint(ctx context.Context, mu state.Mutable, to codec.Address, id uint64) error
	Exists(ctx context.Context, im state.Immutable, id uint64) (bool, error)
	// OwnerOf returns [ErrNonexistentToken] if [id] was never issued.
	OwnerOf(ctx context.Context, im state.Immutable, id uint64) (codec.Address, error)
	BalanceOf(ctx context.Context, im state.Immutable, owner codec.Address) (uint64, error)
	// TokensOfOwner returns the identifiers held by [owner] in issuance order.
	TokensOfOwner(ctx context.Context, im state.Immutable, owner codec.Address) ([]uint64, error)
}

// State is a [Registry] kept in the same key/value state as the collection.
// Tokens are never transferred so the per-holder index is append-only.
type State struct{}

func NewState() *State {
	return &State{}
}

func (*State) Mint(ctx context.Context, mu state.Mutable, to codec.Address, id uint64) error {
	if to == codec.EmptyAddress {
		return ErrZeroAddress
	}
	_, exists, err := storage.GetOwner(ctx, mu, id)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %d", ErrAlreadyMinted, id)
	}
	count, err := storage.GetHolderCount(ctx, mu, to)
	if err != nil {
		return err
	}
	ncount, err := smath.Add(count, 1)
	if err != nil {
		return err
	}
	if err := storage.SetOwner(ctx, mu, id, to); err != nil {
		return err
	}
	if err := storage.SetHolderToken(ctx, mu, to, count, id); err != nil {
		return err
	}
	return storage.SetHolderCount(ctx, mu, to, ncount)
}

func (*State) Exists(ctx context.Context, im state.Immutable, id uint64) (bool, error) {
	_, exists, err := storage.GetOwner(ctx, im, id)
	return exists, err
}

func (*State) OwnerOf(ctx context.Context, im state.Immutable, id uint64) (codec.Address, error) {
	owner, exists, err := storage.GetOwner(ctx, im, id)
	if err != nil {
		return codec.EmptyAddress, err
	}
	if !exists {
		return codec.EmptyAddress, fmt.Errorf("%w: %d", ErrNonexistentToken, id)
	}
	return owner, nil
}

func (*State) BalanceOf(ctx context.Context, im state.Immutable, owner codec.Address) (uint64, error) {
	return storage.GetHolderCount(ctx, im, owner)
}

func (*State) TokensOfOwner(ctx context.Context, im state.Immutable, owner codec.Address) ([]uint64, error) {
	count, err := storage.GetHolderCount(ctx, im, owner)
	if err != nil {
		return nil, err
	}
	tokens := make([]uint64, 0, count)
	for i := uint64(0); i < count; i++ {
		id, err := storage.GetHolderToken(ctx, im, owner, i)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, id)
	}
	return tokens, nil
}
