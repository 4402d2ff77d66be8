// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/collectiblevm/chain"
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/state"
)

var (
	_ chain.Action = (*Mint)(nil)
	_ chain.Action = (*MintOne)(nil)
	_ chain.Output = (*MintResult)(nil)
	_ chain.Output = (*MintOneResult)(nil)
)

// Mint buys [Count] tokens with the transaction value.
type Mint struct {
	Count uint64 `json:"count"`
}

func (*Mint) GetTypeID() uint8 {
	return consts.MintID
}

func (*Mint) Payable() bool {
	return true
}

func (m *Mint) Execute(
	ctx context.Context,
	rules chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
	value uint64,
) (chain.Output, error) {
	if m.Count > MaxTokensPerOutput {
		return nil, ErrTooManyTokens
	}
	tokenIDs, err := rules.Collection().MintBatch(ctx, mu, actor, m.Count, value)
	if err != nil {
		return nil, err
	}
	return &MintResult{TokenIDs: tokenIDs, Paid: value}, nil
}

func (*Mint) Size() int {
	return consts.Uint64Len
}

func (m *Mint) Marshal(p *codec.Packer) {
	p.PackUint64(m.Count)
}

func UnmarshalMint(p *codec.Packer) (chain.Action, error) {
	var mint Mint
	mint.Count = p.UnpackUint64(false)
	return &mint, p.Err()
}

type MintResult struct {
	TokenIDs []uint64 `json:"tokenIDs"`
	Paid     uint64   `json:"paid"`
}

func (*MintResult) GetTypeID() uint8 {
	return consts.MintID
}

func (r *MintResult) Marshal(p *codec.Packer) {
	packTokenIDs(p, r.TokenIDs)
	p.PackUint64(r.Paid)
}

func UnmarshalMintResult(p *codec.Packer) (chain.Output, error) {
	tokenIDs, err := unpackTokenIDs(p)
	if err != nil {
		return nil, err
	}
	result := &MintResult{TokenIDs: tokenIDs}
	result.Paid = p.UnpackUint64(false)
	return result, p.Err()
}

// MintOne buys a single token. The transaction value must equal the unit
// price.
type MintOne struct{}

func (*MintOne) GetTypeID() uint8 {
	return consts.MintOneID
}

func (*MintOne) Payable() bool {
	return true
}

func (*MintOne) Execute(
	ctx context.Context,
	rules chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
	value uint64,
) (chain.Output, error) {
	tokenID, err := rules.Collection().MintOne(ctx, mu, actor, value)
	if err != nil {
		return nil, err
	}
	return &MintOneResult{TokenID: tokenID, Paid: value}, nil
}

func (*MintOne) Size() int {
	return 0
}

func (*MintOne) Marshal(*codec.Packer) {}

func UnmarshalMintOne(*codec.Packer) (chain.Action, error) {
	return &MintOne{}, nil
}

type MintOneResult struct {
	TokenID uint64 `json:"tokenID"`
	Paid    uint64 `json:"paid"`
}

func (*MintOneResult) GetTypeID() uint8 {
	return consts.MintOneID
}

func (r *MintOneResult) Marshal(p *codec.Packer) {
	p.PackUint64(r.TokenID)
	p.PackUint64(r.Paid)
}

func UnmarshalMintOneResult(p *codec.Packer) (chain.Output, error) {
	var result MintOneResult
	result.TokenID = p.UnpackUint64(false)
	result.Paid = p.UnpackUint64(false)
	return &result, p.Err()
}
