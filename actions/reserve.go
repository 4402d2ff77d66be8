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
	_ chain.Action = (*Reserve)(nil)
	_ chain.Output = (*ReserveResult)(nil)
)

// Reserve issues [Count] tokens to the administrator without payment.
type Reserve struct {
	Count uint64 `json:"count"`
}

func (*Reserve) GetTypeID() uint8 {
	return consts.ReserveID
}

func (*Reserve) Payable() bool {
	return false
}

func (r *Reserve) Execute(
	ctx context.Context,
	rules chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
	_ uint64,
) (chain.Output, error) {
	if r.Count > MaxTokensPerOutput {
		return nil, ErrTooManyTokens
	}
	tokenIDs, err := rules.Collection().Reserve(ctx, mu, actor, r.Count)
	if err != nil {
		return nil, err
	}
	return &ReserveResult{TokenIDs: tokenIDs}, nil
}

func (*Reserve) Size() int {
	return consts.Uint64Len
}

func (r *Reserve) Marshal(p *codec.Packer) {
	p.PackUint64(r.Count)
}

func UnmarshalReserve(p *codec.Packer) (chain.Action, error) {
	var reserve Reserve
	reserve.Count = p.UnpackUint64(false)
	return &reserve, p.Err()
}

type ReserveResult struct {
	TokenIDs []uint64 `json:"tokenIDs"`
}

func (*ReserveResult) GetTypeID() uint8 {
	return consts.ReserveID // Common practice is to use the action ID
}

func (r *ReserveResult) Marshal(p *codec.Packer) {
	packTokenIDs(p, r.TokenIDs)
}

func UnmarshalReserveResult(p *codec.Packer) (chain.Output, error) {
	tokenIDs, err := unpackTokenIDs(p)
	if err != nil {
		return nil, err
	}
	return &ReserveResult{TokenIDs: tokenIDs}, nil
}
