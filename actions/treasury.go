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
	_ chain.Action = (*Withdraw)(nil)
	_ chain.Action = (*Fund)(nil)
	_ chain.Output = (*WithdrawResult)(nil)
	_ chain.Output = (*FundResult)(nil)
)

// Withdraw moves the whole treasury to the administrator's balance.
type Withdraw struct{}

func (*Withdraw) GetTypeID() uint8 {
	return consts.WithdrawID
}

func (*Withdraw) Payable() bool {
	return false
}

func (*Withdraw) Execute(
	ctx context.Context,
	rules chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
	_ uint64,
) (chain.Output, error) {
	amount, err := rules.Collection().Withdraw(ctx, mu, actor)
	if err != nil {
		return nil, err
	}
	return &WithdrawResult{Amount: amount}, nil
}

func (*Withdraw) Size() int {
	return 0
}

func (*Withdraw) Marshal(*codec.Packer) {}

func UnmarshalWithdraw(*codec.Packer) (chain.Action, error) {
	return &Withdraw{}, nil
}

type WithdrawResult struct {
	Amount uint64 `json:"amount"`
}

func (*WithdrawResult) GetTypeID() uint8 {
	return consts.WithdrawID
}

func (r *WithdrawResult) Marshal(p *codec.Packer) {
	p.PackUint64(r.Amount)
}

func UnmarshalWithdrawResult(p *codec.Packer) (chain.Output, error) {
	var result WithdrawResult
	result.Amount = p.UnpackUint64(false)
	return &result, p.Err()
}

// Fund deposits the transaction value into the treasury without minting.
type Fund struct{}

func (*Fund) GetTypeID() uint8 {
	return consts.FundID
}

func (*Fund) Payable() bool {
	return true
}

func (*Fund) Execute(
	ctx context.Context,
	rules chain.Rules,
	mu state.Mutable,
	_ int64,
	_ codec.Address,
	_ ids.ID,
	value uint64,
) (chain.Output, error) {
	if value == 0 {
		return nil, ErrOutputValueZero
	}
	treasury, err := rules.Collection().Deposit(ctx, mu, value)
	if err != nil {
		return nil, err
	}
	return &FundResult{Treasury: treasury}, nil
}

func (*Fund) Size() int {
	return 0
}

func (*Fund) Marshal(*codec.Packer) {}

func UnmarshalFund(*codec.Packer) (chain.Action, error) {
	return &Fund{}, nil
}

type FundResult struct {
	Treasury uint64 `json:"treasury"`
}

func (*FundResult) GetTypeID() uint8 {
	return consts.FundID
}

func (r *FundResult) Marshal(p *codec.Packer) {
	p.PackUint64(r.Treasury)
}

func UnmarshalFundResult(p *codec.Packer) (chain.Output, error) {
	var result FundResult
	result.Treasury = p.UnpackUint64(false)
	return &result, p.Err()
}
