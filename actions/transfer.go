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
	"github.com/ava-labs/collectiblevm/storage"
)

const MaxMemoSize = 256

var (
	_ chain.Action = (*Transfer)(nil)
	_ chain.Output = (*TransferResult)(nil)
)

type Transfer struct {
	// To is the recipient of the [Value].
	To codec.Address `json:"to"`

	// Amount are transferred to [To].
	Value uint64 `json:"value"`

	// Optional message to accompany transaction.
	Memo []byte `json:"memo"`
}

func (*Transfer) GetTypeID() uint8 {
	return consts.TransferID
}

// Transfer moves its own [Value] and never accepts a transaction value.
func (*Transfer) Payable() bool {
	return false
}

func (t *Transfer) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
	_ uint64,
) (chain.Output, error) {
	if t.Value == 0 {
		return nil, ErrOutputValueZero
	}
	if len(t.Memo) > MaxMemoSize {
		return nil, ErrOutputMemoTooLarge
	}
	senderBalance, err := storage.SubBalance(ctx, mu, actor, t.Value)
	if err != nil {
		return nil, err
	}
	receiverBalance, err := storage.AddBalance(ctx, mu, t.To, t.Value)
	if err != nil {
		return nil, err
	}

	return &TransferResult{
		SenderBalance:   senderBalance,
		ReceiverBalance: receiverBalance,
	}, nil
}

func (t *Transfer) Size() int {
	return codec.AddressLen + consts.Uint64Len + consts.IntLen + len(t.Memo)
}

func (t *Transfer) Marshal(p *codec.Packer) {
	p.PackAddress(t.To)
	p.PackUint64(t.Value)
	p.PackBytes(t.Memo)
}

func UnmarshalTransfer(p *codec.Packer) (chain.Action, error) {
	var transfer Transfer
	p.UnpackAddress(false, &transfer.To)
	transfer.Value = p.UnpackUint64(true)
	p.UnpackBytes(MaxMemoSize, false, &transfer.Memo)
	return &transfer, p.Err()
}

type TransferResult struct {
	SenderBalance   uint64 `json:"sender_balance"`
	ReceiverBalance uint64 `json:"receiver_balance"`
}

func (*TransferResult) GetTypeID() uint8 {
	return consts.TransferID // Common practice is to use the action ID
}

func (r *TransferResult) Marshal(p *codec.Packer) {
	p.PackUint64(r.SenderBalance)
	p.PackUint64(r.ReceiverBalance)
}

func UnmarshalTransferResult(p *codec.Packer) (chain.Output, error) {
	var result TransferResult
	result.SenderBalance = p.UnpackUint64(false)
	result.ReceiverBalance = p.UnpackUint64(false)
	return &result, p.Err()
}
