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
	_ chain.Action = (*AllowlistAdd)(nil)
	_ chain.Action = (*AllowlistRemove)(nil)
	_ chain.Output = (*AllowlistAddResult)(nil)
	_ chain.Output = (*AllowlistRemoveResult)(nil)
)

// AllowlistAdd appends [Address] to the upgrade allowlist. Adding a current
// member is a no-op.
type AllowlistAdd struct {
	Address codec.Address `json:"address"`
}

func (*AllowlistAdd) GetTypeID() uint8 {
	return consts.AllowlistAddID
}

func (*AllowlistAdd) Payable() bool {
	return false
}

func (a *AllowlistAdd) Execute(
	ctx context.Context,
	rules chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
	_ uint64,
) (chain.Output, error) {
	changed, err := rules.Collection().AddToAllowlist(ctx, mu, actor, a.Address)
	if err != nil {
		return nil, err
	}
	return &AllowlistAddResult{Address: a.Address, Changed: changed}, nil
}

func (*AllowlistAdd) Size() int {
	return codec.AddressLen
}

func (a *AllowlistAdd) Marshal(p *codec.Packer) {
	p.PackAddress(a.Address)
}

func UnmarshalAllowlistAdd(p *codec.Packer) (chain.Action, error) {
	var add AllowlistAdd
	p.UnpackAddress(true, &add.Address)
	return &add, p.Err()
}

type AllowlistAddResult struct {
	Address codec.Address `json:"address"`
	Changed bool          `json:"changed"`
}

func (*AllowlistAddResult) GetTypeID() uint8 {
	return consts.AllowlistAddID
}

func (r *AllowlistAddResult) Marshal(p *codec.Packer) {
	p.PackAddress(r.Address)
	p.PackBool(r.Changed)
}

func UnmarshalAllowlistAddResult(p *codec.Packer) (chain.Output, error) {
	var result AllowlistAddResult
	p.UnpackAddress(false, &result.Address)
	result.Changed = p.UnpackBool()
	return &result, p.Err()
}

// AllowlistRemove clears the slot holding [Address]. Later slots keep their
// position.
type AllowlistRemove struct {
	Address codec.Address `json:"address"`
}

func (*AllowlistRemove) GetTypeID() uint8 {
	return consts.AllowlistRemoveID
}

func (*AllowlistRemove) Payable() bool {
	return false
}

func (a *AllowlistRemove) Execute(
	ctx context.Context,
	rules chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
	_ uint64,
) (chain.Output, error) {
	changed, err := rules.Collection().RemoveFromAllowlist(ctx, mu, actor, a.Address)
	if err != nil {
		return nil, err
	}
	return &AllowlistRemoveResult{Address: a.Address, Changed: changed}, nil
}

func (*AllowlistRemove) Size() int {
	return codec.AddressLen
}

func (a *AllowlistRemove) Marshal(p *codec.Packer) {
	p.PackAddress(a.Address)
}

func UnmarshalAllowlistRemove(p *codec.Packer) (chain.Action, error) {
	var remove AllowlistRemove
	p.UnpackAddress(true, &remove.Address)
	return &remove, p.Err()
}

type AllowlistRemoveResult struct {
	Address codec.Address `json:"address"`
	Changed bool          `json:"changed"`
}

func (*AllowlistRemoveResult) GetTypeID() uint8 {
	return consts.AllowlistRemoveID
}

func (r *AllowlistRemoveResult) Marshal(p *codec.Packer) {
	p.PackAddress(r.Address)
	p.PackBool(r.Changed)
}

func UnmarshalAllowlistRemoveResult(p *codec.Packer) (chain.Output, error) {
	var result AllowlistRemoveResult
	p.UnpackAddress(false, &result.Address)
	result.Changed = p.UnpackBool()
	return &result, p.Err()
}
