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
	_ chain.Action = (*IncrementLevel)(nil)
	_ chain.Action = (*Upgrade)(nil)
	_ chain.Output = (*LevelResult)(nil)
	_ chain.Output = (*UpgradeResult)(nil)
)

// IncrementLevel raises the level of [TokenID]. Anyone may call it.
type IncrementLevel struct {
	TokenID uint64 `json:"tokenID"`
}

func (*IncrementLevel) GetTypeID() uint8 {
	return consts.IncrementLevelID
}

func (*IncrementLevel) Payable() bool {
	return false
}

func (i *IncrementLevel) Execute(
	ctx context.Context,
	rules chain.Rules,
	mu state.Mutable,
	_ int64,
	_ codec.Address,
	_ ids.ID,
	_ uint64,
) (chain.Output, error) {
	level, err := rules.Collection().IncrementLevel(ctx, mu, i.TokenID)
	if err != nil {
		return nil, err
	}
	return &LevelResult{TokenID: i.TokenID, Level: level}, nil
}

func (*IncrementLevel) Size() int {
	return consts.Uint64Len
}

func (i *IncrementLevel) Marshal(p *codec.Packer) {
	p.PackUint64(i.TokenID)
}

func UnmarshalIncrementLevel(p *codec.Packer) (chain.Action, error) {
	var increment IncrementLevel
	increment.TokenID = p.UnpackUint64(false)
	return &increment, p.Err()
}

type LevelResult struct {
	TokenID uint64 `json:"tokenID"`
	Level   uint64 `json:"level"`
}

func (*LevelResult) GetTypeID() uint8 {
	return consts.IncrementLevelID
}

func (r *LevelResult) Marshal(p *codec.Packer) {
	p.PackUint64(r.TokenID)
	p.PackUint64(r.Level)
}

func UnmarshalLevelResult(p *codec.Packer) (chain.Output, error) {
	var result LevelResult
	result.TokenID = p.UnpackUint64(false)
	result.Level = p.UnpackUint64(false)
	return &result, p.Err()
}

// Upgrade raises the level of [TokenID] on behalf of an allowlisted actor.
type Upgrade struct {
	TokenID uint64 `json:"tokenID"`
}

func (*Upgrade) GetTypeID() uint8 {
	return consts.UpgradeID
}

func (*Upgrade) Payable() bool {
	return false
}

func (u *Upgrade) Execute(
	ctx context.Context,
	rules chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
	_ uint64,
) (chain.Output, error) {
	level, err := rules.Collection().Upgrade(ctx, mu, actor, u.TokenID)
	if err != nil {
		return nil, err
	}
	return &UpgradeResult{TokenID: u.TokenID, Level: level}, nil
}

func (*Upgrade) Size() int {
	return consts.Uint64Len
}

func (u *Upgrade) Marshal(p *codec.Packer) {
	p.PackUint64(u.TokenID)
}

func UnmarshalUpgrade(p *codec.Packer) (chain.Action, error) {
	var upgrade Upgrade
	upgrade.TokenID = p.UnpackUint64(false)
	return &upgrade, p.Err()
}

type UpgradeResult struct {
	TokenID uint64 `json:"tokenID"`
	Level   uint64 `json:"level"`
}

func (*UpgradeResult) GetTypeID() uint8 {
	return consts.UpgradeID
}

func (r *UpgradeResult) Marshal(p *codec.Packer) {
	p.PackUint64(r.TokenID)
	p.PackUint64(r.Level)
}

func UnmarshalUpgradeResult(p *codec.Packer) (chain.Output, error) {
	var result UpgradeResult
	result.TokenID = p.UnpackUint64(false)
	result.Level = p.UnpackUint64(false)
	return &result, p.Err()
}
