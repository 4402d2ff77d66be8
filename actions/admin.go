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

var (
	_ chain.Action = (*SetBaseURI)(nil)
	_ chain.Action = (*SetMaxLevel)(nil)
	_ chain.Action = (*TransferAdmin)(nil)
	_ chain.Output = (*SetBaseURIResult)(nil)
	_ chain.Output = (*SetMaxLevelResult)(nil)
	_ chain.Output = (*TransferAdminResult)(nil)
)

type SetBaseURI struct {
	URI string `json:"uri"`
}

func (*SetBaseURI) GetTypeID() uint8 {
	return consts.SetBaseURIID
}

func (*SetBaseURI) Payable() bool {
	return false
}

func (s *SetBaseURI) Execute(
	ctx context.Context,
	rules chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
	_ uint64,
) (chain.Output, error) {
	if err := rules.Collection().SetBaseURI(ctx, mu, actor, s.URI); err != nil {
		return nil, err
	}
	return &SetBaseURIResult{URI: s.URI}, nil
}

func (s *SetBaseURI) Size() int {
	return consts.Uint16Len + len(s.URI)
}

func (s *SetBaseURI) Marshal(p *codec.Packer) {
	p.PackString(s.URI)
}

func UnmarshalSetBaseURI(p *codec.Packer) (chain.Action, error) {
	var set SetBaseURI
	set.URI = p.UnpackString(false)
	if len(set.URI) > storage.MaxBaseURISize {
		return nil, storage.ErrBaseURITooLarge
	}
	return &set, p.Err()
}

type SetBaseURIResult struct {
	URI string `json:"uri"`
}

func (*SetBaseURIResult) GetTypeID() uint8 {
	return consts.SetBaseURIID
}

func (r *SetBaseURIResult) Marshal(p *codec.Packer) {
	p.PackString(r.URI)
}

func UnmarshalSetBaseURIResult(p *codec.Packer) (chain.Output, error) {
	var result SetBaseURIResult
	result.URI = p.UnpackString(false)
	return &result, p.Err()
}

type SetMaxLevel struct {
	Level uint64 `json:"level"`
}

func (*SetMaxLevel) GetTypeID() uint8 {
	return consts.SetMaxLevelID
}

func (*SetMaxLevel) Payable() bool {
	return false
}

func (s *SetMaxLevel) Execute(
	ctx context.Context,
	rules chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
	_ uint64,
) (chain.Output, error) {
	if err := rules.Collection().SetMaxLevel(ctx, mu, actor, s.Level); err != nil {
		return nil, err
	}
	return &SetMaxLevelResult{Level: s.Level}, nil
}

func (*SetMaxLevel) Size() int {
	return consts.Uint64Len
}

func (s *SetMaxLevel) Marshal(p *codec.Packer) {
	p.PackUint64(s.Level)
}

func UnmarshalSetMaxLevel(p *codec.Packer) (chain.Action, error) {
	var set SetMaxLevel
	set.Level = p.UnpackUint64(false)
	return &set, p.Err()
}

type SetMaxLevelResult struct {
	Level uint64 `json:"level"`
}

func (*SetMaxLevelResult) GetTypeID() uint8 {
	return consts.SetMaxLevelID
}

func (r *SetMaxLevelResult) Marshal(p *codec.Packer) {
	p.PackUint64(r.Level)
}

func UnmarshalSetMaxLevelResult(p *codec.Packer) (chain.Output, error) {
	var result SetMaxLevelResult
	result.Level = p.UnpackUint64(false)
	return &result, p.Err()
}

// TransferAdmin hands the administrator role to [To].
type TransferAdmin struct {
	To codec.Address `json:"to"`
}

func (*TransferAdmin) GetTypeID() uint8 {
	return consts.TransferAdminID
}

func (*TransferAdmin) Payable() bool {
	return false
}

func (t *TransferAdmin) Execute(
	ctx context.Context,
	rules chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
	_ uint64,
) (chain.Output, error) {
	if err := rules.Collection().TransferAdmin(ctx, mu, actor, t.To); err != nil {
		return nil, err
	}
	return &TransferAdminResult{Previous: actor, Admin: t.To}, nil
}

func (*TransferAdmin) Size() int {
	return codec.AddressLen
}

func (t *TransferAdmin) Marshal(p *codec.Packer) {
	p.PackAddress(t.To)
}

func UnmarshalTransferAdmin(p *codec.Packer) (chain.Action, error) {
	var transfer TransferAdmin
	p.UnpackAddress(true, &transfer.To)
	return &transfer, p.Err()
}

type TransferAdminResult struct {
	Previous codec.Address `json:"previous"`
	Admin    codec.Address `json:"admin"`
}

func (*TransferAdminResult) GetTypeID() uint8 {
	return consts.TransferAdminID
}

func (r *TransferAdminResult) Marshal(p *codec.Packer) {
	p.PackAddress(r.Previous)
	p.PackAddress(r.Admin)
}

func UnmarshalTransferAdminResult(p *codec.Packer) (chain.Output, error) {
	var result TransferAdminResult
	p.UnpackAddress(false, &result.Previous)
	p.UnpackAddress(false, &result.Admin)
	return &result, p.Err()
}
