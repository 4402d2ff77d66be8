// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/consts"
)

const maxResultFieldSize = consts.NetworkSizeLimit

// Result records the outcome of an executed transaction.
type Result struct {
	// Height is the 1-indexed position of the transaction in execution order.
	Height    uint64        `json:"height"`
	Timestamp int64         `json:"timestamp"`
	Actor     codec.Address `json:"actor"`
	Success   bool          `json:"success"`
	Error     []byte        `json:"error"`

	// Output is the type-prefixed encoding of the action [Output].
	Output []byte `json:"output"`
}

func (r *Result) Size() int {
	return consts.Uint64Len +
		consts.Int64Len +
		codec.AddressLen +
		consts.BoolLen +
		consts.IntLen + len(r.Error) +
		consts.IntLen + len(r.Output)
}

func (r *Result) Marshal(p *codec.Packer) {
	p.PackUint64(r.Height)
	p.PackInt64(r.Timestamp)
	p.PackAddress(r.Actor)
	p.PackBool(r.Success)
	p.PackBytes(r.Error)
	p.PackBytes(r.Output)
}

func (r *Result) Bytes() ([]byte, error) {
	p := codec.NewWriter(r.Size(), consts.MaxInt)
	r.Marshal(p)
	return p.Bytes(), p.Err()
}

func UnmarshalResult(raw []byte) (*Result, error) {
	p := codec.NewReader(raw, consts.MaxInt)
	result := &Result{
		Height:    p.UnpackUint64(true),
		Timestamp: p.UnpackInt64(false),
	}
	p.UnpackAddress(true, &result.Actor)
	result.Success = p.UnpackBool()
	p.UnpackBytes(maxResultFieldSize, false, &result.Error)
	p.UnpackBytes(maxResultFieldSize, false, &result.Output)
	if err := p.Err(); err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, ErrInvalidObject
	}
	// Empty fields are stored as nil by the processor.
	if len(result.Error) == 0 {
		result.Error = nil
	}
	if len(result.Output) == 0 {
		result.Output = nil
	}
	return result, nil
}

// MarshalOutput encodes [o] prefixed with its type ID.
func MarshalOutput(o Output) ([]byte, error) {
	if o == nil {
		return nil, nil
	}
	p := codec.NewWriter(consts.ByteLen, consts.NetworkSizeLimit)
	p.PackByte(o.GetTypeID())
	o.Marshal(p)
	return p.Bytes(), p.Err()
}

// UnmarshalOutput decodes bytes produced by [MarshalOutput].
func UnmarshalOutput(raw []byte, outputRegistry OutputRegistry) (Output, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	p := codec.NewReader(raw, consts.NetworkSizeLimit)
	o, err := outputRegistry.Unmarshal(p)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, ErrInvalidObject
	}
	return o, nil
}
