// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ws

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/collectiblevm/chain"
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/consts"
)

const (
	// ResultMode subscribes a connection to every executed transaction.
	ResultMode byte = 0
	// TxMode submits a signed transaction. The connection is sent its
	// result or the reason it was rejected.
	TxMode byte = 1
)

// Rejection reasons longer than this are truncated.
const maxRejectionSize = 1024

// packResultMessage packs an executed transaction.
func packResultMessage(txID ids.ID, action uint8, result *chain.Result) ([]byte, error) {
	resultBytes, err := result.Bytes()
	if err != nil {
		return nil, err
	}
	p := codec.NewWriter(
		consts.ByteLen+consts.IDLen+consts.ByteLen+consts.IntLen+len(resultBytes),
		consts.MaxInt,
	)
	p.PackByte(ResultMode)
	p.PackID(txID)
	p.PackByte(action)
	p.PackBytes(resultBytes)
	return p.Bytes(), p.Err()
}

func unpackResultMessage(msg []byte) (ids.ID, uint8, *chain.Result, error) {
	p := codec.NewReader(msg, consts.MaxInt)
	if mode := p.UnpackByte(); mode != ResultMode {
		return ids.Empty, 0, nil, ErrUnexpectedMode
	}
	var txID ids.ID
	p.UnpackID(true, &txID)
	action := p.UnpackByte()
	var resultBytes []byte
	p.UnpackBytes(-1, true, &resultBytes)
	if err := p.Err(); err != nil {
		return ids.Empty, 0, nil, err
	}
	if !p.Empty() {
		return ids.Empty, 0, nil, codec.ErrExtraBytes
	}
	result, err := chain.UnmarshalResult(resultBytes)
	if err != nil {
		return ids.Empty, 0, nil, err
	}
	return txID, action, result, nil
}

// packTxMessage packs the response to a submitted transaction. A nil
// [result] means the transaction was rejected for [reason].
func packTxMessage(txID ids.ID, result *chain.Result, reason error) ([]byte, error) {
	var (
		resultBytes []byte
		err         error
	)
	if result != nil {
		resultBytes, err = result.Bytes()
		if err != nil {
			return nil, err
		}
	}
	var reasonString string
	if reason != nil {
		reasonString = reason.Error()
		if len(reasonString) > maxRejectionSize {
			reasonString = reasonString[:maxRejectionSize]
		}
	}
	p := codec.NewWriter(
		consts.ByteLen+consts.IDLen+consts.IntLen+len(resultBytes)+consts.Uint16Len+len(reasonString),
		consts.MaxInt,
	)
	p.PackByte(TxMode)
	p.PackID(txID)
	p.PackBytes(resultBytes)
	p.PackString(reasonString)
	return p.Bytes(), p.Err()
}

func unpackTxMessage(msg []byte) (ids.ID, *chain.Result, string, error) {
	p := codec.NewReader(msg, consts.MaxInt)
	if mode := p.UnpackByte(); mode != TxMode {
		return ids.Empty, nil, "", ErrUnexpectedMode
	}
	var txID ids.ID
	p.UnpackID(false, &txID)
	var resultBytes []byte
	p.UnpackBytes(-1, false, &resultBytes)
	reason := p.UnpackString(false)
	if err := p.Err(); err != nil {
		return ids.Empty, nil, "", err
	}
	if !p.Empty() {
		return ids.Empty, nil, "", codec.ErrExtraBytes
	}
	if len(resultBytes) == 0 {
		return txID, nil, reason, nil
	}
	result, err := chain.UnmarshalResult(resultBytes)
	if err != nil {
		return ids.Empty, nil, "", err
	}
	return txID, result, reason, nil
}
