// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import "errors"

var (
	ErrTxNotFound     = errors.New("tx not found")
	ErrTxFailed       = errors.New("tx failed")
	ErrUnexpectedType = errors.New("unexpected output type")
)
