// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ws

import "errors"

var (
	ErrUnexpectedMode = errors.New("unexpected message mode")
	ErrClosed         = errors.New("client closed")
)
