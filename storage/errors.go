// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrInvalidBalance  = errors.New("invalid balance")
	ErrInvalidValue    = errors.New("invalid stored value")
	ErrBaseURITooLarge = errors.New("base uri too large")
)
