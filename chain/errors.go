// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	// Parsing errors
	ErrInvalidObject = errors.New("invalid object")
	ErrInvalidActor  = errors.New("invalid actor")

	// Transaction verification errors
	ErrMisalignedTime    = errors.New("misaligned time")
	ErrTimestampTooLate  = errors.New("timestamp too late")
	ErrTimestampTooEarly = errors.New("timestamp too early")
	ErrInvalidChainID    = errors.New("invalid chain ID")
	ErrDuplicateTx       = errors.New("duplicate transaction")
	ErrNonPayable        = errors.New("action does not accept value")
	ErrNotSigned         = errors.New("transaction not signed")
)
