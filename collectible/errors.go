// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package collectible

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthorized       = errors.New("not authorized")
	ErrNotOnAllowlist      = fmt.Errorf("%w: not on upgrade allowlist", ErrNotAuthorized)
	ErrCapacityExceeded    = errors.New("not enough remaining supply")
	ErrLimitExceeded       = errors.New("cannot mint specified number")
	ErrInsufficientPayment = errors.New("not enough payment")
	ErrPaymentMismatch     = errors.New("payment does not equal unit price")
	ErrInvalidToken        = errors.New("nonexistent token")
	ErrLevelCeilingReached = errors.New("max level reached")
	ErrNothingToWithdraw   = errors.New("nothing to withdraw")
	ErrTreasuryOverflow    = errors.New("treasury overflow")

	ErrMissingBaseURI     = errors.New("base uri is required")
	ErrZeroAddress        = errors.New("zero address")
	ErrInvalidMaxSupply   = errors.New("max supply must be non-zero")
	ErrInvalidMaxPerMint  = errors.New("max per mint must be non-zero")
	ErrAlreadyInitialized = errors.New("collection already initialized")
)
