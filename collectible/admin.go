// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package collectible

import (
	"context"
	"fmt"

	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/state"
	"github.com/ava-labs/collectiblevm/storage"
)

func requireAdmin(ctx context.Context, im state.Immutable, actor codec.Address) error {
	admin, err := storage.GetAdmin(ctx, im)
	if err != nil {
		return err
	}
	if actor != admin {
		return fmt.Errorf("%w: %s is not the administrator", ErrNotAuthorized, actor)
	}
	return nil
}

func (*Collection) Admin(ctx context.Context, im state.Immutable) (codec.Address, error) {
	return storage.GetAdmin(ctx, im)
}

// TransferAdmin hands the administrator role to [to].
func (*Collection) TransferAdmin(ctx context.Context, mu state.Mutable, actor, to codec.Address) error {
	if err := requireAdmin(ctx, mu, actor); err != nil {
		return err
	}
	if to == codec.EmptyAddress {
		return ErrZeroAddress
	}
	return storage.SetAdmin(ctx, mu, to)
}
