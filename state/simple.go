// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
)

var _ Mutable = (*SimpleMutable)(nil)

type change struct {
	value  []byte
	delete bool
}

// SimpleMutable buffers writes on top of [Immutable] until [Commit] is
// called. It is used outside of transaction processing (genesis).
type SimpleMutable struct {
	v Immutable

	changes map[string]change
}

func NewSimpleMutable(v Immutable) *SimpleMutable {
	return &SimpleMutable{v, make(map[string]change)}
}

func (s *SimpleMutable) GetValue(ctx context.Context, k []byte) ([]byte, error) {
	if v, ok := s.changes[string(k)]; ok {
		if v.delete {
			return nil, database.ErrNotFound
		}
		return v.value, nil
	}
	return s.v.GetValue(ctx, k)
}

func (s *SimpleMutable) Insert(_ context.Context, k []byte, v []byte) error {
	s.changes[string(k)] = change{value: v}
	return nil
}

func (s *SimpleMutable) Remove(_ context.Context, k []byte) error {
	s.changes[string(k)] = change{delete: true}
	return nil
}

// Commit writes all buffered changes to [w] and resets the buffer.
func (s *SimpleMutable) Commit(w database.KeyValueWriterDeleter) error {
	for k, c := range s.changes {
		var err error
		if c.delete {
			err = w.Delete([]byte(k))
		} else {
			err = w.Put([]byte(k), c.value)
		}
		if err != nil {
			return err
		}
	}
	s.changes = make(map[string]change)
	return nil
}
