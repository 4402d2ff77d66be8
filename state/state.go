// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"io"

	"github.com/ava-labs/avalanchego/database"
)

type Immutable interface {
	GetValue(ctx context.Context, key []byte) (value []byte, err error)
}

type Mutable interface {
	Immutable

	Insert(ctx context.Context, key []byte, value []byte) error
	Remove(ctx context.Context, key []byte) error
}

// Database is the persistent key/value store the processor commits to.
type Database interface {
	database.KeyValueReaderWriterDeleter
	database.Batcher
	io.Closer
}

var _ Immutable = (*Reader)(nil)

// Reader exposes a [database.KeyValueReader] as [Immutable].
type Reader struct {
	db database.KeyValueReader
}

func NewReader(db database.KeyValueReader) *Reader {
	return &Reader{db: db}
}

func (r *Reader) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return r.db.Get(key)
}
