// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"
)

func TestSimpleMutableCommit(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()
	require.NoError(db.Put([]byte("stale"), []byte("v0")))

	s := NewSimpleMutable(NewReader(db))
	require.NoError(s.Insert(ctx, []byte("key"), []byte("v1")))
	require.NoError(s.Remove(ctx, []byte("stale")))

	v, err := s.GetValue(ctx, []byte("key"))
	require.NoError(err)
	require.Equal([]byte("v1"), v)
	_, err = s.GetValue(ctx, []byte("stale"))
	require.ErrorIs(err, database.ErrNotFound)

	// nothing reaches the database before commit
	has, err := db.Has([]byte("key"))
	require.NoError(err)
	require.False(has)

	require.NoError(s.Commit(db))
	v, err = db.Get([]byte("key"))
	require.NoError(err)
	require.Equal([]byte("v1"), v)
	has, err = db.Has([]byte("stale"))
	require.NoError(err)
	require.False(has)
}
