// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"slices"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"golang.org/x/exp/maps"

	"github.com/ava-labs/collectiblevm/state"
)

// TState defines a struct for storing temporary state on top of a
// persisted [state.Immutable].
//
// Views created from a [TState] read through any committed changes to the
// base state. Changes only reach the base state when [WriteChanges] is
// called.
type TState struct {
	l sync.RWMutex

	base        state.Immutable
	changedKeys map[string]maybe.Maybe[[]byte]
	exported    bool
}

// New returns a new instance of TState.
//
// [changedSize] is an estimate of the number of keys that will be changed.
func New(base state.Immutable, changedSize int) *TState {
	return &TState{
		base:        base,
		changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize),
	}
}

func (ts *TState) getChangedValue(key string) ([]byte, bool, bool) {
	ts.l.RLock()
	defer ts.l.RUnlock()

	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

// GetValue returns the latest committed value of [key].
func (ts *TState) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	if v, changed, exists := ts.getChangedValue(string(key)); changed {
		if !exists {
			return nil, database.ErrNotFound
		}
		return v, nil
	}
	return ts.base.GetValue(ctx, key)
}

// PendingChanges returns the number of keys modified since creation.
func (ts *TState) PendingChanges() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return len(ts.changedKeys)
}

// WriteChanges writes all committed changes to [w] in key order.
//
// Once [WriteChanges] is called, [TState] should not be used again (as the
// bytes stored are consumed).
func (ts *TState) WriteChanges(
	ctx context.Context,
	t trace.Tracer, //nolint:interfacer
	w database.KeyValueWriterDeleter,
) (int, error) {
	_, span := t.Start(ctx, "TState.WriteChanges")
	defer span.End()

	ts.l.Lock()
	defer ts.l.Unlock()

	if ts.exported {
		return 0, ErrAlreadyExported
	}
	ts.exported = true

	keys := maps.Keys(ts.changedKeys)
	slices.Sort(keys)
	for _, k := range keys {
		v := ts.changedKeys[k]
		var err error
		if v.IsNothing() {
			err = w.Delete([]byte(k))
		} else {
			err = w.Put([]byte(k), v.Value())
		}
		if err != nil {
			return 0, err
		}
	}
	return len(keys), nil
}
