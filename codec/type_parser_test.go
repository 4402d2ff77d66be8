// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type blah1 struct{ v uint64 }

func (*blah1) GetTypeID() uint8 { return 0 }

type blah2 struct{}

func (*blah2) GetTypeID() uint8 { return 1 }

func TestTypeParser(t *testing.T) {
	require := require.New(t)
	tp := NewTypeParser[Typed]()

	require.NoError(tp.Register(&blah1{}, func(p *Packer) (Typed, error) {
		return &blah1{v: p.UnpackUint64(true)}, p.Err()
	}))
	require.NoError(tp.Register(&blah2{}, func(*Packer) (Typed, error) {
		return &blah2{}, nil
	}))
	require.ErrorIs(tp.Register(&blah2{}, nil), ErrDuplicateItem)

	name, ok := tp.Name(0)
	require.True(ok)
	require.Equal("*codec.blah1", name)

	wp := NewWriter(16, 16)
	wp.PackByte(0)
	wp.PackUint64(9)
	v, err := tp.Unmarshal(NewReader(wp.Bytes(), 16))
	require.NoError(err)
	require.Equal(uint64(9), v.(*blah1).v)

	wp = NewWriter(1, 1)
	wp.PackByte(7)
	_, err = tp.Unmarshal(NewReader(wp.Bytes(), 1))
	require.ErrorIs(err, ErrUnknownType)
}
