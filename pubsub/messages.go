// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/consts"
)

// CreateBatchMessage packs [msgs] into a single websocket frame.
func CreateBatchMessage(maxSize int, msgs [][]byte) ([]byte, error) {
	size := consts.IntLen
	for _, msg := range msgs {
		size += consts.IntLen + len(msg)
	}
	p := codec.NewWriter(size, maxSize)
	p.PackInt(len(msgs))
	for _, msg := range msgs {
		p.PackBytes(msg)
	}
	return p.Bytes(), p.Err()
}

// ParseBatchMessage unpacks a frame created by [CreateBatchMessage].
func ParseBatchMessage(maxSize int, msg []byte) ([][]byte, error) {
	p := codec.NewReader(msg, maxSize)
	count := p.UnpackInt(true)
	if err := p.Err(); err != nil {
		return nil, err
	}
	if count > len(msg) {
		return nil, ErrTooManyMessages
	}
	msgs := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		var m []byte
		p.UnpackBytes(maxSize, true, &m)
		msgs = append(msgs, m)
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, codec.ErrExtraBytes
	}
	return msgs, nil
}
