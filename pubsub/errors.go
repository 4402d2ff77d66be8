// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import "errors"

var (
	ErrClosed          = errors.New("connection closed")
	ErrQueueFull       = errors.New("pending message queue is full")
	ErrTooManyMessages = errors.New("too many messages in batch")
)
