// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "fmt"

// Typed is implemented by every value that is registered in a [TypeParser].
type Typed interface {
	GetTypeID() uint8
}

type decoder[T Typed] struct {
	name string
	f    func(*Packer) (T, error)
}

// TypeParser maps the type ID prefixed on the wire to the function that
// decodes the remainder of the payload.
type TypeParser[T Typed] struct {
	indexToDecoder map[uint8]decoder[T]
}

func NewTypeParser[T Typed]() *TypeParser[T] {
	return &TypeParser[T]{
		indexToDecoder: map[uint8]decoder[T]{},
	}
}

// Register adds a new type to the parser. The type ID is read from [instance].
func (p *TypeParser[T]) Register(instance T, f func(*Packer) (T, error)) error {
	typeID := instance.GetTypeID()
	if _, ok := p.indexToDecoder[typeID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateItem, typeID)
	}
	p.indexToDecoder[typeID] = decoder[T]{
		name: fmt.Sprintf("%T", instance),
		f:    f,
	}
	return nil
}

// LookupIndex returns the decoder registered for [index].
func (p *TypeParser[T]) LookupIndex(index uint8) (func(*Packer) (T, error), bool) {
	d, ok := p.indexToDecoder[index]
	return d.f, ok
}

// Name returns the Go type name registered for [index].
func (p *TypeParser[T]) Name(index uint8) (string, bool) {
	d, ok := p.indexToDecoder[index]
	return d.name, ok
}

// Unmarshal reads the type ID from [p] and decodes the registered type.
func (p *TypeParser[T]) Unmarshal(packer *Packer) (T, error) {
	var empty T
	typeID := packer.UnpackByte()
	if err := packer.Err(); err != nil {
		return empty, err
	}
	f, ok := p.LookupIndex(typeID)
	if !ok {
		return empty, fmt.Errorf("%w: %d", ErrUnknownType, typeID)
	}
	return f(packer)
}
