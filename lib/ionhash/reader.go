// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ionhash

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"github.com/bureau-foundation/ionhash/lib/ion"
)

// Reader is an [ion.Reader] that computes digests of the values it
// reads. After each call to Next, Digest returns the digest of the
// value Next moved past; after StepOut, the digest of the container
// just left; after StepIn, an empty digest.
//
// Containers that are skipped, by calling Next without stepping in or
// by stepping out before the end, are read to their end from the
// underlying reader so that their digests are complete.
//
// Hashing errors are sticky: once Next returns false because of one,
// Err reports it and the Reader does nothing further.
type Reader struct {
	delegate ion.Reader
	engine   *engine

	// current is the type under the cursor, NoType when there is none.
	current ion.Type

	// scalar is the null or scalar under the cursor, captured when the
	// cursor lands on it. It is hashed when the cursor moves on.
	scalar *ion.Value

	err error
}

var _ ion.Reader = (*Reader)(nil)

// NewReader returns a Reader that reads from delegate.
func NewReader(delegate ion.Reader, config Config) (*Reader, error) {
	engine, err := newEngine(config)
	if err != nil {
		return nil, err
	}
	return &Reader{delegate: delegate, engine: engine}, nil
}

// Digest returns a copy of the current digest. It is empty when no
// value has been completed at the current position.
func (r *Reader) Digest() []byte {
	return r.engine.digest()
}

func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	if err := r.passCurrent(); err != nil {
		r.fail(err)
		return false
	}

	if !r.delegate.Next() {
		r.current, r.scalar = ion.NoType, nil
		if err := r.delegate.Err(); err != nil {
			r.fail(err)
		}
		return false
	}

	r.current, r.scalar = r.delegate.Type(), nil
	if !r.current.IsScalar() && !r.current.IsContainer() {
		r.fail(fmt.Errorf("%w: %s", ErrUnsupportedValueType, r.current))
		r.current = ion.NoType
		return false
	}
	if r.delegate.IsNull() || !r.current.IsContainer() {
		scalar, err := ion.ReadScalar(r.delegate)
		if err != nil {
			r.fail(err)
			return false
		}
		r.scalar = scalar
	}
	return true
}

// passCurrent hashes the value under the cursor before the cursor
// leaves it. A container the caller did not step into is stepped
// through here.
func (r *Reader) passCurrent() error {
	switch {
	case r.current == ion.NoType:
		r.engine.clear()
		return nil
	case r.scalar != nil:
		return r.engine.scalar(r.scalar)
	default:
		if err := r.StepIn(); err != nil {
			return err
		}
		return r.StepOut()
	}
}

func (r *Reader) StepIn() error {
	if r.err != nil {
		return r.err
	}
	if r.current == ion.NoType || r.scalar != nil {
		// Not a container; the delegate reports why.
		return r.delegate.StepIn()
	}

	pending, err := r.engine.prepareContainer(r.current, r.delegate.FieldName(), r.delegate.Annotations())
	if err != nil {
		r.fail(err)
		return err
	}
	if err := r.delegate.StepIn(); err != nil {
		r.fail(err)
		return err
	}
	r.engine.push(pending)
	r.current, r.scalar = ion.NoType, nil
	return nil
}

// StepOut finishes reading the current container, making its digest
// current, and returns to the parent.
func (r *Reader) StepOut() error {
	if r.err != nil {
		return r.err
	}
	if r.engine.depth() == 0 {
		return fmt.Errorf("%w: step out at top level", ErrInvalidTraversalState)
	}

	for r.Next() {
	}
	if r.err != nil {
		return r.err
	}

	if err := r.engine.stepOut(); err != nil {
		r.fail(err)
		return err
	}
	if err := r.delegate.StepOut(); err != nil {
		r.fail(err)
		return err
	}
	r.current, r.scalar = ion.NoType, nil
	return nil
}

// fail records the first error and drops the current digest.
func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
	r.engine.clear()
}

func (r *Reader) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.delegate.Err()
}

func (r *Reader) Type() ion.Type {
	return r.delegate.Type()
}

func (r *Reader) IsNull() bool {
	return r.delegate.IsNull()
}

func (r *Reader) FieldName() *ion.SymbolToken {
	return r.delegate.FieldName()
}

func (r *Reader) Annotations() []ion.SymbolToken {
	return r.delegate.Annotations()
}

func (r *Reader) Depth() int {
	return r.delegate.Depth()
}

func (r *Reader) BoolValue() (bool, error) {
	return r.delegate.BoolValue()
}

func (r *Reader) IntValue() (*big.Int, error) {
	return r.delegate.IntValue()
}

func (r *Reader) FloatValue() (float64, error) {
	return r.delegate.FloatValue()
}

func (r *Reader) DecimalValue() (*apd.Decimal, error) {
	return r.delegate.DecimalValue()
}

func (r *Reader) TimestampValue() (ion.Timestamp, error) {
	return r.delegate.TimestampValue()
}

func (r *Reader) StringValue() (string, error) {
	return r.delegate.StringValue()
}

func (r *Reader) SymbolValue() (ion.SymbolToken, error) {
	return r.delegate.SymbolValue()
}

func (r *Reader) ByteValue() ([]byte, error) {
	return r.delegate.ByteValue()
}
