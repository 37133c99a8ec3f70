// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ionhash

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"github.com/bureau-foundation/ionhash/lib/ion"
)

// Writer is an [ion.Writer] that computes digests of the values
// written through it before passing them to a delegate. After each
// write or StepOut, Digest returns the digest of that value.
//
// Hashing can be suspended at the top level with Suspend: values
// written while suspended go to the delegate unhashed, and Digest
// returns an empty slice until Resume.
type Writer struct {
	delegate ion.Writer
	engine   *engine
	depth    int

	fieldName   *ion.SymbolToken
	annotations []ion.SymbolToken
}

var _ ion.Writer = (*Writer)(nil)

// NewWriter returns a Writer that writes to delegate. Use
// ion.NewDiscardWriter as the delegate when only digests are wanted.
func NewWriter(delegate ion.Writer, config Config) (*Writer, error) {
	engine, err := newEngine(config)
	if err != nil {
		return nil, err
	}
	return &Writer{delegate: delegate, engine: engine}, nil
}

// Digest returns a copy of the digest of the last value written or
// stepped out of at the current depth, or an empty slice.
func (w *Writer) Digest() []byte {
	return w.engine.digest()
}

// Suspend stops hashing. It returns ErrInvalidTraversalState inside a
// container.
func (w *Writer) Suspend() error {
	if w.depth != 0 {
		return fmt.Errorf("%w: suspend at depth %d", ErrInvalidTraversalState, w.depth)
	}
	return w.engine.suspend()
}

// Resume restarts hashing after Suspend. It returns
// ErrInvalidTraversalState inside a container.
func (w *Writer) Resume() error {
	if w.depth != 0 {
		return fmt.Errorf("%w: resume at depth %d", ErrInvalidTraversalState, w.depth)
	}
	return w.engine.resume()
}

// Suspended reports whether hashing is suspended.
func (w *Writer) Suspended() bool {
	return w.engine.state == stateSuspended
}

func (w *Writer) SetFieldName(name ion.SymbolToken) {
	w.fieldName = &name
	w.delegate.SetFieldName(name)
}

func (w *Writer) SetAnnotations(annotations ...ion.SymbolToken) {
	w.annotations = append([]ion.SymbolToken(nil), annotations...)
	w.delegate.SetAnnotations(annotations...)
}

// takeHeader returns and clears the pending field name and annotations.
func (w *Writer) takeHeader() (*ion.SymbolToken, []ion.SymbolToken) {
	fieldName, annotations := w.fieldName, w.annotations
	w.fieldName, w.annotations = nil, nil
	return fieldName, annotations
}

// write hashes v, decorated with the pending header, and then calls
// the delegate. The digest is folded into the engine only once the
// delegate has accepted the value; if either step fails the current
// digest is cleared.
func (w *Writer) write(v *ion.Value, delegateWrite func() error) error {
	v.FieldName, v.Annotations = w.takeHeader()
	if w.engine.state != stateActive {
		return delegateWrite()
	}
	pending, err := w.engine.prepareScalar(v)
	if err != nil {
		w.engine.clear()
		return err
	}
	if err := delegateWrite(); err != nil {
		w.engine.clear()
		return err
	}
	w.engine.complete(pending)
	return nil
}

func (w *Writer) WriteNull() error {
	return w.write(ion.Null(), w.delegate.WriteNull)
}

func (w *Writer) WriteNullType(t ion.Type) error {
	return w.write(ion.TypedNull(t), func() error { return w.delegate.WriteNullType(t) })
}

func (w *Writer) WriteBool(b bool) error {
	return w.write(ion.Bool(b), func() error { return w.delegate.WriteBool(b) })
}

func (w *Writer) WriteInt(i int64) error {
	return w.write(ion.Int(i), func() error { return w.delegate.WriteInt(i) })
}

func (w *Writer) WriteBigInt(i *big.Int) error {
	v := ion.TypedNull(ion.IntType)
	if i != nil {
		v = ion.BigInt(i)
	}
	return w.write(v, func() error { return w.delegate.WriteBigInt(i) })
}

func (w *Writer) WriteFloat(f float64) error {
	return w.write(ion.Float(f), func() error { return w.delegate.WriteFloat(f) })
}

func (w *Writer) WriteDecimal(d *apd.Decimal) error {
	v := ion.TypedNull(ion.DecimalType)
	if d != nil {
		v = ion.Decimal(d)
	}
	return w.write(v, func() error { return w.delegate.WriteDecimal(d) })
}

func (w *Writer) WriteTimestamp(t ion.Timestamp) error {
	return w.write(ion.TimestampValue(t), func() error { return w.delegate.WriteTimestamp(t) })
}

func (w *Writer) WriteString(s string) error {
	return w.write(ion.String(s), func() error { return w.delegate.WriteString(s) })
}

func (w *Writer) WriteSymbol(token ion.SymbolToken) error {
	return w.write(ion.SymbolFromToken(token), func() error { return w.delegate.WriteSymbol(token) })
}

func (w *Writer) WriteBlob(b []byte) error {
	v := ion.TypedNull(ion.BlobType)
	if b != nil {
		v = ion.Blob(b)
	}
	return w.write(v, func() error { return w.delegate.WriteBlob(b) })
}

func (w *Writer) WriteClob(b []byte) error {
	v := ion.TypedNull(ion.ClobType)
	if b != nil {
		v = ion.Clob(b)
	}
	return w.write(v, func() error { return w.delegate.WriteClob(b) })
}

func (w *Writer) StepIn(container ion.Type) error {
	fieldName, annotations := w.takeHeader()
	if !container.IsContainer() {
		w.engine.clear()
		return fmt.Errorf("%w: step into %s", ErrUnsupportedValueType, container)
	}
	if w.engine.state != stateActive {
		if err := w.delegate.StepIn(container); err != nil {
			return err
		}
		w.depth++
		return nil
	}

	pending, err := w.engine.prepareContainer(container, fieldName, annotations)
	if err != nil {
		w.engine.clear()
		return err
	}
	if err := w.delegate.StepIn(container); err != nil {
		w.engine.clear()
		return err
	}
	w.engine.push(pending)
	w.depth++
	return nil
}

// StepOut closes the current container; its digest becomes current.
func (w *Writer) StepOut() error {
	if w.depth == 0 {
		return fmt.Errorf("%w: step out at top level", ErrInvalidTraversalState)
	}
	if err := w.delegate.StepOut(); err != nil {
		w.engine.clear()
		return err
	}
	w.depth--
	if w.engine.state == stateActive {
		return w.engine.stepOut()
	}
	return nil
}

func (w *Writer) Depth() int {
	return w.depth
}

func (w *Writer) Finish() error {
	return w.delegate.Finish()
}
