// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ionhash

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/ionhash/lib/ion"
)

type engineState uint8

const (
	stateActive engineState = iota
	stateSuspended
)

func (s engineState) String() string {
	if s == stateSuspended {
		return "suspended"
	}
	return "active"
}

// engine holds the hashing state shared by Reader and Writer: the
// stack of open containers and the digest of the last completed value.
// It is not safe for concurrent use.
type engine struct {
	provider HasherProvider
	cache    digestCache
	logger   *slog.Logger
	parts    partsExtractor

	// Primitives reused for every scalar, symbol, and wrapper digest.
	scalarPrimitive IonHasher
	symbolPrimitive IonHasher
	wrapPrimitive   IonHasher

	// spare holds container primitives returned by stepOut.
	spare []IonHasher

	stack   []*containerHasher
	current []byte
	state   engineState
}

func newEngine(config Config) (*engine, error) {
	provider, algorithm, err := config.provider()
	if err != nil {
		return nil, err
	}
	cache, err := newDigestCache(config.DisableCache, config.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating digest cache: %w", err)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("ionhash engine created",
		"algorithm", algorithm,
		"cache_disabled", config.DisableCache,
		"cache_size", config.CacheSize,
	)

	return &engine{
		provider:        provider,
		cache:           cache,
		logger:          logger,
		scalarPrimitive: provider.NewHasher(),
		symbolPrimitive: provider.NewHasher(),
		wrapPrimitive:   provider.NewHasher(),
	}, nil
}

// digest returns a copy of the last completed digest, or an empty
// slice when no value has completed at the current depth.
func (e *engine) digest() []byte {
	if e.state == stateSuspended {
		return []byte{}
	}
	return append([]byte{}, e.current...)
}

func (e *engine) depth() int {
	return len(e.stack)
}

func (e *engine) inStruct() bool {
	return len(e.stack) > 0 && e.stack[len(e.stack)-1].typ == ion.StructType
}

// clear forgets the current digest.
func (e *engine) clear() {
	e.current = nil
}

// pendingValue is a hashed value that has not yet been folded into
// the traversal state.
type pendingValue struct {
	digest []byte
	header valueHeader
}

// pendingContainer is a container whose header is resolved but which
// is not yet on the stack.
type pendingContainer struct {
	typ       ion.Type
	qualifier byte
	header    valueHeader
}

// prepareScalar hashes a null or scalar value without changing the
// traversal state.
func (e *engine) prepareScalar(v *ion.Value) (pendingValue, error) {
	header, err := e.resolveHeader(v.FieldName, v.Annotations)
	if err != nil {
		return pendingValue{}, err
	}
	valueDigest, err := e.valueDigest(v)
	if err != nil {
		return pendingValue{}, err
	}
	return pendingValue{digest: valueDigest, header: header}, nil
}

// scalar hashes a null or scalar value and folds it into the open
// container, if there is one. On error the current digest is cleared
// and nothing else changes.
func (e *engine) scalar(v *ion.Value) error {
	pending, err := e.prepareScalar(v)
	if err != nil {
		e.clear()
		return err
	}
	e.complete(pending)
	return nil
}

// prepareContainer resolves a container's qualifier, field name and
// annotations, so an unresolved symbol fails before anything is pushed.
func (e *engine) prepareContainer(typ ion.Type, fieldName *ion.SymbolToken, annotations []ion.SymbolToken) (pendingContainer, error) {
	qualifier, err := containerQualifier(typ)
	if err != nil {
		return pendingContainer{}, err
	}
	header, err := e.resolveHeader(fieldName, annotations)
	if err != nil {
		return pendingContainer{}, err
	}
	return pendingContainer{typ: typ, qualifier: qualifier, header: header}, nil
}

// push opens a prepared container.
func (e *engine) push(pending pendingContainer) {
	e.stack = append(e.stack, newContainerHasher(pending.typ, pending.qualifier, e.acquire(), pending.header))
	e.current = nil
}

// stepOut closes the innermost container. Its digest becomes current
// and is folded into the parent.
func (e *engine) stepOut() error {
	if len(e.stack) == 0 {
		return fmt.Errorf("%w: step out with no open container", ErrInvalidTraversalState)
	}
	top := e.stack[len(e.stack)-1]
	e.stack[len(e.stack)-1] = nil
	e.stack = e.stack[:len(e.stack)-1]

	valueDigest := top.finish()
	e.spare = append(e.spare, top.main)
	e.complete(pendingValue{digest: valueDigest, header: top.header})
	return nil
}

func (e *engine) suspend() error {
	if len(e.stack) != 0 {
		return fmt.Errorf("%w: suspend at depth %d", ErrInvalidTraversalState, len(e.stack))
	}
	e.state = stateSuspended
	e.current = nil
	e.logger.Debug("ionhash engine suspended")
	return nil
}

func (e *engine) resume() error {
	if len(e.stack) != 0 {
		return fmt.Errorf("%w: resume at depth %d", ErrInvalidTraversalState, len(e.stack))
	}
	e.state = stateActive
	e.current = nil
	e.logger.Debug("ionhash engine resumed")
	return nil
}

func (e *engine) acquire() IonHasher {
	if n := len(e.spare); n > 0 {
		primitive := e.spare[n-1]
		e.spare = e.spare[:n-1]
		return primitive
	}
	return e.provider.NewHasher()
}

// complete wraps a value digest in its annotations, records it as
// current, and folds it, with its field name, into the parent.
func (e *engine) complete(pending pendingValue) {
	annotated := annotate(e.wrapPrimitive, pending.digest, pending.header.annotations)
	e.current = annotated
	if len(e.stack) > 0 {
		e.stack[len(e.stack)-1].add(qualify(e.wrapPrimitive, annotated, pending.header.fieldName))
	}
}

func (e *engine) resolveHeader(fieldName *ion.SymbolToken, annotations []ion.SymbolToken) (valueHeader, error) {
	var header valueHeader
	if fieldName != nil && e.inStruct() {
		digest, err := e.symbolDigest(*fieldName)
		if err != nil {
			return valueHeader{}, fmt.Errorf("field name: %w", err)
		}
		header.fieldName = digest
	}
	if len(annotations) > 0 {
		header.annotations = make([][]byte, len(annotations))
		for index, annotation := range annotations {
			digest, err := e.symbolDigest(annotation)
			if err != nil {
				return valueHeader{}, fmt.Errorf("annotation %d: %w", index, err)
			}
			header.annotations[index] = digest
		}
	}
	return header, nil
}

func (e *engine) valueDigest(v *ion.Value) ([]byte, error) {
	if v.Type == ion.SymbolType && !v.Null {
		return e.symbolDigest(v.Symbol)
	}
	key, cacheable := cacheKeyFor(v)
	if cacheable {
		if digest, ok := e.cache.get(key); ok {
			return digest, nil
		}
	}
	qualifier, representation, err := e.parts.scalarParts(v)
	if err != nil {
		return nil, err
	}
	digest := hashParts(e.scalarPrimitive, qualifier, representation)
	if cacheable {
		e.cache.put(key, digest)
	}
	return digest, nil
}

// symbolDigest is the value digest of a symbol, used for symbol
// values, field names, and annotations alike.
func (e *engine) symbolDigest(token ion.SymbolToken) ([]byte, error) {
	if token.HasText() {
		if digest, ok := e.cache.get(symbolCacheKey(*token.Text)); ok {
			return digest, nil
		}
	}
	qualifier, representation, err := e.parts.symbolParts(token)
	if err != nil {
		return nil, err
	}
	digest := hashParts(e.symbolPrimitive, qualifier, representation)
	if token.HasText() {
		e.cache.put(symbolCacheKey(*token.Text), digest)
	}
	return digest, nil
}
