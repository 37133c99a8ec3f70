// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ionhash

import (
	"bytes"
	"slices"

	"github.com/bureau-foundation/ionhash/lib/ion"
)

// valueHeader is what wraps a value digest: the symbol digests of the
// value's annotations and, inside a struct, of its field name.
type valueHeader struct {
	fieldName   []byte
	annotations [][]byte
}

// containerHasher accumulates the digest of one open container. List
// and sexp members are hashed as they arrive; struct members are held
// and hashed in CompareDigests order when the struct closes.
type containerHasher struct {
	typ     ion.Type
	main    IonHasher
	header  valueHeader
	members [][]byte
}

func newContainerHasher(typ ion.Type, qualifier byte, main IonHasher, header valueHeader) *containerHasher {
	writeSegment(main, []byte{qualifier})
	return &containerHasher{typ: typ, main: main, header: header}
}

// add folds a member's final digest into the container.
func (c *containerHasher) add(digest []byte) {
	if c.typ == ion.StructType {
		c.members = append(c.members, digest)
		return
	}
	writeSegment(c.main, digest)
}

// finish returns the container's value digest and resets its primitive.
func (c *containerHasher) finish() []byte {
	if c.typ == ion.StructType {
		slices.SortFunc(c.members, CompareDigests)
		for _, member := range c.members {
			writeSegment(c.main, member)
		}
		c.members = nil
	}
	writeEnd(c.main)
	return bytes.Clone(c.main.Digest())
}

// Digests from an IonHasher may share the primitive's buffer, so every
// digest the engine keeps is cloned first.

// hashParts returns the digest of a scalar's (qualifier,
// representation) pair. An empty representation contributes no
// segment.
func hashParts(h IonHasher, qualifier byte, representation []byte) []byte {
	writeSegment(h, []byte{qualifier})
	if len(representation) > 0 {
		writeSegment(h, representation)
	}
	writeEnd(h)
	return bytes.Clone(h.Digest())
}

// annotate wraps a value digest in its annotations. Without
// annotations the value digest is returned unchanged.
func annotate(h IonHasher, valueDigest []byte, annotations [][]byte) []byte {
	if len(annotations) == 0 {
		return valueDigest
	}
	writeSegment(h, []byte{tqAnnotatedValue})
	for _, annotation := range annotations {
		writeSegment(h, annotation)
	}
	writeSegment(h, valueDigest)
	writeEnd(h)
	return bytes.Clone(h.Digest())
}

// qualify wraps an annotated digest in a field name, if there is one.
func qualify(h IonHasher, annotatedDigest []byte, fieldName []byte) []byte {
	if fieldName == nil {
		return annotatedDigest
	}
	writeSegment(h, fieldName)
	writeSegment(h, annotatedDigest)
	writeEnd(h)
	return bytes.Clone(h.Digest())
}
