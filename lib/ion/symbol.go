// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ion

import "fmt"

// SymbolIDUnknown is the LocalSID of a token that carries only text.
const SymbolIDUnknown int64 = -1

// SymbolToken is a symbol as it appears in a stream: resolved text, a
// local symbol ID, or both. A token with no text and a SID other than
// zero is unresolved; hashing it fails.
type SymbolToken struct {
	// Text is the symbol text, or nil when the text is unknown.
	Text *string

	// LocalSID is the symbol ID in the local symbol table, or
	// SymbolIDUnknown when the token was created from text alone.
	LocalSID int64
}

// SymbolIDZero is the token for $0, the reserved symbol with no text.
var SymbolIDZero = SymbolToken{LocalSID: 0}

// NewSymbolToken returns a token carrying text.
func NewSymbolToken(text string) SymbolToken {
	return SymbolToken{Text: &text, LocalSID: SymbolIDUnknown}
}

// NewSymbolTokenSID returns a token with a local symbol ID and no text.
func NewSymbolTokenSID(sid int64) SymbolToken {
	return SymbolToken{LocalSID: sid}
}

// NewSymbolTokens converts each string to a text-bearing token.
func NewSymbolTokens(texts ...string) []SymbolToken {
	if len(texts) == 0 {
		return nil
	}
	tokens := make([]SymbolToken, len(texts))
	for i, text := range texts {
		tokens[i] = NewSymbolToken(text)
	}
	return tokens
}

// HasText reports whether the token's text is known.
func (t SymbolToken) HasText() bool {
	return t.Text != nil
}

// Equal reports whether two tokens denote the same symbol. Tokens with
// text compare by text; tokens without text compare by SID.
func (t SymbolToken) Equal(other SymbolToken) bool {
	if t.Text != nil || other.Text != nil {
		return t.Text != nil && other.Text != nil && *t.Text == *other.Text
	}
	return t.LocalSID == other.LocalSID
}

// String returns the text, or "$<sid>" when the text is unknown.
func (t SymbolToken) String() string {
	if t.Text != nil {
		return *t.Text
	}
	return fmt.Sprintf("$%d", t.LocalSID)
}

// cloneTokens copies a token slice so later mutation by the caller
// does not leak into a value tree.
func cloneTokens(tokens []SymbolToken) []SymbolToken {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]SymbolToken, len(tokens))
	copy(out, tokens)
	return out
}
