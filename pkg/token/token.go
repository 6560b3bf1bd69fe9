// Package token defines the lexical input of the tree builder.
//
// A tokenizer produces an ordered Stream of tokens that covers the whole
// source text, whitespace and comments included. The tree builder only
// inspects each token's Kind and raw Text.
package token

import (
	"fmt"
	"strings"
)

// Kind represents the kind of a lexical token.
type Kind int32

//nolint:revive // ALL_CAPS names follow the SQL token conventions used across the codebase
const (
	// ILLEGAL is the zero value; a stream containing it violates the tokenizer contract.
	ILLEGAL Kind = iota

	// Structural
	LPAREN    // (
	RPAREN    // )
	SEMICOLON // ;

	// Words and names
	WORD         // keyword, identifier, number or any other bare word
	QUOTED_IDENT // [name] or "name"

	// Trivia
	WHITESPACE
	LINE_COMMENT  // -- comment
	BLOCK_COMMENT // /* comment */

	// Punctuation and literals
	STAR     // *
	COMMA    // ,
	DOT      // .
	STRING   // 'hello'
	NSTRING  // N'hello'
	OPERATOR // any other operator: =, <>, +, ...

	maxKind
)

// kindNames maps kinds to their canonical document names.
var kindNames = map[Kind]string{
	ILLEGAL:       "ILLEGAL",
	LPAREN:        "LPAREN",
	RPAREN:        "RPAREN",
	SEMICOLON:     "SEMICOLON",
	WORD:          "WORD",
	QUOTED_IDENT:  "QUOTED_IDENT",
	WHITESPACE:    "WHITESPACE",
	LINE_COMMENT:  "LINE_COMMENT",
	BLOCK_COMMENT: "BLOCK_COMMENT",
	STAR:          "STAR",
	COMMA:         "COMMA",
	DOT:           "DOT",
	STRING:        "STRING",
	NSTRING:       "NSTRING",
	OPERATOR:      "OPERATOR",
}

// kindDescriptions is used by tooling that lists the accepted kinds.
var kindDescriptions = map[Kind]string{
	LPAREN:        "open parenthesis",
	RPAREN:        "close parenthesis",
	SEMICOLON:     "statement terminator",
	WORD:          "keyword, identifier, number or other bare word",
	QUOTED_IDENT:  "bracketed or double-quoted identifier",
	WHITESPACE:    "spaces, tabs and line breaks",
	LINE_COMMENT:  "comment running to end of line",
	BLOCK_COMMENT: "delimited comment, may span lines",
	STAR:          "asterisk",
	COMMA:         "comma",
	DOT:           "period",
	STRING:        "string literal",
	NSTRING:       "national (unicode) string literal",
	OPERATOR:      "any other operator",
}

// String returns the canonical name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", k)
}

// Description returns a short human-readable description of the kind.
func (k Kind) Description() string {
	return kindDescriptions[k]
}

// IsValid returns true if k is one of the kinds a tokenizer may emit.
func (k Kind) IsValid() bool {
	return k > ILLEGAL && k < maxKind
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("cannot marshal token kind %s", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Canonical names are matched case-insensitively, then registered aliases.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, ok := LookupKind(string(text))
	if !ok {
		return fmt.Errorf("unknown token kind %q", string(text))
	}
	*k = kind
	return nil
}

// LookupKind resolves a kind by canonical name or registered alias.
func LookupKind(name string) (Kind, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for k, n := range kindNames {
		if k != ILLEGAL && n == upper {
			return k, true
		}
	}
	return lookupAlias(name)
}

// Kinds returns all valid kinds in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, int(maxKind)-1)
	for k := ILLEGAL + 1; k < maxKind; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Token is a single lexical token.
type Token struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`
}

// New returns a token of the given kind and text.
func New(k Kind, text string) Token {
	return Token{Kind: k, Text: text}
}

// Is reports whether the token has the given kind.
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}

// IsWordLike reports whether the token can take part in a keyword phrase.
func (t Token) IsWordLike() bool {
	return t.Kind == WORD || t.Kind == QUOTED_IDENT
}

// Stream is the complete tokenizer output for one source text.
type Stream struct {
	Tokens []Token `json:"tokens" yaml:"tokens"`

	// ErrorFound is set when the tokenizer already detected a lexical problem.
	ErrorFound bool `json:"errorFound,omitempty" yaml:"errorFound,omitempty"`
}

// Text concatenates the raw text of every token.
func (s Stream) Text() string {
	var sb strings.Builder
	for _, t := range s.Tokens {
		sb.WriteString(t.Text)
	}
	return sb.String()
}
