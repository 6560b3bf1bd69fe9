package token

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKind(t *testing.T) {
	tests := []struct {
		name   string
		want   Kind
		wantOK bool
	}{
		{"WORD", WORD, true},
		{"word", WORD, true},
		{" line_comment ", LINE_COMMENT, true},
		{"NSTRING", NSTRING, true},
		{"ILLEGAL", ILLEGAL, false},
		{"nonsense", ILLEGAL, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupKind(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	require.Len(t, kinds, 14)
	assert.Equal(t, LPAREN, kinds[0])
	assert.Equal(t, OPERATOR, kinds[len(kinds)-1])
	for _, k := range kinds {
		assert.True(t, k.IsValid())
		assert.NotEmpty(t, k.Description(), "kind %s needs a description", k)
	}
	assert.False(t, ILLEGAL.IsValid())
	assert.Equal(t, "KIND(99)", Kind(99).String())
}

func TestStreamJSON(t *testing.T) {
	input := `{"errorFound":true,"tokens":[{"kind":"WORD","text":"SELECT"},{"kind":"whitespace","text":" "},{"kind":"WORD","text":"1"}]}`

	var s Stream
	require.NoError(t, json.Unmarshal([]byte(input), &s))
	assert.True(t, s.ErrorFound)
	require.Len(t, s.Tokens, 3)
	assert.Equal(t, WHITESPACE, s.Tokens[1].Kind)
	assert.Equal(t, "SELECT 1", s.Text())

	out, err := json.Marshal(s.Tokens[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"WORD","text":"SELECT"}`, string(out))

	err = json.Unmarshal([]byte(`{"tokens":[{"kind":"BANANA","text":"x"}]}`), &s)
	assert.Error(t, err)
}

func TestTriviaPredicates(t *testing.T) {
	assert.True(t, IsComment(LINE_COMMENT))
	assert.True(t, IsComment(BLOCK_COMMENT))
	assert.False(t, IsComment(WHITESPACE))
	assert.True(t, IsTrivia(WHITESPACE))
	assert.False(t, IsTrivia(WORD))

	assert.True(t, New(WHITESPACE, " \r\n").IsLineBreakingWhitespace())
	assert.False(t, New(WHITESPACE, "  ").IsLineBreakingWhitespace())
	assert.False(t, New(BLOCK_COMMENT, "/*\n*/").IsLineBreakingWhitespace())

	assert.True(t, New(WORD, "x").Is(WORD))
	assert.False(t, New(WORD, "x").Is(QUOTED_IDENT))
	assert.True(t, New(QUOTED_IDENT, "[x]").IsWordLike())
	assert.False(t, New(STRING, "'x'").IsWordLike())
}

func TestPositions(t *testing.T) {
	s := Stream{Tokens: []Token{
		New(WORD, "SELECT"),
		New(WHITESPACE, "\r\n  "),
		New(WORD, "a"),
		New(WHITESPACE, "\n"),
		New(WORD, "FROM"),
	}}

	pos := s.Positions()
	require.Len(t, pos, 5)
	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, pos[0])
	assert.Equal(t, Position{Line: 1, Column: 7, Offset: 6}, pos[1])
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 10}, pos[2])
	assert.Equal(t, Position{Line: 3, Column: 1, Offset: 12}, pos[4])
	assert.True(t, pos[4].IsValid())
	assert.False(t, Position{}.IsValid())
}
