package token

import "strings"

// IsComment returns true for line and block comments.
func IsComment(k Kind) bool {
	return k == LINE_COMMENT || k == BLOCK_COMMENT
}

// IsTrivia returns true for whitespace and comments.
func IsTrivia(k Kind) bool {
	return k == WHITESPACE || IsComment(k)
}

// HasLineBreak reports whether text contains a carriage return or line feed.
func HasLineBreak(text string) bool {
	return strings.ContainsAny(text, "\r\n")
}

// IsLineBreakingWhitespace reports whether the token is whitespace spanning a line break.
func (t Token) IsLineBreakingWhitespace() bool {
	return t.Is(WHITESPACE) && HasLineBreak(t.Text)
}
