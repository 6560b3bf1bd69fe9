package testutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/sqltree/pkg/token"
)

// Lex splits T-SQL text into a token stream covering every byte of the
// input. It is deliberately small: enough to drive parser tests from
// readable SQL rather than hand-built token slices. Unterminated strings,
// quoted identifiers and block comments run to the end of input and set
// ErrorFound on the stream.
func Lex(sql string) token.Stream {
	l := &lexer{src: sql}
	for l.pos < len(l.src) {
		l.next()
	}
	return token.Stream{Tokens: l.tokens, ErrorFound: l.broken}
}

type lexer struct {
	src    string
	pos    int
	tokens []token.Token
	broken bool
}

func (l *lexer) emit(k token.Kind, end int) {
	l.tokens = append(l.tokens, token.New(k, l.src[l.pos:end]))
	l.pos = end
}

func (l *lexer) peek(off int) byte {
	if l.pos+off < len(l.src) {
		return l.src[l.pos+off]
	}
	return 0
}

func (l *lexer) next() {
	c := l.src[l.pos]
	switch {
	case isSpace(c):
		end := l.pos
		for end < len(l.src) && isSpace(l.src[end]) {
			end++
		}
		l.emit(token.WHITESPACE, end)

	case c == '-' && l.peek(1) == '-':
		end := strings.IndexAny(l.src[l.pos:], "\r\n")
		if end < 0 {
			end = len(l.src)
		} else {
			end += l.pos
		}
		l.emit(token.LINE_COMMENT, end)

	case c == '/' && l.peek(1) == '*':
		end := strings.Index(l.src[l.pos+2:], "*/")
		if end < 0 {
			l.broken = true
			l.emit(token.BLOCK_COMMENT, len(l.src))
			return
		}
		l.emit(token.BLOCK_COMMENT, l.pos+2+end+2)

	case (c == 'N' || c == 'n') && l.peek(1) == '\'':
		l.emit(token.NSTRING, l.quoted(l.pos+1, '\''))

	case c == '\'':
		l.emit(token.STRING, l.quoted(l.pos, '\''))

	case c == '"':
		l.emit(token.QUOTED_IDENT, l.quoted(l.pos, '"'))

	case c == '[':
		l.emit(token.QUOTED_IDENT, l.quoted(l.pos, ']'))

	case c == '(':
		l.emit(token.LPAREN, l.pos+1)
	case c == ')':
		l.emit(token.RPAREN, l.pos+1)
	case c == ';':
		l.emit(token.SEMICOLON, l.pos+1)
	case c == ',':
		l.emit(token.COMMA, l.pos+1)
	case c == '.':
		l.emit(token.DOT, l.pos+1)
	case c == '*':
		l.emit(token.STAR, l.pos+1)

	case strings.IndexByte("=<>!+-/%&|^~", c) >= 0:
		end := l.pos + 1
		for end < len(l.src) && strings.IndexByte("=<>!", l.src[end]) >= 0 {
			end++
		}
		l.emit(token.OPERATOR, end)

	default:
		end := l.pos
		for end < len(l.src) {
			r, size := utf8.DecodeRuneInString(l.src[end:])
			if !isWordRune(r) {
				break
			}
			end += size
		}
		if end == l.pos {
			// anything else stands alone
			_, size := utf8.DecodeRuneInString(l.src[l.pos:])
			end += size
		}
		l.emit(token.WORD, end)
	}
}

// quoted returns the end offset of a quoted run opening at start, where a
// doubled closing character escapes itself.
func (l *lexer) quoted(start int, closing byte) int {
	for i := start + 1; i < len(l.src); i++ {
		if l.src[i] != closing {
			continue
		}
		if i+1 < len(l.src) && l.src[i+1] == closing {
			i++
			continue
		}
		return i + 1
	}
	l.broken = true
	return len(l.src)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isWordRune(r rune) bool {
	return r == '_' || r == '@' || r == '#' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
