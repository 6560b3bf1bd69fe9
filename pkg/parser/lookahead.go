package parser

import (
	"strings"

	"github.com/leapstack-labs/sqltree/pkg/token"
)

// maxPhraseWords bounds how far a keyword phrase is extended.
const maxPhraseWords = 4

// phrase is up to maxPhraseWords consecutive words read ahead from a word
// token, stepping over whitespace and comments. Index n of each slice
// describes the phrase made of the first n+1 words.
type phrase struct {
	// words holds each component uppercased, for matching.
	words []string
	// raw holds each component's original text, prefixed with the whitespace
	// skipped before it, so that raw[0]+...+raw[n] reproduces the compound.
	raw []string
	// counts holds how many tokens the first n+1 components span.
	counts []int
	// overflow holds the comments skipped after component n.
	overflow [][]token.Token
}

// readPhrase scans the phrase starting at tokens[start].
func readPhrase(tokens []token.Token, start int) phrase {
	var ph phrase
	pendingSpace := ""
	i := start

	for i < len(tokens) && len(ph.words) < maxPhraseWords {
		t := tokens[i]
		if !t.IsWordLike() {
			break
		}

		ph.words = append(ph.words, strings.ToUpper(t.Text))
		ph.raw = append(ph.raw, pendingSpace+t.Text)
		i++
		ph.counts = append(ph.counts, i-start)

		var comments []token.Token
		pendingSpace = ""
		for i < len(tokens) && token.IsTrivia(tokens[i].Kind) {
			if tokens[i].Is(token.WHITESPACE) {
				pendingSpace += tokens[i].Text
			} else {
				comments = append(comments, tokens[i])
			}
			i++
		}
		ph.overflow = append(ph.overflow, comments)
	}

	return ph
}

// startsWith reports whether the phrase begins with the given words.
func (ph phrase) startsWith(words ...string) bool {
	if len(words) > len(ph.words) {
		return false
	}
	for i, w := range words {
		if ph.words[i] != w {
			return false
		}
	}
	return true
}

// word returns the n-th uppercased component, or "" past the end.
func (ph phrase) word(n int) string {
	if n < len(ph.words) {
		return ph.words[n]
	}
	return ""
}

// compound returns the original text of the first n components.
func (ph phrase) compound(n int) string {
	return strings.Join(ph.raw[:n], "")
}

// tokenCount returns how many tokens the first n components span.
func (ph phrase) tokenCount(n int) int {
	return ph.counts[n-1]
}

// skippedComments returns the comments stepped over inside the first n components.
func (ph phrase) skippedComments(n int) []token.Token {
	var out []token.Token
	for i := 0; i < n-1; i++ {
		out = append(out, ph.overflow[i]...)
	}
	return out
}

func (ph phrase) String() string {
	return strings.Join(ph.words, " ")
}
