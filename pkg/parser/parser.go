// Package parser builds a sqltree.Tree from a T-SQL token stream.
//
// # Usage
//
//	tree, err := parser.Parse(stream, parser.WithLogger(logger))
//	if err != nil {
//	    // the stream held a token kind no tokenizer may emit
//	}
//	if tree.ErrorFound {
//	    // best-effort tree: structure may not match intent
//	}
//
// # Shape
//
// The tree groups tokens into statements and clauses, parentheses, CASE
// expressions and control-flow blocks:
//
//	Root
//	  Statement
//	    Clause          SELECT a, b
//	    Clause          FROM t
//	  Statement
//	    Clause
//	      IfStatement   IF
//	        BooleanExpression
//	        Statement   (the one statement of the IF)
//	        ElseClause  ELSE
//	          Statement
//
// Building is a single left-to-right pass that never fails on odd input:
// anomalies are recorded in Tree.ErrorFound and the offending token is kept
// in place. Only a token kind outside the tokenizer contract is an error.
package parser

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqltree/pkg/sqltree"
	"github.com/leapstack-labs/sqltree/pkg/token"
)

// Option configures a parse.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to report anomalies at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// parser holds the state of one pass. The cursor is not stored here: every
// step receives it and returns the next one.
type parser struct {
	b         *sqltree.Builder
	tokens    []token.Token
	positions []token.Position
	stream    token.Stream
	logger    *slog.Logger
}

// Parse builds the tree for a token stream. The stream's ErrorFound flag
// carries over into the tree.
func Parse(stream token.Stream, opts ...Option) (*sqltree.Tree, error) {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	p := &parser{
		b:      sqltree.NewBuilder(),
		tokens: stream.Tokens,
		stream: stream,
		logger: o.logger,
	}
	p.b.ErrorFound = stream.ErrorFound

	cur := p.startNewStatement(p.b.Root())
	for i := 0; i < len(p.tokens); {
		next, consumed, err := p.step(cur, i)
		if err != nil {
			return nil, err
		}
		cur = next
		i += consumed
	}

	cur = p.escapeSingleStatementContainers(cur)
	if !p.isTerminal(cur) {
		p.anomaly(len(p.tokens)-1, fmt.Sprintf(reasonUnclosedAtEnd, p.describe(cur)))
	}

	tree := p.b.Finish()
	p.logger.Debug("parsed token stream",
		"tokens", len(p.tokens),
		"nodes", tree.Len(),
		"statements", tree.Count(sqltree.Statement),
		"error_found", tree.ErrorFound,
		"data_loss_possible", tree.DataLossPossible,
	)
	return tree, nil
}

// step consumes the token at i (and any keyword continuation) and returns
// the new cursor and the number of tokens consumed.
func (p *parser) step(cur sqltree.NodeID, i int) (sqltree.NodeID, int, error) {
	tok := p.tokens[i]

	switch tok.Kind {
	case token.LPAREN:
		return p.openParens(cur, tok.Text), 1, nil

	case token.RPAREN:
		return p.closeParens(cur, i), 1, nil

	case token.WORD:
		next, consumed := p.word(cur, i)
		return next, consumed, nil

	case token.SEMICOLON:
		p.b.Append(cur, sqltree.Semicolon, tok.Text)
		return p.considerNewStatement(cur), 1, nil

	case token.WHITESPACE, token.LINE_COMMENT, token.BLOCK_COMMENT:
		p.trivia(cur, tok)
		return cur, 1, nil

	case token.QUOTED_IDENT, token.STAR, token.COMMA, token.DOT,
		token.NSTRING, token.OPERATOR, token.STRING:
		p.b.Append(cur, leafTag(tok.Kind), tok.Text)
		return cur, 1, nil
	}

	return cur, 0, &ContractError{Index: i, Kind: tok.Kind}
}

// leafTag maps a token kind to the tag of the node holding it verbatim.
func leafTag(k token.Kind) sqltree.Tag {
	switch k {
	case token.WORD:
		return sqltree.Word
	case token.QUOTED_IDENT:
		return sqltree.QuotedIdentifier
	case token.WHITESPACE:
		return sqltree.Whitespace
	case token.LINE_COMMENT:
		return sqltree.LineComment
	case token.BLOCK_COMMENT:
		return sqltree.BlockComment
	case token.STAR:
		return sqltree.Asterisk
	case token.COMMA:
		return sqltree.Comma
	case token.DOT:
		return sqltree.Period
	case token.STRING:
		return sqltree.String
	case token.NSTRING:
		return sqltree.NationalString
	case token.OPERATOR:
		return sqltree.Operator
	case token.SEMICOLON:
		return sqltree.Semicolon
	}
	return sqltree.Invalid
}

// trivia places whitespace and comments. Ahead of an empty clause they go
// before the clause, so separators stay outside the clause they precede.
func (p *parser) trivia(cur sqltree.NodeID, tok token.Token) {
	tag := leafTag(tok.Kind)
	if p.b.Tag(cur) == sqltree.Clause &&
		p.b.Tag(p.b.Parent(cur)) == sqltree.Statement &&
		len(p.b.Children(cur)) == 0 {
		p.b.InsertBefore(cur, tag, tok.Text)
		return
	}
	p.b.Append(cur, tag, tok.Text)
}

// openParens pushes the parenthesis container that fits the preceding
// content. The container holds the open paren as its text.
func (p *parser) openParens(cur sqltree.NodeID, text string) sqltree.NodeID {
	var tag sqltree.Tag
	switch {
	case p.latestIsDataTypeDetail(cur):
		tag = sqltree.DdlDetailParens
	case p.b.Tag(cur) == sqltree.DdlBlock || p.startsWithInsert(cur):
		tag = sqltree.DdlParens
	case p.latestIsName(cur):
		tag = sqltree.FunctionParens
	default:
		tag = sqltree.ExpressionParens
	}
	return p.b.Append(cur, tag, text)
}

// closeParens pops the current parenthesis container, recording the close
// paren as its closing text. A sub-select clause directly inside an
// expression parenthesis closes that parenthesis.
func (p *parser) closeParens(cur sqltree.NodeID, i int) sqltree.NodeID {
	text := p.tokens[i].Text
	switch {
	case p.b.Tag(cur).IsParens():
		p.b.SetCloseText(cur, text)
		return p.b.Parent(cur)
	case p.b.Tag(cur) == sqltree.Clause && p.b.Tag(p.b.Parent(cur)) == sqltree.ExpressionParens:
		p.b.SetCloseText(p.b.Parent(cur), text)
		return p.b.Ancestor(cur, 2)
	}
	p.appendAnomaly(cur, i, p.tokens[i].Text, reasonUnexpectedCloseParens)
	return cur
}

// latestIsDataTypeDetail reports whether the last significant child is a
// data type (or DEFAULT/IDENTITY) awaiting its detail parenthesis.
func (p *parser) latestIsDataTypeDetail(cur sqltree.NodeID) bool {
	last := p.lastSignificantChild(cur)
	return p.b.Tag(last) == sqltree.Word && IsDataTypeDetailWord(p.b.Text(last))
}

// latestIsName reports whether the last significant child could name a function.
func (p *parser) latestIsName(cur sqltree.NodeID) bool {
	last := p.lastSignificantChild(cur)
	if last == sqltree.None {
		return false
	}
	return IsNameLike(p.b.Tag(last), p.b.Text(last))
}

// startsWithInsert reports whether the container's first significant child
// is an INSERT keyword (INSERT ... SELECT, INSERT ... (columns)).
func (p *parser) startsWithInsert(cur sqltree.NodeID) bool {
	first := p.firstSignificantChild(cur)
	return p.b.Tag(first) == sqltree.Word && hasPrefixFold(p.b.Text(first), "INSERT")
}

// appendAnomaly inserts text as a plain word and flags the tree.
func (p *parser) appendAnomaly(cur sqltree.NodeID, i int, text, reason string) {
	p.b.Append(cur, sqltree.Word, text)
	p.anomaly(i, reason)
}

// anomaly flags the tree and logs where it happened.
func (p *parser) anomaly(i int, reason string) {
	p.b.ErrorFound = true

	attrs := []any{"reason", reason, "token", i}
	if i >= 0 && i < len(p.tokens) {
		pos := p.position(i)
		attrs = append(attrs, "line", pos.Line, "column", pos.Column, "text", p.tokens[i].Text)
	}
	p.logger.Debug("structural anomaly", attrs...)
}

// position returns the source position of token i, computed on first use.
func (p *parser) position(i int) token.Position {
	if p.positions == nil {
		p.positions = p.stream.Positions()
	}
	return p.positions[i]
}

// describe names the construct around the cursor for log messages.
func (p *parser) describe(cur sqltree.NodeID) string {
	if s, _ := p.clauseScope(cur); s != scopeNone {
		return s.String()
	}
	return p.b.Tag(cur).String()
}
