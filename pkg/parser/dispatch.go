package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqltree/pkg/sqltree"
)

// word dispatches a word token, reading ahead to recognize multi-word
// keywords. It returns the new cursor and the number of tokens consumed.
func (p *parser) word(cur sqltree.NodeID, i int) (sqltree.NodeID, int) {
	tok := p.tokens[i]
	ph := readPhrase(p.tokens, i)
	used := 1

	switch {
	case ph.startsWith("CREATE"), ph.startsWith("ALTER"), ph.startsWith("DECLARE"):
		cur = p.considerNewStatement(cur)
		cur = p.b.Append(cur, sqltree.DdlBlock, "")
		p.b.Append(cur, sqltree.Word, tok.Text)

	case ph.startsWith("AS") && p.b.Tag(cur) == sqltree.DdlBlock:
		body := p.b.Append(cur, sqltree.DdlAsBlock, tok.Text)
		cur = p.startNewStatement(body)

	case ph.startsWith("BEGIN", "TRANSACTION"):
		used = 2
		cur = p.considerNewStatement(cur)
		p.b.Append(cur, sqltree.BeginTransaction, ph.compound(used))

	case ph.startsWith("COMMIT", "TRANSACTION"):
		used = 2
		cur = p.considerNewStatement(cur)
		p.b.Append(cur, sqltree.CommitTransaction, ph.compound(used))

	case ph.startsWith("ROLLBACK", "TRANSACTION"):
		used = 2
		cur = p.considerNewStatement(cur)
		p.b.Append(cur, sqltree.RollbackTransaction, ph.compound(used))

	case ph.startsWith("BEGIN", "TRY"), ph.startsWith("BEGIN", "CATCH"):
		used = 2
		tag := sqltree.TryBlock
		if ph.word(1) == "CATCH" {
			tag = sqltree.CatchBlock
		}
		cur = p.considerNewStatement(cur)
		block := p.b.Append(cur, tag, ph.compound(used))
		cur = p.startNewStatement(block)

	case ph.startsWith("BEGIN"):
		cur = p.considerNewStatement(cur)
		block := p.b.Append(cur, sqltree.BeginEndBlock, tok.Text)
		cur = p.startNewStatement(block)

	case ph.startsWith("CASE"):
		c := p.b.Append(cur, sqltree.CaseStatement, tok.Text)
		cur = p.b.Append(c, sqltree.CaseInput, "")

	case ph.startsWith("WHEN"):
		cur = p.when(cur, i)

	case ph.startsWith("THEN"):
		if p.b.Tag(cur) == sqltree.CaseWhen {
			cur = p.b.Append(cur, sqltree.CaseThen, tok.Text)
		} else {
			p.appendAnomaly(cur, i, tok.Text, reasonThenWithoutWhen)
		}

	case ph.startsWith("END", "TRY"), ph.startsWith("END", "CATCH"):
		used = 2
		want := scopeTry
		if ph.word(1) == "CATCH" {
			want = scopeCatch
		}
		cur = p.closeBlock(cur, i, want, ph.compound(used))

	case ph.startsWith("END"):
		cur = p.end(cur, i)

	case ph.startsWith("GO"):
		cur = p.batchSeparator(cur, i)

	case ph.startsWith("JOIN"):
		cur = p.considerNewClause(cur)
		p.b.Append(cur, sqltree.Word, tok.Text)

	case ph.startsWith("LEFT", "JOIN"),
		ph.startsWith("RIGHT", "JOIN"),
		ph.startsWith("INNER", "JOIN"),
		ph.startsWith("CROSS", "JOIN"),
		ph.startsWith("CROSS", "APPLY"),
		ph.startsWith("OUTER", "APPLY"):
		used = 2
		cur = p.considerNewClause(cur)
		p.b.Append(cur, sqltree.Word, ph.compound(used))

	case ph.startsWith("FULL", "OUTER", "JOIN"),
		ph.startsWith("LEFT", "OUTER", "JOIN"),
		ph.startsWith("RIGHT", "OUTER", "JOIN"):
		used = 3
		cur = p.considerNewClause(cur)
		p.b.Append(cur, sqltree.Word, ph.compound(used))

	case ph.startsWith("UNION", "ALL"):
		used = 2
		cur = p.union(cur, ph.compound(used))

	case ph.startsWith("UNION"):
		cur = p.union(cur, tok.Text)

	case ph.startsWith("WHILE"):
		cur = p.considerNewStatement(cur)
		loop := p.b.Append(cur, sqltree.WhileLoop, tok.Text)
		cur = p.b.Append(loop, sqltree.BooleanExpression, "")

	case ph.startsWith("IF"):
		cur = p.considerNewStatement(cur)
		stmt := p.b.Append(cur, sqltree.IfStatement, tok.Text)
		cur = p.b.Append(stmt, sqltree.BooleanExpression, "")

	case ph.startsWith("ELSE"):
		cur = p.elseKeyword(cur, i)

	case ph.startsWith("INSERT", "INTO"):
		used = 2
		cur = p.considerNewStatement(cur)
		cur = p.considerNewClause(cur)
		p.b.Append(cur, sqltree.Word, ph.compound(used))

	case ph.startsWith("INSERT"):
		cur = p.considerNewStatement(cur)
		cur = p.considerNewClause(cur)
		p.b.Append(cur, sqltree.Word, tok.Text)

	case ph.startsWith("SELECT"):
		if !p.startsWithInsert(cur) {
			cur = p.considerNewStatement(cur)
		}
		cur = p.considerNewClause(cur)
		p.b.Append(cur, sqltree.Word, tok.Text)

	case ph.startsWith("AND"):
		p.b.Append(cur, sqltree.AndOperator, tok.Text)

	case ph.startsWith("OR"):
		p.b.Append(cur, sqltree.OrOperator, tok.Text)

	default:
		if IsStatementStarter(tok.Text) {
			cur = p.considerNewStatement(cur)
		}
		if IsClauseStarter(tok.Text) {
			cur = p.considerNewClause(cur)
		}
		p.b.Append(cur, sqltree.Word, tok.Text)
	}

	if used > 1 {
		p.absorbSkippedComments(cur, i, ph, used)
	}
	return cur, ph.tokenCount(used)
}

// absorbSkippedComments appends the comments found between the words of a
// compound keyword after it. Their reading position is lost.
func (p *parser) absorbSkippedComments(cur sqltree.NodeID, i int, ph phrase, used int) {
	comments := ph.skippedComments(used)
	if len(comments) == 0 {
		return
	}
	for _, c := range comments {
		p.b.Append(cur, leafTag(c.Kind), c.Text)
	}
	p.b.DataLossPossible = true
	p.logger.Debug("comments moved out of compound keyword",
		"keyword", strings.Join(ph.words[:used], " "),
		"token", i,
		"line", p.position(i).Line,
		"comments", len(comments),
	)
}

// when opens a CASE branch, either the first (from the CASE input) or a
// following one (after the previous branch's THEN).
func (p *parser) when(cur sqltree.NodeID, i int) sqltree.NodeID {
	text := p.tokens[i].Text
	switch p.b.Tag(cur) {
	case sqltree.CaseInput:
		return p.b.Append(p.b.Parent(cur), sqltree.CaseWhen, text)
	case sqltree.CaseThen:
		return p.b.Append(p.b.Ancestor(cur, 2), sqltree.CaseWhen, text)
	}
	p.appendAnomaly(cur, i, text, reasonWhenOutsideCase)
	return cur
}

// end closes a CASE expression or a BEGIN ... END block.
func (p *parser) end(cur sqltree.NodeID, i int) sqltree.NodeID {
	text := p.tokens[i].Text

	switch p.b.Tag(cur) {
	case sqltree.CaseThen:
		c := p.b.Ancestor(cur, 2)
		p.b.SetCloseText(c, text)
		return p.b.Parent(c)
	case sqltree.CaseElse:
		c := p.b.Parent(cur)
		p.b.SetCloseText(c, text)
		return p.b.Parent(c)
	}

	return p.closeBlock(cur, i, scopeBeginEnd, text)
}

// closeBlock ends the BEGIN/END, TRY or CATCH block holding the cursor's
// statement, recording keyword as the block's closing text.
func (p *parser) closeBlock(cur sqltree.NodeID, i int, want scope, keyword string) sqltree.NodeID {
	cur = p.escapeSingleStatementContainers(cur)

	s, block := p.clauseScope(cur)
	if s != want {
		p.appendAnomaly(cur, i, keyword, fmt.Sprintf(reasonUnmatchedEnd, strings.ToUpper(keyword)))
		return cur
	}
	p.b.SetCloseText(block, keyword)
	return p.b.Parent(block)
}

// batchSeparator handles GO. It only separates batches when it stands on a
// line of its own, and only between top-level statements.
func (p *parser) batchSeparator(cur sqltree.NodeID, i int) sqltree.NodeID {
	cur = p.escapeSingleStatementContainers(cur)
	text := p.tokens[i].Text

	if !p.onOwnLine(i) {
		p.b.Append(cur, sqltree.Word, text)
		return cur
	}

	if !p.isTerminal(cur) {
		p.appendAnomaly(cur, i, text, reasonMisplacedBatch)
		return cur
	}

	root := p.b.Root()
	p.b.Append(root, sqltree.BatchSeparator, text)
	return p.startNewStatement(root)
}

// onOwnLine reports whether token i is flanked by line-breaking whitespace
// or the ends of the stream.
func (p *parser) onOwnLine(i int) bool {
	if i > 0 && !p.tokens[i-1].IsLineBreakingWhitespace() {
		return false
	}
	if i+1 < len(p.tokens) && !p.tokens[i+1].IsLineBreakingWhitespace() {
		return false
	}
	return true
}

// union records UNION [ALL] as a marker in its own clause, then returns to
// the clause's container so the next SELECT opens a fresh clause.
func (p *parser) union(cur sqltree.NodeID, text string) sqltree.NodeID {
	cur = p.considerNewClause(cur)
	p.b.Append(cur, sqltree.UnionClause, text)
	return p.b.Parent(cur)
}

// elseKeyword opens a CASE ELSE branch or attaches an ELSE to the nearest
// IF that does not have one yet.
func (p *parser) elseKeyword(cur sqltree.NodeID, i int) sqltree.NodeID {
	text := p.tokens[i].Text

	if p.b.Tag(cur) == sqltree.CaseThen {
		return p.b.Append(p.b.Ancestor(cur, 2), sqltree.CaseElse, text)
	}

	target := sqltree.None
	switch s, holder := p.clauseScope(cur); s {
	case scopeIf:
		// still in the statement of the innermost IF
		target = holder
	case scopeElse:
		// the innermost IF is complete; look further out
		target = p.ifAwaitingElse(p.b.Parent(holder))
	}

	if target == sqltree.None {
		p.appendAnomaly(cur, i, text, reasonElseWithoutIf)
		return cur
	}

	clause := p.b.Append(target, sqltree.ElseClause, text)
	return p.startNewStatement(clause)
}

// ifAwaitingElse climbs from a construct through enclosing WHILE loops and
// completed IF/ELSE pairs to the nearest IF without an ELSE.
func (p *parser) ifAwaitingElse(n sqltree.NodeID) sqltree.NodeID {
	for n != sqltree.None {
		complete := p.b.Tag(n) == sqltree.WhileLoop || p.b.HasChildWithTag(n, sqltree.ElseClause)
		if !complete {
			return n
		}

		// n sits in a clause of a statement; see what holds that statement
		switch s, holder := p.statementScope(p.b.Ancestor(n, 2)); s {
		case scopeIf, scopeWhile:
			n = holder
		case scopeElse:
			n = p.b.Parent(holder)
		default:
			n = sqltree.None
		}
	}
	return sqltree.None
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
