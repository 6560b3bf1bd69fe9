package parser

import (
	"github.com/leapstack-labs/sqltree/pkg/sqltree"
	"github.com/leapstack-labs/sqltree/pkg/token"
)

// startNewStatement opens a statement with an empty clause in container and
// returns the clause. Recovery shapes may walk past the root; those
// statements land on the root.
func (p *parser) startNewStatement(container sqltree.NodeID) sqltree.NodeID {
	if container == sqltree.None {
		container = p.b.Root()
	}
	stmt := p.b.Append(container, sqltree.Statement, "")
	return p.b.Append(stmt, sqltree.Clause, "")
}

// considerNewStatement opens a new statement unless the current one is
// still empty, and returns the new cursor.
func (p *parser) considerNewStatement(cur sqltree.NodeID) sqltree.NodeID {
	prev := cur

	switch p.b.Tag(cur) {
	case sqltree.BooleanExpression:
		// the condition of an IF or WHILE is over: move on to its one statement
		owner := p.b.Parent(cur)
		if t := p.b.Tag(owner); t != sqltree.IfStatement && t != sqltree.WhileLoop {
			return cur
		}
		cur = p.startNewStatement(owner)
		p.migrateComments(prev, cur)

	case sqltree.Clause:
		if p.b.Tag(p.b.Parent(cur)) != sqltree.Statement || !p.hasMeaningfulContent(cur) {
			return cur
		}
		between := p.escapeSingleStatementContainers(cur)
		cur = p.startNewStatement(p.b.Ancestor(between, 2))
		p.migrateComments(prev, cur)
		if between != prev {
			p.migrateComments(between, cur)
		}

	case sqltree.DdlBlock:
		// DdlBlock → Clause → Statement: the same pattern one level higher
		between := p.escapeSingleStatementContainers(p.b.Parent(cur))
		cur = p.startNewStatement(p.b.Ancestor(between, 2))
		p.migrateComments(prev, cur)
		if between != p.b.Parent(prev) {
			p.migrateComments(between, cur)
		}
	}

	return cur
}

// considerNewClause closes a non-empty clause and opens a sibling, or opens
// the first clause of a statement or parenthesized expression.
func (p *parser) considerNewClause(cur sqltree.NodeID) sqltree.NodeID {
	switch p.b.Tag(cur) {
	case sqltree.Clause:
		if !p.hasMeaningfulContent(cur) {
			return cur
		}
		next := p.b.Append(p.b.Parent(cur), sqltree.Clause, "")
		p.migrateComments(cur, next)
		return next
	case sqltree.ExpressionParens, sqltree.Statement:
		return p.b.Append(cur, sqltree.Clause, "")
	}
	return cur
}

// escapeSingleStatementContainers pops out of every IF, WHILE or ELSE body
// whose one statement the cursor is in, landing on the clause that holds
// the outermost such construct.
func (p *parser) escapeSingleStatementContainers(cur sqltree.NodeID) sqltree.NodeID {
	for {
		s, holder := p.clauseScope(cur)
		if !s.singleStatement() {
			return cur
		}
		if s == scopeElse {
			holder = p.b.Parent(holder)
		}
		cur = p.b.Parent(holder)
	}
}

// hasMeaningfulContent reports whether a container holds anything other than
// whitespace, line comments and single-line block comments. A block comment
// spanning lines acts as a separator and counts.
func (p *parser) hasMeaningfulContent(container sqltree.NodeID) bool {
	for _, c := range p.b.Children(container) {
		switch p.b.Tag(c) {
		case sqltree.Whitespace, sqltree.LineComment:
			continue
		case sqltree.BlockComment:
			if !token.HasLineBreak(p.b.Text(c)) {
				continue
			}
		}
		return true
	}
	return false
}

// firstSignificantChild returns the first child that is not whitespace or a comment.
func (p *parser) firstSignificantChild(container sqltree.NodeID) sqltree.NodeID {
	for _, c := range p.b.Children(container) {
		if !p.b.Tag(c).IsTrivia() {
			return c
		}
	}
	return sqltree.None
}

// lastSignificantChild returns the last child that is not whitespace or a comment.
func (p *parser) lastSignificantChild(container sqltree.NodeID) sqltree.NodeID {
	children := p.b.Children(container)
	for i := len(children) - 1; i >= 0; i-- {
		if !p.b.Tag(children[i]).IsTrivia() {
			return children[i]
		}
	}
	return sqltree.None
}
