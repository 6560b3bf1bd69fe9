package parser

import "github.com/leapstack-labs/sqltree/pkg/sqltree"

// scope classifies where a statement sits, so that boundary decisions look
// at one value instead of chains of ancestor tag checks.
type scope uint8

const (
	// scopeNone: the cursor is not a clause directly inside a statement.
	scopeNone scope = iota
	// scopeRoot: a top-level statement.
	scopeRoot
	// scopeDdlAs: a statement in the body of CREATE ... AS.
	scopeDdlAs
	// scopeIf: the single statement of an IF.
	scopeIf
	// scopeWhile: the single statement of a WHILE.
	scopeWhile
	// scopeElse: the single statement of an ELSE belonging to an IF.
	scopeElse
	// scopeBeginEnd: a statement inside BEGIN ... END.
	scopeBeginEnd
	// scopeTry: a statement inside BEGIN TRY ... END TRY.
	scopeTry
	// scopeCatch: a statement inside BEGIN CATCH ... END CATCH.
	scopeCatch
	// scopeOther: a statement in any other container.
	scopeOther
)

var scopeNames = [...]string{
	scopeNone:     "none",
	scopeRoot:     "root",
	scopeDdlAs:    "ddl body",
	scopeIf:       "IF",
	scopeWhile:    "WHILE",
	scopeElse:     "ELSE",
	scopeBeginEnd: "BEGIN/END block",
	scopeTry:      "TRY block",
	scopeCatch:    "CATCH block",
	scopeOther:    "nested statement",
}

func (s scope) String() string {
	return scopeNames[s]
}

// singleStatement reports whether the scope permits exactly one statement.
func (s scope) singleStatement() bool {
	return s == scopeIf || s == scopeWhile || s == scopeElse
}

// clauseScope classifies cur, which must be a clause directly inside a
// statement, and returns the node holding that statement.
func (p *parser) clauseScope(cur sqltree.NodeID) (scope, sqltree.NodeID) {
	if p.b.Tag(cur) != sqltree.Clause {
		return scopeNone, sqltree.None
	}
	return p.statementScope(p.b.Parent(cur))
}

// statementScope classifies a statement node by its container and returns
// that container.
func (p *parser) statementScope(stmt sqltree.NodeID) (scope, sqltree.NodeID) {
	if p.b.Tag(stmt) != sqltree.Statement {
		return scopeNone, sqltree.None
	}

	holder := p.b.Parent(stmt)
	switch p.b.Tag(holder) {
	case sqltree.Root:
		return scopeRoot, holder
	case sqltree.DdlAsBlock:
		return scopeDdlAs, holder
	case sqltree.IfStatement:
		return scopeIf, holder
	case sqltree.WhileLoop:
		return scopeWhile, holder
	case sqltree.ElseClause:
		if p.b.Tag(p.b.Parent(holder)) == sqltree.IfStatement {
			return scopeElse, holder
		}
	case sqltree.BeginEndBlock:
		return scopeBeginEnd, holder
	case sqltree.TryBlock:
		return scopeTry, holder
	case sqltree.CatchBlock:
		return scopeCatch, holder
	}
	return scopeOther, holder
}

// isTerminal reports whether cur is a legal position at the end of input.
func (p *parser) isTerminal(cur sqltree.NodeID) bool {
	s, _ := p.clauseScope(cur)
	return s == scopeRoot || s == scopeDdlAs
}
