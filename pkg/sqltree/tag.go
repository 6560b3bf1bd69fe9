// Package sqltree defines the hierarchical parse tree produced from a SQL
// token stream.
//
// Nodes live in an arena owned by the Tree and are addressed by NodeID.
// Each node records its parent, so upward navigation is O(1) without any
// shared ownership. A Tree is built once through a Builder and is read-only
// afterwards.
package sqltree

import (
	"fmt"
	"strings"
)

// Tag discriminates tree nodes.
type Tag uint8

// Tree node tags.
const (
	Invalid Tag = iota

	// Structure
	Root
	Statement
	Clause
	BatchSeparator

	// DDL
	DdlBlock
	DdlAsBlock
	DdlParens
	DdlDetailParens

	// Parentheses
	FunctionParens
	ExpressionParens

	// CASE
	CaseStatement
	CaseInput
	CaseWhen
	CaseThen
	CaseElse

	// Control flow
	IfStatement
	WhileLoop
	ElseClause
	BooleanExpression
	BeginEndBlock
	TryBlock
	CatchBlock
	BeginTransaction
	CommitTransaction
	RollbackTransaction

	// Markers
	UnionClause
	AndOperator
	OrOperator

	// Leaves
	Word
	Whitespace
	LineComment
	BlockComment
	QuotedIdentifier
	Asterisk
	Comma
	Period
	NationalString
	Operator
	String
	Semicolon

	maxTag
)

var tagNames = [...]string{
	Invalid:             "Invalid",
	Root:                "Root",
	Statement:           "Statement",
	Clause:              "Clause",
	BatchSeparator:      "BatchSeparator",
	DdlBlock:            "DdlBlock",
	DdlAsBlock:          "DdlAsBlock",
	DdlParens:           "DdlParens",
	DdlDetailParens:     "DdlDetailParens",
	FunctionParens:      "FunctionParens",
	ExpressionParens:    "ExpressionParens",
	CaseStatement:       "CaseStatement",
	CaseInput:           "CaseInput",
	CaseWhen:            "CaseWhen",
	CaseThen:            "CaseThen",
	CaseElse:            "CaseElse",
	IfStatement:         "IfStatement",
	WhileLoop:           "WhileLoop",
	ElseClause:          "ElseClause",
	BooleanExpression:   "BooleanExpression",
	BeginEndBlock:       "BeginEndBlock",
	TryBlock:            "TryBlock",
	CatchBlock:          "CatchBlock",
	BeginTransaction:    "BeginTransaction",
	CommitTransaction:   "CommitTransaction",
	RollbackTransaction: "RollbackTransaction",
	UnionClause:         "UnionClause",
	AndOperator:         "AndOperator",
	OrOperator:          "OrOperator",
	Word:                "Word",
	Whitespace:          "Whitespace",
	LineComment:         "LineComment",
	BlockComment:        "BlockComment",
	QuotedIdentifier:    "QuotedIdentifier",
	Asterisk:            "Asterisk",
	Comma:               "Comma",
	Period:              "Period",
	NationalString:      "NationalString",
	Operator:            "Operator",
	String:              "String",
	Semicolon:           "Semicolon",
}

func (t Tag) String() string {
	if t < maxTag {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", t)
}

// LookupTag resolves a tag by name, case-insensitively.
func LookupTag(name string) (Tag, bool) {
	for t := Root; t < maxTag; t++ {
		if strings.EqualFold(tagNames[t], name) {
			return t, true
		}
	}
	return Invalid, false
}

// IsParens returns true for the four parenthesis containers.
func (t Tag) IsParens() bool {
	switch t {
	case DdlParens, DdlDetailParens, FunctionParens, ExpressionParens:
		return true
	}
	return false
}

// IsTrivia returns true for whitespace and comment leaves.
func (t Tag) IsTrivia() bool {
	return t == Whitespace || t == LineComment || t == BlockComment
}

// IsComment returns true for comment leaves.
func (t Tag) IsComment() bool {
	return t == LineComment || t == BlockComment
}
