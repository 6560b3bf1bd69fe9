package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqltree/pkg/token"
)

// ErrUnknownTokenKind is matched by every ContractError.
var ErrUnknownTokenKind = errors.New("unrecognized token kind")

// ContractError reports a token stream the tokenizer should never have produced.
// Unlike structural anomalies, which only flag the tree, it aborts the parse.
type ContractError struct {
	Index int
	Kind  token.Kind
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("token %d: %s %s", e.Index, ErrUnknownTokenKind, e.Kind)
}

// Unwrap allows errors.Is(err, ErrUnknownTokenKind).
func (e *ContractError) Unwrap() error {
	return ErrUnknownTokenKind
}

// Reasons logged with structural anomalies.
const (
	reasonUnexpectedCloseParens = "close parenthesis without matching open parenthesis"
	reasonWhenOutsideCase       = "WHEN outside CASE input or after THEN"
	reasonThenWithoutWhen       = "THEN not directly after WHEN"
	reasonElseWithoutIf         = "ELSE without an open IF"
	reasonUnmatchedEnd          = "%s without a matching open block"
	reasonMisplacedBatch        = "batch separator inside an open block"
	reasonUnclosedAtEnd         = "input ended inside %s"
)
