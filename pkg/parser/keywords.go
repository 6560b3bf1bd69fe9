package parser

import (
	"strings"

	"github.com/leapstack-labs/sqltree/pkg/sqltree"
)

// statementStarters are single words that begin a new statement.
var statementStarters = map[string]bool{
	"SELECT":     true,
	"DELETE":     true,
	"INSERT":     true,
	"UPDATE":     true,
	"IF":         true,
	"SET":        true,
	"CREATE":     true,
	"DROP":       true,
	"ALTER":      true,
	"TRUNCATE":   true,
	"DECLARE":    true,
	"EXEC":       true,
	"EXECUTE":    true,
	"WHILE":      true,
	"BREAK":      true,
	"CONTINUE":   true,
	"PRINT":      true,
	"USE":        true,
	"RETURN":     true,
	"WAITFOR":    true,
	"RAISERROR":  true,
	"COMMIT":     true,
	"OPEN":       true,
	"FETCH":      true,
	"CLOSE":      true,
	"DEALLOCATE": true,
}

// clauseStarters are single words that begin a new clause within a statement.
var clauseStarters = map[string]bool{
	"INNER":   true,
	"LEFT":    true,
	"JOIN":    true,
	"WHERE":   true,
	"FROM":    true,
	"ORDER":   true,
	"GROUP":   true,
	"HAVING":  true,
	"INTO":    true,
	"SELECT":  true,
	"UNION":   true,
	"VALUES":  true,
	"RETURNS": true,
	"FOR":     true,
	"PIVOT":   true,
	"UNPIVOT": true,
}

// ddlDetailWords are followed by a detail parenthesis: a size, precision or seed.
// DEFAULT and IDENTITY are not data types but take the same kind of parenthesis.
var ddlDetailWords = map[string]bool{
	"NVARCHAR":  true,
	"VARCHAR":   true,
	"DECIMAL":   true,
	"NUMERIC":   true,
	"VARBINARY": true,
	"DEFAULT":   true,
	"IDENTITY":  true,
}

// nonNameWords are words that cannot name a function when followed by "(".
var nonNameWords = map[string]bool{
	"AND":       true,
	"OR":        true,
	"NOT":       true,
	"BETWEEN":   true,
	"LIKE":      true,
	"CONTAINS":  true,
	"EXISTS":    true,
	"FREETEXT":  true,
	"IN":        true,
	"ALL":       true,
	"SOME":      true,
	"ANY":       true,
	"FROM":      true,
	"JOIN":      true,
	"UNION":     true,
	"UNION ALL": true,
	"AS":        true,
}

// IsStatementStarter reports whether word begins a new statement.
func IsStatementStarter(word string) bool {
	return statementStarters[strings.ToUpper(word)]
}

// IsClauseStarter reports whether word begins a new clause.
func IsClauseStarter(word string) bool {
	return clauseStarters[strings.ToUpper(word)]
}

// IsDataTypeDetailWord reports whether word takes a detail parenthesis.
func IsDataTypeDetailWord(word string) bool {
	return ddlDetailWords[strings.ToUpper(word)]
}

// IsNameLike reports whether a node of the given tag and text could be the
// name of a function called by a following parenthesis.
func IsNameLike(tag sqltree.Tag, text string) bool {
	switch tag {
	case sqltree.QuotedIdentifier:
		return true
	case sqltree.Word:
	default:
		return false
	}

	upper := strings.ToUpper(text)
	if nonNameWords[upper] {
		return false
	}
	// compound joins and applies ("LEFT OUTER JOIN", "CROSS APPLY") keep their
	// original spacing, so look at the final word only
	if fields := strings.Fields(upper); len(fields) > 1 {
		switch fields[len(fields)-1] {
		case "JOIN", "APPLY":
			return false
		}
	}
	return true
}
