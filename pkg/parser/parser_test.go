package parser_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqltree/internal/testutil"
	"github.com/leapstack-labs/sqltree/pkg/parser"
	"github.com/leapstack-labs/sqltree/pkg/sqltree"
	"github.com/leapstack-labs/sqltree/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, sql string) *sqltree.Tree {
	t.Helper()
	tree, err := parser.Parse(testutil.Lex(sql), parser.WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)
	require.NotNil(t, tree)
	return tree
}

// skeleton renders the subtree at id as nested tags, leaving out whitespace.
func skeleton(tree *sqltree.Tree, id sqltree.NodeID) string {
	var sb strings.Builder
	sb.WriteString(tree.Tag(id).String())

	var parts []string
	for _, c := range tree.Children(id) {
		if tree.Tag(c) == sqltree.Whitespace {
			continue
		}
		parts = append(parts, skeleton(tree, c))
	}
	if len(parts) > 0 {
		sb.WriteString("(" + strings.Join(parts, " ") + ")")
	}
	return sb.String()
}

// find returns every node carrying tag, in document order.
func find(tree *sqltree.Tree, tag sqltree.Tag) []sqltree.NodeID {
	var out []sqltree.NodeID
	tree.Walk(tree.Root(), func(id sqltree.NodeID, _ int) bool {
		if tree.Tag(id) == tag {
			out = append(out, id)
		}
		return true
	})
	return out
}

// wordsIn returns the texts of every Word node, in document order.
func wordsIn(tree *sqltree.Tree) []string {
	var out []string
	for _, id := range find(tree, sqltree.Word) {
		out = append(out, tree.Text(id))
	}
	return out
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"SELECT 1;",
		"select a, b from t where x = 1 order by a",
		"SELECT a FROM t WHERE x IN (SELECT b FROM u) ORDER BY a",
		"SELECT COUNT(*), MAX([col]) FROM dbo.t AS x",
		"SELECT a\n-- next clause\nFROM t\n/* trailing */\n",
		"IF @x = 1 SELECT 1 ELSE SELECT 2",
		"IF @a = 1\n  IF @b = 2\n    SELECT 1\n  ELSE\n    SELECT 2\nELSE\n  SELECT 3",
		"WHILE @i < 10\nBEGIN\n  SET @i = @i + 1\n  PRINT @i\nEND",
		"BEGIN TRY\n  SELECT 1/0\nEND TRY\nBEGIN CATCH\n  SELECT ERROR_MESSAGE()\nEND CATCH",
		"begin transaction\ndelete from t\ncommit   transaction",
		"SELECT CASE WHEN a = 1 THEN 'x' WHEN a = 2 THEN N'y' ELSE 'z' END FROM t",
		"SELECT a FROM t LEFT OUTER JOIN u ON t.id = u.id CROSS APPLY f(t.id)",
		"SELECT 1 UNION ALL SELECT 2 UNION SELECT 3",
		"CREATE TABLE t (id INT IDENTITY(1, 1), name NVARCHAR(50) DEFAULT ('x'));",
		"CREATE PROCEDURE p AS\nSELECT 1\nGO\nEXEC p\n",
		"INSERT INTO t (a, b) SELECT a, b FROM u; INSERT t VALUES (1, 2)",
		"SELECT 1)",
		"SELECT 1 END",
	}

	for _, sql := range inputs {
		t.Run(sql, func(t *testing.T) {
			tree := parse(t, sql)
			assert.Equal(t, sql, tree.String())
		})
	}
}

func TestParse_SelectWithSemicolon(t *testing.T) {
	tree := parse(t, "SELECT 1;")

	assert.Equal(t,
		"Root(Statement(Clause(Word Word Semicolon)) Statement(Clause))",
		skeleton(tree, tree.Root()))
	assert.Equal(t, []string{"SELECT", "1"}, wordsIn(tree))
	assert.False(t, tree.ErrorFound)
	assert.False(t, tree.DataLossPossible)
}

func TestParse_EmptyStream(t *testing.T) {
	tree, err := parser.Parse(token.Stream{})
	require.NoError(t, err)

	assert.Equal(t, "Root(Statement(Clause))", skeleton(tree, tree.Root()))
	assert.False(t, tree.ErrorFound)
}

func TestParse_Clauses(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "select from where",
			sql:  "SELECT a FROM t WHERE b = 1",
			want: "Root(Statement(Clause(Word Word) Clause(Word Word) Clause(Word Word Operator Word)))",
		},
		{
			name: "two statements without separator",
			sql:  "SELECT 1 SELECT 2",
			want: "Root(Statement(Clause(Word Word)) Statement(Clause(Word Word)))",
		},
		{
			name: "union all is a marker clause",
			sql:  "SELECT 1 UNION ALL SELECT 2",
			want: "Root(Statement(Clause(Word Word) Clause(UnionClause) Clause(Word Word)))",
		},
		{
			name: "insert select stays one statement",
			sql:  "INSERT INTO t (a) SELECT a FROM u",
			want: "Root(Statement(Clause(Word Word DdlParens(Word)) Clause(Word Word) Clause(Word Word)))",
		},
		{
			name: "and or are flat markers",
			sql:  "SELECT a FROM t WHERE b = 1 AND c = 2 OR d = 3",
			want: "Root(Statement(Clause(Word Word) Clause(Word Word) " +
				"Clause(Word Word Operator Word AndOperator Word Operator Word OrOperator Word Operator Word)))",
		},
		{
			name: "sub-select closes its parenthesis",
			sql:  "SELECT a FROM t WHERE x IN (SELECT b FROM u) ORDER BY a",
			want: "Root(Statement(Clause(Word Word) Clause(Word Word) " +
				"Clause(Word Word Word ExpressionParens(Clause(Word Word) Clause(Word Word))) " +
				"Clause(Word Word Word)))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.sql)
			assert.Equal(t, tt.want, skeleton(tree, tree.Root()))
			assert.False(t, tree.ErrorFound)
		})
	}
}

func TestParse_CompoundKeywords(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		word string
	}{
		{"left join", "SELECT a FROM t LEFT JOIN u ON 1 = 1", "LEFT JOIN"},
		{"inner join", "SELECT a FROM t inner join u ON 1 = 1", "inner join"},
		{"left outer join keeps spacing", "SELECT a FROM t LEFT   OUTER\nJOIN u ON 1 = 1", "LEFT   OUTER\nJOIN"},
		{"full outer join", "SELECT a FROM t FULL OUTER JOIN u ON 1 = 1", "FULL OUTER JOIN"},
		{"cross apply", "SELECT a FROM t CROSS APPLY f(t.x)", "CROSS APPLY"},
		{"outer apply", "SELECT a FROM t OUTER APPLY f(t.x)", "OUTER APPLY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.sql)

			clauses := find(tree, sqltree.Clause)
			require.Len(t, clauses, 3)
			first := tree.FirstChild(clauses[2])
			assert.Equal(t, sqltree.Word, tree.Tag(first))
			assert.Equal(t, tt.word, tree.Text(first))
			assert.Equal(t, tt.sql, tree.String())
			assert.False(t, tree.DataLossPossible)
		})
	}
}

func TestParse_ApplyIsNotAFunctionName(t *testing.T) {
	tree := parse(t, "SELECT a FROM t CROSS APPLY (SELECT 1) x")
	assert.Empty(t, find(tree, sqltree.FunctionParens))
	assert.Len(t, find(tree, sqltree.ExpressionParens), 1)
}

func TestParse_DataLoss(t *testing.T) {
	tree := parse(t, "SELECT a FROM t LEFT /* c */ JOIN u")

	assert.True(t, tree.DataLossPossible)
	assert.False(t, tree.ErrorFound)
	assert.Equal(t, "SELECT a FROM t LEFT  JOIN/* c */ u", tree.String())

	comments := find(tree, sqltree.BlockComment)
	require.Len(t, comments, 1)
	clauses := find(tree, sqltree.Clause)
	assert.Equal(t, clauses[len(clauses)-1], tree.Parent(comments[0]))
}

func TestParse_NoDataLossForSingleWords(t *testing.T) {
	tree := parse(t, "SELECT /* c */ a FROM t -- x\n")
	assert.False(t, tree.DataLossPossible)
	assert.Equal(t, "SELECT /* c */ a FROM t -- x\n", tree.String())
}

func TestParse_IfElse(t *testing.T) {
	tree := parse(t, "IF @x = 1 SELECT 1 ELSE SELECT 2")

	assert.Equal(t,
		"Root(Statement(Clause(IfStatement("+
			"BooleanExpression(Word Operator Word) "+
			"Statement(Clause(Word Word)) "+
			"ElseClause(Statement(Clause(Word Word)))))))",
		skeleton(tree, tree.Root()))
	assert.False(t, tree.ErrorFound)
}

func TestParse_ElseAttachesToNearestOpenIf(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		// owners maps each ELSE, in order, to the index of its IF in document order
		owners []int
	}{
		{
			name:   "inner if takes the else",
			sql:    "IF @a = 1 IF @b = 2 SELECT 1 ELSE SELECT 2",
			owners: []int{1},
		},
		{
			name:   "second else climbs to outer if",
			sql:    "IF @a = 1 IF @b = 2 SELECT 1 ELSE SELECT 2 ELSE SELECT 3",
			owners: []int{1, 0},
		},
		{
			name:   "else climbs through while",
			sql:    "IF @a = 1 WHILE @b = 1 IF @c = 1 SELECT 1 ELSE SELECT 2 ELSE SELECT 3",
			owners: []int{1, 0},
		},
		{
			name:   "else if chain",
			sql:    "IF @a = 1 SELECT 1 ELSE IF @a = 2 SELECT 2 ELSE SELECT 3",
			owners: []int{0, 1},
		},
		{
			name:   "case else inside if body",
			sql:    "IF @a = 1 SELECT CASE WHEN @b = 1 THEN 1 ELSE 2 END ELSE SELECT 3",
			owners: []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.sql)
			require.False(t, tree.ErrorFound)

			ifs := find(tree, sqltree.IfStatement)
			elses := find(tree, sqltree.ElseClause)
			require.Len(t, elses, len(tt.owners))
			for i, owner := range tt.owners {
				assert.Equal(t, ifs[owner], tree.Parent(elses[i]), "else #%d", i)
			}
			for _, id := range ifs {
				assert.LessOrEqual(t, len(tree.ChildrenWithTag(id, sqltree.ElseClause)), 1)
			}
			assert.Equal(t, tt.sql, tree.String())
		})
	}
}

func TestParse_While(t *testing.T) {
	tree := parse(t, "WHILE @i < 10 SET @i = @i + 1")

	assert.Equal(t,
		"Root(Statement(Clause(WhileLoop("+
			"BooleanExpression(Word Operator Word) "+
			"Statement(Clause(Word Word Operator Word Operator Word))))))",
		skeleton(tree, tree.Root()))
	assert.False(t, tree.ErrorFound)
}

func TestParse_BeginEnd(t *testing.T) {
	tree := parse(t, "BEGIN SELECT 1 SELECT 2 END SELECT 3")

	blocks := find(tree, sqltree.BeginEndBlock)
	require.Len(t, blocks, 1)
	assert.Len(t, tree.ChildrenWithTag(blocks[0], sqltree.Statement), 2)
	assert.Equal(t, "END", tree.CloseText(blocks[0]))
	assert.Len(t, tree.ChildrenWithTag(tree.Root(), sqltree.Statement), 2)
	assert.False(t, tree.ErrorFound)
}

func TestParse_TryCatch(t *testing.T) {
	tree := parse(t, "BEGIN TRY SELECT 1 END TRY BEGIN CATCH SELECT 2 END CATCH")
	require.False(t, tree.ErrorFound)

	try := find(tree, sqltree.TryBlock)
	catch := find(tree, sqltree.CatchBlock)
	require.Len(t, try, 1)
	require.Len(t, catch, 1)

	assert.Equal(t, "BEGIN TRY", tree.Text(try[0]))
	assert.Equal(t, "END TRY", tree.CloseText(try[0]))
	assert.Equal(t, "BEGIN CATCH", tree.Text(catch[0]))
	assert.Equal(t, "END CATCH", tree.CloseText(catch[0]))
	assert.Len(t, tree.ChildrenWithTag(try[0], sqltree.Statement), 1)
	assert.Len(t, tree.ChildrenWithTag(catch[0], sqltree.Statement), 1)

	// each block opens its own top-level statement
	assert.Equal(t, tree.Root(), tree.Ancestor(try[0], 3))
	assert.Equal(t, tree.Root(), tree.Ancestor(catch[0], 3))
}

func TestParse_Transactions(t *testing.T) {
	tree := parse(t, "BEGIN TRANSACTION\nDELETE FROM t\nCOMMIT TRANSACTION\nROLLBACK TRANSACTION")

	tests := []struct {
		tag  sqltree.Tag
		text string
	}{
		{sqltree.BeginTransaction, "BEGIN TRANSACTION"},
		{sqltree.CommitTransaction, "COMMIT TRANSACTION"},
		{sqltree.RollbackTransaction, "ROLLBACK TRANSACTION"},
	}
	for _, tt := range tests {
		got := find(tree, tt.tag)
		require.Len(t, got, 1, tt.tag.String())
		assert.Equal(t, tt.text, tree.Text(got[0]))
		assert.Empty(t, tree.Children(got[0]))
	}
	assert.Len(t, tree.ChildrenWithTag(tree.Root(), sqltree.Statement), 4)
	assert.False(t, tree.ErrorFound)
}

func TestParse_Case(t *testing.T) {
	tree := parse(t, "SELECT CASE WHEN a = 1 THEN 'x' ELSE 'y' END FROM t")

	assert.Equal(t,
		"Root(Statement("+
			"Clause(Word CaseStatement(CaseInput CaseWhen(Word Operator Word CaseThen(String)) CaseElse(String))) "+
			"Clause(Word Word)))",
		skeleton(tree, tree.Root()))

	cases := find(tree, sqltree.CaseStatement)
	require.Len(t, cases, 1)
	assert.Equal(t, "CASE", tree.Text(cases[0]))
	assert.Equal(t, "END", tree.CloseText(cases[0]))
	assert.False(t, tree.ErrorFound)
}

func TestParse_CaseBranchesShareStatement(t *testing.T) {
	tree := parse(t, "SELECT CASE x WHEN 1 THEN 'a' WHEN 2 THEN 'b' END")

	cases := find(tree, sqltree.CaseStatement)
	require.Len(t, cases, 1)
	whens := find(tree, sqltree.CaseWhen)
	require.Len(t, whens, 2)
	for _, w := range whens {
		assert.Equal(t, cases[0], tree.Parent(w))
		assert.True(t, tree.HasChildWithTag(w, sqltree.CaseThen))
	}
	assert.False(t, tree.ErrorFound)
}

func TestParse_Parens(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want map[sqltree.Tag]int
	}{
		{
			name: "function call",
			sql:  "SELECT COUNT(*) FROM t",
			want: map[sqltree.Tag]int{sqltree.FunctionParens: 1},
		},
		{
			name: "quoted function name",
			sql:  "SELECT [dbo].[f](1)",
			want: map[sqltree.Tag]int{sqltree.FunctionParens: 1},
		},
		{
			name: "in list",
			sql:  "SELECT a FROM t WHERE a IN (1, 2)",
			want: map[sqltree.Tag]int{sqltree.ExpressionParens: 1},
		},
		{
			name: "create table",
			sql:  "CREATE TABLE t (id INT, name NVARCHAR(50) DEFAULT ('x'));",
			want: map[sqltree.Tag]int{sqltree.DdlParens: 1, sqltree.DdlDetailParens: 2},
		},
		{
			name: "insert column list",
			sql:  "INSERT INTO t (a, b) VALUES (1, 2)",
			want: map[sqltree.Tag]int{sqltree.DdlParens: 1, sqltree.FunctionParens: 1},
		},
	}

	parensTags := []sqltree.Tag{
		sqltree.DdlParens, sqltree.DdlDetailParens, sqltree.FunctionParens, sqltree.ExpressionParens,
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.sql)
			for _, tag := range parensTags {
				assert.Equal(t, tt.want[tag], tree.Count(tag), tag.String())
			}
			assert.False(t, tree.ErrorFound)
		})
	}
}

func TestParse_ParensKeepDelimiters(t *testing.T) {
	tests := []struct {
		name      string
		sql       string
		tag       sqltree.Tag
		closeText string
	}{
		{"function call", "SELECT COUNT(*) FROM t", sqltree.FunctionParens, ")"},
		{"sub-select", "SELECT a FROM t WHERE x IN (SELECT b FROM u) ORDER BY a", sqltree.ExpressionParens, ")"},
		{"data type detail", "CREATE TABLE t (a NVARCHAR(50))\n", sqltree.DdlDetailParens, ")"},
		{"unclosed", "SELECT f(1", sqltree.FunctionParens, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.sql)
			parens := find(tree, tt.tag)
			require.Len(t, parens, 1)
			assert.Equal(t, "(", tree.Text(parens[0]))
			assert.Equal(t, tt.closeText, tree.CloseText(parens[0]))
			assert.Equal(t, tt.sql, tree.String())
		})
	}
}

func TestParse_DdlBody(t *testing.T) {
	tree := parse(t, "CREATE PROCEDURE p AS\nSELECT 1\nSELECT 2\n")

	bodies := find(tree, sqltree.DdlAsBlock)
	require.Len(t, bodies, 1)
	assert.Equal(t, "AS", tree.Text(bodies[0]))
	assert.Len(t, tree.ChildrenWithTag(bodies[0], sqltree.Statement), 2)
	assert.False(t, tree.ErrorFound)
}

func TestParse_BatchSeparator(t *testing.T) {
	tests := []struct {
		name       string
		sql        string
		separators int
		errorFound bool
	}{
		{"between statements", "SELECT 1\nGO\nSELECT 2", 1, false},
		{"at end of input", "SELECT 1\nGO", 1, false},
		{"ends a procedure body", "CREATE PROCEDURE p AS\nSELECT 1\nGO\nEXEC p", 1, false},
		{"after an if body", "IF @a = 1\nSELECT 1\nGO\nSELECT 2", 1, false},
		{"same line is a plain word", "SELECT 1 GO", 0, false},
		{"inside a block", "BEGIN\nSELECT 1\nGO\nEND", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.sql)
			seps := tree.ChildrenWithTag(tree.Root(), sqltree.BatchSeparator)
			assert.Len(t, seps, tt.separators)
			assert.Equal(t, tt.errorFound, tree.ErrorFound)
			assert.Equal(t, tt.sql, tree.String())
		})
	}
}

func TestParse_BatchSeparatorShape(t *testing.T) {
	tree := parse(t, "SELECT 1\nGO\nSELECT 2")
	assert.Equal(t,
		"Root(Statement(Clause(Word Word)) BatchSeparator Statement(Clause(Word Word)))",
		skeleton(tree, tree.Root()))
}

func TestParse_Anomalies(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		word string
	}{
		{"unmatched close paren", "SELECT 1)", ")"},
		{"when outside case", "SELECT WHEN 1", "WHEN"},
		{"when in if condition", "IF @a WHEN 1 SELECT 1", "WHEN"},
		{"then without when", "SELECT THEN 1", "THEN"},
		{"else without if", "SELECT 1 ELSE SELECT 2", "ELSE"},
		{"unmatched end", "SELECT 1 END", "END"},
		{"end try outside try", "BEGIN SELECT 1 END TRY", "END TRY"},
		{"end catch inside try", "BEGIN TRY SELECT 1 END CATCH", "END CATCH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.sql)
			assert.True(t, tree.ErrorFound)
			assert.Contains(t, wordsIn(tree), tt.word)
		})
	}
}

func TestParse_UnmatchedCloseParenKeepsDepth(t *testing.T) {
	tree := parse(t, "SELECT f(1)) FROM t")

	assert.True(t, tree.ErrorFound)
	assert.Equal(t,
		"Root(Statement(Clause(Word Word FunctionParens(Word) Word) Clause(Word Word)))",
		skeleton(tree, tree.Root()))
}

func TestParse_UnclosedAtEnd(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"open parenthesis", "SELECT f(1"},
		{"open block", "BEGIN SELECT 1"},
		{"if without body", "IF @a = 1"},
		{"open case", "SELECT CASE WHEN 1 = 1 THEN 1"},
		{"ddl without terminator", "CREATE TABLE t (a INT)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.sql)
			assert.True(t, tree.ErrorFound)
			assert.Equal(t, tt.sql, tree.String())
		})
	}
}

func TestParse_UpstreamErrorCarriesOver(t *testing.T) {
	stream := testutil.Lex("SELECT 'unterminated")
	require.True(t, stream.ErrorFound)

	tree, err := parser.Parse(stream)
	require.NoError(t, err)
	assert.True(t, tree.ErrorFound)

	clean := testutil.Lex("SELECT 1")
	clean.ErrorFound = true
	tree, err = parser.Parse(clean)
	require.NoError(t, err)
	assert.True(t, tree.ErrorFound)
}

func TestParse_UnknownTokenKind(t *testing.T) {
	tests := []struct {
		name string
		kind token.Kind
	}{
		{"illegal", token.ILLEGAL},
		{"out of range", token.Kind(99)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream := token.Stream{Tokens: []token.Token{
				token.New(token.WORD, "SELECT"),
				token.New(token.WHITESPACE, " "),
				token.New(tt.kind, "?"),
			}}

			tree, err := parser.Parse(stream)
			require.Error(t, err)
			assert.Nil(t, tree)
			assert.True(t, errors.Is(err, parser.ErrUnknownTokenKind))

			var ce *parser.ContractError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, 2, ce.Index)
			assert.Equal(t, tt.kind, ce.Kind)
		})
	}
}

func TestParse_CommentMigration(t *testing.T) {
	t.Run("own line comment moves to next clause", func(t *testing.T) {
		tree := parse(t, "SELECT a\n-- next\nFROM t")

		comments := find(tree, sqltree.LineComment)
		require.Len(t, comments, 1)
		stmt := tree.Parent(comments[0])
		assert.Equal(t, sqltree.Statement, tree.Tag(stmt))
		assert.Equal(t, "Statement(Clause(Word Word) LineComment Clause(Word Word))", skeleton(tree, stmt))
		assert.Equal(t, "SELECT a\n-- next\nFROM t", tree.String())
	})

	t.Run("same line comment stays", func(t *testing.T) {
		tree := parse(t, "SELECT a -- keep\nFROM t")

		comments := find(tree, sqltree.LineComment)
		require.Len(t, comments, 1)
		assert.Equal(t, sqltree.Clause, tree.Tag(tree.Parent(comments[0])))
		assert.Equal(t, "SELECT", tree.Text(tree.FirstChild(tree.Parent(comments[0]))))
	})

	t.Run("comment before next statement leaves if body", func(t *testing.T) {
		tree := parse(t, "IF @a = 1\n  SELECT 1\n-- after\nSELECT 2")

		comments := find(tree, sqltree.LineComment)
		require.Len(t, comments, 1)
		stmts := tree.ChildrenWithTag(tree.Root(), sqltree.Statement)
		require.Len(t, stmts, 2)
		assert.Equal(t, stmts[1], tree.Parent(comments[0]))
		assert.Equal(t, "IF @a = 1\n  SELECT 1\n-- after\nSELECT 2", tree.String())
	})

	t.Run("leading comment sits before the first clause", func(t *testing.T) {
		tree := parse(t, "-- header\nSELECT 1")
		assert.Equal(t, "Root(Statement(LineComment Clause(Word Word)))", skeleton(tree, tree.Root()))
	})
}

func TestParse_LogsAnomalies(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tree, err := parser.Parse(testutil.Lex("SELECT 1\n  FROM t)"), parser.WithLogger(logger))
	require.NoError(t, err)
	require.True(t, tree.ErrorFound)

	out := buf.String()
	assert.Contains(t, out, "structural anomaly")
	assert.Contains(t, out, "line=2")
	assert.Contains(t, out, "column=9")
	assert.Contains(t, out, "parsed token stream")
}

func TestParse_LogsDataLoss(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := parser.Parse(testutil.Lex("SELECT a FROM t LEFT -- c\nJOIN u"), parser.WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "comments moved out of compound keyword")
}

func TestParse_Independent(t *testing.T) {
	stream := testutil.Lex("IF @a = 1 SELECT 1 ELSE SELECT 2")

	first, err := parser.Parse(stream)
	require.NoError(t, err)
	second, err := parser.Parse(stream)
	require.NoError(t, err)

	assert.Equal(t, first.Len(), second.Len())
	assert.Equal(t, first.String(), second.String())
}
