package format

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqltree/internal/testutil"
	"github.com/leapstack-labs/sqltree/pkg/parser"
	"github.com/leapstack-labs/sqltree/pkg/sqltree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func mustParse(t *testing.T, sql string) *sqltree.Tree {
	t.Helper()
	tree, err := parser.Parse(testutil.Lex(sql))
	require.NoError(t, err)
	return tree
}

func TestOutline(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     Options
		expected string
	}{
		{
			name:  "simple statement",
			input: "SELECT 1;",
			expected: `Root
  Statement
    Clause
      Word "SELECT"
      Word "1"
      Semicolon ";"
  Statement
    Clause
`,
		},
		{
			name:  "with whitespace",
			input: "SELECT\n1",
			opts:  Options{Whitespace: true},
			expected: `Root
  Statement
    Clause
      Word "SELECT"
      Whitespace "\n"
      Word "1"
`,
		},
		{
			name:  "closing keyword",
			input: "BEGIN SELECT 1 END",
			expected: `Root
  Statement
    Clause
      BeginEndBlock "BEGIN" ... "END"
        Statement
          Clause
            Word "SELECT"
            Word "1"
`,
		},
		{
			name:  "parentheses",
			input: "SELECT f(1)",
			expected: `Root
  Statement
    Clause
      Word "SELECT"
      Word "f"
      FunctionParens "(" ... ")"
        Word "1"
`,
		},
		{
			name:  "flags on root",
			input: "SELECT a FROM t LEFT /* c */ JOIN u)",
			opts:  Options{MaxDepth: 1},
			expected: `Root [errorFound, dataLossLikely]
  Statement
`,
		},
		{
			name:  "depth limit",
			input: "SELECT 1;",
			opts:  Options{MaxDepth: 2},
			expected: `Root
  Statement
    Clause
  Statement
    Clause
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Outline(mustParse(t, tt.input), tt.opts)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	t.Run("clean tree omits flags", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteJSON(&buf, mustParse(t, "SELECT 1")))

		assert.NotContains(t, buf.String(), "errorFound")
		var doc Document
		require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
		require.NotNil(t, doc.Root)
		assert.Equal(t, "Root", doc.Root.Tag)
		require.Len(t, doc.Root.Children, 1)
		assert.Equal(t, "Statement", doc.Root.Children[0].Tag)
	})

	t.Run("flags and closing keywords", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteJSON(&buf, mustParse(t, "BEGIN TRY SELECT 1")))

		var doc Document
		require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
		assert.True(t, doc.ErrorFound)
		assert.False(t, doc.DataLossLikely)

		require.NoError(t, WriteJSON(&buf, mustParse(t, "BEGIN TRY SELECT 1 END TRY")))
		assert.Contains(t, buf.String(), `"closeText": "END TRY"`)
	})
}

func TestWriteYAML(t *testing.T) {
	tree := mustParse(t, "SELECT CASE WHEN a = 1 THEN 2 END")

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, tree))
	assert.True(t, strings.HasPrefix(buf.String(), "root:\n"))

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, NewDocument(tree), &doc)
}

func TestWriteYAMLStream(t *testing.T) {
	first := mustParse(t, "SELECT 1")
	second := mustParse(t, "SELECT f(1")

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, first, second))

	dec := yaml.NewDecoder(&buf)
	var docs []*Document
	for {
		var doc Document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		docs = append(docs, &doc)
	}
	require.Len(t, docs, 2)
	assert.Equal(t, NewDocument(first), docs[0])
	assert.Equal(t, NewDocument(second), docs[1])
	assert.True(t, docs[1].ErrorFound)
}

func TestWriteXML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		attrs map[string]string
	}{
		{"clean", "SELECT a\n  FROM t -- done\n", map[string]string{}},
		{"error found", "SELECT 1)", map[string]string{"errorFound": "1"}},
		{"data loss", "SELECT a FROM t LEFT -- c\nJOIN u", map[string]string{"dataLossLikely": "1"}},
		{"closing keywords", "IF 1 < 2 BEGIN SELECT '<x>' END", map[string]string{}},
		{"parentheses", "SELECT COUNT(*) FROM t WHERE a IN (SELECT b FROM u)", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.input)
			var buf bytes.Buffer
			require.NoError(t, WriteXML(&buf, tree))

			dec := xml.NewDecoder(&buf)
			var text strings.Builder
			var root *xml.StartElement
			for {
				tok, err := dec.Token()
				if errors.Is(err, io.EOF) {
					break
				}
				require.NoError(t, err)
				switch v := tok.(type) {
				case xml.StartElement:
					if root == nil {
						se := v.Copy()
						root = &se
					}
				case xml.CharData:
					text.Write(v)
				}
			}

			require.NotNil(t, root)
			assert.Equal(t, "Root", root.Name.Local)
			attrs := map[string]string{}
			for _, a := range root.Attr {
				attrs[a.Name.Local] = a.Value
			}
			assert.Equal(t, tt.attrs, attrs)
			// the trailing newline after the document is character data too
			assert.Equal(t, tt.input, tree.String())
			assert.Equal(t, tree.String()+"\n", text.String())
		})
	}
}
