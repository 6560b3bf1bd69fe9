package parser

import (
	"github.com/leapstack-labs/sqltree/pkg/sqltree"
	"github.com/leapstack-labs/sqltree/pkg/token"
)

// migrateComments moves trailing comments of a just-closed container to
// immediately before the node opened after it, when a line break separates
// them from the closed container's content. Comments on the same line as
// the preceding code stay where they are.
func (p *parser) migrateComments(closed, opened sqltree.NodeID) {
	children := p.b.Children(closed)
	i := len(children) - 1
	anchor := opened

	for i >= 0 {
		candidate := children[i]
		tag := p.b.Tag(candidate)

		if tag == sqltree.Whitespace {
			i--
			continue
		}
		if i == 0 || !tag.IsComment() {
			return
		}

		prev := children[i-1]
		prevTag := p.b.Tag(prev)
		if !prevTag.IsTrivia() {
			return
		}

		if prevTag == sqltree.Whitespace && token.HasLineBreak(p.b.Text(prev)) {
			moving := append([]sqltree.NodeID(nil), children[i:]...)
			for _, n := range moving {
				p.b.MoveBefore(n, anchor)
			}
			// earlier runs go in front of the ones already moved
			anchor = moving[0]
			children = p.b.Children(closed)
			i = len(children) - 1
			continue
		}

		// glued to the previous comment or separated by a plain space; a line
		// break further back may still free this run
		i--
	}
}
