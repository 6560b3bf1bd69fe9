package format

import (
	"github.com/leapstack-labs/sqltree/pkg/sqltree"
)

// Options controls the outline.
type Options struct {
	// Whitespace includes whitespace leaves, which are hidden by default.
	Whitespace bool
	// MaxDepth stops descending below this depth; 0 means unlimited.
	MaxDepth int
}

// Outline renders the tree one node per line, indented by depth:
//
//	Root
//	  Statement
//	    Clause
//	      Word "SELECT"
//	      Word "1"
//
// Text and closing keywords are quoted. The root line lists the flags that
// are set.
func Outline(tree *sqltree.Tree, opts Options) string {
	p := newPrinter()
	p.node(tree, tree.Root(), opts)
	return p.String()
}

func (p *Printer) node(tree *sqltree.Tree, id sqltree.NodeID, opts Options) {
	p.write(tree.Tag(id).String())
	if text := tree.Text(id); text != "" {
		p.space()
		p.quoted(text)
	}
	if closing := tree.CloseText(id); closing != "" {
		p.write(" ... ")
		p.quoted(closing)
	}
	if id == tree.Root() {
		p.flags(tree)
	}
	p.writeln()

	if opts.MaxDepth > 0 && p.depth+1 > opts.MaxDepth {
		return
	}

	p.indent()
	for _, c := range tree.Children(id) {
		if tree.Tag(c) == sqltree.Whitespace && !opts.Whitespace {
			continue
		}
		p.node(tree, c, opts)
	}
	p.dedent()
}

func (p *Printer) flags(tree *sqltree.Tree) {
	var set []string
	if tree.ErrorFound {
		set = append(set, "errorFound")
	}
	if tree.DataLossPossible {
		set = append(set, "dataLossLikely")
	}
	if len(set) == 0 {
		return
	}
	p.write(" [")
	p.formatList(len(set), func(i int) { p.write(set[i]) }, ", ")
	p.write("]")
}
