package sqltree

import "strings"

// NodeID addresses a node within its Tree.
type NodeID int32

// None is the NodeID of a missing node (the root's parent, for instance).
const None NodeID = -1

type node struct {
	tag       Tag
	text      string
	closeText string
	parent    NodeID
	children  []NodeID
}

// Tree is a parsed SQL tree. The root is always node 0.
type Tree struct {
	nodes []node

	// ErrorFound is set when a structural anomaly was met (or reported upstream).
	ErrorFound bool

	// DataLossPossible is set when comments were moved out of reading order
	// while absorbing a multi-word keyword.
	DataLossPossible bool
}

// Root returns the root node.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Valid reports whether id addresses a node of t.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Tag returns the tag of a node, or Invalid for None.
func (t *Tree) Tag(id NodeID) Tag {
	if !t.Valid(id) {
		return Invalid
	}
	return t.nodes[id].tag
}

// Text returns the literal text of a node. For containers opened by a
// keyword (IF, CASE, BEGIN, ...) this is the opening keyword.
func (t *Tree) Text(id NodeID) string {
	return t.nodes[id].text
}

// CloseText returns the closing keyword recorded on a container (END, END TRY, ...).
func (t *Tree) CloseText(id NodeID) string {
	return t.nodes[id].closeText
}

// Parent returns the parent of a node, or None for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	if !t.Valid(id) {
		return None
	}
	return t.nodes[id].parent
}

// Ancestor walks n levels up from id; it returns None past the root.
func (t *Tree) Ancestor(id NodeID, n int) NodeID {
	for ; n > 0 && id != None; n-- {
		id = t.Parent(id)
	}
	return id
}

// Children returns the ordered children of a node. The slice must not be modified.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.Valid(id) {
		return nil
	}
	return t.nodes[id].children
}

// FirstChild returns the first child of a node, or None.
func (t *Tree) FirstChild(id NodeID) NodeID {
	if c := t.Children(id); len(c) > 0 {
		return c[0]
	}
	return None
}

// LastChild returns the last child of a node, or None.
func (t *Tree) LastChild(id NodeID) NodeID {
	if c := t.Children(id); len(c) > 0 {
		return c[len(c)-1]
	}
	return None
}

// ChildrenWithTag returns the children of id carrying tag.
func (t *Tree) ChildrenWithTag(id NodeID, tag Tag) []NodeID {
	var out []NodeID
	for _, c := range t.Children(id) {
		if t.nodes[c].tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// HasChildWithTag reports whether id has at least one child carrying tag.
func (t *Tree) HasChildWithTag(id NodeID, tag Tag) bool {
	for _, c := range t.Children(id) {
		if t.nodes[c].tag == tag {
			return true
		}
	}
	return false
}

// Walk visits the subtree rooted at id depth-first in document order.
// Returning false from fn skips the node's children.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, depth int) bool) {
	t.walk(id, 0, fn)
}

func (t *Tree) walk(id NodeID, depth int, fn func(NodeID, int) bool) {
	if !fn(id, depth) {
		return
	}
	for _, c := range t.nodes[id].children {
		t.walk(c, depth+1, fn)
	}
}

// Count returns how many nodes in the tree carry tag.
func (t *Tree) Count(tag Tag) int {
	n := 0
	for i := range t.nodes {
		if t.nodes[i].tag == tag {
			n++
		}
	}
	return n
}

// SQL reconstructs the source text of the subtree rooted at id: each node's
// text, then its children, then its closing keyword.
func (t *Tree) SQL(id NodeID) string {
	var sb strings.Builder
	t.writeSQL(&sb, id)
	return sb.String()
}

func (t *Tree) writeSQL(sb *strings.Builder, id NodeID) {
	n := &t.nodes[id]
	sb.WriteString(n.text)
	for _, c := range n.children {
		t.writeSQL(sb, c)
	}
	sb.WriteString(n.closeText)
}

// String returns the reconstructed source text of the whole tree.
func (t *Tree) String() string {
	return t.SQL(t.Root())
}
