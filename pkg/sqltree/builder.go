package sqltree

import "fmt"

// Builder owns a Tree under construction. Nodes are only ever appended or
// relocated, never removed.
type Builder struct {
	*Tree
}

// NewBuilder returns a builder holding a tree with only a Root node.
func NewBuilder() *Builder {
	t := &Tree{nodes: make([]node, 1, 64)}
	t.nodes[0] = node{tag: Root, parent: None}
	return &Builder{Tree: t}
}

func (b *Builder) newNode(tag Tag, text string, parent NodeID) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, node{tag: tag, text: text, parent: parent})
	return id
}

// Append creates a node as the last child of parent.
func (b *Builder) Append(parent NodeID, tag Tag, text string) NodeID {
	id := b.newNode(tag, text, parent)
	p := &b.nodes[parent]
	p.children = append(p.children, id)
	return id
}

// InsertBefore creates a node as the sibling immediately preceding sibling.
func (b *Builder) InsertBefore(sibling NodeID, tag Tag, text string) NodeID {
	parent := b.nodes[sibling].parent
	id := b.newNode(tag, text, parent)
	b.insertChild(parent, b.indexOf(parent, sibling), id)
	return id
}

// MoveBefore detaches node from its parent and re-attaches it immediately
// before sibling.
func (b *Builder) MoveBefore(node, sibling NodeID) {
	b.detach(node)
	parent := b.nodes[sibling].parent
	b.nodes[node].parent = parent
	b.insertChild(parent, b.indexOf(parent, sibling), node)
}

// SetCloseText records the keyword that closed a container.
func (b *Builder) SetCloseText(id NodeID, text string) {
	b.nodes[id].closeText = text
}

// Finish hands out the completed tree. The builder must not be used afterwards.
func (b *Builder) Finish() *Tree {
	t := b.Tree
	b.Tree = nil
	return t
}

func (b *Builder) indexOf(parent, child NodeID) int {
	for i, c := range b.nodes[parent].children {
		if c == child {
			return i
		}
	}
	panic(fmt.Sprintf("sqltree: node %d is not a child of %d", child, parent))
}

func (b *Builder) insertChild(parent NodeID, at int, child NodeID) {
	p := &b.nodes[parent]
	p.children = append(p.children, None)
	copy(p.children[at+1:], p.children[at:])
	p.children[at] = child
}

func (b *Builder) detach(id NodeID) {
	parent := b.nodes[id].parent
	at := b.indexOf(parent, id)
	p := &b.nodes[parent]
	p.children = append(p.children[:at], p.children[at+1:]...)
	b.nodes[id].parent = None
}
