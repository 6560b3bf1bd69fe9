package format

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/leapstack-labs/sqltree/pkg/sqltree"
	"gopkg.in/yaml.v3"
)

// Node is the document form of a tree node.
type Node struct {
	Tag       string  `json:"tag" yaml:"tag"`
	Text      string  `json:"text,omitempty" yaml:"text,omitempty"`
	CloseText string  `json:"closeText,omitempty" yaml:"closeText,omitempty"`
	Children  []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Document is a whole tree with its flags.
type Document struct {
	ErrorFound     bool  `json:"errorFound,omitempty" yaml:"errorFound,omitempty"`
	DataLossLikely bool  `json:"dataLossLikely,omitempty" yaml:"dataLossLikely,omitempty"`
	Root           *Node `json:"root" yaml:"root"`
}

// NewDocument converts a tree into its document form.
func NewDocument(tree *sqltree.Tree) *Document {
	return &Document{
		ErrorFound:     tree.ErrorFound,
		DataLossLikely: tree.DataLossPossible,
		Root:           newNode(tree, tree.Root()),
	}
}

func newNode(tree *sqltree.Tree, id sqltree.NodeID) *Node {
	n := &Node{
		Tag:       tree.Tag(id).String(),
		Text:      tree.Text(id),
		CloseText: tree.CloseText(id),
	}
	for _, c := range tree.Children(id) {
		n.Children = append(n.Children, newNode(tree, c))
	}
	return n
}

// WriteJSON writes the tree as indented JSON.
func WriteJSON(w io.Writer, tree *sqltree.Tree) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(tree)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteYAML writes the trees as a YAML stream, one document per tree.
func WriteYAML(w io.Writer, trees ...*sqltree.Tree) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, tree := range trees {
		if err := enc.Encode(NewDocument(tree)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}

// WriteXML writes the tree as XML: one element per node, named by its tag,
// holding its text, then its children, then its closing keyword. Reading
// the character data in document order gives back the source text.
func WriteXML(w io.Writer, tree *sqltree.Tree) error {
	enc := xml.NewEncoder(w)
	if err := enc.Encode(xmlDocument{tree}); err != nil {
		return fmt.Errorf("encode xml: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("encode xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

type xmlDocument struct {
	tree *sqltree.Tree
}

func (d xmlDocument) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	var attrs []xml.Attr
	if d.tree.ErrorFound {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "errorFound"}, Value: "1"})
	}
	if d.tree.DataLossPossible {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "dataLossLikely"}, Value: "1"})
	}
	return encodeXMLNode(enc, d.tree, d.tree.Root(), attrs)
}

func encodeXMLNode(enc *xml.Encoder, tree *sqltree.Tree, id sqltree.NodeID, attrs []xml.Attr) error {
	start := xml.StartElement{Name: xml.Name{Local: tree.Tag(id).String()}, Attr: attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if text := tree.Text(id); text != "" {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	for _, c := range tree.Children(id) {
		if err := encodeXMLNode(enc, tree, c, nil); err != nil {
			return err
		}
	}
	if closing := tree.CloseText(id); closing != "" {
		if err := enc.EncodeToken(xml.CharData(closing)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}
