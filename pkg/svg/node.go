package svg

import (
	"slices"
	"strings"

	"cogentcore.org/core/base/ordmap"
)

// Kind identifies what a Node represents.
type Kind uint8

const (
	ElementNode   Kind = iota // tagged element with attributes and children
	TextNode                  // character data
	CommentNode               // <!-- ... -->
	ProcInstNode              // <?target ...?>
	DirectiveNode             // <!DOCTYPE ...>
)

// Attr is a single name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// Node is one entry of the document tree.
//
// For element nodes Tag holds the qualified name ("path", "xlink:href" style
// prefixes kept verbatim) and Attrs the attributes in insertion order. For
// text and comment nodes Text holds the content. Processing instructions use
// Tag for the target and Text for the instruction.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    *ordmap.Map[string, string]
	Children []*Node
	Text     string

	parent *Node
}

// NewElement creates an element with the given attributes in order.
func NewElement(tag string, attrs ...Attr) *Node {
	n := &Node{Kind: ElementNode, Tag: tag, Attrs: ordmap.New[string, string]()}
	for _, a := range attrs {
		n.Attrs.Add(a.Name, a.Value)
	}
	return n
}

// NewText creates a character-data node.
func NewText(s string) *Node { return &Node{Kind: TextNode, Text: s} }

// NewComment creates a comment node.
func NewComment(s string) *Node { return &Node{Kind: CommentNode, Text: s} }

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool { return n != nil && n.Kind == ElementNode }

// Local returns the tag name without its namespace prefix.
func (n *Node) Local() string {
	_, local := splitPrefix(n.Tag)
	return local
}

// Prefix returns the namespace prefix of the tag, or "" if it has none.
func (n *Node) Prefix() string {
	prefix, _ := splitPrefix(n.Tag)
	return prefix
}

func splitPrefix(name string) (string, string) {
	if prefix, local, ok := strings.Cut(name, ":"); ok && prefix != "" && local != "" {
		return prefix, local
	}
	return "", name
}

// AttrPrefix returns the namespace prefix of an attribute name ("xlink" for
// "xlink:href"), or "" if it has none.
func AttrPrefix(name string) string {
	prefix, _ := splitPrefix(name)
	return prefix
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	if n.Attrs == nil {
		return "", false
	}
	return n.Attrs.ValueByKeyTry(name)
}

// HasAttr reports whether the named attribute is set.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// SetAttr sets an attribute, keeping its original position if it exists and
// appending it otherwise.
func (n *Node) SetAttr(name, value string) {
	if n.Attrs == nil {
		n.Attrs = ordmap.New[string, string]()
	}
	n.Attrs.Add(name, value)
}

// RemoveAttr deletes the named attribute and reports whether it was present.
func (n *Node) RemoveAttr(name string) bool {
	if n.Attrs == nil {
		return false
	}
	return n.Attrs.DeleteKey(name)
}

// AttrList returns a copy of the attributes in order.
func (n *Node) AttrList() []Attr {
	if n.Attrs == nil {
		return nil
	}
	out := make([]Attr, 0, n.Attrs.Len())
	for _, kv := range n.Attrs.Order {
		out = append(out, Attr{Name: kv.Key, Value: kv.Value})
	}
	return out
}

// NumAttrs returns the number of attributes.
func (n *Node) NumAttrs() int { return n.Attrs.Len() }

// Parent returns the node's parent, or nil for a detached node or the root.
func (n *Node) Parent() *Node { return n.parent }

// AppendChild adds c as the last child of n, detaching it from any previous
// parent first.
func (n *Node) AppendChild(c *Node) {
	c.Remove()
	c.parent = n
	n.Children = append(n.Children, c)
}

// InsertChild inserts c at index i among n's children, detaching it from any
// previous parent first. Indices past the end append.
func (n *Node) InsertChild(i int, c *Node) {
	c.Remove()
	if i < 0 {
		i = 0
	}
	if i > len(n.Children) {
		i = len(n.Children)
	}
	c.parent = n
	n.Children = slices.Insert(n.Children, i, c)
}

// ChildIndex returns the position of c among n's children, or -1.
func (n *Node) ChildIndex(c *Node) int {
	return slices.Index(n.Children, c)
}

// RemoveChild detaches c from n and reports whether it was a child.
func (n *Node) RemoveChild(c *Node) bool {
	i := n.ChildIndex(c)
	if i < 0 {
		return false
	}
	n.Children = slices.Delete(n.Children, i, i+1)
	c.parent = nil
	return true
}

// Remove detaches n from its parent and reports whether it had one.
func (n *Node) Remove() bool {
	if n.parent == nil {
		return false
	}
	return n.parent.RemoveChild(n)
}

// Elements returns the element children of n.
func (n *Node) Elements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// TextContent concatenates all descendant text nodes.
func (n *Node) TextContent() string {
	if n.Kind == TextNode {
		return n.Text
	}
	var b strings.Builder
	n.Walk(func(d *Node) bool {
		if d.Kind == TextNode {
			b.WriteString(d.Text)
		}
		return true
	})
	return b.String()
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the node's children. The children slice is copied before it is
// descended into, so fn may detach the node it is visiting.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range slices.Clone(n.Children) {
		c.Walk(fn)
	}
}

// FindAll returns every descendant element (excluding n) whose local tag
// name equals local, in document order.
func (n *Node) FindAll(local string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		c.Walk(func(d *Node) bool {
			if d.Kind == ElementNode && d.Local() == local {
				out = append(out, d)
			}
			return true
		})
	}
	return out
}

// CountElements returns the number of element nodes in the subtree rooted
// at n, including n itself.
func (n *Node) CountElements() int {
	count := 0
	n.Walk(func(d *Node) bool {
		if d.Kind == ElementNode {
			count++
		}
		return true
	})
	return count
}

// String serializes the subtree rooted at n.
func (n *Node) String() string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}
