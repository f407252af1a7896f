package svg

// Document is a parsed or generated SVG file: one root element plus the
// comments, processing instructions and directives around it.
type Document struct {
	Prolog []*Node
	Root   *Node
	Epilog []*Node
}

// NewDocument returns a document with an empty svg root carrying the SVG
// namespace and the given dimensions. Zero dimensions are omitted.
func NewDocument(width, height float64) *Document {
	root := NewElement("svg", Attr{Name: "xmlns", Value: Namespace})
	if width > 0 {
		root.SetAttr("width", Num(width))
	}
	if height > 0 {
		root.SetAttr("height", Num(height))
	}
	if width > 0 && height > 0 {
		root.SetAttr("viewBox", "0 0 "+Num(width)+" "+Num(height))
	}
	return &Document{Root: root}
}

// Walk visits every node of the document in order: prolog, root subtree,
// epilog.
func (d *Document) Walk(fn func(*Node) bool) {
	for _, n := range d.Prolog {
		n.Walk(fn)
	}
	if d.Root != nil {
		d.Root.Walk(fn)
	}
	for _, n := range d.Epilog {
		n.Walk(fn)
	}
}

// Defs returns every defs element in the document, in order.
func (d *Document) Defs() []*Node {
	if d.Root == nil {
		return nil
	}
	return d.Root.FindAll("defs")
}

// EnsureDefs returns the first defs element, creating one as the first
// child of the root if none exists.
func (d *Document) EnsureDefs() *Node {
	if defs := d.Defs(); len(defs) > 0 {
		return defs[0]
	}
	defs := NewElement("defs")
	d.Root.InsertChild(0, defs)
	return defs
}

// ElementByID returns the first element whose id attribute equals id.
func (d *Document) ElementByID(id string) *Node {
	var found *Node
	if d.Root == nil {
		return nil
	}
	d.Root.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if v, ok := n.Attr("id"); ok && v == id && n.IsElement() {
			found = n
			return false
		}
		return true
	})
	return found
}

// RemoveMisc drops comments and processing instructions everywhere,
// including before and after the root, and reports how many were removed.
func (d *Document) RemoveMisc() int {
	removed := 0
	keep := func(nodes []*Node) []*Node {
		out := nodes[:0]
		for _, n := range nodes {
			if n.Kind == CommentNode || n.Kind == ProcInstNode {
				removed++
				continue
			}
			out = append(out, n)
		}
		return out
	}
	d.Prolog = keep(d.Prolog)
	d.Epilog = keep(d.Epilog)
	if d.Root != nil {
		d.Root.Walk(func(n *Node) bool {
			if n.Kind == CommentNode || n.Kind == ProcInstNode {
				n.Remove()
				removed++
				return false
			}
			return true
		})
	}
	return removed
}
