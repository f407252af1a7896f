package svg

import (
	"io"
	"strings"
)

var (
	attrEscaper     = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `"`, "&quot;")
	aposAttrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;")
	textEscaper     = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `]]>`, "]]&gt;")
)

func writeNode(b *strings.Builder, n *Node) {
	switch n.Kind {
	case TextNode:
		textEscaper.WriteString(b, n.Text)
	case CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Text)
		b.WriteString("-->")
	case ProcInstNode:
		b.WriteString("<?")
		b.WriteString(n.Tag)
		if n.Text != "" {
			b.WriteByte(' ')
			b.WriteString(n.Text)
		}
		b.WriteString("?>")
	case DirectiveNode:
		b.WriteString("<!")
		b.WriteString(n.Text)
		b.WriteByte('>')
	default:
		writeElement(b, n)
	}
}

func writeElement(b *strings.Builder, n *Node) {
	b.WriteByte('<')
	b.WriteString(n.Tag)
	if n.Attrs != nil {
		for _, kv := range n.Attrs.Order {
			b.WriteByte(' ')
			b.WriteString(kv.Key)
			writeAttrValue(b, kv.Value)
		}
	}
	if len(n.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range n.Children {
		writeNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}

// writeAttrValue writes ="v", or ='v' when v holds double quotes but no
// single quotes.
func writeAttrValue(b *strings.Builder, v string) {
	if strings.Contains(v, `"`) && !strings.Contains(v, "'") {
		b.WriteString(`='`)
		aposAttrEscaper.WriteString(b, v)
		b.WriteByte('\'')
		return
	}
	b.WriteString(`="`)
	attrEscaper.WriteString(b, v)
	b.WriteByte('"')
}

// String serializes the whole document.
func (d *Document) String() string {
	var b strings.Builder
	for _, n := range d.Prolog {
		writeNode(&b, n)
	}
	if d.Root != nil {
		writeNode(&b, d.Root)
	}
	for _, n := range d.Epilog {
		writeNode(&b, n)
	}
	return b.String()
}

// WriteTo writes the serialized document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}
