package svg

import "testing"

func TestNodeAttrs(t *testing.T) {
	n := NewElement("rect", Attr{"x", "1"}, Attr{"y", "2"})
	n.SetAttr("x", "5")
	n.SetAttr("width", "3")

	if got := n.String(); got != `<rect x="5" y="2" width="3"/>` {
		t.Errorf("String() = %q", got)
	}
	if !n.RemoveAttr("y") {
		t.Error("RemoveAttr(y) = false")
	}
	if n.RemoveAttr("y") {
		t.Error("second RemoveAttr(y) = true")
	}
	if v, ok := n.Attr("width"); !ok || v != "3" {
		t.Errorf("Attr(width) = %q, %v", v, ok)
	}
	if n.NumAttrs() != 2 {
		t.Errorf("NumAttrs() = %d, want 2", n.NumAttrs())
	}
}

func TestNodeReparent(t *testing.T) {
	a := NewElement("g")
	b := NewElement("g")
	c := NewElement("circle")

	a.AppendChild(c)
	b.AppendChild(c)

	if len(a.Children) != 0 {
		t.Errorf("a still has %d children", len(a.Children))
	}
	if c.Parent() != b {
		t.Error("c parent should be b")
	}

	d := NewElement("rect")
	b.InsertChild(0, d)
	if b.ChildIndex(d) != 0 || b.ChildIndex(c) != 1 {
		t.Errorf("unexpected order: %s", b)
	}

	if !c.Remove() {
		t.Error("Remove() = false")
	}
	if c.Parent() != nil || len(b.Children) != 1 {
		t.Error("c not detached")
	}
	if c.Remove() {
		t.Error("detached Remove() = true")
	}
}

func TestNodeLocalPrefix(t *testing.T) {
	tests := []struct {
		tag, prefix, local string
	}{
		{"path", "", "path"},
		{"inkscape:label", "inkscape", "label"},
		{":odd", "", ":odd"},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			n := NewElement(tt.tag)
			if n.Prefix() != tt.prefix || n.Local() != tt.local {
				t.Errorf("got (%q, %q), want (%q, %q)", n.Prefix(), n.Local(), tt.prefix, tt.local)
			}
		})
	}
}

func TestWalkAllowsRemoval(t *testing.T) {
	doc, err := Parse(`<svg><title>x</title><g/><title>y</title><rect/></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	doc.Root.Walk(func(n *Node) bool {
		if n.Local() == "title" {
			n.Remove()
			return false
		}
		return true
	})
	if got := doc.String(); got != `<svg><g/><rect/></svg>` {
		t.Errorf("String() = %q", got)
	}
}

func TestDocumentHelpers(t *testing.T) {
	doc := NewDocument(800, 600)
	if got := doc.String(); got != `<svg xmlns="http://www.w3.org/2000/svg" width="800" height="600" viewBox="0 0 800 600"/>` {
		t.Errorf("NewDocument() = %q", got)
	}

	defs := doc.EnsureDefs()
	if doc.EnsureDefs() != defs {
		t.Error("EnsureDefs() created a second defs")
	}
	grad := NewElement("linearGradient", Attr{"id", "g1"})
	defs.AppendChild(grad)
	if doc.ElementByID("g1") != grad {
		t.Error("ElementByID(g1) not found")
	}
	if doc.ElementByID("missing") != nil {
		t.Error("ElementByID(missing) should be nil")
	}
	if n := doc.Root.CountElements(); n != 3 {
		t.Errorf("CountElements() = %d, want 3", n)
	}
}

func TestRemoveMisc(t *testing.T) {
	doc, err := Parse(`<?xml version="1.0"?><!--a--><svg><!--b--><?pi x?><g/></svg><!--c-->`)
	if err != nil {
		t.Fatal(err)
	}
	if n := doc.RemoveMisc(); n != 5 {
		t.Errorf("RemoveMisc() = %d, want 5", n)
	}
	if got := doc.String(); got != `<svg><g/></svg>` {
		t.Errorf("String() = %q", got)
	}
}
