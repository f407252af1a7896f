package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
)

// ParseError reports text that is not a well-formed single-root document.
type ParseError struct {
	Offset int64 // byte offset in the input where the problem was detected
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("svg: parse error at byte %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError reports whether err is or wraps a [*ParseError].
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

var (
	errNoRoot        = errors.New("no root element")
	errMultipleRoots = errors.New("multiple root elements")
	errTextOutside   = errors.New("character data outside the root element")

	encodingDeclRe = regexp.MustCompile(`\s+encoding\s*=\s*("[^"]*"|'[^']*')`)
)

// Parse builds a document tree from text.
func Parse(text string) (*Document, error) {
	return ParseReader(strings.NewReader(text))
}

// ParseReader builds a document tree from r. Non UTF-8 encodings declared
// in the XML prolog are transcoded, and the encoding declaration is dropped
// from the tree since the serialized form is always UTF-8.
func ParseReader(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	transcoded := false
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		transcoded = true
		return charset.NewReaderLabel(label, input)
	}

	doc := &Document{}
	var stack []*Node
	fail := func(err error) (*Document, error) {
		return nil, &ParseError{Offset: dec.InputOffset(), Err: err}
	}

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && doc.Root != nil {
				return fail(errMultipleRoots)
			}
			n := NewElement(qualified(t.Name))
			for _, a := range t.Attr {
				n.SetAttr(qualified(a.Name), a.Value)
			}
			if len(stack) == 0 {
				doc.Root = n
			} else {
				stack[len(stack)-1].AppendChild(n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			name := qualified(t.Name)
			if len(stack) == 0 {
				return fail(fmt.Errorf("unexpected end element </%s>", name))
			}
			top := stack[len(stack)-1]
			if top.Tag != name {
				return fail(fmt.Errorf("element <%s> closed by </%s>", top.Tag, name))
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			s := string(t)
			if len(stack) == 0 {
				if strings.TrimSpace(s) != "" {
					return fail(errTextOutside)
				}
				continue
			}
			parent := stack[len(stack)-1]
			if strings.TrimSpace(s) == "" && !spacePreserving[parent.Local()] {
				continue
			}
			parent.AppendChild(NewText(s))

		case xml.Comment:
			place(doc, stack, &Node{Kind: CommentNode, Text: string(t)})

		case xml.ProcInst:
			inst := string(t.Inst)
			if transcoded && t.Target == "xml" {
				inst = encodingDeclRe.ReplaceAllString(inst, "")
			}
			place(doc, stack, &Node{Kind: ProcInstNode, Tag: t.Target, Text: inst})

		case xml.Directive:
			place(doc, stack, &Node{Kind: DirectiveNode, Text: string(t)})
		}
	}

	if len(stack) > 0 {
		return fail(fmt.Errorf("unclosed element <%s>", stack[len(stack)-1].Tag))
	}
	if doc.Root == nil {
		return fail(errNoRoot)
	}
	return doc, nil
}

func place(doc *Document, stack []*Node, n *Node) {
	switch {
	case len(stack) > 0:
		stack[len(stack)-1].AppendChild(n)
	case doc.Root == nil:
		doc.Prolog = append(doc.Prolog, n)
	default:
		doc.Epilog = append(doc.Epilog, n)
	}
}

func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}
