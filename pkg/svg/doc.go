// Package svg implements the in-memory document model shared by the scene
// producers and the compliance pipeline.
//
// A [Document] is a single root [Node] (tag "svg") plus any comments,
// processing instructions or directives found before or after it. Element
// nodes keep their attributes in insertion order and their children in
// document order, so serialization is a deterministic function of the tree:
// the same tree always produces the same bytes.
//
// # Parsing
//
// [Parse] builds a fresh, mutable tree from serialized text. Namespace
// prefixes are kept verbatim ("xlink:href", "inkscape:label") rather than
// resolved, which lets callers match and strip vendor prefixes by name.
// Every parse failure is reported as a [*ParseError]; stages that want
// fail-soft behavior test for that type and return their input unchanged.
//
// # Tree mutation
//
// Children hold a back-pointer to their parent. [Node.AppendChild],
// [Node.InsertChild] and [Node.Remove] keep the pointer in sync, so a node
// can always be detached without re-deriving its parent from a traversal.
//
// # Serialization
//
// [Document.String] emits the most compact form: no whitespace is added
// between tags, empty elements are self-closed, attribute values are
// always double-quoted.
package svg
