package svg

// Namespace URIs.
const (
	Namespace      = "http://www.w3.org/2000/svg"
	XLinkNamespace = "http://www.w3.org/1999/xlink"
)

// Producer defaults shared by every pattern generator.
const (
	DefaultStroke      = "#000"
	DefaultStrokeWidth = "0.5"
	DefaultFill        = "none"
)

// EditorNamespaces are the namespace prefixes written by vector editors that
// carry no rendering semantics. The sanitizer strips them by default.
var EditorNamespaces = []string{"inkscape", "sodipodi", "dc", "cc", "rdf"}

// DefaultAttributes lists presentation attributes whose value equals the
// SVG initial value, so removing them does not change rendering.
var DefaultAttributes = []Attr{
	{Name: "opacity", Value: "1"},
	{Name: "fill-opacity", Value: "1"},
	{Name: "stroke-opacity", Value: "1"},
	{Name: "stroke-linecap", Value: "butt"},
	{Name: "stroke-linejoin", Value: "miter"},
}

// InheritedProperties are the entries of [DefaultAttributes] that children
// inherit. Their initial value only renders as such when no ancestor sets
// the property to something else.
var InheritedProperties = map[string]bool{
	"fill-opacity":    true,
	"stroke-opacity":  true,
	"stroke-linecap":  true,
	"stroke-linejoin": true,
}

// StyleAttributes is the allow-list of attributes that may be hoisted onto a
// shared group by the similar-element grouper, in emission order.
var StyleAttributes = []string{"fill", "stroke", "stroke-width", "opacity"}

// graphicsElements are the shapes that may be reparented into style groups.
var graphicsElements = map[string]bool{
	"rect":     true,
	"circle":   true,
	"ellipse":  true,
	"line":     true,
	"polyline": true,
	"polygon":  true,
	"path":     true,
	"text":     true,
	"use":      true,
	"image":    true,
}

// definitionContainers never render their content directly.
var definitionContainers = map[string]bool{
	"defs":           true,
	"clipPath":       true,
	"mask":           true,
	"marker":         true,
	"pattern":        true,
	"symbol":         true,
	"linearGradient": true,
	"radialGradient": true,
	"filter":         true,
}

// spacePreserving elements keep whitespace-only text children when parsed.
var spacePreserving = map[string]bool{
	"text":     true,
	"tspan":    true,
	"textPath": true,
	"style":    true,
	"script":   true,
}

// IsGraphicsElement reports whether the local tag name is a renderable shape.
func IsGraphicsElement(local string) bool { return graphicsElements[local] }

// IsDefinitionContainer reports whether the local tag name holds
// non-rendered definitions.
func IsDefinitionContainer(local string) bool { return definitionContainers[local] }
