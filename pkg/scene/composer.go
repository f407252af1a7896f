package scene

import (
	"strconv"

	"github.com/matzehuels/svgbudget/pkg/compliance"
	"github.com/matzehuels/svgbudget/pkg/errors"
	"github.com/matzehuels/svgbudget/pkg/svg"
)

// Defaults for a new Composer.
const (
	DefaultWidth       = 800
	DefaultHeight      = 600
	DefaultMaxElements = 1000
	DefaultBudgetKB    = 10
)

// ZIndexAttr records a layer's stacking order on its g element.
const ZIndexAttr = "data-z-index"

// Options configures a Composer. Zero fields take the package defaults.
type Options struct {
	Width       float64
	Height      float64
	MaxElements int
	BudgetKB    float64
}

// Composer assembles producers' sub-trees into one document: layers are g
// children of the root, definitions live in a defs element kept as the
// root's first child, and every added element counts against MaxElements.
type Composer struct {
	doc         *svg.Document
	layers      *Registry
	budget      compliance.Budget
	maxElements int
	elements    int
}

// NewComposer returns a composer with an empty root sized to opts.
func NewComposer(opts Options) (*Composer, error) {
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = DefaultHeight
	}
	if opts.MaxElements == 0 {
		opts.MaxElements = DefaultMaxElements
	}
	if opts.BudgetKB == 0 {
		opts.BudgetKB = DefaultBudgetKB
	}
	if opts.Width < 0 || opts.Height < 0 {
		return nil, errors.New(errors.ErrCodeInvalidScene, "scene size must be positive, got %vx%v", opts.Width, opts.Height)
	}
	if opts.MaxElements < 0 {
		return nil, errors.New(errors.ErrCodeInvalidScene, "max elements must be positive, got %d", opts.MaxElements)
	}
	budget, err := compliance.BudgetFromKB(opts.BudgetKB)
	if err != nil {
		return nil, err
	}
	return &Composer{
		doc:         svg.NewDocument(opts.Width, opts.Height),
		layers:      NewRegistry(),
		budget:      budget,
		maxElements: opts.MaxElements,
	}, nil
}

// Document returns the document being built.
func (c *Composer) Document() *svg.Document { return c.doc }

// Layers returns the layer registry.
func (c *Composer) Layers() *Registry { return c.layers }

// ElementCount returns the number of elements added through the composer.
func (c *Composer) ElementCount() int { return c.elements }

// Budget returns the size budget the scene is validated against.
func (c *Composer) Budget() compliance.Budget { return c.budget }

func (c *Composer) reserve(n int) error {
	if c.elements+n > c.maxElements {
		return errors.New(errors.ErrCodeElementLimit,
			"adding %d element(s) would exceed the limit of %d (have %d)", n, c.maxElements, c.elements)
	}
	c.elements += n
	return nil
}

// CreateLayer appends a new layer group to the root.
func (c *Composer) CreateLayer(id string, z int) error {
	if err := errors.ValidateID(id); err != nil {
		return err
	}
	if _, exists := c.layers.Get(id); exists {
		return errors.New(errors.ErrCodeInvalidScene, "layer %q already exists", id)
	}
	if err := c.reserve(1); err != nil {
		return err
	}
	g := svg.NewElement("g",
		svg.Attr{Name: "id", Value: id},
		svg.Attr{Name: ZIndexAttr, Value: strconv.Itoa(z)},
	)
	c.doc.Root.AppendChild(g)
	c.layers.Add(id, g, z)
	return nil
}

// Add appends n to a layer. The whole subtree counts against the element
// limit and nothing is added if it would be exceeded.
func (c *Composer) Add(layerID string, n *svg.Node) error {
	layer, ok := c.layers.Get(layerID)
	if !ok {
		return errors.New(errors.ErrCodeLayerNotFound, "layer %q not found", layerID)
	}
	if err := c.reserve(n.CountElements()); err != nil {
		return err
	}
	layer.AppendChild(n)
	return nil
}

// AddChildren moves the children of group into a layer, dropping the
// wrapper. Producers that return a g use this to avoid an extra level.
func (c *Composer) AddChildren(layerID string, group *svg.Node) error {
	layer, ok := c.layers.Get(layerID)
	if !ok {
		return errors.New(errors.ErrCodeLayerNotFound, "layer %q not found", layerID)
	}
	if err := c.reserve(group.CountElements() - 1); err != nil {
		return err
	}
	for _, child := range group.Elements() {
		layer.AppendChild(child)
	}
	return nil
}

// AddDef adds a definition to the document's defs element, creating it as
// the root's first child when needed. The definition must carry a valid id
// that is not already in use.
func (c *Composer) AddDef(def *svg.Node) error {
	id, _ := def.Attr("id")
	if err := errors.ValidateID(id); err != nil {
		return err
	}
	if c.doc.ElementByID(id) != nil {
		return errors.New(errors.ErrCodeInvalidScene, "id %q already defined", id)
	}
	need := def.CountElements()
	if len(c.doc.Defs()) == 0 {
		need++
	}
	if err := c.reserve(need); err != nil {
		return err
	}
	c.doc.EnsureDefs().AppendChild(def)
	return nil
}

// SetZ changes a layer's stacking order.
func (c *Composer) SetZ(id string, z int) error {
	l, ok := c.layers.Layer(id)
	if !ok {
		return errors.New(errors.ErrCodeLayerNotFound, "layer %q not found", id)
	}
	l.Z = z
	l.Node.SetAttr(ZIndexAttr, strconv.Itoa(z))
	return nil
}

// MergeLayers moves the contents of sources into target and removes the
// source layers from the document.
func (c *Composer) MergeLayers(target string, sources ...string) error {
	before := c.layers.Len()
	err := c.layers.Merge(target, sources...)
	c.elements -= before - c.layers.Len()
	return err
}

// ArrangeLayers moves every layer to the end of its parent in ascending Z
// order, so higher layers paint last. Non-layer children such as defs keep
// their position ahead of the layers.
func (c *Composer) ArrangeLayers() {
	for _, id := range c.layers.Ordered() {
		n, _ := c.layers.Get(id)
		if p := n.Parent(); p != nil {
			p.AppendChild(n)
		}
	}
}

// Render arranges the layers and serializes the document.
func (c *Composer) Render() string {
	c.ArrangeLayers()
	return c.doc.String()
}

// Report is the outcome of Validate.
type Report struct {
	Bytes       int     `json:"bytes"`
	SizeKB      float64 `json:"size_kb"`
	Elements    int     `json:"elements"`
	MaxElements int     `json:"max_elements"`
	SizeOK      bool    `json:"size_ok"`
	ElementsOK  bool    `json:"elements_ok"`
}

// OK reports whether both the size and element constraints hold.
func (r Report) OK() bool { return r.SizeOK && r.ElementsOK }

// Validate renders the scene and checks it against the size budget and the
// element limit.
func (c *Composer) Validate() Report {
	m := c.budget.Measure(c.Render())
	return Report{
		Bytes:       m.Bytes,
		SizeKB:      m.SizeKB(),
		Elements:    c.elements,
		MaxElements: c.maxElements,
		SizeOK:      m.Compliant,
		ElementsOK:  c.elements <= c.maxElements,
	}
}
