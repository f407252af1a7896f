package scene

import (
	"slices"

	"cogentcore.org/core/base/ordmap"

	"github.com/matzehuels/svgbudget/pkg/errors"
	"github.com/matzehuels/svgbudget/pkg/svg"
)

// Layer is a named sub-tree with a stacking order. Higher Z paints later.
type Layer struct {
	ID   string
	Z    int
	Node *svg.Node
}

// Registry tracks layers by id in insertion order.
type Registry struct {
	layers *ordmap.Map[string, *Layer]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{layers: ordmap.New[string, *Layer]()}
}

// Add registers node under id. Re-adding an id replaces the layer but keeps
// its original insertion position.
func (r *Registry) Add(id string, node *svg.Node, z int) {
	r.layers.Add(id, &Layer{ID: id, Z: z, Node: node})
}

// Get returns the layer's node.
func (r *Registry) Get(id string) (*svg.Node, bool) {
	l, ok := r.layers.ValueByKeyTry(id)
	if !ok {
		return nil, false
	}
	return l.Node, true
}

// Layer returns the full layer record.
func (r *Registry) Layer(id string) (*Layer, bool) {
	return r.layers.ValueByKeyTry(id)
}

// SetZ updates a layer's stacking order and reports whether it exists.
func (r *Registry) SetZ(id string, z int) bool {
	l, ok := r.layers.ValueByKeyTry(id)
	if !ok {
		return false
	}
	l.Z = z
	return true
}

// Ordered returns layer ids by ascending Z. Layers with equal Z keep their
// insertion order.
func (r *Registry) Ordered() []string {
	layers := r.layers.Values()
	slices.SortStableFunc(layers, func(a, b *Layer) int { return a.Z - b.Z })
	ids := make([]string, len(layers))
	for i, l := range layers {
		ids[i] = l.ID
	}
	return ids
}

// Merge moves the children of every source layer into target, detaches the
// emptied source nodes from the document and forgets them. Sources that do
// not exist are skipped; the returned error names the first one.
func (r *Registry) Merge(target string, sources ...string) error {
	dst, ok := r.Get(target)
	if !ok {
		return errors.New(errors.ErrCodeLayerNotFound, "layer %q not found", target)
	}
	var firstErr error
	for _, id := range sources {
		src, ok := r.Get(id)
		if !ok {
			if firstErr == nil {
				firstErr = errors.New(errors.ErrCodeLayerNotFound, "layer %q not found", id)
			}
			continue
		}
		if id == target {
			continue
		}
		for _, c := range slices.Clone(src.Children) {
			dst.AppendChild(c)
		}
		src.Remove()
		r.layers.DeleteKey(id)
	}
	return firstErr
}

// Clear forgets every layer. Nodes already in a document are left in place.
func (r *Registry) Clear() {
	r.layers.Reset()
	r.layers.Init()
}

// Len returns the number of layers.
func (r *Registry) Len() int { return r.layers.Len() }
