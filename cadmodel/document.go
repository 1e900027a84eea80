package cadmodel

// Registry maps block names to their content.
// It is built once, before rendering, and is read-only afterwards.
type Registry struct {
	blocks map[string][]Entity
	names  []string // definition order
}

// NewRegistry indexes the given blocks. When two blocks share a name,
// the last one wins.
func NewRegistry(blocks ...Block) Registry {
	r := Registry{blocks: make(map[string][]Entity, len(blocks))}
	for _, b := range blocks {
		r.add(b)
	}
	return r
}

func (r *Registry) add(b Block) {
	if _, dup := r.blocks[b.Name]; !dup {
		r.names = append(r.names, b.Name)
	}
	r.blocks[b.Name] = b.Entities
}

// Lookup returns the content of the block `name`.
func (r Registry) Lookup(name string) ([]Entity, bool) {
	ents, ok := r.blocks[name]
	return ents, ok
}

// Names returns the block names, in definition order.
func (r Registry) Names() []string { return append([]string(nil), r.names...) }

// Len returns the number of blocks.
func (r Registry) Len() int { return len(r.names) }

// Document is a decoded drawing, split between block definitions
// and top-level entities.
type Document struct {
	Blocks   Registry
	Entities []Entity // top-level entities, in drawing order
}

// Partition splits the raw item list: Block items go to the registry,
// every other item is a top-level entity.
func Partition(items []Entity) *Document {
	doc := &Document{Blocks: NewRegistry()}
	for _, item := range items {
		if b, ok := item.(Block); ok {
			doc.Blocks.add(b)
			continue
		}
		doc.Entities = append(doc.Entities, item)
	}
	return doc
}
