package cadmodel

import "sort"

// EmptyBlocks returns the sorted names of the blocks without content.
func EmptyBlocks(doc *Document) []string {
	var out []string
	for _, name := range doc.Blocks.Names() {
		if ents, _ := doc.Blocks.Lookup(name); len(ents) == 0 {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// UnusedBlocks returns the sorted names of the blocks never instantiated,
// neither from the top level nor from a (transitively) used block.
func UnusedBlocks(doc *Document) []string {
	used := map[string]bool{}
	queue := insertedNames(doc.Entities)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if used[name] {
			continue
		}
		used[name] = true
		if ents, ok := doc.Blocks.Lookup(name); ok {
			queue = append(queue, insertedNames(ents)...)
		}
	}

	var out []string
	for _, name := range doc.Blocks.Names() {
		if !used[name] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func insertedNames(entities []Entity) []string {
	var out []string
	for _, e := range entities {
		if ins, ok := e.(Insert); ok {
			out = append(out, ins.Name)
		}
	}
	return out
}

// CountKinds returns the number of entities of each kind, in block
// definitions and at the top level.
func CountKinds(doc *Document) map[Kind]int {
	out := map[Kind]int{}
	for _, name := range doc.Blocks.Names() {
		ents, _ := doc.Blocks.Lookup(name)
		for _, e := range ents {
			out[e.Kind()]++
		}
	}
	for _, e := range doc.Entities {
		out[e.Kind()]++
	}
	return out
}
