// Package order resolves the output order of discovered documentation items.
//
// Declared names take the slot of their position in the declared order, ignored
// names are dropped and everything else follows in discovery order.
package order

import (
	"path/filepath"

	"git.home.luguber.info/inful/docmerge/internal/util/sets"
)

// Spec is a declared ordering: basenames by priority plus basenames to skip.
type Spec struct {
	Order  []string
	Ignore []string
}

// Resolver applies a Spec. The basename to slot table is built once.
type Resolver struct {
	index  map[string]int
	slots  int
	ignore sets.Set[string]
}

// Result is a resolution with the bookkeeping callers may want to log.
type Result struct {
	Items []string
	// Overwritten holds items that lost their declared slot to a later item
	// with the same basename.
	Overwritten []string
	Ignored     []string
}

// NewResolver precomputes the lookup table for spec.
func NewResolver(spec Spec) *Resolver {
	index := make(map[string]int, len(spec.Order))
	for i, name := range spec.Order {
		// First declaration wins when the order list repeats a name.
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	return &Resolver{
		index:  index,
		slots:  len(spec.Order),
		ignore: sets.New(spec.Ignore...),
	}
}

// Resolve orders items (absolute paths or directory names).
//
// Two items sharing a declared basename compete for the same slot and the later
// one wins; the earlier item is not emitted at all.
func (r *Resolver) Resolve(items []string) []string {
	return r.ResolveDetailed(items).Items
}

// ResolveDetailed is Resolve plus the overwritten and ignored items.
func (r *Resolver) ResolveDetailed(items []string) Result {
	var res Result
	slots := make([]string, r.slots)
	filled := make([]bool, r.slots)
	var extra []string

	for _, item := range items {
		base := filepath.Base(item)
		if i, ok := r.index[base]; ok {
			if filled[i] {
				res.Overwritten = append(res.Overwritten, slots[i])
			}
			slots[i] = item
			filled[i] = true
			continue
		}
		if r.ignore.Has(base) {
			res.Ignored = append(res.Ignored, item)
			continue
		}
		extra = append(extra, item)
	}

	res.Items = make([]string, 0, len(items))
	for i, ok := range filled {
		if ok {
			res.Items = append(res.Items, slots[i])
		}
	}
	res.Items = append(res.Items, extra...)
	return res
}

// List is the one-shot form of NewResolver(Spec{order, ignore}).Resolve(items).
func List(order, items, ignore []string) []string {
	return NewResolver(Spec{Order: order, Ignore: ignore}).Resolve(items)
}
