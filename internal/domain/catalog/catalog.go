// Package catalog holds the ordered set of selectable champion identifiers.
package catalog

import (
	"fmt"
	"strings"
)

// Catalog is an ordered, immutable list of unique champion identifiers.
// The order is whatever the source document used.
type Catalog struct {
	ids   []string
	index map[string]int
}

// New builds a Catalog from ids. Blank ids are skipped and the first
// occurrence of a repeated id keeps its position.
func New(ids []string) (Catalog, error) {
	c := Catalog{
		ids:   make([]string, 0, len(ids)),
		index: make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			continue
		}
		if _, dup := c.index[id]; dup {
			continue
		}
		c.index[id] = len(c.ids)
		c.ids = append(c.ids, id)
	}
	if len(c.ids) == 0 {
		return Catalog{}, fmt.Errorf("%w: no champions", ErrCatalogUnavailable)
	}
	return c, nil
}

// Len returns the number of champions.
func (c Catalog) Len() int { return len(c.ids) }

// At returns the id at position i.
func (c Catalog) At(i int) string { return c.ids[i] }

// IDs returns a copy of the ordered ids.
func (c Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Index returns the position of id, or -1.
func (c Catalog) Index(id string) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// Contains reports whether id is selectable.
func (c Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}
