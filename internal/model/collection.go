package model

// MediaCollection is an indexable, mutable sequence of MediaEntity. It has
// no set semantics: de-duplication is a pipeline stage, not a collection
// property.
type MediaCollection struct {
	entities []*MediaEntity
}

// NewMediaCollection builds an empty collection.
func NewMediaCollection() *MediaCollection {
	return &MediaCollection{}
}

// Append adds an entity to the end of the collection.
func (c *MediaCollection) Append(e *MediaEntity) {
	c.entities = append(c.entities, e)
}

// Len returns the number of entities currently held.
func (c *MediaCollection) Len() int {
	return len(c.entities)
}

// At returns the entity at index i.
func (c *MediaCollection) At(i int) *MediaEntity {
	return c.entities[i]
}

// ReplaceAt overwrites the entity at index i, the only mutation path for
// swapping out an entity wholesale (e.g. after a merge).
func (c *MediaCollection) ReplaceAt(i int, e *MediaEntity) {
	c.entities[i] = e
}

// RemoveWhere drops every entity for which pred returns true, preserving
// the relative order of survivors.
func (c *MediaCollection) RemoveWhere(pred func(*MediaEntity) bool) {
	kept := c.entities[:0]
	for _, e := range c.entities {
		if !pred(e) {
			kept = append(kept, e)
		}
	}
	c.entities = kept
}

// ForEach visits every entity in collection order. Mutations through the
// supplied pointer are allowed (entities are held by pointer); structural
// changes (append/remove) must go through the collection's own methods.
func (c *MediaCollection) ForEach(fn func(int, *MediaEntity)) {
	for i, e := range c.entities {
		fn(i, e)
	}
}

// Snapshot returns a shallow copy of the backing slice, safe for callers
// that need a stable iteration order without holding onto internal state.
func (c *MediaCollection) Snapshot() []*MediaEntity {
	out := make([]*MediaEntity, len(c.entities))
	copy(out, c.entities)
	return out
}
