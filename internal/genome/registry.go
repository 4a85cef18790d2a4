package genome

import (
	"maps"
	"slices"
)

// Record locates an active TE.
type Record struct {
	ID     int `json:"id"`
	Start  int `json:"start"`
	Length int `json:"length"`
}

// End returns the position one past the last symbol of the TE.
func (r Record) End() int {
	return r.Start + r.Length
}

// collides reports whether inserting at pos lands inside r.
// The end boundary collides, the start boundary does not.
func (r Record) collides(pos int) bool {
	return r.Start < pos && pos <= r.End()
}

// Registry tracks active TEs and allocates their ids.
//
// Ids start at 1 and increase strictly; an id is never handed out twice,
// even after its TE has been disabled. Iteration order of the underlying
// map is not significant: every exported view is sorted by id.
type Registry struct {
	records map[int]Record
	last    int
}

// NewRegistry creates an empty registry whose first id will be 1.
func NewRegistry() *Registry {
	return &Registry{records: make(map[int]Record)}
}

// Last returns the most recently allocated id, or 0 if none has been.
func (r *Registry) Last() int {
	return r.last
}

// Get returns the record of an active TE.
func (r *Registry) Get(id int) (Record, bool) {
	rec, ok := r.records[id]
	return rec, ok
}

// Remove forgets an active TE and returns its record.
func (r *Registry) Remove(id int) (Record, bool) {
	rec, ok := r.records[id]
	if ok {
		delete(r.records, id)
	}
	return rec, ok
}

// Len returns the number of active TEs.
func (r *Registry) Len() int {
	return len(r.records)
}

// IDs returns the active ids in ascending order.
func (r *Registry) IDs() []int {
	return slices.Sorted(maps.Keys(r.records))
}

// Records returns copies of the active records ordered by id.
func (r *Registry) Records() []Record {
	ids := r.IDs()
	out := make([]Record, len(ids))
	for i, id := range ids {
		out[i] = r.records[id]
	}
	return out
}

// admit performs the bookkeeping for inserting length symbols at pos.
//
// The colliding TE, if any, is removed and returned so the caller can repaint
// its span before splicing. All other TEs at or after pos are shifted by
// length. The new TE is registered under a fresh id.
func (r *Registry) admit(pos, length int) (id int, victim Record, collided bool) {
	for key, rec := range r.records {
		switch {
		case rec.collides(pos):
			victim, collided = rec, true
			delete(r.records, key)
		case rec.Start >= pos:
			rec.Start += length
			r.records[key] = rec
		}
	}

	r.last++
	id = r.last
	r.records[id] = Record{ID: id, Start: pos, Length: length}
	return id, victim, collided
}
