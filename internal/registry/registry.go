// Package registry resolves series names to their position in the
// accumulator's creation-ordered collection.
//
// The registry is two cooperating structures: an append-only position space
// (positions are assigned in creation order and never reused or shifted) and
// a name lookup keyed by xxHash64 so the common path avoids string hashing.
// Names whose hash collides with an earlier name fall back to an exact
// string map, so lookups stay correct even under collisions.
package registry

import "github.com/cespare/xxhash/v2"

// Registry maps series names to stable positions.
//
// Invariant: for every registered name, Name(pos) == name where pos is the
// position Add returned. Positions never drift as the registry grows.
type Registry struct {
	byHash   map[uint64]int // hash → position for collision-free names
	names    []string       // position → name, creation order
	collided map[string]int // exact-name fallback for hash collisions
}

// New creates an empty registry. capHint pre-sizes the internal structures
// and does not affect behavior.
func New(capHint int) *Registry {
	if capHint < 0 {
		capHint = 0
	}

	return &Registry{
		byHash: make(map[uint64]int, capHint),
		names:  make([]string, 0, capHint),
	}
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return len(r.names)
}

// Name returns the name registered at the given position.
func (r *Registry) Name(pos int) string {
	return r.names[pos]
}

// Names returns the registered names in creation order. The slice is
// borrowed and must not be mutated.
func (r *Registry) Names() []string {
	return r.names
}

// Lookup returns the position of name, or false if it was never registered.
func (r *Registry) Lookup(name string) (int, bool) {
	if r.collided != nil {
		if pos, ok := r.collided[name]; ok {
			return pos, true
		}
	}

	pos, ok := r.byHash[hashID(name)]
	if !ok || r.names[pos] != name {
		return 0, false
	}

	return pos, true
}

// Add registers name at the next position and returns that position. The
// caller must ensure the name is not already registered.
func (r *Registry) Add(name string) int {
	return r.add(name, hashID(name))
}

// hashID computes the xxHash64 a name is keyed under in the fast path.
func hashID(name string) uint64 {
	return xxhash.Sum64String(name)
}

func (r *Registry) add(name string, h uint64) int {
	pos := len(r.names)

	if prev, ok := r.byHash[h]; ok && r.names[prev] != name {
		// Hash collision with an earlier name: route this name through the
		// exact-string fallback and leave the earlier mapping intact.
		if r.collided == nil {
			r.collided = make(map[string]int)
		}
		r.collided[name] = pos
	} else {
		r.byHash[h] = pos
	}

	r.names = append(r.names, name)

	return pos
}
