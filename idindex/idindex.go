// SPDX-License-Identifier: MIT

package idindex

// Method tokens used as error prefixes.
const (
	methodNew          = "New"
	methodOrder        = "Order"
	methodMaster       = "Master"
	methodRelabel      = "Relabel"
	methodTranslateRow = "TranslateRow"
)

// Resolver translates a master ID found in a weights file into the caller's
// ID space. Len reports the size of the caller's domain and drives adjust-mode
// selection (see ModeFor).
type Resolver interface {
	// Len returns the number of IDs the resolver knows about.
	Len() int

	// Resolve returns the translated ID and true, or (0, false) on a miss.
	Resolve(master int) (int, bool)

	// Keys returns every translated ID in order position order.
	Keys() []int
}

// Index is a dense bijection master ID ⇄ order position.
// It is immutable after New and safe to share between readers.
type Index struct {
	masters []int       // order -> master
	orders  map[int]int // master -> order
}

// New builds an Index assigning order i to masters[i].
// Returns ErrDuplicateID if any master ID repeats.
// Complexity: O(n) time and space.
func New(masters []int) (*Index, error) {
	ix := &Index{
		masters: make([]int, len(masters)),
		orders:  make(map[int]int, len(masters)),
	}
	copy(ix.masters, masters)
	for i, m := range masters {
		if prev, dup := ix.orders[m]; dup {
			return nil, indexErrorf(methodNew, ErrDuplicateID, "id %d at positions %d and %d", m, prev, i)
		}
		ix.orders[m] = i
	}

	return ix, nil
}

// Sequential returns the identity index over 0..n-1, used when a dataset
// carries no ID field and order positions double as master IDs.
func Sequential(n int) *Index {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	ix, _ := New(ids) // identity sequence is unique by construction

	return ix
}

// Len returns the number of observations in the index.
func (ix *Index) Len() int { return len(ix.masters) }

// Order returns the order position of master, or ErrKeyNotFound.
func (ix *Index) Order(master int) (int, error) {
	o, ok := ix.orders[master]
	if !ok {
		return 0, indexErrorf(methodOrder, ErrKeyNotFound, "master id %d", master)
	}

	return o, nil
}

// Master returns the master ID stored at order position order, or ErrKeyNotFound.
func (ix *Index) Master(order int) (int, error) {
	if order < 0 || order >= len(ix.masters) {
		return 0, indexErrorf(methodMaster, ErrKeyNotFound, "order %d outside [0,%d)", order, len(ix.masters))
	}

	return ix.masters[order], nil
}

// Resolve implements Resolver by mapping a master ID onto its order position.
func (ix *Index) Resolve(master int) (int, bool) {
	o, ok := ix.orders[master]
	return o, ok
}

// Keys implements Resolver; order positions are 0..n-1.
func (ix *Index) Keys() []int {
	keys := make([]int, len(ix.masters))
	for i := range keys {
		keys[i] = i
	}

	return keys
}

// Masters returns a copy of the master IDs in order position order.
func (ix *Index) Masters() []int {
	out := make([]int, len(ix.masters))
	copy(out, ix.masters)

	return out
}

// Relabeled resolves master IDs to the label stored at their order position.
type Relabeled struct {
	ix     *Index
	labels []int
}

// Relabel pairs an Index with a label column of equal length.
// The label column must itself be unique, otherwise translated rows would collide.
func Relabel(ix *Index, labels []int) (*Relabeled, error) {
	if len(labels) != ix.Len() {
		return nil, indexErrorf(methodRelabel, ErrLabelCount, "expected %d labels, got %d", ix.Len(), len(labels))
	}
	seen := make(map[int]struct{}, len(labels))
	for _, l := range labels {
		if _, dup := seen[l]; dup {
			return nil, indexErrorf(methodRelabel, ErrDuplicateID, "label %d", l)
		}
		seen[l] = struct{}{}
	}
	cp := make([]int, len(labels))
	copy(cp, labels)

	return &Relabeled{ix: ix, labels: cp}, nil
}

// Len implements Resolver.
func (r *Relabeled) Len() int { return r.ix.Len() }

// Resolve implements Resolver.
func (r *Relabeled) Resolve(master int) (int, bool) {
	o, ok := r.ix.orders[master]
	if !ok {
		return 0, false
	}

	return r.labels[o], true
}

// Keys implements Resolver; labels in order position order.
func (r *Relabeled) Keys() []int {
	out := make([]int, len(r.labels))
	copy(out, r.labels)

	return out
}
