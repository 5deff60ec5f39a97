package weights

import "sort"

// Components partitions the domain into connected components, treating every
// edge as undirected. Components are listed in order of their smallest ID and
// each component is ascending. Dangling neighbors are ignored.
//
// Time: O(n + nnz). Memory: O(n + nnz) for the symmetric closure.
func (w *W) Components() [][]int {
	// Symmetrize so that asymmetric rows (KNN) still join components.
	undirected := make(map[int][]int, len(w.ids))
	for _, id := range w.ids {
		for _, nb := range w.neighbors[id] {
			if nb == id || !w.Has(nb) {
				continue
			}
			undirected[id] = append(undirected[id], nb)
			undirected[nb] = append(undirected[nb], id)
		}
	}

	seen := make(map[int]bool, len(w.ids))
	var comps [][]int
	for _, start := range w.ids {
		if seen[start] {
			continue
		}
		queue := []int{start}
		seen[start] = true
		for qi := 0; qi < len(queue); qi++ {
			for _, nb := range undirected[queue[qi]] {
				if !seen[nb] {
					seen[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		sort.Ints(queue)
		comps = append(comps, queue)
	}

	return comps
}

// Islands returns the IDs that have no neighbors at all, ascending.
func (w *W) Islands() []int {
	out := make([]int, 0)
	for _, id := range w.ids {
		if len(w.neighbors[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}
