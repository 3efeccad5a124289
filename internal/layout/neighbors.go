package layout

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

type candidate struct {
	index int
	dist  float64
}

// BuildNeighbors returns, for every point, the indices of its k nearest
// other points in ascending distance order.
//
// Candidates are gathered in index order and stable-sorted, so equal
// distances keep the lower index first. Lists hold min(k, n-1) entries.
func BuildNeighbors(points []r3.Vec, k int) [][]int {
	graph := make([][]int, len(points))
	if k < 0 {
		k = 0
	}
	limit := k
	if n := len(points) - 1; n < limit {
		limit = n
	}
	if limit < 0 {
		limit = 0
	}

	cands := make([]candidate, 0, len(points))
	for i, p := range points {
		cands = cands[:0]
		for j, q := range points {
			if j == i {
				continue
			}
			cands = append(cands, candidate{index: j, dist: r3.Norm(r3.Sub(p, q))})
		}
		sort.SliceStable(cands, func(a, b int) bool { return cands[a].dist < cands[b].dist })

		conns := make([]int, limit)
		for c := 0; c < limit; c++ {
			conns[c] = cands[c].index
		}
		graph[i] = conns
	}
	return graph
}
