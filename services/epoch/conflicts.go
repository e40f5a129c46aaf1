package epoch

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/bsv-blockchain/epochledger/model"
)

// ConflictGraph has one node per feasible candidate and an edge between two candidates
// that reference a common outpoint.
type ConflictGraph struct {
	adj []*bitset.BitSet
}

// NewConflictGraph builds the graph over candidates, node i being candidates[i].
func NewConflictGraph(candidates []Candidate) *ConflictGraph {
	n := uint(len(candidates))

	g := &ConflictGraph{
		adj: make([]*bitset.BitSet, n),
	}

	for i := range g.adj {
		g.adj[i] = bitset.New(n)
	}

	spenders := make(map[model.Outpoint][]uint, len(candidates))

	for i, c := range candidates {
		for _, op := range c.Tx.Spends() {
			spenders[op] = append(spenders[op], uint(i))
		}
	}

	for _, nodes := range spenders {
		for a := 0; a < len(nodes); a++ {
			for b := a + 1; b < len(nodes); b++ {
				if nodes[a] != nodes[b] {
					g.adj[nodes[a]].Set(nodes[b])
					g.adj[nodes[b]].Set(nodes[a])
				}
			}
		}
	}

	return g
}

func (g *ConflictGraph) Len() int {
	return len(g.adj)
}

func (g *ConflictGraph) Conflicts(a, b int) bool {
	return g.adj[a].Test(uint(b))
}

// Degree is the number of candidates node i conflicts with.
func (g *ConflictGraph) Degree(i int) int {
	return int(g.adj[i].Count()) //nolint:gosec // bounded by the candidate count
}

// Neighbours returns the nodes adjacent to i in increasing order.
func (g *ConflictGraph) Neighbours(i int) []int {
	neighbours := make([]int, 0, g.adj[i].Count())

	for j, ok := g.adj[i].NextSet(0); ok; j, ok = g.adj[i].NextSet(j + 1) {
		neighbours = append(neighbours, int(j)) //nolint:gosec // bounded by the candidate count
	}

	return neighbours
}

// Independent reports whether no two nodes of set conflict.
func (g *ConflictGraph) Independent(set []int) bool {
	for a := 0; a < len(set); a++ {
		for b := a + 1; b < len(set); b++ {
			if g.Conflicts(set[a], set[b]) {
				return false
			}
		}
	}

	return true
}

// masks returns the adjacency as uint64 bit masks. Only valid while Len() <= 64.
func (g *ConflictGraph) masks() []uint64 {
	masks := make([]uint64, len(g.adj))

	for i := range g.adj {
		for _, j := range g.Neighbours(i) {
			masks[i] |= 1 << uint(j)
		}
	}

	return masks
}
