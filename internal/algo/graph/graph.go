// Package graph records traversal, shortest-path and spanning-tree traces on
// a small weighted demo graph.
package graph

import (
	"math"
	"slices"

	"github.com/awmpietro/algoviz/internal/step"
)

// BFS visits start, then dequeues nodes in FIFO order, discovering each
// unvisited neighbor in adjacency order.
func BFS(g *Graph, start string) step.Sequence {
	rec := step.NewRecorder("bfs")
	if !g.Has(start) {
		return rec.Sequence()
	}

	visited := map[string]bool{start: true}
	queue := []string{start}
	rec.Add(step.VisitNode(start))

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		rec.Add(step.SetCurrent(current))

		for _, nb := range g.Neighbors(current) {
			if visited[nb.Node] {
				continue
			}
			visited[nb.Node] = true
			queue = append(queue, nb.Node)
			rec.Add(step.DiscoverEdge(current, nb.Node))
			rec.Add(step.VisitNode(nb.Node))
		}
	}
	return rec.Sequence()
}

// DFS is the recursive depth-first traversal: a node becomes current and is
// visited before any of its edges are discovered.
func DFS(g *Graph, start string) step.Sequence {
	rec := step.NewRecorder("dfs")
	if !g.Has(start) {
		return rec.Sequence()
	}

	visited := map[string]bool{}
	var walk func(node string)
	walk = func(node string) {
		visited[node] = true
		rec.Add(step.SetCurrent(node))
		rec.Add(step.VisitNode(node))
		for _, nb := range g.Neighbors(node) {
			if !visited[nb.Node] {
				rec.Add(step.DiscoverEdge(node, nb.Node))
				walk(nb.Node)
			}
		}
	}
	walk(start)
	return rec.Sequence()
}

// Dijkstra extracts the closest unvisited node each round, scanning nodes in
// declaration order so ties go to the earlier node. Once every reachable node
// is settled the predecessor chain from end is highlighted; no path means no
// HighlightPath steps.
func Dijkstra(g *Graph, start, end string) step.Sequence {
	rec := step.NewRecorder("dijkstra")
	if !g.Has(start) {
		return rec.Sequence()
	}

	dist := make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		dist[n] = math.MaxInt
	}
	dist[start] = 0
	prev := map[string]string{}
	settled := map[string]bool{}

	for range g.Nodes {
		current, best := "", math.MaxInt
		for _, n := range g.Nodes {
			if !settled[n] && dist[n] < best {
				current, best = n, dist[n]
			}
		}
		if current == "" {
			break
		}

		settled[current] = true
		rec.Add(step.SetCurrent(current))
		rec.Add(step.VisitNode(current))

		for _, nb := range g.Neighbors(current) {
			if settled[nb.Node] {
				continue
			}
			if d := dist[current] + nb.Weight; d < dist[nb.Node] {
				dist[nb.Node] = d
				prev[nb.Node] = current
				rec.Add(step.UpdateDistance(nb.Node, d))
			}
		}
	}

	for node := end; ; {
		from, ok := prev[node]
		if !ok {
			break
		}
		rec.Add(step.HighlightPath(node, from))
		node = from
	}
	return rec.Sequence()
}

// SpanningTree runs Kruskal's selection: edges in ascending weight order
// (ties keep declaration order), each accepted unless both endpoints are
// already connected. The prim id reuses it under its own label.
func SpanningTree(g *Graph, label string) step.Sequence {
	rec := step.NewRecorder(label)

	edges := slices.Clone(g.Edges)
	slices.SortStableFunc(edges, func(a, b Edge) int { return a.Weight - b.Weight })

	uf := newUnionFind(g.Nodes)
	for _, e := range edges {
		if uf.union(e.From, e.To) {
			rec.Add(step.AddToSpanningTree(e.From, e.To, e.Weight))
		}
	}
	return rec.Sequence()
}

type unionFind struct {
	parent map[string]string
	rank   map[string]int
}

func newUnionFind(nodes []string) *unionFind {
	uf := &unionFind{parent: make(map[string]string, len(nodes)), rank: make(map[string]int, len(nodes))}
	for _, n := range nodes {
		uf.parent[n] = n
	}
	return uf
}

func (uf *unionFind) find(n string) string {
	for uf.parent[n] != n {
		uf.parent[n] = uf.parent[uf.parent[n]]
		n = uf.parent[n]
	}
	return n
}

// union merges the sets of a and b and reports whether they were disjoint.
func (uf *unionFind) union(a, b string) bool {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return false
	}
	switch {
	case uf.rank[ra] < uf.rank[rb]:
		uf.parent[ra] = rb
	case uf.rank[ra] > uf.rank[rb]:
		uf.parent[rb] = ra
	default:
		uf.parent[rb] = ra
		uf.rank[ra]++
	}
	return true
}
