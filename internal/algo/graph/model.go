package graph

// Graph is an undirected weighted graph. Node and adjacency order follow the
// order in which the DOT source declares them; traversals depend on it.
type Graph struct {
	Nodes []string
	Edges []Edge

	adj map[string][]Neighbor
}

type Edge struct {
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`
	Weight int    `json:"weight" yaml:"weight"`
}

type Neighbor struct {
	Node   string
	Weight int
}

// Neighbors returns the adjacency list of node in declaration order.
func (g *Graph) Neighbors(node string) []Neighbor {
	return g.adj[node]
}

// Has reports whether node is part of the graph.
func (g *Graph) Has(node string) bool {
	_, ok := g.adj[node]
	return ok
}
