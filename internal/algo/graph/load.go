package graph

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/awalterschulze/gographviz"
)

// DemoDOT is the fixed demonstration graph used by every graph algorithm.
const DemoDOT = `graph demo {
	A; B; C; D; E; F; G; H;
	A -- B [weight=4];
	A -- C [weight=2];
	B -- D [weight=5];
	B -- E [weight=3];
	C -- D [weight=1];
	C -- F [weight=6];
	D -- E [weight=2];
	D -- F [weight=3];
	E -- G [weight=4];
	F -- G [weight=2];
	F -- H [weight=5];
	G -- H [weight=1];
}`

const (
	DefaultStart = "A"
	DefaultEnd   = "F"
)

var demo = sync.OnceValues(func() (*Graph, error) { return Load(DemoDOT) })

// Demo returns the parsed demonstration graph. Callers must not modify it.
func Demo() *Graph {
	g, err := demo()
	if err != nil {
		panic(fmt.Sprintf("graph: demo graph: %v", err))
	}
	return g
}

// Load parses an undirected DOT graph. Every edge needs an integer weight
// attribute; edges are treated as bidirectional regardless of the graph kind.
func Load(dot string) (*Graph, error) {
	ast, err := gographviz.ParseString(dot)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DOT: %w", err)
	}

	gv := gographviz.NewGraph()
	if err := gographviz.Analyse(ast, gv); err != nil {
		return nil, fmt.Errorf("failed to analyze DOT: %w", err)
	}

	g := &Graph{adj: map[string][]Neighbor{}}

	// gographviz keeps nodes and edges in the order the statements appear.
	for _, n := range gv.Nodes.Nodes {
		g.Nodes = append(g.Nodes, n.Name)
		g.adj[n.Name] = []Neighbor{}
	}

	for _, e := range gv.Edges.Edges {
		raw := getAttr(e.Attrs, "weight")
		if raw == "" {
			return nil, fmt.Errorf("edge %s--%s has no weight", e.Src, e.Dst)
		}
		w, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid weight on edge %s--%s: %w", e.Src, e.Dst, err)
		}

		g.Edges = append(g.Edges, Edge{From: e.Src, To: e.Dst, Weight: w})
		g.adj[e.Src] = append(g.adj[e.Src], Neighbor{Node: e.Dst, Weight: w})
		g.adj[e.Dst] = append(g.adj[e.Dst], Neighbor{Node: e.Src, Weight: w})
	}

	return g, nil
}

// getAttr reads a Graphviz attribute, stripping the quotes it usually keeps.
func getAttr(attrs gographviz.Attrs, key string) string {
	val, ok := attrs[gographviz.Attr(key)]
	if !ok {
		return ""
	}

	val = strings.TrimSpace(val)

	if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
		val = val[1 : len(val)-1]
	}

	return val
}
