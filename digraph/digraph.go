package digraph

import (
	"fmt"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Graph is a directed graph. The vertex set is fixed at creation time, edges
// may be added later. Parallel edges and self-loops are allowed.
type Graph struct {
	vertices []string
	index    map[string]int
	edges    [][]int
}

// New creates a graph without edges. Duplicate vertex names are ignored.
func New(vertices []string) *Graph {
	g := &Graph{index: make(map[string]int, len(vertices))}
	for _, v := range vertices {
		if _, ok := g.index[v]; ok {
			continue
		}
		g.index[v] = len(g.vertices)
		g.vertices = append(g.vertices, v)
	}
	g.edges = make([][]int, len(g.vertices))
	return g
}

// AddEdge adds an edge from → to. Both vertices must exist.
func (g *Graph) AddEdge(from, to string) error {
	f, ok := g.index[from]
	if !ok {
		return fmt.Errorf("unknown vertex %q", from)
	}
	t, ok := g.index[to]
	if !ok {
		return fmt.Errorf("unknown vertex %q", to)
	}
	g.edges[f] = append(g.edges[f], t)
	return nil
}

// Has is true if v is a vertex of g.
func (g *Graph) Has(v string) bool {
	_, ok := g.index[v]
	return ok
}

// Vertices returns the vertices in creation order.
func (g *Graph) Vertices() []string {
	return append([]string(nil), g.vertices...)
}

// Neighbors returns the targets of the edges leaving v, in insertion order.
func (g *Graph) Neighbors(v string) []string {
	i, ok := g.index[v]
	if !ok {
		return nil
	}
	n := make([]string, len(g.edges[i]))
	for k, t := range g.edges[i] {
		n[k] = g.vertices[t]
	}
	return n
}

// --- Depth first search ----------------------------------------------------

// frame is a DFS activation: a vertex and the index of its next edge.
type frame struct {
	v    int
	next int
}

// visitor is called for every edge examined during a DFS, with a flag telling
// whether the edge's target had already been visited.
type visitor func(from, to int, seen bool)

// explore runs a depth-first search from root, in exactly the order a
// recursive implementation would visit vertices and examine edges.
func (g *Graph) explore(root int, visited *hashset.Set, visit visitor) {
	stack := arraystack.New()
	visited.Add(root)
	stack.Push(&frame{v: root})
	for !stack.Empty() {
		top, _ := stack.Peek()
		f := top.(*frame)
		if f.next == len(g.edges[f.v]) {
			stack.Pop()
			continue
		}
		t := g.edges[f.v][f.next]
		f.next++
		seen := visited.Contains(t)
		if visit != nil {
			visit(f.v, t, seen)
		}
		if !seen {
			visited.Add(t)
			stack.Push(&frame{v: t})
		}
	}
}

// Reachable returns all vertices reachable from v (including v itself), in
// DFS pre-order.
func (g *Graph) Reachable(v string) []string {
	i, ok := g.index[v]
	if !ok {
		return nil
	}
	visited := hashset.New()
	order := []string{v}
	g.explore(i, visited, func(from, to int, seen bool) {
		if !seen {
			order = append(order, g.vertices[to])
		}
	})
	return order
}

// Components counts the DFS trees needed to visit every vertex, launching a
// search from each unvisited vertex in creation order.
func (g *Graph) Components() int {
	visited := hashset.New()
	count := 0
	for v := range g.vertices {
		if !visited.Contains(v) {
			count++
			g.explore(v, visited, nil)
		}
	}
	return count
}

// IsConnected is true if a single DFS tree, started at the first vertex,
// spans the graph. Note that for directed graphs this depends on
// vertex order: it is true iff every vertex is reachable from the first one
// or from vertices reached before it.
func (g *Graph) IsConnected() bool {
	return g.Components() == 1
}

// HasCycle reports whether a global depth-first search ever examines an edge
// whose target has already been visited. This is the loose notion of a
// cycle used for scoring grammars: it is true for every directed cycle, but
// also for cross and forward edges (e.g. a diamond a→b, a→c, b→d, c→d).
// Use HasDirectedCycle for the exact test.
func (g *Graph) HasCycle() bool {
	visited := hashset.New()
	cycle := false
	for v := range g.vertices {
		if !visited.Contains(v) {
			g.explore(v, visited, func(from, to int, seen bool) {
				if seen {
					cycle = true
				}
			})
		}
	}
	return cycle
}

// HasDirectedCycle reports whether g contains a directed cycle (including
// self-loops).
func (g *Graph) HasDirectedCycle() bool {
	const (
		white = iota
		grey
		black
	)
	color := make([]int, len(g.vertices))
	for root := range g.vertices {
		if color[root] != white {
			continue
		}
		stack := arraystack.New()
		color[root] = grey
		stack.Push(&frame{v: root})
		for !stack.Empty() {
			top, _ := stack.Peek()
			f := top.(*frame)
			if f.next == len(g.edges[f.v]) {
				color[f.v] = black
				stack.Pop()
				continue
			}
			t := g.edges[f.v][f.next]
			f.next++
			switch color[t] {
			case grey:
				tracer().Debugf("back edge %s → %s", g.vertices[f.v], g.vertices[t])
				return true
			case white:
				color[t] = grey
				stack.Push(&frame{v: t})
			}
		}
	}
	return false
}
