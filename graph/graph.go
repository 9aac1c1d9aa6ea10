// Package graph builds the dependency graph implied by a registry's entries
// and answers ordering questions about it: which symbols can be constructed
// in parallel, whether the wiring is acyclic, and in what order cached
// entries should be warmed up.
package graph

import (
	"reflect"

	"github.com/KennethUlloa/dependify/di"
	"github.com/KennethUlloa/dependify/errors"
)

// Graph holds registered symbols and the edges between them. An edge A -> B
// means B declares a field or parameter served by A's registration.
type Graph struct {
	nodes map[di.Symbol]bool
	edges []Edge
}

// Edge records one dependency: To is constructed from From.
type Edge struct {
	From di.Symbol
	To   di.Symbol
}

// Of derives the dependency graph from a registry snapshot. Fields whose
// type has no registration are not edges: resolution fills them from
// defaults or leaves them zero, so they impose no ordering.
func Of(reg *di.Registry) *Graph {
	entries := reg.Entries()
	g := &Graph{nodes: make(map[di.Symbol]bool, len(entries))}
	for symbol := range entries {
		g.nodes[symbol] = true
	}
	for symbol, recipe := range entries {
		for _, f := range recipe.Schema() {
			if from, ok := g.provider(f.Type); ok {
				g.edges = append(g.edges, Edge{From: from, To: symbol})
			}
		}
	}
	return g
}

// provider finds the registered symbol that would serve a declared field
// type, applying the same pointer-element fallback resolution uses.
func (g *Graph) provider(t reflect.Type) (di.Symbol, bool) {
	if g.nodes[t] {
		return t, true
	}
	if t.Kind() == reflect.Ptr && g.nodes[t.Elem()] {
		return t.Elem(), true
	}
	return nil, false
}

// Size returns the number of symbols in the graph.
func (g *Graph) Size() int { return len(g.nodes) }

// Edges returns a copy of the dependency edges.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Levels groups symbols by dependency depth using Kahn's algorithm. Symbols
// within one level depend only on earlier levels, so they can be constructed
// in any order, or concurrently. A cycle in the wiring yields an error.
func (g *Graph) Levels() ([][]di.Symbol, error) {
	inDegree := make(map[di.Symbol]int, len(g.nodes))
	dependents := make(map[di.Symbol][]di.Symbol)

	for symbol := range g.nodes {
		inDegree[symbol] = 0
	}
	for _, e := range g.edges {
		inDegree[e.To]++
		dependents[e.From] = append(dependents[e.From], e.To)
	}

	var queue []di.Symbol
	for symbol, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, symbol)
		}
	}

	var levels [][]di.Symbol
	visited := 0
	for len(queue) > 0 {
		levels = append(levels, queue)
		visited += len(queue)

		var next []di.Symbol
		for _, symbol := range queue {
			for _, dep := range dependents[symbol] {
				inDegree[dep]--
				if inDegree[dep] == 0 {
					next = append(next, dep)
				}
			}
		}
		queue = next
	}

	if visited != len(g.nodes) {
		return nil, errors.New(errors.ErrCodeCyclicDependency, "registry wiring contains a cycle").
			WithDetail("visited", visited).
			WithDetail("total", len(g.nodes))
	}
	return levels, nil
}

// Validate reports whether the wiring is acyclic.
func (g *Graph) Validate() error {
	_, err := g.Levels()
	return err
}

// Warmup resolves every symbol in dependency order, populating singleton
// caches before first use. Transient entries are constructed and discarded;
// the value is in surfacing construction errors at startup instead of at
// first resolution.
func Warmup(reg *di.Registry) error {
	levels, err := Of(reg).Levels()
	if err != nil {
		return err
	}
	for _, level := range levels {
		for _, symbol := range level {
			if _, err := reg.Resolve(symbol); err != nil {
				return err
			}
		}
	}
	return nil
}
