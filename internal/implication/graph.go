// Package implication builds the term-implication graph: a
// process-lifetime, read-only DAG over normalized terms, consulted
// only through its reachability predicate. The graph itself is never
// guessed or inferred by this package — it is loaded from an external,
// closed-world source.
package implication

import (
	"fmt"
	"sort"

	"github.com/brain2/matchcore/internal/kernel"
	"github.com/brain2/matchcore/internal/matcherr"
)

// Edge is one direct implication: From implies To (e.g. "smartphone"
// implies "phone"). Bidirectional relationships are expressed as two
// edges; bidirectionality is data, not a special case in the
// algorithm.
type Edge struct {
	From string
	To   string
}

// Graph is the closed reachability relation over a DAG of terms. It is
// built once at startup and computes its full transitive closure
// eagerly, so Implies is an O(1) map lookup at query time rather than
// a live graph walk. Once built it is never mutated; replacement is an
// atomic pointer swap in the caller.
type Graph struct {
	direct  map[string]map[string]bool
	closure map[string]map[string]bool
}

// New builds a Graph from a set of direct edges, computing the
// transitive closure eagerly. It detects cycles: any cycle that uses a
// one-way edge is a ConfigError raised at construction, never a
// runtime surprise. A pair of explicit edges A->B and B->A is a
// bidirectional relationship and is accepted.
func New(edges []Edge) (*Graph, error) {
	direct := make(map[string]map[string]bool)
	nodes := make(map[string]bool)
	for _, e := range edges {
		if direct[e.From] == nil {
			direct[e.From] = make(map[string]bool)
		}
		direct[e.From][e.To] = true
		nodes[e.From] = true
		nodes[e.To] = true
	}

	g := &Graph{direct: direct, closure: make(map[string]map[string]bool, len(nodes))}

	ordered := make([]string, 0, len(nodes))
	for n := range nodes {
		ordered = append(ordered, n)
	}
	sort.Strings(ordered)

	for _, n := range ordered {
		visited := make(map[string]bool)
		if err := g.dfs(n, n, visited); err != nil {
			return nil, err
		}
		g.closure[n] = visited
	}
	return g, nil
}

func (g *Graph) dfs(origin, node string, visited map[string]bool) error {
	for next := range g.direct[node] {
		if next == origin {
			// node->origin closes a cycle; it is only a bidirectional
			// pair when origin->node is also an explicit edge.
			if node != origin && g.direct[origin][node] {
				continue
			}
			return matcherr.Config(fmt.Sprintf("implication graph contains a cycle through %q", origin), nil)
		}
		if visited[next] {
			continue
		}
		visited[next] = true
		if err := g.dfs(origin, next, visited); err != nil {
			return err
		}
	}
	return nil
}

// Implies reports whether candidateValue reaches requiredValue in the
// graph, or whether they are literally equal (reachability is
// reflexive in effect since CategoricalSubset already short-circuits on
// equality — this method only needs to answer the strict-implication
// question).
func (g *Graph) Implies(candidateValue, requiredValue string) bool {
	if candidateValue == requiredValue {
		return true
	}
	return g.closure[candidateValue][requiredValue]
}

// AsKernelImplies adapts the graph to the kernel.Implies function type
// the categorical subset check consumes.
func (g *Graph) AsKernelImplies() kernel.Implies {
	if g == nil {
		return kernel.DefaultImplies
	}
	return g.Implies
}
