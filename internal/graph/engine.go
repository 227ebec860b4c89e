// Package graph runs the interview workflow: a directed graph of named
// steps over the shared session state, with unconditional and conditional
// edges, executed to a terminal sink once per candidate turn.
package graph

import (
	"context"
	"fmt"

	"intervo/internal/state"
)

// End is the terminal sink name.
const End = "end"

// maxSteps guards against topology bugs; the interview graph is far
// shallower than this.
const maxSteps = 64

// NodeFunc is one workflow step: it inspects the session and returns a
// partial update, or an error for structural failures that abort the turn.
type NodeFunc func(ctx context.Context, s *state.Session) (*state.Update, error)

// RouteFunc inspects the post-merge session and names the next step.
type RouteFunc func(s *state.Session) string

type conditional struct {
	decide  RouteFunc
	targets map[string]string // route decision -> node name
}

// Graph is a compiled workflow. Build it once, run it once per turn.
type Graph struct {
	entry        string
	nodes        map[string]NodeFunc
	edges        map[string]string
	conditionals map[string]conditional
}

// NewGraph creates an empty graph with the given entry step.
func NewGraph(entry string) *Graph {
	return &Graph{
		entry:        entry,
		nodes:        make(map[string]NodeFunc),
		edges:        make(map[string]string),
		conditionals: make(map[string]conditional),
	}
}

// AddNode registers a named step.
func (g *Graph) AddNode(name string, fn NodeFunc) *Graph {
	g.nodes[name] = fn
	return g
}

// AddEdge registers an unconditional edge.
func (g *Graph) AddEdge(from, to string) *Graph {
	g.edges[from] = to
	return g
}

// AddConditional registers a routing function for a step. The decision
// value indexes targets; a missing key is a topology error at run time.
func (g *Graph) AddConditional(from string, decide RouteFunc, targets map[string]string) *Graph {
	g.conditionals[from] = conditional{decide: decide, targets: targets}
	return g
}

// Validate checks that every edge target and the entry point exist.
func (g *Graph) Validate() error {
	if _, ok := g.nodes[g.entry]; !ok {
		return fmt.Errorf("entry node %q not registered", g.entry)
	}
	for from, to := range g.edges {
		if _, ok := g.nodes[from]; !ok {
			return fmt.Errorf("edge from unknown node %q", from)
		}
		if to != End {
			if _, ok := g.nodes[to]; !ok {
				return fmt.Errorf("edge %q -> unknown node %q", from, to)
			}
		}
	}
	for from, c := range g.conditionals {
		if _, ok := g.nodes[from]; !ok {
			return fmt.Errorf("conditional from unknown node %q", from)
		}
		for decision, to := range c.targets {
			if to != End {
				if _, ok := g.nodes[to]; !ok {
					return fmt.Errorf("conditional %q[%q] -> unknown node %q", from, decision, to)
				}
			}
		}
	}
	return nil
}

// Run executes the graph once: entry to terminal sink, merging each step's
// partial update before advancing. Step errors abort the turn.
func (g *Graph) Run(ctx context.Context, sess *state.Session) error {
	current := g.entry
	for steps := 0; ; steps++ {
		if steps >= maxSteps {
			return fmt.Errorf("graph exceeded %d steps at node %q", maxSteps, current)
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("graph cancelled at node %q: %w", current, err)
		}

		fn, ok := g.nodes[current]
		if !ok {
			return fmt.Errorf("unknown node %q", current)
		}
		update, err := fn(ctx, sess)
		if err != nil {
			return fmt.Errorf("node %q failed: %w", current, err)
		}
		if err := sess.Merge(update); err != nil {
			return fmt.Errorf("merging update from %q: %w", current, err)
		}

		next, err := g.next(current, sess)
		if err != nil {
			return err
		}
		if next == End {
			return nil
		}
		current = next
	}
}

func (g *Graph) next(current string, sess *state.Session) (string, error) {
	if c, ok := g.conditionals[current]; ok {
		decision := c.decide(sess)
		to, ok := c.targets[decision]
		if !ok {
			return "", fmt.Errorf("node %q routed to unmapped decision %q", current, decision)
		}
		return to, nil
	}
	if to, ok := g.edges[current]; ok {
		return to, nil
	}
	return "", fmt.Errorf("node %q has no outgoing edge", current)
}
