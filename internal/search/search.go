// Package search implements a best-first enumeration over lazily expanded
// state graphs. Unlike a plain shortest-path search it yields every path
// whose total cost ties the global minimum, as a lazy sequence the caller
// drains one path at a time.
package search

import "container/heap"

// Action labels an edge. The engine never inspects it beyond carrying it
// into result paths.
type Action interface {
	Keyword() string
}

// Edge is a single transition out of a node.
type Edge struct {
	Cost   int
	Action Action
	To     Node
}

// Node is a state in the implicit graph. Implementations must be immutable
// values: two nodes with equal keys are the same state.
type Node interface {
	// Key uniquely identifies the state for dominance pruning.
	Key() string
	// IsGoal reports whether a path may terminate at this node.
	IsGoal() bool
	// Expand returns the outgoing edges in deterministic order.
	Expand() ([]Edge, error)
}

// Step is one edge of a finished path.
type Step struct {
	Cost   int
	Action Action
	Node   Node
}

// Path is a complete action sequence from the start node to a goal node.
type Path struct {
	Steps     []Step
	TotalCost int
}

// Notify is an optional progress hook invoked once per frontier pop with the
// current path cost, the node being visited, the visited-set size, and the
// frontier size. Absence of the hook does not change results.
type Notify func(cost int, node Node, visited, frontier int)

// Options tunes a search run.
type Options struct {
	Notify Notify
	// MaxCost stops the search once the cheapest frontier entry exceeds it.
	// Zero means no threshold.
	MaxCost int
}

type partial struct {
	cost   int
	seq    uint64 // discovery order, breaks cost ties deterministically
	node   Node
	parent *partial
	step   Step
}

type frontier []*partial

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)        { *f = append(*f, x.(*partial)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	p := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return p
}

// Enumerator lazily produces all minimum-cost paths. It is single-use and
// not safe for concurrent use; abandoning it mid-stream leaks nothing.
type Enumerator struct {
	frontier frontier
	best     map[string]int
	opts     Options
	seq      uint64
	bestGoal int
	found    bool
	done     bool
}

// FindAllPaths starts a best-first enumeration at start.
func FindAllPaths(start Node, opts Options) *Enumerator {
	e := &Enumerator{
		best: map[string]int{start.Key(): 0},
		opts: opts,
	}
	heap.Push(&e.frontier, &partial{node: start})
	e.seq++
	return e
}

// Next returns the next optimal path, or nil once the enumeration is
// exhausted. Every returned path has the same total cost.
func (e *Enumerator) Next() (*Path, error) {
	if e.done {
		return nil, nil
	}
	for e.frontier.Len() > 0 {
		p := heap.Pop(&e.frontier).(*partial)

		if e.found && p.cost > e.bestGoal {
			break
		}
		if e.opts.MaxCost > 0 && p.cost > e.opts.MaxCost {
			break
		}
		if e.opts.Notify != nil {
			e.opts.Notify(p.cost, p.node, len(e.best), e.frontier.Len())
		}

		if p.node.IsGoal() {
			if !e.found {
				e.found = true
				e.bestGoal = p.cost
			}
			return materialize(p), nil
		}

		edges, err := p.node.Expand()
		if err != nil {
			e.done = true
			return nil, err
		}
		for _, edge := range edges {
			cost := p.cost + edge.Cost
			if e.found && cost > e.bestGoal {
				continue
			}
			key := edge.To.Key()
			// Strictly worse paths are dominated; equal-cost paths stay in
			// so that every optimal path is enumerated.
			if prev, ok := e.best[key]; ok && cost > prev {
				continue
			} else if !ok || cost < prev {
				e.best[key] = cost
			}
			heap.Push(&e.frontier, &partial{
				cost:   cost,
				seq:    e.seq,
				node:   edge.To,
				parent: p,
				step:   Step{Cost: edge.Cost, Action: edge.Action, Node: edge.To},
			})
			e.seq++
		}
	}
	e.done = true
	return nil, nil
}

func materialize(p *partial) *Path {
	total := p.cost
	var n int
	for q := p; q.parent != nil; q = q.parent {
		n++
	}
	steps := make([]Step, n)
	for q := p; q.parent != nil; q = q.parent {
		n--
		steps[n] = q.step
	}
	return &Path{Steps: steps, TotalCost: total}
}
