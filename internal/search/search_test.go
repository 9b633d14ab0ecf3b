package search

import (
	"errors"
	"reflect"
	"testing"
)

// edgeSpec describes a transition in a test graph.
type edgeSpec struct {
	cost   int
	to     string
	action string
}

type testAction string

func (a testAction) Keyword() string { return string(a) }

// graph is a small explicit graph for exercising the engine.
type graph struct {
	edges map[string][]edgeSpec
	goals map[string]bool
	fail  map[string]bool
}

type gnode struct {
	g   *graph
	key string
}

func (n gnode) Key() string  { return n.key }
func (n gnode) IsGoal() bool { return n.g.goals[n.key] }

func (n gnode) Expand() ([]Edge, error) {
	if n.g.fail[n.key] {
		return nil, errors.New("expand failed")
	}
	var out []Edge
	for _, e := range n.g.edges[n.key] {
		out = append(out, Edge{
			Cost:   e.cost,
			Action: testAction(e.action),
			To:     gnode{g: n.g, key: e.to},
		})
	}
	return out, nil
}

func drain(t *testing.T, e *Enumerator) []*Path {
	t.Helper()
	var paths []*Path
	for {
		p, err := e.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if p == nil {
			return paths
		}
		paths = append(paths, p)
	}
}

func pathKeys(p *Path) []string {
	var keys []string
	for _, s := range p.Steps {
		keys = append(keys, s.Node.Key())
	}
	return keys
}

func TestSingleOptimalPath(t *testing.T) {
	g := &graph{
		edges: map[string][]edgeSpec{
			"a": {{1, "b", "ab"}},
			"b": {{2, "c", "bc"}},
		},
		goals: map[string]bool{"c": true},
	}

	paths := drain(t, FindAllPaths(gnode{g, "a"}, Options{}))
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	if paths[0].TotalCost != 3 {
		t.Errorf("total cost = %d, want 3", paths[0].TotalCost)
	}
	if got, want := pathKeys(paths[0]), []string{"b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("path = %v, want %v", got, want)
	}
}

func TestAllOptimalPathsEnumerated(t *testing.T) {
	// Diamond with two tied routes plus a more expensive direct edge.
	g := &graph{
		edges: map[string][]edgeSpec{
			"a": {{1, "b", "ab"}, {1, "c", "ac"}, {3, "d", "ad"}},
			"b": {{1, "d", "bd"}},
			"c": {{1, "d", "cd"}},
		},
		goals: map[string]bool{"d": true},
	}

	paths := drain(t, FindAllPaths(gnode{g, "a"}, Options{}))
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2", len(paths))
	}
	for _, p := range paths {
		if p.TotalCost != 2 {
			t.Errorf("path %v cost = %d, want 2", pathKeys(p), p.TotalCost)
		}
	}
	// The direct cost-3 edge must never surface.
	for _, p := range paths {
		if len(p.Steps) == 1 {
			t.Errorf("suboptimal direct path returned: %v", pathKeys(p))
		}
	}
}

func TestDominatedStatesPruned(t *testing.T) {
	// Reaching b at cost 5 is dominated by reaching it at cost 1.
	g := &graph{
		edges: map[string][]edgeSpec{
			"a": {{1, "b", "cheap"}, {5, "b", "dear"}},
			"b": {{1, "c", "bc"}},
		},
		goals: map[string]bool{"c": true},
	}

	paths := drain(t, FindAllPaths(gnode{g, "a"}, Options{}))
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	if paths[0].Steps[0].Action.Keyword() != "cheap" {
		t.Errorf("kept action %q, want the cheap edge", paths[0].Steps[0].Action.Keyword())
	}
}

func TestDeterministicEnumeration(t *testing.T) {
	g := &graph{
		edges: map[string][]edgeSpec{
			"a": {{1, "b", "ab"}, {1, "c", "ac"}},
			"b": {{1, "d", "bd"}},
			"c": {{1, "d", "cd"}},
		},
		goals: map[string]bool{"d": true},
	}

	first := drain(t, FindAllPaths(gnode{g, "a"}, Options{}))
	for run := 0; run < 5; run++ {
		again := drain(t, FindAllPaths(gnode{g, "a"}, Options{}))
		if len(again) != len(first) {
			t.Fatalf("run %d: got %d paths, want %d", run, len(again), len(first))
		}
		for i := range first {
			if !reflect.DeepEqual(pathKeys(first[i]), pathKeys(again[i])) {
				t.Errorf("run %d: path %d = %v, want %v",
					run, i, pathKeys(again[i]), pathKeys(first[i]))
			}
		}
	}
}

func TestNotifyHook(t *testing.T) {
	g := &graph{
		edges: map[string][]edgeSpec{
			"a": {{1, "b", "ab"}},
			"b": {{1, "c", "bc"}},
		},
		goals: map[string]bool{"c": true},
	}

	calls := 0
	opts := Options{Notify: func(cost int, node Node, visited, frontier int) {
		calls++
		if node == nil {
			t.Error("notify received nil node")
		}
	}}
	withHook := drain(t, FindAllPaths(gnode{g, "a"}, opts))
	if calls == 0 {
		t.Fatal("notify hook never invoked")
	}
	without := drain(t, FindAllPaths(gnode{g, "a"}, Options{}))
	if len(withHook) != len(without) || withHook[0].TotalCost != without[0].TotalCost {
		t.Error("notify hook changed results")
	}
}

func TestMaxCostThreshold(t *testing.T) {
	g := &graph{
		edges: map[string][]edgeSpec{
			"a": {{10, "b", "ab"}},
		},
		goals: map[string]bool{"b": true},
	}

	paths := drain(t, FindAllPaths(gnode{g, "a"}, Options{MaxCost: 5}))
	if len(paths) != 0 {
		t.Fatalf("got %d paths beyond the cost threshold, want 0", len(paths))
	}
}

func TestExpandErrorPropagates(t *testing.T) {
	g := &graph{
		edges: map[string][]edgeSpec{
			"a": {{1, "b", "ab"}},
		},
		goals: map[string]bool{},
		fail:  map[string]bool{"b": true},
	}

	e := FindAllPaths(gnode{g, "a"}, Options{})
	if _, err := e.Next(); err == nil {
		t.Fatal("expected expansion error")
	}
	// The enumerator stays exhausted after a failure.
	if p, err := e.Next(); p != nil || err != nil {
		t.Errorf("after failure: path=%v err=%v, want nil/nil", p, err)
	}
}

func TestAbandonMidStream(t *testing.T) {
	g := &graph{
		edges: map[string][]edgeSpec{
			"a": {{1, "b", "ab"}, {1, "c", "ac"}},
			"b": {{1, "d", "bd"}},
			"c": {{1, "d", "cd"}},
		},
		goals: map[string]bool{"d": true},
	}

	e := FindAllPaths(gnode{g, "a"}, Options{})
	p, err := e.Next()
	if err != nil || p == nil {
		t.Fatalf("first Next() = %v, %v", p, err)
	}
	// Dropping the enumerator here must be safe; nothing to assert beyond
	// not leaking goroutines, which the engine never starts.
}
