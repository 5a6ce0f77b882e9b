// Package topology wires named drains into a directed routing graph. A
// record logged to a node's composed drain reaches the node itself and
// every drain downstream of it. Routes cannot form cycles, so a record is
// never delivered to the same drain twice through the same path.
package topology

import (
	"sort"
	"sync"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/nessig/go-structlog/internal/store"
	"github.com/nessig/go-structlog/pkg/structlog"
)

var (
	ErrNameMustBeSet  = errors.New("name must be set")
	ErrUnknownDrain   = errors.New("unknown drain")
	ErrRouteWouldLoop = errors.New("route would create a cycle")
)

type node struct {
	name  string
	drain structlog.Drain
}

// Topology is a registry of named drains and the routes between them.
type Topology struct {
	mu    sync.Mutex
	graph graph.Graph[string, *node]
	store *store.MemoryStore[*node]
}

// New creates an empty topology.
func New() *Topology {
	st := store.New[*node]()
	g := graph.NewWithStore[string, *node](func(n *node) string { return n.name }, st, graph.Directed())

	return &Topology{graph: g, store: st}
}

// AddDrain registers a drain under a unique name.
func (t *Topology) AddDrain(name string, d structlog.Drain) error {
	if name == "" {
		return ErrNameMustBeSet
	}
	if d == nil {
		return structlog.ErrDrainMustBeSet
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.graph.AddVertex(&node{name: name, drain: d}); err != nil {
		return errors.Wrapf(err, "unable to add drain %s", name)
	}

	return nil
}

// AddRoute forwards records flowing through from to to.
func (t *Topology) AddRoute(from, to string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	loops, err := t.store.CreatesCycle(from, to)
	if err != nil {
		return errors.Wrapf(err, "unable to check route %s -> %s", from, to)
	}
	if loops {
		return errors.Wrapf(ErrRouteWouldLoop, "%s -> %s", from, to)
	}

	if err := t.graph.AddEdge(from, to); err != nil {
		return errors.Wrapf(err, "unable to add route %s -> %s", from, to)
	}

	return nil
}

// Build composes the drain registered under name with everything reachable
// from it. Drains shared by several routes are still invoked once per
// delivery path.
func (t *Topology) Build(name string) (structlog.Drain, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	adjacency, err := t.graph.AdjacencyMap()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read routes")
	}

	return t.build(name, adjacency)
}

func (t *Topology) build(name string, adjacency map[string]map[string]graph.Edge[string]) (structlog.Drain, error) {
	n, _, err := t.store.Vertex(name)
	if err != nil {
		return nil, errors.Wrapf(ErrUnknownDrain, "%s", name)
	}

	children := make([]string, 0, len(adjacency[name]))
	for child := range adjacency[name] {
		children = append(children, child)
	}
	if len(children) == 0 {
		return n.drain, nil
	}
	sort.Strings(children)

	drains := make([]structlog.Drain, 0, len(children)+1)
	drains = append(drains, n.drain)
	for _, child := range children {
		sub, err := t.build(child, adjacency)
		if err != nil {
			return nil, err
		}
		drains = append(drains, sub)
	}

	return structlog.Tee(drains...), nil
}

// Names lists the registered drains in sorted order.
func (t *Topology) Names() ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	names, err := t.store.ListVertices()
	if err != nil {
		return nil, errors.Wrap(err, "unable to list drains")
	}
	sort.Strings(names)

	return names, nil
}
