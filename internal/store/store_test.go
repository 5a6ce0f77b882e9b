package store

import (
	"sort"
	"testing"

	"github.com/dominikbraun/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPopulated(t *testing.T) *MemoryStore[int] {
	t.Helper()
	s := New[int]()
	for i, k := range []string{"a", "b", "c"} {
		require.NoError(t, s.AddVertex(k, i, graph.VertexProperties{}))
	}
	require.NoError(t, s.AddEdge("a", "b", graph.Edge[string]{Source: "a", Target: "b"}))
	require.NoError(t, s.AddEdge("b", "c", graph.Edge[string]{Source: "b", Target: "c"}))

	return s
}

func TestAddVertexTwice(t *testing.T) {
	s := New[int]()
	require.NoError(t, s.AddVertex("a", 1, graph.VertexProperties{}))
	err := s.AddVertex("a", 2, graph.VertexProperties{})
	assert.ErrorIs(t, err, graph.ErrVertexAlreadyExists)
}

func TestVertexNotFound(t *testing.T) {
	s := New[int]()
	_, _, err := s.Vertex("missing")
	assert.ErrorIs(t, err, graph.ErrVertexNotFound)
}

func TestListVertices(t *testing.T) {
	s := newPopulated(t)
	got, err := s.ListVertices()
	require.NoError(t, err)
	sort.Strings(got)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	count, err := s.VertexCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRemoveVertexWithEdges(t *testing.T) {
	s := newPopulated(t)
	err := s.RemoveVertex("b")
	assert.ErrorIs(t, err, graph.ErrVertexHasEdges)
}

func TestEdges(t *testing.T) {
	s := newPopulated(t)

	edge, err := s.Edge("a", "b")
	require.NoError(t, err)
	assert.Equal(t, "b", edge.Target)

	_, err = s.Edge("a", "c")
	assert.ErrorIs(t, err, graph.ErrEdgeNotFound)

	edges, err := s.ListEdges()
	require.NoError(t, err)
	assert.Len(t, edges, 2)

	require.NoError(t, s.RemoveEdge("a", "b"))
	_, err = s.Edge("a", "b")
	assert.ErrorIs(t, err, graph.ErrEdgeNotFound)
}

func TestCreatesCycle(t *testing.T) {
	tcs := map[string]struct {
		source, target string
		want           bool
	}{
		"self loop":     {source: "a", target: "a", want: true},
		"closes cycle":  {source: "c", target: "a", want: true},
		"parallel path": {source: "a", target: "c", want: false},
		"back edge":     {source: "b", target: "a", want: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			s := newPopulated(t)
			got, err := s.CreatesCycle(tc.source, tc.target)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCreatesCycleUnknownVertex(t *testing.T) {
	s := newPopulated(t)
	_, err := s.CreatesCycle("a", "missing")
	assert.Error(t, err)
}
