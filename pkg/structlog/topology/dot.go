package topology

import (
	"io"
	"sort"
	"text/template"

	"github.com/pkg/errors"
)

const dotTemplate = `strict digraph {
{{- range .Nodes}}
	"{{.}}";
{{- end}}
{{- range .Edges}}
	"{{.Source}}" -> "{{.Target}}";
{{- end}}
}
`

type dotEdge struct {
	Source string
	Target string
}

type dotGraph struct {
	Nodes []string
	Edges []dotEdge
}

// DOT renders the topology in Graphviz DOT format, nodes and edges sorted
// for stable output.
func (t *Topology) DOT(w io.Writer) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	nodes, err := t.store.ListVertices()
	if err != nil {
		return errors.Wrap(err, "unable to list drains")
	}
	sort.Strings(nodes)

	rawEdges, err := t.store.ListEdges()
	if err != nil {
		return errors.Wrap(err, "unable to list routes")
	}
	edges := make([]dotEdge, 0, len(rawEdges))
	for _, e := range rawEdges {
		edges = append(edges, dotEdge{Source: e.Source, Target: e.Target})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}

		return edges[i].Target < edges[j].Target
	})

	tmpl, err := template.New("dot").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "unable to parse dot template")
	}
	if err := tmpl.Execute(w, dotGraph{Nodes: nodes, Edges: edges}); err != nil {
		return errors.Wrap(err, "unable to render dot graph")
	}

	return nil
}
