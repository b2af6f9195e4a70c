// Package graph renders a synthesized stack's dependency graph as DOT or
// Mermaid for documentation and review.
package graph

import (
	"fmt"
	"strings"

	"github.com/emicklei/dot"

	"github.com/aaa-platform/groundwork/internal/synth"
)

// Options controls graph rendering.
type Options struct {
	// Mermaid renders Mermaid flowchart syntax instead of DOT.
	Mermaid bool

	// IncludeParameters adds template parameters as nodes.
	IncludeParameters bool

	// ClusterByService groups resources into per-service clusters
	// (EC2, RDS, IAM, ...).
	ClusterByService bool
}

// Render draws the dependency graph of a synthesized stack. Edges run from
// dependent to dependency; attribute (GetAtt) references are blue.
func Render(res *synth.Result, opts Options) string {
	g := dot.NewGraph(dot.Directed)
	g.Attr("label", res.Stack)
	g.Attr("rankdir", "TB")

	g.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	g.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	nodes := make(map[string]dot.Node, len(res.Order))
	for _, id := range res.Order {
		def := res.Template.Resources[id]
		parent := g
		if opts.ClusterByService {
			parent = cluster(g, serviceOf(def.Type))
		}
		n := parent.Node(id)
		n.Label(fmt.Sprintf("%s\n%s", id, def.Type))
		nodes[id] = n
	}

	if opts.IncludeParameters {
		for name := range res.Template.Parameters {
			n := g.Node(name)
			n.Attr("shape", "ellipse")
			n.Attr("style", "dashed")
			n.Label(name)
			nodes[name] = n
		}
	}

	for _, id := range res.Order {
		for _, dep := range res.Dependencies[id] {
			to, ok := nodes[dep]
			if !ok {
				continue
			}
			edge := g.Edge(nodes[id], to)
			if res.AttrEdges[id+"->"+dep] {
				edge.Attr("color", "blue")
			}
		}
	}

	if opts.Mermaid {
		return dot.MermaidGraph(g, dot.MermaidTopToBottom)
	}
	return g.String()
}

// cluster returns the subgraph for a service, creating it on first use.
func cluster(g *dot.Graph, service string) *dot.Graph {
	if sub, found := g.FindSubgraph(service); found {
		return sub
	}
	return g.Subgraph(service, dot.ClusterOption{})
}

// serviceOf extracts the service name from a CloudFormation resource type,
// e.g. AWS::RDS::DBCluster -> RDS.
func serviceOf(resourceType string) string {
	parts := strings.Split(resourceType, "::")
	if len(parts) < 2 {
		return resourceType
	}
	return parts[1]
}
