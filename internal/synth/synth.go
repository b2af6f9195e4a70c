// Package synth turns a stack of resource declarations into a CloudFormation
// template.
//
// Synthesis is the dry-run contract of this repository: it resolves every
// Ref/GetAtt/Sub reference, orders resources by dependency, and fails on
// dangling references or cycles without touching any deployed state.
package synth

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"
	"gopkg.in/yaml.v3"

	"github.com/aaa-platform/groundwork"
	"github.com/aaa-platform/groundwork/internal/serialize"
)

// Result is the outcome of synthesizing one stack.
type Result struct {
	Stack    string
	Template *groundwork.Template

	// Order lists resource logical IDs in dependency order (dependencies
	// first), stable across runs.
	Order []string

	// Dependencies maps each resource to the logical IDs it references.
	Dependencies map[string][]string

	// AttrEdges marks "from->to" edges that are attribute (GetAtt)
	// references rather than plain Refs.
	AttrEdges map[string]bool
}

// Synthesize builds the CloudFormation template for a stack.
func Synthesize(s *groundwork.Stack) (*Result, error) {
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("stack %s: %w", s.Name(), err)
	}

	ids := s.ResourceIDs()
	params := s.Parameters()

	tmpl := &groundwork.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              s.Description(),
		Resources:                make(map[string]groundwork.ResourceDef, len(ids)),
	}
	if len(params) > 0 {
		tmpl.Parameters = params
	}

	deps := make(map[string][]string, len(ids))
	attrEdges := make(map[string]bool)
	var dangling []string

	for _, id := range ids {
		res, _ := s.Resource(id)
		props, err := serialize.Properties(res)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", id, err)
		}

		refs := collectRefs(props)
		for _, ref := range refs {
			if ref.attr {
				attrEdges[id+"->"+ref.target] = true
			}
			if _, ok := s.Resource(ref.target); ok {
				deps[id] = append(deps[id], ref.target)
				continue
			}
			if _, ok := params[ref.target]; ok {
				continue
			}
			dangling = append(dangling, fmt.Sprintf("%s references undeclared %q", id, ref.target))
		}
		for _, dep := range s.DependsOn(id) {
			if _, ok := s.Resource(dep); !ok {
				dangling = append(dangling, fmt.Sprintf("%s depends on undeclared %q", id, dep))
				continue
			}
			deps[id] = append(deps[id], dep)
		}
		deps[id] = dedupe(deps[id])

		def := groundwork.ResourceDef{
			Type:       res.ResourceType(),
			Properties: props,
			DependsOn:  s.DependsOn(id),
		}
		if policy, ok := s.DeletionPolicy(id); ok {
			def.DeletionPolicy = string(policy)
			def.UpdateReplacePolicy = string(policy)
		}
		tmpl.Resources[id] = def
	}

	// Outputs may also reference resources; normalize their values so the
	// template marshals identically to JSON and YAML.
	outputs := s.Outputs()
	if len(outputs) > 0 {
		tmpl.Outputs = make(map[string]groundwork.Output, len(outputs))
		for name, out := range outputs {
			val, err := serialize.Value(out.Value)
			if err != nil {
				return nil, fmt.Errorf("serializing output %s: %w", name, err)
			}
			for _, ref := range collectRefs(val) {
				if _, ok := s.Resource(ref.target); ok {
					continue
				}
				if _, ok := params[ref.target]; ok {
					continue
				}
				dangling = append(dangling, fmt.Sprintf("output %s references undeclared %q", name, ref.target))
			}
			out.Value = val
			tmpl.Outputs[name] = out
		}
	}

	if len(dangling) > 0 {
		sort.Strings(dangling)
		return nil, fmt.Errorf("stack %s has dangling references:\n  %s",
			s.Name(), strings.Join(dangling, "\n  "))
	}

	order, err := sortResources(ids, deps)
	if err != nil {
		return nil, fmt.Errorf("stack %s: %w", s.Name(), err)
	}

	return &Result{
		Stack:        s.Name(),
		Template:     tmpl,
		Order:        order,
		Dependencies: deps,
		AttrEdges:    attrEdges,
	}, nil
}

// sortResources returns the logical IDs in dependency order.
func sortResources(ids []string, deps map[string][]string) ([]string, error) {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	for _, id := range ids {
		if err := g.AddVertex(id); err != nil {
			return nil, fmt.Errorf("adding %s: %w", id, err)
		}
	}
	for id, targets := range deps {
		for _, dep := range targets {
			// Edge from dependency to dependent: topological order then
			// yields dependencies first.
			err := g.AddEdge(dep, id)
			if errors.Is(err, graph.ErrEdgeAlreadyExists) {
				continue
			}
			if errors.Is(err, graph.ErrEdgeCreatesCycle) {
				return nil, fmt.Errorf("circular dependency between %s and %s", dep, id)
			}
			if err != nil {
				return nil, fmt.Errorf("adding edge %s -> %s: %w", dep, id, err)
			}
		}
	}
	order, err := graph.StableTopologicalSort(g, func(a, b string) bool { return a < b })
	if err != nil {
		return nil, fmt.Errorf("ordering resources: %w", err)
	}
	return order, nil
}

// reference is a resolved pointer from one declaration to another.
type reference struct {
	target string
	attr   bool
}

var subVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// collectRefs walks a normalized property tree and returns every logical
// name referenced through Ref, Fn::GetAtt, or Fn::Sub ${...} variables.
// Pseudo-parameters (AWS::*) are not references.
func collectRefs(v any) []reference {
	var refs []reference
	walkRefs(v, &refs)
	return refs
}

func walkRefs(v any, refs *[]reference) {
	switch val := v.(type) {
	case map[string]any:
		if name, ok := val["Ref"].(string); ok && len(val) == 1 {
			if !isPseudo(name) {
				*refs = append(*refs, reference{target: name})
			}
			return
		}
		if att, ok := val["Fn::GetAtt"]; ok && len(val) == 1 {
			if parts, ok := att.([]any); ok && len(parts) == 2 {
				if name, ok := parts[0].(string); ok && !isPseudo(name) {
					*refs = append(*refs, reference{target: name, attr: true})
				}
			}
			return
		}
		if sub, ok := val["Fn::Sub"]; ok && len(val) == 1 {
			walkSub(sub, refs)
			return
		}
		for _, elem := range val {
			walkRefs(elem, refs)
		}
	case []any:
		for _, elem := range val {
			walkRefs(elem, refs)
		}
	}
}

// walkSub extracts ${Name} and ${Name.Attribute} variables from Fn::Sub.
func walkSub(sub any, refs *[]reference) {
	var text string
	switch s := sub.(type) {
	case string:
		text = s
	case []any:
		// [template, variables] form: literal variables shadow logical names.
		if len(s) == 0 {
			return
		}
		text, _ = s[0].(string)
		vars := map[string]bool{}
		if len(s) > 1 {
			if m, ok := s[1].(map[string]any); ok {
				for k, v := range m {
					vars[k] = true
					walkRefs(v, refs)
				}
			}
		}
		for _, m := range subVarPattern.FindAllStringSubmatch(text, -1) {
			name := m[1]
			if strings.HasPrefix(name, "!") || isPseudo(name) || vars[name] {
				continue
			}
			if dot := strings.IndexByte(name, '.'); dot >= 0 {
				*refs = append(*refs, reference{target: name[:dot], attr: true})
			} else {
				*refs = append(*refs, reference{target: name})
			}
		}
		return
	default:
		return
	}
	for _, m := range subVarPattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if strings.HasPrefix(name, "!") || isPseudo(name) {
			continue
		}
		if dot := strings.IndexByte(name, '.'); dot >= 0 {
			*refs = append(*refs, reference{target: name[:dot], attr: true})
		} else {
			*refs = append(*refs, reference{target: name})
		}
	}
}

func isPseudo(name string) bool {
	return strings.HasPrefix(name, "AWS::")
}

func dedupe(in []string) []string {
	if len(in) < 2 {
		return in
	}
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// ToJSON serializes the template to indented JSON.
func ToJSON(t *groundwork.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML.
func ToYAML(t *groundwork.Template) ([]byte, error) {
	return yaml.Marshal(t)
}
