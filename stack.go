package groundwork

import (
	"errors"
	"fmt"

	"github.com/aaa-platform/groundwork/intrinsics"
)

// Stack is a named, independently synthesizable group of resource
// declarations. Resources are added under a logical ID and referenced by
// handle; cross-stack values are never shared as objects, only as identifier
// strings resolved from the deploy-time context.
type Stack struct {
	name        string
	description string

	resources map[string]Resource
	order     []string
	policies  map[string]DeletionPolicy
	dependsOn map[string][]string

	parameters map[string]Parameter
	paramOrder []string

	outputs     map[string]Output
	outputOrder []string

	errs []error
}

// NewStack creates an empty stack.
func NewStack(name, description string) *Stack {
	return &Stack{
		name:        name,
		description: description,
		resources:   make(map[string]Resource),
		policies:    make(map[string]DeletionPolicy),
		dependsOn:   make(map[string][]string),
		parameters:  make(map[string]Parameter),
		outputs:     make(map[string]Output),
	}
}

// Name returns the stack name.
func (s *Stack) Name() string { return s.name }

// Description returns the stack description.
func (s *Stack) Description() string { return s.description }

// Handle references a resource added to a stack. It produces the
// CloudFormation intrinsics that point at the resource.
type Handle struct {
	id string
}

// LogicalID returns the resource's logical ID in the template.
func (h Handle) LogicalID() string { return h.id }

// Ref returns a Ref intrinsic for the resource.
func (h Handle) Ref() intrinsics.Ref { return intrinsics.Ref{LogicalName: h.id} }

// Attr returns a GetAtt intrinsic for one of the resource's attributes.
func (h Handle) Attr(name string) intrinsics.GetAtt {
	return intrinsics.GetAtt{LogicalName: h.id, Attribute: name}
}

// AddOption customizes a resource declaration.
type AddOption func(s *Stack, logicalID string)

// WithDeletionPolicy sets the resource's removal policy.
func WithDeletionPolicy(p DeletionPolicy) AddOption {
	return func(s *Stack, logicalID string) {
		s.policies[logicalID] = p
	}
}

// WithDependsOn adds an explicit ordering dependency beyond the implicit
// ones derived from Ref/GetAtt usage.
func WithDependsOn(handles ...Handle) AddOption {
	return func(s *Stack, logicalID string) {
		for _, h := range handles {
			s.dependsOn[logicalID] = append(s.dependsOn[logicalID], h.LogicalID())
		}
	}
}

// Add declares a resource under the given logical ID and returns a handle
// for referencing it. Duplicate logical IDs are recorded as errors and
// reported at synthesis time.
func (s *Stack) Add(logicalID string, r Resource, opts ...AddOption) Handle {
	if logicalID == "" {
		s.errs = append(s.errs, errors.New("resource with empty logical ID"))
		return Handle{}
	}
	if _, exists := s.resources[logicalID]; exists {
		s.errs = append(s.errs, fmt.Errorf("duplicate logical ID %q", logicalID))
		return Handle{id: logicalID}
	}
	if r == nil {
		s.errs = append(s.errs, fmt.Errorf("nil resource for logical ID %q", logicalID))
		return Handle{id: logicalID}
	}
	s.resources[logicalID] = r
	s.order = append(s.order, logicalID)
	for _, opt := range opts {
		opt(s, logicalID)
	}
	return Handle{id: logicalID}
}

// AddParameter declares a template parameter and returns a handle whose Ref
// resolves to the parameter value.
func (s *Stack) AddParameter(name string, p Parameter) Handle {
	if _, exists := s.parameters[name]; exists {
		s.errs = append(s.errs, fmt.Errorf("duplicate parameter %q", name))
		return Handle{id: name}
	}
	s.parameters[name] = p
	s.paramOrder = append(s.paramOrder, name)
	return Handle{id: name}
}

// SetOutput declares a named deployment output.
func (s *Stack) SetOutput(name string, o Output) {
	if _, exists := s.outputs[name]; exists {
		s.errs = append(s.errs, fmt.Errorf("duplicate output %q", name))
		return
	}
	s.outputs[name] = o
	s.outputOrder = append(s.outputOrder, name)
}

// Resource returns the resource declared under the given logical ID.
func (s *Stack) Resource(logicalID string) (Resource, bool) {
	r, ok := s.resources[logicalID]
	return r, ok
}

// ResourceIDs returns the logical IDs in declaration order.
func (s *Stack) ResourceIDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// DeletionPolicy returns the removal policy declared for a resource, if any.
func (s *Stack) DeletionPolicy(logicalID string) (DeletionPolicy, bool) {
	p, ok := s.policies[logicalID]
	return p, ok
}

// DependsOn returns the explicit dependencies declared for a resource.
func (s *Stack) DependsOn(logicalID string) []string {
	return s.dependsOn[logicalID]
}

// Parameters returns the declared parameters keyed by name.
func (s *Stack) Parameters() map[string]Parameter {
	out := make(map[string]Parameter, len(s.parameters))
	for k, v := range s.parameters {
		out[k] = v
	}
	return out
}

// Outputs returns the declared outputs keyed by name.
func (s *Stack) Outputs() map[string]Output {
	out := make(map[string]Output, len(s.outputs))
	for k, v := range s.outputs {
		out[k] = v
	}
	return out
}

// Err returns the accumulated declaration errors, if any.
func (s *Stack) Err() error {
	return errors.Join(s.errs...)
}
