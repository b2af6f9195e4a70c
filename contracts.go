// Package groundwork declares the AAA platform's AWS infrastructure as Go
// values and synthesizes CloudFormation templates from them.
//
// Resources are grouped into stacks:
//
//	stack := groundwork.NewStack("aaa-data-tier", "Aurora cluster and network")
//	vpc := stack.Add("DatabaseVPC", ec2.VPC{CidrBlock: "10.0.0.0/16"})
//
// The groundwork CLI synthesizes each stack into a template that the
// provisioning engine (CloudFormation) deploys. This repository only declares
// resources and their relationships; diffing against deployed state,
// rollback, and execution ordering belong to the engine.
package groundwork

// Resource is a single CloudFormation resource declaration.
// All resource types (ec2.VPC, iam.Role, etc.) implement this interface.
type Resource interface {
	// ResourceType returns the CloudFormation type (e.g. "AWS::EC2::VPC").
	ResourceType() string
}

// DeletionPolicy controls what happens to a resource's underlying data when
// its declaration is removed from the stack.
type DeletionPolicy string

const (
	// DeletionPolicyDelete removes the underlying resource.
	DeletionPolicyDelete DeletionPolicy = "Delete"
	// DeletionPolicyRetain keeps the underlying resource.
	DeletionPolicyRetain DeletionPolicy = "Retain"
	// DeletionPolicySnapshot takes a final snapshot before removal.
	// Only valid for resources that support snapshots (RDS, EBS, ...).
	DeletionPolicySnapshot DeletionPolicy = "Snapshot"
)

// Template is a CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Parameters               map[string]Parameter   `json:"Parameters,omitempty" yaml:"Parameters,omitempty"`
	Resources                map[string]ResourceDef `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// ResourceDef is a single resource entry in a template.
type ResourceDef struct {
	Type                string         `json:"Type" yaml:"Type"`
	Properties          map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn           []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
	DeletionPolicy      string         `json:"DeletionPolicy,omitempty" yaml:"DeletionPolicy,omitempty"`
	UpdateReplacePolicy string         `json:"UpdateReplacePolicy,omitempty" yaml:"UpdateReplacePolicy,omitempty"`
}

// Parameter is a template parameter.
type Parameter struct {
	Type          string   `json:"Type" yaml:"Type"`
	Description   string   `json:"Description,omitempty" yaml:"Description,omitempty"`
	Default       any      `json:"Default,omitempty" yaml:"Default,omitempty"`
	AllowedValues []string `json:"AllowedValues,omitempty" yaml:"AllowedValues,omitempty"`
}

// Export names a cross-stack export for an Output value.
type Export struct {
	Name string `json:"Name" yaml:"Name"`
}

// Output is a named deployment output surfaced by a stack.
type Output struct {
	Description string  `json:"Description,omitempty" yaml:"Description,omitempty"`
	Value       any     `json:"Value" yaml:"Value"`
	Export      *Export `json:"Export,omitempty" yaml:"Export,omitempty"`
}

// SynthResult is the JSON output from `groundwork synth --json`.
type SynthResult struct {
	Success   bool      `json:"success"`
	Stack     string    `json:"stack,omitempty"`
	Template  *Template `json:"template,omitempty"`
	Resources []string  `json:"resources,omitempty"`
	Errors    []string  `json:"errors,omitempty"`
}

// ValidateResult is the JSON output from `groundwork validate --json`.
type ValidateResult struct {
	Success   bool     `json:"success"`
	Stack     string   `json:"stack"`
	Resources int      `json:"resources"`
	Errors    []string `json:"errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ListResult is the JSON output from `groundwork list`.
type ListResult struct {
	Stacks []ListStack `json:"stacks"`
}

// ListStack is a single stack in the list output.
type ListStack struct {
	Name      string         `json:"name"`
	Resources []ListResource `json:"resources"`
}

// ListResource is a single resource in the list output.
type ListResource struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// TemplateDiff describes the differences between two templates.
type TemplateDiff struct {
	Added    []DiffEntry `json:"added,omitempty"`
	Removed  []DiffEntry `json:"removed,omitempty"`
	Modified []DiffEntry `json:"modified,omitempty"`
}

// DiffEntry is a single resource-level difference.
type DiffEntry struct {
	Resource string   `json:"resource"`
	Type     string   `json:"type"`
	Changes  []Change `json:"changes,omitempty"`
}

// Change is a single property-level difference.
type Change struct {
	Path string `json:"path"`
	Old  any    `json:"old,omitempty"`
	New  any    `json:"new,omitempty"`
}

// DiffSummary counts the entries in a TemplateDiff.
type DiffSummary struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
	Total    int `json:"total"`
}
