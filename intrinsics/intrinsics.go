// Package intrinsics provides CloudFormation intrinsic functions and IAM
// policy document types.
//
// Core intrinsic functions:
//
//	Ref{LogicalName: "DatabaseVPC"}          → {"Ref": "DatabaseVPC"}
//	GetAtt{"DatabaseVPC", "CidrBlock"}       → {"Fn::GetAtt": ["DatabaseVPC", "CidrBlock"]}
//	Sub{String: "${AWS::StackName}-nat"}     → {"Fn::Sub": "${AWS::StackName}-nat"}
//
// Pseudo-parameters:
//
//	AWS_REGION, AWS_ACCOUNT_ID, AWS_STACK_NAME, ...
package intrinsics

import "encoding/json"

// Ref represents a CloudFormation Ref intrinsic function.
type Ref struct {
	LogicalName string
}

// MarshalJSON serializes to {"Ref": name}.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Ref": r.LogicalName})
}

// IsZero reports whether the Ref has not been populated.
func (r Ref) IsZero() bool { return r.LogicalName == "" }

// GetAtt represents a CloudFormation Fn::GetAtt intrinsic function.
type GetAtt struct {
	LogicalName string
	Attribute   string
}

// MarshalJSON serializes to {"Fn::GetAtt": [name, attribute]}.
func (g GetAtt) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string{
		"Fn::GetAtt": {g.LogicalName, g.Attribute},
	})
}

// IsZero reports whether the GetAtt has not been populated.
func (g GetAtt) IsZero() bool { return g.LogicalName == "" && g.Attribute == "" }

// Sub represents a CloudFormation Fn::Sub intrinsic function.
// ${Name} in the string resolves like Ref{Name}; ${Name.Attr} like GetAtt.
type Sub struct {
	String string
}

// MarshalJSON serializes to {"Fn::Sub": string}.
func (s Sub) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Fn::Sub": s.String})
}

// SubWithMap is Fn::Sub with an explicit variable map.
type SubWithMap struct {
	String    string
	Variables map[string]any
}

// MarshalJSON serializes to {"Fn::Sub": [string, variables]}.
func (s SubWithMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]any{
		"Fn::Sub": {s.String, s.Variables},
	})
}

// Join represents a CloudFormation Fn::Join intrinsic function.
type Join struct {
	Delimiter string
	Values    []any
}

// MarshalJSON serializes to {"Fn::Join": [delimiter, values]}.
func (j Join) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]any{
		"Fn::Join": {j.Delimiter, j.Values},
	})
}

// Select represents a CloudFormation Fn::Select intrinsic function.
type Select struct {
	Index int
	List  any
}

// MarshalJSON serializes to {"Fn::Select": [index, list]}.
func (s Select) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]any{
		"Fn::Select": {s.Index, s.List},
	})
}

// GetAZs represents a CloudFormation Fn::GetAZs intrinsic function.
// An empty Region means the region the stack is deployed in.
type GetAZs struct {
	Region string
}

// MarshalJSON serializes to {"Fn::GetAZs": region}.
func (g GetAZs) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Fn::GetAZs": g.Region})
}

// ImportValue represents a CloudFormation Fn::ImportValue intrinsic function.
type ImportValue struct {
	Name any
}

// MarshalJSON serializes to {"Fn::ImportValue": name}.
func (i ImportValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"Fn::ImportValue": i.Name})
}

// Tag represents a CloudFormation resource tag.
type Tag struct {
	Key   string `json:"Key"`
	Value any    `json:"Value"`
}

// Param creates a Ref for a CloudFormation parameter.
func Param(name string) Ref {
	return Ref{LogicalName: name}
}

// Pseudo-parameters, predefined by CloudFormation and available in every
// template.
var (
	AWS_ACCOUNT_ID = Ref{LogicalName: "AWS::AccountId"}
	AWS_NO_VALUE   = Ref{LogicalName: "AWS::NoValue"}
	AWS_PARTITION  = Ref{LogicalName: "AWS::Partition"}
	AWS_REGION     = Ref{LogicalName: "AWS::Region"}
	AWS_STACK_ID   = Ref{LogicalName: "AWS::StackId"}
	AWS_STACK_NAME = Ref{LogicalName: "AWS::StackName"}
	AWS_URL_SUFFIX = Ref{LogicalName: "AWS::URLSuffix"}
)

// Json is a shorthand for map[string]any, used for inline JSON objects like
// Condition blocks.
type Json = map[string]any

// List creates a typed slice from the given items.
func List[T any](items ...T) []T {
	return items
}

// Any creates a []any slice from the given items. Use for fields typed as
// []any that accept mixed values and intrinsics.
func Any(items ...any) []any {
	return items
}
