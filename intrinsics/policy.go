// IAM policy document types and principal helpers.
package intrinsics

import "encoding/json"

// PolicyDocument represents an IAM policy document.
type PolicyDocument struct {
	Version   string `json:"Version,omitempty"`
	Statement []any  `json:"Statement"`
}

// PolicyVersion is the current IAM policy language version.
const PolicyVersion = "2012-10-17"

// NewPolicyDocument creates a PolicyDocument with the default version.
func NewPolicyDocument(statements ...any) PolicyDocument {
	return PolicyDocument{Version: PolicyVersion, Statement: statements}
}

// PolicyStatement represents an IAM policy statement.
type PolicyStatement struct {
	Sid       string `json:"Sid,omitempty"`
	Effect    string `json:"Effect"`
	Principal any    `json:"Principal,omitempty"`
	Action    any    `json:"Action,omitempty"`
	Resource  any    `json:"Resource,omitempty"`
	Condition Json   `json:"Condition,omitempty"`
}

// AssumeRolePolicy builds the trust policy for a role assumed by a single
// service principal.
func AssumeRolePolicy(principal ServicePrincipal) PolicyDocument {
	return NewPolicyDocument(PolicyStatement{
		Effect:    "Allow",
		Principal: principal,
		Action:    "sts:AssumeRole",
	})
}

// ServicePrincipal represents a service principal
// (e.g. rds.amazonaws.com). Serializes to {"Service": ...}.
type ServicePrincipal []any

// MarshalJSON serializes to {"Service": ...} format.
func (p ServicePrincipal) MarshalJSON() ([]byte, error) {
	if len(p) == 1 {
		return json.Marshal(map[string]any{"Service": p[0]})
	}
	return json.Marshal(map[string]any{"Service": []any(p)})
}

// AWSPrincipal represents an AWS account/role/user principal.
// Serializes to {"AWS": ...}.
type AWSPrincipal []any

// MarshalJSON serializes to {"AWS": ...} format.
func (p AWSPrincipal) MarshalJSON() ([]byte, error) {
	if len(p) == 1 {
		return json.Marshal(map[string]any{"AWS": p[0]})
	}
	return json.Marshal(map[string]any{"AWS": []any(p)})
}

// AllPrincipal is the wildcard principal "*".
const AllPrincipal = "*"

// ManagedPolicy returns the ARN of an AWS-managed policy by name,
// e.g. ManagedPolicy("service-role/AmazonRDSEnhancedMonitoringRole").
func ManagedPolicy(name string) string {
	return "arn:aws:iam::aws:policy/" + name
}

// IAM condition operators, for use as keys in Condition maps.
const (
	StringEquals    = "StringEquals"
	StringNotEquals = "StringNotEquals"
	StringLike      = "StringLike"
	NumericEquals   = "NumericEquals"
	NumericLessThan = "NumericLessThan"
	Bool            = "Bool"
	IpAddress       = "IpAddress"
	NotIpAddress    = "NotIpAddress"
	ArnEquals       = "ArnEquals"
	ArnLike         = "ArnLike"
	Null            = "Null"
)
