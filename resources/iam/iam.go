// Package iam provides CloudFormation resource types for AWS::IAM.
package iam

// Role represents an AWS::IAM::Role resource.
type Role struct {
	RoleName                 any
	Description              string
	AssumeRolePolicyDocument any
	ManagedPolicyArns        []any
	Policies                 []any
	MaxSessionDuration       int
	Path                     string
	Tags                     []any
}

func (Role) ResourceType() string { return "AWS::IAM::Role" }

// Role_Policy is an inline policy entry of Role.
type Role_Policy struct {
	PolicyName     any
	PolicyDocument any
}
