// Package ecr provides CloudFormation resource types for AWS::ECR.
package ecr

// Repository represents an AWS::ECR::Repository resource.
type Repository struct {
	RepositoryName             any
	ImageTagMutability         string
	ImageScanningConfiguration any
	LifecyclePolicy            any
	EmptyOnDelete              bool
	Tags                       []any
}

func (Repository) ResourceType() string { return "AWS::ECR::Repository" }

// Repository_ImageScanningConfiguration is the ImageScanningConfiguration
// property of Repository.
type Repository_ImageScanningConfiguration struct {
	ScanOnPush bool
}

// Repository_LifecyclePolicy is the LifecyclePolicy property of Repository.
// LifecyclePolicyText is the JSON rule document.
type Repository_LifecyclePolicy struct {
	LifecyclePolicyText string
	RegistryId          string
}
