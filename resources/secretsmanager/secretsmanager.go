// Package secretsmanager provides CloudFormation resource types for
// AWS::SecretsManager.
package secretsmanager

// Secret represents an AWS::SecretsManager::Secret resource.
// Downstream resources reference the secret by ARN (Ref), never by value.
type Secret struct {
	Name                 any
	Description          string
	GenerateSecretString any
	Tags                 []any
}

func (Secret) ResourceType() string { return "AWS::SecretsManager::Secret" }

// Secret_GenerateSecretString is the GenerateSecretString property of Secret:
// a fixed JSON template plus one generated key.
type Secret_GenerateSecretString struct {
	SecretStringTemplate    string
	GenerateStringKey       string
	ExcludeCharacters       string
	PasswordLength          int
	ExcludePunctuation      bool
	RequireEachIncludedType bool
}
