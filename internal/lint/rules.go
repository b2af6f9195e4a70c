package lint

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aaa-platform/groundwork"
)

// GW001: security-group ingress open to the world.
type openIngressRule struct{}

func (openIngressRule) ID() string { return "GW001" }
func (openIngressRule) Description() string {
	return "security group ingress must not be open to 0.0.0.0/0"
}

func (r openIngressRule) Check(t *groundwork.Template) []Issue {
	var issues []Issue
	for _, id := range resourcesOfType(t, "AWS::EC2::SecurityGroup") {
		props := t.Resources[id].Properties
		rules, _ := props["SecurityGroupIngress"].([]any)
		for _, entry := range rules {
			rule, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			cidr, _ := rule["CidrIp"].(string)
			if cidr == "0.0.0.0/0" || cidr == "::/0" {
				issues = append(issues, Issue{
					Rule:     r.ID(),
					Severity: SeverityError,
					Resource: id,
					Message:  fmt.Sprintf("ingress rule open to %s", cidr),
				})
			}
		}
	}
	return issues
}

// GW002: identity policy statement granting actions on every resource.
// Operational roles trip this deliberately; the warning keeps the grant
// visible in review output.
type wildcardResourceRule struct{}

func (wildcardResourceRule) ID() string { return "GW002" }
func (wildcardResourceRule) Description() string {
	return "identity policy statements should scope Resource below *"
}

func (r wildcardResourceRule) Check(t *groundwork.Template) []Issue {
	var issues []Issue
	for _, id := range resourcesOfType(t, "AWS::IAM::Role") {
		props := t.Resources[id].Properties
		policies, _ := props["Policies"].([]any)
		for _, entry := range policies {
			policy, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			doc, ok := policy["PolicyDocument"].(map[string]any)
			if !ok {
				continue
			}
			statements, _ := doc["Statement"].([]any)
			for _, sentry := range statements {
				stmt, ok := sentry.(map[string]any)
				if !ok {
					continue
				}
				if effect, _ := stmt["Effect"].(string); effect != "Allow" {
					continue
				}
				if hasWildcard(stmt["Resource"]) {
					name, _ := policy["PolicyName"].(string)
					issues = append(issues, Issue{
						Rule:     r.ID(),
						Severity: SeverityWarning,
						Resource: id,
						Message:  fmt.Sprintf("policy %q allows actions on Resource *", name),
					})
				}
			}
		}
	}
	return issues
}

func hasWildcard(resource any) bool {
	switch v := resource.(type) {
	case string:
		return v == "*"
	case []any:
		for _, elem := range v {
			if s, ok := elem.(string); ok && s == "*" {
				return true
			}
		}
	}
	return false
}

// GW003: database credentials embedded by value. Master credentials must
// flow through a secret reference ({{resolve:secretsmanager:...}}), never as
// a literal.
type literalCredentialsRule struct{}

func (literalCredentialsRule) ID() string { return "GW003" }
func (literalCredentialsRule) Description() string {
	return "database credentials must be dynamic secret references"
}

func (r literalCredentialsRule) Check(t *groundwork.Template) []Issue {
	var issues []Issue
	for _, typ := range []string{"AWS::RDS::DBCluster", "AWS::RDS::DBInstance"} {
		for _, id := range resourcesOfType(t, typ) {
			props := t.Resources[id].Properties
			for _, field := range []string{"MasterUsername", "MasterUserPassword"} {
				value, ok := props[field]
				if !ok {
					continue
				}
				if isLiteralCredential(value) {
					issues = append(issues, Issue{
						Rule:     r.ID(),
						Severity: SeverityError,
						Resource: id,
						Message:  fmt.Sprintf("%s is a literal value, not a secret reference", field),
					})
				}
			}
		}
	}
	return issues
}

// isLiteralCredential reports whether a credential property carries a plain
// value. Dynamic references pass, as do Refs to parameters and other
// intrinsics besides Fn::Sub over a literal.
func isLiteralCredential(value any) bool {
	switch v := value.(type) {
	case string:
		return !strings.Contains(v, "{{resolve:")
	case map[string]any:
		if sub, ok := v["Fn::Sub"].(string); ok {
			return !strings.Contains(sub, "{{resolve:")
		}
		return false
	default:
		return true
	}
}

// GW004: image repository hygiene.
type repositoryHygieneRule struct{}

func (repositoryHygieneRule) ID() string { return "GW004" }
func (repositoryHygieneRule) Description() string {
	return "image repositories should scan on push and carry a lifecycle policy"
}

func (r repositoryHygieneRule) Check(t *groundwork.Template) []Issue {
	var issues []Issue
	for _, id := range resourcesOfType(t, "AWS::ECR::Repository") {
		props := t.Resources[id].Properties
		scan := false
		if cfg, ok := props["ImageScanningConfiguration"].(map[string]any); ok {
			scan, _ = cfg["ScanOnPush"].(bool)
		}
		if !scan {
			issues = append(issues, Issue{
				Rule:     r.ID(),
				Severity: SeverityWarning,
				Resource: id,
				Message:  "scan on push is disabled",
			})
		}
		if _, ok := props["LifecyclePolicy"]; !ok {
			issues = append(issues, Issue{
				Rule:     r.ID(),
				Severity: SeverityWarning,
				Resource: id,
				Message:  "no lifecycle policy",
			})
		}
	}
	return issues
}

// GW005: stateful resources must not be deleted outright with the stack.
type removalPolicyRule struct{}

func (removalPolicyRule) ID() string { return "GW005" }
func (removalPolicyRule) Description() string {
	return "database clusters must retain or snapshot on removal"
}

func (r removalPolicyRule) Check(t *groundwork.Template) []Issue {
	var issues []Issue
	for _, id := range resourcesOfType(t, "AWS::RDS::DBCluster") {
		policy := t.Resources[id].DeletionPolicy
		if policy == string(groundwork.DeletionPolicySnapshot) || policy == string(groundwork.DeletionPolicyRetain) {
			continue
		}
		issues = append(issues, Issue{
			Rule:     r.ID(),
			Severity: SeverityError,
			Resource: id,
			Message:  "cluster would be deleted with the stack (want Snapshot or Retain)",
		})
	}
	return issues
}

// GW006: lifecycle retention caps must keep at least one image.
type retentionCapRule struct{}

func (retentionCapRule) ID() string { return "GW006" }
func (retentionCapRule) Description() string {
	return "lifecycle retention caps must be at least 1"
}

func (r retentionCapRule) Check(t *groundwork.Template) []Issue {
	var issues []Issue
	for _, id := range resourcesOfType(t, "AWS::ECR::Repository") {
		props := t.Resources[id].Properties
		policy, ok := props["LifecyclePolicy"].(map[string]any)
		if !ok {
			continue
		}
		text, ok := policy["LifecyclePolicyText"].(string)
		if !ok {
			continue
		}
		var doc struct {
			Rules []struct {
				Selection struct {
					CountType   string  `json:"countType"`
					CountNumber float64 `json:"countNumber"`
				} `json:"selection"`
			} `json:"rules"`
		}
		if err := json.Unmarshal([]byte(text), &doc); err != nil {
			issues = append(issues, Issue{
				Rule:     r.ID(),
				Severity: SeverityError,
				Resource: id,
				Message:  fmt.Sprintf("lifecycle policy is not valid JSON: %v", err),
			})
			continue
		}
		for _, rule := range doc.Rules {
			if rule.Selection.CountType == "imageCountMoreThan" && rule.Selection.CountNumber < 1 {
				issues = append(issues, Issue{
					Rule:     r.ID(),
					Severity: SeverityError,
					Resource: id,
					Message:  fmt.Sprintf("retention cap %v keeps no images", rule.Selection.CountNumber),
				})
			}
		}
	}
	return issues
}
