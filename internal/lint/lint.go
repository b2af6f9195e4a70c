// Package lint checks synthesized templates against this repository's
// security and durability rules.
//
// Rules run on the synthesized template, not on source declarations, so
// every path that produces a property value (literals, intrinsics, helpers)
// is covered by the same check.
package lint

import (
	"fmt"
	"sort"

	"github.com/aaa-platform/groundwork"
)

// Severity classifies an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one rule violation found in a template.
type Issue struct {
	Rule     string
	Severity Severity
	Resource string
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", i.Rule, i.Severity, i.Resource, i.Message)
}

// Rule checks one property of a synthesized template.
type Rule interface {
	ID() string
	Description() string
	Check(t *groundwork.Template) []Issue
}

// Rules returns the default rule set.
func Rules() []Rule {
	return []Rule{
		openIngressRule{},
		wildcardResourceRule{},
		literalCredentialsRule{},
		repositoryHygieneRule{},
		removalPolicyRule{},
		retentionCapRule{},
	}
}

// Run checks a template against the default rule set. Issues are ordered by
// rule ID, then resource.
func Run(t *groundwork.Template) []Issue {
	var issues []Issue
	for _, rule := range Rules() {
		issues = append(issues, rule.Check(t)...)
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Rule != issues[j].Rule {
			return issues[i].Rule < issues[j].Rule
		}
		return issues[i].Resource < issues[j].Resource
	})
	return issues
}

// HasErrors reports whether any issue is error severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// resourcesOfType yields logical IDs of the given CloudFormation type in
// stable order.
func resourcesOfType(t *groundwork.Template, typ string) []string {
	var ids []string
	for id, def := range t.Resources {
		if def.Type == typ {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
