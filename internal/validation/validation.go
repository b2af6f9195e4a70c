// Package validation runs the full pre-publish check on a stack: synthesis
// (dangling references, cycles), this repository's lint rules, and cfn-lint
// on the emitted template.
//
// cfn-lint-go runs as a library dependency for guaranteed version control.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cfnlint "github.com/lex00/cfn-lint-go/pkg/lint"

	"github.com/aaa-platform/groundwork"
	"github.com/aaa-platform/groundwork/internal/lint"
	"github.com/aaa-platform/groundwork/internal/synth"
)

// Result is the outcome of validating one stack.
type Result struct {
	Stack     string
	Resources int
	Errors    []string
	Warnings  []string
}

// Passed reports whether validation found no errors. Warnings are
// acceptable.
func (r *Result) Passed() bool { return len(r.Errors) == 0 }

// Contract converts the result to its wire form.
func (r *Result) Contract() groundwork.ValidateResult {
	return groundwork.ValidateResult{
		Success:   r.Passed(),
		Stack:     r.Stack,
		Resources: r.Resources,
		Errors:    r.Errors,
		Warnings:  r.Warnings,
	}
}

// ValidateStack synthesizes and checks one stack.
func ValidateStack(s *groundwork.Stack) (*Result, error) {
	result := &Result{Stack: s.Name()}

	res, err := synth.Synthesize(s)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result, nil
	}
	result.Resources = len(res.Order)

	routeIssues(result, lint.Run(res.Template))

	if err := runCfnLint(res, result); err != nil {
		return nil, err
	}

	return result, nil
}

// routeIssues files lint issues by severity. Warnings never fail a stack.
func routeIssues(result *Result, issues []lint.Issue) {
	for _, issue := range issues {
		switch issue.Severity {
		case lint.SeverityError:
			result.Errors = append(result.Errors, issue.String())
		default:
			result.Warnings = append(result.Warnings, issue.String())
		}
	}
}

// runCfnLint emits the template to a temp file and lints it.
func runCfnLint(res *synth.Result, result *Result) error {
	data, err := synth.ToJSON(res.Template)
	if err != nil {
		return fmt.Errorf("serializing %s: %w", res.Stack, err)
	}

	dir, err := os.MkdirTemp("", "groundwork-lint-")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, res.Stack+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing temp template: %w", err)
	}

	linter := cfnlint.New(cfnlint.Options{})
	matches, err := linter.LintFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cfn-lint: %v", err))
		return nil
	}

	for _, match := range matches {
		formatted := formatMatch(match)
		switch match.Level {
		case "Error":
			result.Errors = append(result.Errors, formatted)
		case "Warning":
			result.Warnings = append(result.Warnings, formatted)
		default:
			// Informational matches are noise here.
		}
	}
	return nil
}

func formatMatch(match cfnlint.Match) string {
	parts := make([]string, len(match.Location.Path))
	for i, p := range match.Location.Path {
		parts[i] = fmt.Sprintf("%v", p)
	}
	return formatIssue(match.Rule.ID, match.Message, parts)
}

func formatIssue(ruleID, message string, path []string) string {
	if len(path) > 0 {
		return fmt.Sprintf("%s: %s (at %s)", ruleID, message, strings.Join(path, "/"))
	}
	return fmt.Sprintf("%s: %s", ruleID, message)
}
