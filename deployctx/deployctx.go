// Package deployctx holds the deploy-time context consumed at synthesis
// time: target account, target region, and the access-control role ARNs the
// data tier resolves by identifier.
//
// The context lives in groundwork.json next to the binary's working
// directory and can be overridden per invocation with --context key=value.
package deployctx

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultFile is the default context file name.
const DefaultFile = "groundwork.json"

// DefaultRegion is the single region this infrastructure deploys to.
const DefaultRegion = "us-east-1"

// Context keys accepted by Set and --context overrides.
const (
	KeyAccount               = "account"
	KeyRegion                = "region"
	KeyDatabaseAccessRoleArn = "database_access_role_arn"
	KeyMonitoringRoleArn     = "monitoring_role_arn"
	KeyBackupRoleArn         = "backup_role_arn"
)

// Context is the deploy-time context store.
//
// The three role ARNs are produced by the access-control stack and consumed
// by the data tier; they are late-bound identifiers, never shared objects.
type Context struct {
	Account string `json:"account" validate:"omitempty,len=12,numeric"`
	Region  string `json:"region" validate:"required"`

	DatabaseAccessRoleArn string `json:"database_access_role_arn" validate:"omitempty,startswith=arn:"`
	MonitoringRoleArn     string `json:"monitoring_role_arn" validate:"omitempty,startswith=arn:"`
	BackupRoleArn         string `json:"backup_role_arn" validate:"omitempty,startswith=arn:"`
}

// MissingContextError reports context keys required by a stack but absent
// from the store. Synthesis fails closed on it before declaring any
// resource.
type MissingContextError struct {
	Stack string
	Keys  []string
}

func (e *MissingContextError) Error() string {
	return fmt.Sprintf("stack %s requires context keys: %s", e.Stack, strings.Join(e.Keys, ", "))
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// New returns a context with defaults applied.
func New() *Context {
	return &Context{Region: DefaultRegion}
}

// Load reads the context file (if it exists) and applies overrides in
// key=value form. A missing file is not an error; missing keys surface
// later, when a stack requires them.
func Load(path string, overrides []string) (*Context, error) {
	ctx := New()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, ctx); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if ctx.Region == "" {
			ctx.Region = DefaultRegion
		}
	case os.IsNotExist(err):
		// Defaults plus overrides only.
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	for _, kv := range overrides {
		key, value, found := strings.Cut(kv, "=")
		if !found {
			return nil, fmt.Errorf("invalid context override %q (want key=value)", kv)
		}
		if err := ctx.Set(key, value); err != nil {
			return nil, err
		}
	}

	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	return ctx, nil
}

// Set assigns a context value by key.
func (c *Context) Set(key, value string) error {
	switch key {
	case KeyAccount:
		c.Account = value
	case KeyRegion:
		c.Region = value
	case KeyDatabaseAccessRoleArn:
		c.DatabaseAccessRoleArn = value
	case KeyMonitoringRoleArn:
		c.MonitoringRoleArn = value
	case KeyBackupRoleArn:
		c.BackupRoleArn = value
	default:
		return fmt.Errorf("unknown context key %q", key)
	}
	return nil
}

// Validate checks the shape of the populated fields.
func (c *Context) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid context: %w", err)
	}
	return nil
}

// RequireRoleArns fails closed when any of the access-control role ARNs the
// named stack needs is absent.
func (c *Context) RequireRoleArns(stack string) error {
	var missing []string
	if c.DatabaseAccessRoleArn == "" {
		missing = append(missing, KeyDatabaseAccessRoleArn)
	}
	if c.MonitoringRoleArn == "" {
		missing = append(missing, KeyMonitoringRoleArn)
	}
	if c.BackupRoleArn == "" {
		missing = append(missing, KeyBackupRoleArn)
	}
	if len(missing) > 0 {
		return &MissingContextError{Stack: stack, Keys: missing}
	}
	return nil
}
