// Package stacks registers the AAA platform's stacks in deploy order.
package stacks

import (
	"fmt"

	"github.com/aaa-platform/groundwork"
	"github.com/aaa-platform/groundwork/deployctx"
	"github.com/aaa-platform/groundwork/stacks/accesscontrol"
	"github.com/aaa-platform/groundwork/stacks/datatier"
	"github.com/aaa-platform/groundwork/stacks/registry"
)

// Builder declares one stack from the deploy-time context.
type Builder func(ctx *deployctx.Context) (*groundwork.Stack, error)

// ordered lists the stacks in deploy order: access-control first, since the
// data tier consumes its role ARNs through the context. The registry is
// independent and deploys last by convention.
var ordered = []struct {
	name  string
	build Builder
}{
	{accesscontrol.StackName, func(*deployctx.Context) (*groundwork.Stack, error) { return accesscontrol.New() }},
	{datatier.StackName, datatier.New},
	{registry.StackName, func(*deployctx.Context) (*groundwork.Stack, error) { return registry.New() }},
}

// Names returns the stack names in deploy order.
func Names() []string {
	names := make([]string, len(ordered))
	for i, entry := range ordered {
		names[i] = entry.name
	}
	return names
}

// Build declares the named stack.
func Build(ctx *deployctx.Context, name string) (*groundwork.Stack, error) {
	for _, entry := range ordered {
		if entry.name == name {
			return entry.build(ctx)
		}
	}
	return nil, fmt.Errorf("unknown stack %q (known: %v)", name, Names())
}

// BuildAll declares every stack in deploy order.
func BuildAll(ctx *deployctx.Context) ([]*groundwork.Stack, error) {
	out := make([]*groundwork.Stack, 0, len(ordered))
	for _, entry := range ordered {
		s, err := entry.build(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
