package stacks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaa-platform/groundwork/deployctx"
	"github.com/aaa-platform/groundwork/internal/synth"
)

func testContext() *deployctx.Context {
	ctx := deployctx.New()
	ctx.DatabaseAccessRoleArn = "arn:aws:iam::123456789012:role/access"
	ctx.MonitoringRoleArn = "arn:aws:iam::123456789012:role/monitoring"
	ctx.BackupRoleArn = "arn:aws:iam::123456789012:role/backup"
	return ctx
}

func TestNamesInDeployOrder(t *testing.T) {
	assert.Equal(t, []string{
		"aaa-access-control",
		"aaa-data-tier",
		"aaa-container-registry",
	}, Names())
}

func TestBuildUnknownStack(t *testing.T) {
	_, err := Build(testContext(), "aaa-nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown stack "aaa-nonexistent"`)
}

func TestBuildAll(t *testing.T) {
	built, err := BuildAll(testContext())
	require.NoError(t, err)
	require.Len(t, built, 3)
	for i, s := range built {
		assert.Equal(t, Names()[i], s.Name())
	}
}

func TestBuildAllFailsClosedWithoutContext(t *testing.T) {
	_, err := BuildAll(deployctx.New())
	var missing *deployctx.MissingContextError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "aaa-data-tier", missing.Stack)
}

// Synthesizing the same declarations twice must produce byte-identical
// templates: synthesis is a dry run with no hidden state.
func TestSynthesisIsDeterministic(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			first, err := Build(testContext(), name)
			require.NoError(t, err)
			second, err := Build(testContext(), name)
			require.NoError(t, err)

			resA, err := synth.Synthesize(first)
			require.NoError(t, err)
			resB, err := synth.Synthesize(second)
			require.NoError(t, err)

			jsonA, err := synth.ToJSON(resA.Template)
			require.NoError(t, err)
			jsonB, err := synth.ToJSON(resB.Template)
			require.NoError(t, err)

			assert.Equal(t, string(jsonA), string(jsonB))
			assert.Equal(t, resA.Order, resB.Order)

			yamlA, err := synth.ToYAML(resA.Template)
			require.NoError(t, err)
			yamlB, err := synth.ToYAML(resB.Template)
			require.NoError(t, err)
			assert.Equal(t, string(yamlA), string(yamlB))
		})
	}
}
