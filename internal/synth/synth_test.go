package synth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaa-platform/groundwork"
	"github.com/aaa-platform/groundwork/intrinsics"
)

type node struct {
	Name string
	Peer any
	Note any
}

func (node) ResourceType() string { return "Test::Node" }

func TestSynthesizeOrdersDependencies(t *testing.T) {
	s := groundwork.NewStack("test", "")
	b := s.Add("B", node{Name: "b"})
	a := s.Add("A", node{Name: "a", Peer: b.Ref()})
	s.Add("C", node{Name: "c", Peer: a.Ref()})

	res, err := Synthesize(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, res.Order)
	assert.Equal(t, []string{"B"}, res.Dependencies["A"])
	assert.Equal(t, []string{"A"}, res.Dependencies["C"])
}

func TestSynthesizeStableOrderWithoutDependencies(t *testing.T) {
	s := groundwork.NewStack("test", "")
	s.Add("Charlie", node{Name: "c"})
	s.Add("Alpha", node{Name: "a"})
	s.Add("Bravo", node{Name: "b"})

	res, err := Synthesize(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, res.Order)
}

func TestSynthesizeDanglingRef(t *testing.T) {
	s := groundwork.NewStack("test", "")
	s.Add("A", node{Name: "a", Peer: intrinsics.Ref{LogicalName: "Ghost"}})

	_, err := Synthesize(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `A references undeclared "Ghost"`)
}

func TestSynthesizeDanglingDependsOn(t *testing.T) {
	s := groundwork.NewStack("test", "")
	s.Add("A", node{Name: "a"}, groundwork.WithDependsOn(groundwork.Handle{}))

	_, err := Synthesize(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "depends on undeclared")
}

func TestSynthesizeCycle(t *testing.T) {
	s := groundwork.NewStack("test", "")
	s.Add("A", node{Name: "a", Peer: intrinsics.Ref{LogicalName: "B"}})
	s.Add("B", node{Name: "b", Peer: intrinsics.Ref{LogicalName: "A"}})

	_, err := Synthesize(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular dependency")
}

func TestSynthesizeGetAttEdges(t *testing.T) {
	s := groundwork.NewStack("test", "")
	b := s.Add("B", node{Name: "b"})
	s.Add("A", node{Name: "a", Peer: b.Attr("Arn")})

	res, err := Synthesize(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, res.Dependencies["A"])
	assert.True(t, res.AttrEdges["A->B"])
}

func TestSynthesizeSubRefs(t *testing.T) {
	s := groundwork.NewStack("test", "")
	s.Add("B", node{Name: "b"})
	s.Add("A", node{Name: "a", Note: intrinsics.Sub{String: "{{resolve:secretsmanager:${B}:SecretString:username}}"}})

	res, err := Synthesize(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, res.Dependencies["A"])
}

func TestSynthesizeSubIgnoresPseudoParameters(t *testing.T) {
	s := groundwork.NewStack("test", "")
	s.Add("A", node{Name: "a", Note: intrinsics.Sub{String: "${AWS::StackName}-${AWS::Region}"}})

	_, err := Synthesize(s)
	require.NoError(t, err)
}

func TestSynthesizeSubAttrReference(t *testing.T) {
	s := groundwork.NewStack("test", "")
	s.Add("B", node{Name: "b"})
	s.Add("A", node{Name: "a", Note: intrinsics.Sub{String: "${B.Arn}/suffix"}})

	res, err := Synthesize(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, res.Dependencies["A"])
	assert.True(t, res.AttrEdges["A->B"])
}

func TestSynthesizeParameterRefs(t *testing.T) {
	s := groundwork.NewStack("test", "")
	env := s.AddParameter("Environment", groundwork.Parameter{Type: "String"})
	s.Add("A", node{Name: "a", Peer: env.Ref()})

	res, err := Synthesize(s)
	require.NoError(t, err)
	assert.Empty(t, res.Dependencies["A"])
	assert.Contains(t, res.Template.Parameters, "Environment")
}

func TestSynthesizeDeletionPolicy(t *testing.T) {
	s := groundwork.NewStack("test", "")
	s.Add("A", node{Name: "a"}, groundwork.WithDeletionPolicy(groundwork.DeletionPolicySnapshot))

	res, err := Synthesize(s)
	require.NoError(t, err)
	def := res.Template.Resources["A"]
	assert.Equal(t, "Snapshot", def.DeletionPolicy)
	assert.Equal(t, "Snapshot", def.UpdateReplacePolicy)
}

func TestSynthesizeDanglingOutput(t *testing.T) {
	s := groundwork.NewStack("test", "")
	s.Add("A", node{Name: "a"})
	s.SetOutput("GhostARN", groundwork.Output{Value: intrinsics.GetAtt{LogicalName: "Ghost", Attribute: "Arn"}})

	_, err := Synthesize(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `output GhostARN references undeclared "Ghost"`)
}

func TestSynthesizeNormalizesOutputValues(t *testing.T) {
	s := groundwork.NewStack("test", "")
	a := s.Add("A", node{Name: "a"})
	s.SetOutput("AArn", groundwork.Output{Value: a.Attr("Arn")})

	res, err := Synthesize(s)
	require.NoError(t, err)
	assert.Equal(t,
		map[string]any{"Fn::GetAtt": []any{"A", "Arn"}},
		res.Template.Outputs["AArn"].Value)
}

func TestSynthesizeReportsDeclarationErrors(t *testing.T) {
	s := groundwork.NewStack("test", "")
	s.Add("A", node{Name: "a"})
	s.Add("A", node{Name: "dup"})

	_, err := Synthesize(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate logical ID")
}

func TestToJSONAndToYAMLAgree(t *testing.T) {
	s := groundwork.NewStack("test", "a stack")
	b := s.Add("B", node{Name: "b"})
	s.Add("A", node{Name: "a", Peer: b.Ref()})

	res, err := Synthesize(s)
	require.NoError(t, err)

	jsonData, err := ToJSON(res.Template)
	require.NoError(t, err)
	yamlData, err := ToYAML(res.Template)
	require.NoError(t, err)

	assert.Contains(t, string(jsonData), `"AWSTemplateFormatVersion": "2010-09-09"`)
	assert.Contains(t, string(yamlData), "AWSTemplateFormatVersion:")
	// The normalized intrinsic must appear in both encodings.
	assert.Contains(t, string(jsonData), `"Ref": "B"`)
	assert.True(t, strings.Contains(string(yamlData), "Ref: B"))
}
