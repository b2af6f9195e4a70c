package differ

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaa-platform/groundwork"
)

func tmplOf(resources map[string]groundwork.ResourceDef) *groundwork.Template {
	return &groundwork.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Resources:                resources,
	}
}

func TestCompareNoChanges(t *testing.T) {
	tmpl := tmplOf(map[string]groundwork.ResourceDef{
		"A": {Type: "Test::Node", Properties: map[string]any{"Name": "a", "Count": 3}},
	})

	diff, err := Compare(tmpl, tmpl)
	require.NoError(t, err)
	assert.False(t, HasChanges(diff))
	assert.Equal(t, "no changes\n", Format(diff))
}

func TestCompareAddedAndRemoved(t *testing.T) {
	before := tmplOf(map[string]groundwork.ResourceDef{
		"Old": {Type: "Test::Node"},
	})
	after := tmplOf(map[string]groundwork.ResourceDef{
		"New": {Type: "Test::Node"},
	})

	diff, err := Compare(before, after)
	require.NoError(t, err)
	require.Len(t, diff.Added, 1)
	require.Len(t, diff.Removed, 1)
	assert.Equal(t, "New", diff.Added[0].Resource)
	assert.Equal(t, "Old", diff.Removed[0].Resource)

	sum := Summarize(diff)
	assert.Equal(t, groundwork.DiffSummary{Added: 1, Removed: 1, Total: 2}, sum)
}

func TestCompareModifiedProperty(t *testing.T) {
	before := tmplOf(map[string]groundwork.ResourceDef{
		"Cluster": {Type: "AWS::RDS::DBCluster", Properties: map[string]any{"BackupRetentionPeriod": 7}},
	})
	after := tmplOf(map[string]groundwork.ResourceDef{
		"Cluster": {Type: "AWS::RDS::DBCluster", Properties: map[string]any{"BackupRetentionPeriod": 14}},
	})

	diff, err := Compare(before, after)
	require.NoError(t, err)
	require.Len(t, diff.Modified, 1)
	entry := diff.Modified[0]
	assert.Equal(t, "Cluster", entry.Resource)
	require.Len(t, entry.Changes, 1)
	assert.Equal(t, "Properties.BackupRetentionPeriod", entry.Changes[0].Path)
}

func TestCompareNumericTypesNormalize(t *testing.T) {
	// int64 from fresh synthesis vs float64 from a JSON-loaded file must
	// compare equal.
	before := tmplOf(map[string]groundwork.ResourceDef{
		"A": {Type: "Test::Node", Properties: map[string]any{"Count": float64(3)}},
	})
	after := tmplOf(map[string]groundwork.ResourceDef{
		"A": {Type: "Test::Node", Properties: map[string]any{"Count": int64(3)}},
	})

	diff, err := Compare(before, after)
	require.NoError(t, err)
	assert.False(t, HasChanges(diff))
}

func TestCompareDeletionPolicyChange(t *testing.T) {
	before := tmplOf(map[string]groundwork.ResourceDef{
		"Cluster": {Type: "AWS::RDS::DBCluster", DeletionPolicy: "Delete"},
	})
	after := tmplOf(map[string]groundwork.ResourceDef{
		"Cluster": {Type: "AWS::RDS::DBCluster", DeletionPolicy: "Snapshot"},
	})

	diff, err := Compare(before, after)
	require.NoError(t, err)
	require.Len(t, diff.Modified, 1)
	require.Len(t, diff.Modified[0].Changes, 1)
	assert.Equal(t, "DeletionPolicy", diff.Modified[0].Changes[0].Path)
}

func TestCompareSliceLengthChange(t *testing.T) {
	before := tmplOf(map[string]groundwork.ResourceDef{
		"A": {Type: "Test::Node", Properties: map[string]any{"Items": []any{"x"}}},
	})
	after := tmplOf(map[string]groundwork.ResourceDef{
		"A": {Type: "Test::Node", Properties: map[string]any{"Items": []any{"x", "y"}}},
	})

	diff, err := Compare(before, after)
	require.NoError(t, err)
	require.Len(t, diff.Modified, 1)
	assert.Equal(t, "Properties.Items", diff.Modified[0].Changes[0].Path)
}

func TestLoadTemplateJSONAndYAML(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "stack.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
		"AWSTemplateFormatVersion": "2010-09-09",
		"Resources": {"A": {"Type": "Test::Node"}}
	}`), 0o644))

	yamlPath := filepath.Join(dir, "stack.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(
		"AWSTemplateFormatVersion: \"2010-09-09\"\nResources:\n  A:\n    Type: Test::Node\n"), 0o644))

	fromJSON, err := LoadTemplate(jsonPath)
	require.NoError(t, err)
	fromYAML, err := LoadTemplate(yamlPath)
	require.NoError(t, err)

	diff, err := Compare(fromJSON, fromYAML)
	require.NoError(t, err)
	assert.False(t, HasChanges(diff))
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()

	oldPath := filepath.Join(dir, "old.json")
	require.NoError(t, os.WriteFile(oldPath, []byte(`{
		"AWSTemplateFormatVersion": "2010-09-09",
		"Resources": {
			"Cluster": {"Type": "AWS::RDS::DBCluster", "Properties": {"BackupRetentionPeriod": 7}}
		}
	}`), 0o644))

	newPath := filepath.Join(dir, "new.json")
	require.NoError(t, os.WriteFile(newPath, []byte(`{
		"AWSTemplateFormatVersion": "2010-09-09",
		"Resources": {
			"Cluster": {"Type": "AWS::RDS::DBCluster", "Properties": {"BackupRetentionPeriod": 14}},
			"Instance": {"Type": "AWS::RDS::DBInstance"}
		}
	}`), 0o644))

	diff, err := CompareFiles(oldPath, newPath)
	require.NoError(t, err)
	require.Len(t, diff.Added, 1)
	assert.Equal(t, "Instance", diff.Added[0].Resource)
	require.Len(t, diff.Modified, 1)
	assert.Equal(t, "Properties.BackupRetentionPeriod", diff.Modified[0].Changes[0].Path)

	_, err = CompareFiles(filepath.Join(dir, "absent.json"), newPath)
	assert.Error(t, err)
}

func TestLoadTemplateRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Resources": {}}`), 0o644))

	_, err := LoadTemplate(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no resources")
}

func TestFormat(t *testing.T) {
	diff := &groundwork.TemplateDiff{
		Added:   []groundwork.DiffEntry{{Resource: "New", Type: "Test::Node"}},
		Removed: []groundwork.DiffEntry{{Resource: "Old", Type: "Test::Node"}},
		Modified: []groundwork.DiffEntry{{
			Resource: "Changed",
			Type:     "Test::Node",
			Changes:  []groundwork.Change{{Path: "Properties.Name", Old: "a", New: "b"}},
		}},
	}
	out := Format(diff)
	assert.Contains(t, out, "+ New (Test::Node)")
	assert.Contains(t, out, "- Old (Test::Node)")
	assert.Contains(t, out, "~ Changed (Test::Node)")
	assert.Contains(t, out, "Properties.Name: a -> b")
}
