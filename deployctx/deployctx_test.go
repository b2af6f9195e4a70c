package deployctx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeContextFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	ctx, err := Load(filepath.Join(t.TempDir(), "absent.json"), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultRegion, ctx.Region)
	assert.Empty(t, ctx.DatabaseAccessRoleArn)
}

func TestLoadFile(t *testing.T) {
	path := writeContextFile(t, `{
		"account": "123456789012",
		"region": "eu-west-1",
		"database_access_role_arn": "arn:aws:iam::123456789012:role/access"
	}`)

	ctx, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "123456789012", ctx.Account)
	assert.Equal(t, "eu-west-1", ctx.Region)
	assert.Equal(t, "arn:aws:iam::123456789012:role/access", ctx.DatabaseAccessRoleArn)
}

func TestLoadOverridesWinOverFile(t *testing.T) {
	path := writeContextFile(t, `{"region": "eu-west-1"}`)

	ctx, err := Load(path, []string{"region=us-west-2"})
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", ctx.Region)
}

func TestLoadRejectsMalformedOverride(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"), []string{"region"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want key=value")
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"), []string{"colour=blue"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown context key "colour"`)
}

func TestLoadRejectsBadAccount(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"), []string{"account=not-a-number"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid context")
}

func TestLoadRejectsBadArn(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"), []string{"backup_role_arn=role/backup"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid context")
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := writeContextFile(t, `{`)
	_, err := Load(path, nil)
	require.Error(t, err)
}

func TestRequireRoleArns(t *testing.T) {
	ctx := New()
	err := ctx.RequireRoleArns("aaa-data-tier")
	require.Error(t, err)

	var missing *MissingContextError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "aaa-data-tier", missing.Stack)
	assert.Equal(t, []string{
		KeyDatabaseAccessRoleArn,
		KeyMonitoringRoleArn,
		KeyBackupRoleArn,
	}, missing.Keys)
}

func TestRequireRoleArnsPartial(t *testing.T) {
	ctx := New()
	ctx.DatabaseAccessRoleArn = "arn:aws:iam::123456789012:role/access"
	ctx.BackupRoleArn = "arn:aws:iam::123456789012:role/backup"

	err := ctx.RequireRoleArns("aaa-data-tier")
	var missing *MissingContextError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{KeyMonitoringRoleArn}, missing.Keys)
}

func TestRequireRoleArnsSatisfied(t *testing.T) {
	ctx := New()
	ctx.DatabaseAccessRoleArn = "arn:aws:iam::123456789012:role/access"
	ctx.MonitoringRoleArn = "arn:aws:iam::123456789012:role/monitoring"
	ctx.BackupRoleArn = "arn:aws:iam::123456789012:role/backup"
	require.NoError(t, ctx.RequireRoleArns("aaa-data-tier"))
}
