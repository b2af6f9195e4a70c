package publish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(Options{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
	}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket is required")
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(Options{Bucket: "aaa-templates"}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials are required")

	_, err = New(Options{Bucket: "aaa-templates", AccessKeyID: "AKIAEXAMPLE"}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials are required")
}

func TestNewWithEndpointOverride(t *testing.T) {
	p, err := New(Options{
		Bucket:          "aaa-templates",
		Prefix:          "templates",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "aaa-templates", p.bucket)
	assert.Equal(t, "templates", p.prefix)
}
