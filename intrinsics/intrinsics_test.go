package intrinsics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshal(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestRefMarshalJSON(t *testing.T) {
	assert.Equal(t, `{"Ref":"DatabaseVPC"}`, marshal(t, Ref{LogicalName: "DatabaseVPC"}))
}

func TestGetAttMarshalJSON(t *testing.T) {
	assert.Equal(t,
		`{"Fn::GetAtt":["DatabaseVPC","CidrBlock"]}`,
		marshal(t, GetAtt{LogicalName: "DatabaseVPC", Attribute: "CidrBlock"}))
}

func TestSubMarshalJSON(t *testing.T) {
	assert.Equal(t,
		`{"Fn::Sub":"${AWS::StackName}-nat"}`,
		marshal(t, Sub{String: "${AWS::StackName}-nat"}))
}

func TestJoinMarshalJSON(t *testing.T) {
	j := Join{Delimiter: "-", Values: Any("a", Ref{LogicalName: "B"})}
	assert.Equal(t, `{"Fn::Join":["-",["a",{"Ref":"B"}]]}`, marshal(t, j))
}

func TestSelectGetAZsMarshalJSON(t *testing.T) {
	s := Select{Index: 1, List: GetAZs{}}
	assert.Equal(t, `{"Fn::Select":[1,{"Fn::GetAZs":""}]}`, marshal(t, s))
}

func TestImportValueMarshalJSON(t *testing.T) {
	assert.Equal(t,
		`{"Fn::ImportValue":"aaa-access-control-DatabaseAccessRoleARN"}`,
		marshal(t, ImportValue{Name: "aaa-access-control-DatabaseAccessRoleARN"}))
}

func TestPseudoParameters(t *testing.T) {
	assert.Equal(t, `{"Ref":"AWS::Region"}`, marshal(t, AWS_REGION))
	assert.Equal(t, `{"Ref":"AWS::AccountId"}`, marshal(t, AWS_ACCOUNT_ID))
}

func TestIsZero(t *testing.T) {
	assert.True(t, Ref{}.IsZero())
	assert.False(t, Ref{LogicalName: "X"}.IsZero())
	assert.True(t, GetAtt{}.IsZero())
	assert.False(t, GetAtt{LogicalName: "X", Attribute: "Arn"}.IsZero())
}

func TestServicePrincipalMarshalJSON(t *testing.T) {
	assert.Equal(t,
		`{"Service":"rds.amazonaws.com"}`,
		marshal(t, ServicePrincipal{"rds.amazonaws.com"}))
	assert.Equal(t,
		`{"Service":["rds.amazonaws.com","backup.amazonaws.com"]}`,
		marshal(t, ServicePrincipal{"rds.amazonaws.com", "backup.amazonaws.com"}))
}

func TestAWSPrincipalMarshalJSON(t *testing.T) {
	assert.Equal(t,
		`{"AWS":"arn:aws:iam::123456789012:root"}`,
		marshal(t, AWSPrincipal{"arn:aws:iam::123456789012:root"}))
}

func TestAssumeRolePolicy(t *testing.T) {
	doc := AssumeRolePolicy(ServicePrincipal{"ecs-tasks.amazonaws.com"})
	assert.Equal(t, PolicyVersion, doc.Version)
	require.Len(t, doc.Statement, 1)

	stmt, ok := doc.Statement[0].(PolicyStatement)
	require.True(t, ok)
	assert.Equal(t, "Allow", stmt.Effect)
	assert.Equal(t, "sts:AssumeRole", stmt.Action)
}

func TestManagedPolicy(t *testing.T) {
	assert.Equal(t,
		"arn:aws:iam::aws:policy/service-role/AWSBackupServiceRolePolicyForBackup",
		ManagedPolicy("service-role/AWSBackupServiceRolePolicyForBackup"))
}
