// Package rds provides CloudFormation resource types for AWS::RDS.
package rds

// DBSubnetGroup represents an AWS::RDS::DBSubnetGroup resource.
type DBSubnetGroup struct {
	DBSubnetGroupName        any
	DBSubnetGroupDescription string
	SubnetIds                []any
	Tags                     []any
}

func (DBSubnetGroup) ResourceType() string { return "AWS::RDS::DBSubnetGroup" }

// DBCluster represents an AWS::RDS::DBCluster resource.
type DBCluster struct {
	DBClusterIdentifier         any
	Engine                      string
	EngineVersion               string
	DatabaseName                string
	MasterUsername              any
	MasterUserPassword          any
	DBSubnetGroupName           any
	DBClusterParameterGroupName any
	VpcSecurityGroupIds         []any
	BackupRetentionPeriod       int
	PreferredBackupWindow       string
	PreferredMaintenanceWindow  string
	StorageEncrypted            bool
	DeletionProtection          bool
	AssociatedRoles             []any
	EnableCloudwatchLogsExports []any
	Tags                        []any
}

func (DBCluster) ResourceType() string { return "AWS::RDS::DBCluster" }

// DBCluster_DBClusterRole is the AssociatedRoles entry of DBCluster: an IAM
// role associated with the cluster by ARN.
type DBCluster_DBClusterRole struct {
	RoleArn     any
	FeatureName string
}

// DBInstance represents an AWS::RDS::DBInstance resource.
type DBInstance struct {
	DBInstanceIdentifier    any
	DBClusterIdentifier     any
	DBInstanceClass         string
	Engine                  string
	DBSubnetGroupName       any
	// Typed any so an explicit false survives zero-value omission.
	PubliclyAccessible      any
	AutoMinorVersionUpgrade bool
	MonitoringInterval      int
	MonitoringRoleArn       any
	PromotionTier           int
	Tags                    []any
}

func (DBInstance) ResourceType() string { return "AWS::RDS::DBInstance" }
