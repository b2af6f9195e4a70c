// Package accesscontrol declares the IAM roles used by the AAA platform's
// database: one operational role for database access and management, one for
// enhanced monitoring, and one for backups.
//
// The role ARNs are surfaced as stack outputs; the data tier resolves them
// from the deploy-time context by identifier, so this stack must be deployed
// first (or its ARNs supplied externally).
package accesscontrol

import (
	"github.com/aaa-platform/groundwork"
	. "github.com/aaa-platform/groundwork/intrinsics"
	"github.com/aaa-platform/groundwork/resources/iam"
)

// StackName is the deployable name of the access-control stack.
const StackName = "aaa-access-control"

// databaseActions is the permission grant for the database access role.
// It is intentionally broad and resource-unrestricted: this is the
// operational role used to manage the cluster itself, not a workload role
// (contrast with the registry stack's pull role).
var databaseActions = []string{
	"rds-db:connect",

	// Cluster and instance lifecycle.
	"rds:CreateDBCluster",
	"rds:DeleteDBCluster",
	"rds:ModifyDBCluster",
	"rds:StartDBCluster",
	"rds:StopDBCluster",
	"rds:CreateDBInstance",
	"rds:DeleteDBInstance",
	"rds:ModifyDBInstance",
	"rds:StartDBInstance",
	"rds:StopDBInstance",
	"rds:RebootDBInstance",
	"rds:PromoteReadReplica",
	"rds:PromoteReadReplicaDBCluster",

	// Snapshot lifecycle and restore.
	"rds:CreateDBSnapshot",
	"rds:DeleteDBSnapshot",
	"rds:CopyDBSnapshot",
	"rds:CopyDBClusterSnapshot",
	"rds:ModifyDBSnapshotAttribute",
	"rds:ModifyDBClusterSnapshotAttribute",
	"rds:RestoreDBInstanceFromDBSnapshot",
	"rds:RestoreDBClusterFromSnapshot",
	"rds:RestoreDBInstanceToPointInTime",
	"rds:RestoreDBClusterToPointInTime",

	// Parameter group management.
	"rds:ModifyDBParameterGroup",
	"rds:ModifyDBClusterParameterGroup",
	"rds:ResetDBParameterGroup",
	"rds:ResetDBClusterParameterGroup",

	// Event subscriptions.
	"rds:CreateEventSubscription",
	"rds:DeleteEventSubscription",
	"rds:ModifyEventSubscription",

	// Tags and logs.
	"rds:AddTagsToResource",
	"rds:RemoveTagsFromResource",
	"rds:ListTagsForResource",
	"rds:DescribeDBLogFiles",
	"rds:DownloadDBLogFilePortion",

	// Read-only describes.
	"rds:DescribeDBClusters",
	"rds:DescribeDBInstances",
	"rds:DescribeDBClusterEndpoints",
	"rds:DescribeDBClusterParameterGroups",
	"rds:DescribeDBClusterParameters",
	"rds:DescribeDBClusterSnapshotAttributes",
	"rds:DescribeDBClusterSnapshots",
	"rds:DescribeDBEngineVersions",
	"rds:DescribeDBParameterGroups",
	"rds:DescribeDBParameters",
	"rds:DescribeDBSnapshotAttributes",
	"rds:DescribeDBSnapshots",
	"rds:DescribeDBSubnetGroups",
	"rds:DescribeEventCategories",
	"rds:DescribeEventSubscriptions",
	"rds:DescribeEvents",
	"rds:DescribeOptionGroups",
	"rds:DescribeOrderableDBInstanceOptions",
	"rds:DescribePendingMaintenanceActions",
	"rds:DescribeReservedDBInstances",
	"rds:DescribeReservedDBInstancesOfferings",
	"rds:DescribeSourceRegions",
	"rds:DescribeValidDBInstanceModifications",
	"rds:DescribeValidDBClusterModifications",
	"rds:PurchaseReservedDBInstancesOffering",
	"rds:RevokeDBSecurityGroupIngress",
}

// New declares the access-control stack.
func New() (*groundwork.Stack, error) {
	s := groundwork.NewStack(StackName, "IAM roles for database access, monitoring, and backup")

	accessRole := s.Add("DatabaseAccessRole", iam.Role{
		Description:              "Role for database access and management",
		AssumeRolePolicyDocument: AssumeRolePolicy(ServicePrincipal{"rds.amazonaws.com"}),
		ManagedPolicyArns: Any(
			ManagedPolicy("service-role/AmazonRDSEnhancedMonitoringRole"),
			ManagedPolicy("service-role/AmazonRDSDirectoryServiceAccess"),
		),
		Policies: Any(iam.Role_Policy{
			PolicyName: "DatabaseOperations",
			PolicyDocument: NewPolicyDocument(PolicyStatement{
				Effect:   "Allow",
				Action:   databaseActions,
				Resource: "*",
			}),
		}),
	})

	monitoringRole := s.Add("DatabaseMonitoringRole", iam.Role{
		Description:              "Role for database monitoring and metrics",
		AssumeRolePolicyDocument: AssumeRolePolicy(ServicePrincipal{"monitoring.rds.amazonaws.com"}),
		ManagedPolicyArns: Any(
			ManagedPolicy("service-role/AmazonRDSEnhancedMonitoringRole"),
		),
	})

	backupRole := s.Add("DatabaseBackupRole", iam.Role{
		Description:              "Role for database backup operations",
		AssumeRolePolicyDocument: AssumeRolePolicy(ServicePrincipal{"backup.amazonaws.com"}),
		ManagedPolicyArns: Any(
			ManagedPolicy("service-role/AWSBackupServiceRolePolicyForBackup"),
		),
	})

	s.SetOutput("DatabaseAccessRoleARN", groundwork.Output{
		Description: "Database access role ARN",
		Value:       accessRole.Attr("Arn"),
		Export:      &groundwork.Export{Name: StackName + "-DatabaseAccessRoleARN"},
	})
	s.SetOutput("DatabaseMonitoringRoleARN", groundwork.Output{
		Description: "Database monitoring role ARN",
		Value:       monitoringRole.Attr("Arn"),
		Export:      &groundwork.Export{Name: StackName + "-DatabaseMonitoringRoleARN"},
	})
	s.SetOutput("DatabaseBackupRoleARN", groundwork.Output{
		Description: "Database backup role ARN",
		Value:       backupRole.Attr("Arn"),
		Export:      &groundwork.Export{Name: StackName + "-DatabaseBackupRoleARN"},
	})

	return s, s.Err()
}
