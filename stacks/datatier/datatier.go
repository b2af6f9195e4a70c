// Package datatier declares the private network and the Aurora PostgreSQL
// cluster the AAA platform stores its data in.
//
// The stack needs the three access-control role ARNs from the deploy-time
// context; synthesis fails closed before any resource is declared when one
// is missing. Credentials are generated into Secrets Manager and injected
// into the cluster through dynamic references, never as literal values.
package datatier

import (
	"github.com/aaa-platform/groundwork"
	"github.com/aaa-platform/groundwork/deployctx"
	. "github.com/aaa-platform/groundwork/intrinsics"
	"github.com/aaa-platform/groundwork/resources/ec2"
	"github.com/aaa-platform/groundwork/resources/rds"
	"github.com/aaa-platform/groundwork/resources/secretsmanager"
)

// StackName is the deployable name of the data-tier stack.
const StackName = "aaa-data-tier"

const (
	vpcCIDR = "10.0.0.0/16"

	publicSubnetACIDR  = "10.0.0.0/24"
	publicSubnetBCIDR  = "10.0.1.0/24"
	privateSubnetACIDR = "10.0.2.0/24"
	privateSubnetBCIDR = "10.0.3.0/24"

	postgresPort = 5432
)

// New declares the data-tier stack. The context must carry the
// access-control role ARNs.
func New(ctx *deployctx.Context) (*groundwork.Stack, error) {
	if err := ctx.RequireRoleArns(StackName); err != nil {
		return nil, err
	}

	s := groundwork.NewStack(StackName, "Private network and Aurora PostgreSQL cluster")

	vpc := s.Add("DatabaseVPC", ec2.VPC{
		CidrBlock:          vpcCIDR,
		EnableDnsHostnames: true,
		EnableDnsSupport:   true,
		Tags:               Any(Tag{Key: "Name", Value: StackName + "-vpc"}),
	})

	igw := s.Add("InternetGateway", ec2.InternetGateway{
		Tags: Any(Tag{Key: "Name", Value: StackName + "-igw"}),
	})
	attachment := s.Add("GatewayAttachment", ec2.VPCGatewayAttachment{
		VpcId:             vpc.Ref(),
		InternetGatewayId: igw.Ref(),
	})

	// Two AZs, one public and one private subnet each.
	publicA := s.Add("PublicSubnetA", ec2.Subnet{
		VpcId:               vpc.Ref(),
		CidrBlock:           publicSubnetACIDR,
		AvailabilityZone:    Select{Index: 0, List: GetAZs{}},
		MapPublicIpOnLaunch: true,
		Tags:                Any(Tag{Key: "Name", Value: StackName + "-public-a"}),
	})
	publicB := s.Add("PublicSubnetB", ec2.Subnet{
		VpcId:               vpc.Ref(),
		CidrBlock:           publicSubnetBCIDR,
		AvailabilityZone:    Select{Index: 1, List: GetAZs{}},
		MapPublicIpOnLaunch: true,
		Tags:                Any(Tag{Key: "Name", Value: StackName + "-public-b"}),
	})
	privateA := s.Add("PrivateSubnetA", ec2.Subnet{
		VpcId:            vpc.Ref(),
		CidrBlock:        privateSubnetACIDR,
		AvailabilityZone: Select{Index: 0, List: GetAZs{}},
		Tags:             Any(Tag{Key: "Name", Value: StackName + "-private-a"}),
	})
	privateB := s.Add("PrivateSubnetB", ec2.Subnet{
		VpcId:            vpc.Ref(),
		CidrBlock:        privateSubnetBCIDR,
		AvailabilityZone: Select{Index: 1, List: GetAZs{}},
		Tags:             Any(Tag{Key: "Name", Value: StackName + "-private-b"}),
	})

	// One NAT gateway serves both private subnets.
	eip := s.Add("NatGatewayEIP", ec2.EIP{Domain: "vpc"},
		groundwork.WithDependsOn(attachment))
	nat := s.Add("NatGateway", ec2.NatGateway{
		AllocationId: eip.Attr("AllocationId"),
		SubnetId:     publicA.Ref(),
	})

	publicRT := s.Add("PublicRouteTable", ec2.RouteTable{VpcId: vpc.Ref()})
	s.Add("PublicRoute", ec2.Route{
		RouteTableId:         publicRT.Ref(),
		DestinationCidrBlock: "0.0.0.0/0",
		GatewayId:            igw.Ref(),
	}, groundwork.WithDependsOn(attachment))
	s.Add("PublicSubnetARouteTableAssociation", ec2.SubnetRouteTableAssociation{
		SubnetId:     publicA.Ref(),
		RouteTableId: publicRT.Ref(),
	})
	s.Add("PublicSubnetBRouteTableAssociation", ec2.SubnetRouteTableAssociation{
		SubnetId:     publicB.Ref(),
		RouteTableId: publicRT.Ref(),
	})

	privateRT := s.Add("PrivateRouteTable", ec2.RouteTable{VpcId: vpc.Ref()})
	s.Add("PrivateRoute", ec2.Route{
		RouteTableId:         privateRT.Ref(),
		DestinationCidrBlock: "0.0.0.0/0",
		NatGatewayId:         nat.Ref(),
	})
	s.Add("PrivateSubnetARouteTableAssociation", ec2.SubnetRouteTableAssociation{
		SubnetId:     privateA.Ref(),
		RouteTableId: privateRT.Ref(),
	})
	s.Add("PrivateSubnetBRouteTableAssociation", ec2.SubnetRouteTableAssociation{
		SubnetId:     privateB.Ref(),
		RouteTableId: privateRT.Ref(),
	})

	// Ingress is restricted to the VPC's own address range, read back from
	// the VPC resource rather than repeated as a literal.
	sg := s.Add("DatabaseSecurityGroup", ec2.SecurityGroup{
		GroupDescription: "Security group for the Aurora PostgreSQL cluster",
		VpcId:            vpc.Ref(),
		SecurityGroupIngress: Any(ec2.SecurityGroup_Ingress{
			Description: "PostgreSQL from within the VPC",
			IpProtocol:  "tcp",
			FromPort:    postgresPort,
			ToPort:      postgresPort,
			CidrIp:      vpc.Attr("CidrBlock"),
		}),
	})

	secret := s.Add("DatabaseCredentials", secretsmanager.Secret{
		Description: "Credentials for the Aurora PostgreSQL cluster",
		GenerateSecretString: secretsmanager.Secret_GenerateSecretString{
			SecretStringTemplate: `{"username": "aaa_user"}`,
			GenerateStringKey:    "password",
			ExcludeCharacters:    `"@/\`,
		},
	})

	subnetGroup := s.Add("DatabaseSubnetGroup", rds.DBSubnetGroup{
		DBSubnetGroupDescription: "Private subnets for the database cluster",
		SubnetIds:                Any(privateA.Ref(), privateB.Ref()),
	})

	cluster := s.Add("DatabaseCluster", rds.DBCluster{
		Engine:                      "aurora-postgresql",
		EngineVersion:               "16.1",
		MasterUsername:              Sub{String: "{{resolve:secretsmanager:${DatabaseCredentials}:SecretString:username}}"},
		MasterUserPassword:          Sub{String: "{{resolve:secretsmanager:${DatabaseCredentials}:SecretString:password}}"},
		DBSubnetGroupName:           subnetGroup.Ref(),
		DBClusterParameterGroupName: "default.aurora-postgresql16",
		VpcSecurityGroupIds:         Any(sg.Ref()),
		BackupRetentionPeriod:       7,
		PreferredBackupWindow:       "03:00-04:00",
		AssociatedRoles: Any(
			rds.DBCluster_DBClusterRole{RoleArn: ctx.DatabaseAccessRoleArn},
			rds.DBCluster_DBClusterRole{RoleArn: ctx.BackupRoleArn},
		),
	}, groundwork.WithDeletionPolicy(groundwork.DeletionPolicySnapshot))

	s.Add("DatabaseInstance", rds.DBInstance{
		DBClusterIdentifier: cluster.Ref(),
		DBInstanceClass:     "db.t3.medium",
		Engine:              "aurora-postgresql",
		DBSubnetGroupName:   subnetGroup.Ref(),
		PubliclyAccessible:  false,
		MonitoringInterval:  60,
		MonitoringRoleArn:   ctx.MonitoringRoleArn,
	})

	s.SetOutput("ClusterEndpoint", groundwork.Output{
		Description: "Aurora PostgreSQL cluster endpoint",
		Value:       cluster.Attr("Endpoint.Address"),
		Export:      &groundwork.Export{Name: StackName + "-ClusterEndpoint"},
	})
	s.SetOutput("SecretARN", groundwork.Output{
		Description: "Database credentials secret ARN",
		Value:       secret.Ref(),
		Export:      &groundwork.Export{Name: StackName + "-SecretARN"},
	})

	return s, s.Err()
}
