// Package ec2 provides CloudFormation resource types for AWS::EC2.
//
// Fields typed `any` accept literals or intrinsics (Ref, GetAtt, Sub).
package ec2

// VPC represents an AWS::EC2::VPC resource.
type VPC struct {
	CidrBlock          string
	EnableDnsHostnames bool
	EnableDnsSupport   bool
	InstanceTenancy    string
	Tags               []any
}

func (VPC) ResourceType() string { return "AWS::EC2::VPC" }

// InternetGateway represents an AWS::EC2::InternetGateway resource.
type InternetGateway struct {
	Tags []any
}

func (InternetGateway) ResourceType() string { return "AWS::EC2::InternetGateway" }

// VPCGatewayAttachment represents an AWS::EC2::VPCGatewayAttachment resource.
type VPCGatewayAttachment struct {
	InternetGatewayId any
	VpcId             any
}

func (VPCGatewayAttachment) ResourceType() string { return "AWS::EC2::VPCGatewayAttachment" }

// Subnet represents an AWS::EC2::Subnet resource.
type Subnet struct {
	VpcId               any
	CidrBlock           string
	AvailabilityZone    any
	MapPublicIpOnLaunch bool
	Tags                []any
}

func (Subnet) ResourceType() string { return "AWS::EC2::Subnet" }

// EIP represents an AWS::EC2::EIP resource.
type EIP struct {
	Domain string
	Tags   []any
}

func (EIP) ResourceType() string { return "AWS::EC2::EIP" }

// NatGateway represents an AWS::EC2::NatGateway resource.
type NatGateway struct {
	AllocationId any
	SubnetId     any
	Tags         []any
}

func (NatGateway) ResourceType() string { return "AWS::EC2::NatGateway" }

// RouteTable represents an AWS::EC2::RouteTable resource.
type RouteTable struct {
	VpcId any
	Tags  []any
}

func (RouteTable) ResourceType() string { return "AWS::EC2::RouteTable" }

// Route represents an AWS::EC2::Route resource.
type Route struct {
	RouteTableId         any
	DestinationCidrBlock string
	GatewayId            any
	NatGatewayId         any
}

func (Route) ResourceType() string { return "AWS::EC2::Route" }

// SubnetRouteTableAssociation represents an
// AWS::EC2::SubnetRouteTableAssociation resource.
type SubnetRouteTableAssociation struct {
	SubnetId     any
	RouteTableId any
}

func (SubnetRouteTableAssociation) ResourceType() string {
	return "AWS::EC2::SubnetRouteTableAssociation"
}

// SecurityGroup represents an AWS::EC2::SecurityGroup resource.
type SecurityGroup struct {
	GroupDescription     string
	VpcId                any
	SecurityGroupIngress []any
	SecurityGroupEgress  []any
	Tags                 []any
}

func (SecurityGroup) ResourceType() string { return "AWS::EC2::SecurityGroup" }

// SecurityGroup_Ingress is the inline ingress rule property of SecurityGroup:
// a (source, protocol, port) triple attached to the group.
type SecurityGroup_Ingress struct {
	Description           string
	IpProtocol            string
	FromPort              int
	ToPort                int
	CidrIp                any
	SourceSecurityGroupId any
}
