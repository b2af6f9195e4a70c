// Package registry declares the container registries for the AAA platform's
// deployable images and the role workloads assume to pull them.
package registry

import (
	"encoding/json"
	"fmt"

	"github.com/aaa-platform/groundwork"
	. "github.com/aaa-platform/groundwork/intrinsics"
	"github.com/aaa-platform/groundwork/resources/ecr"
	"github.com/aaa-platform/groundwork/resources/iam"
)

// StackName is the deployable name of the container-registry stack.
const StackName = "aaa-container-registry"

// Image retention caps per repository. Worker images ship far more often
// than they are rolled back, so they get a shorter history.
const (
	apiImageRetention        = 30
	workerImageRetention     = 10
	migrationsImageRetention = 30
)

// expireOldest renders an ECR lifecycle policy that keeps the most recent
// count images and expires the rest.
func expireOldest(count int) string {
	policy := map[string]any{
		"rules": []any{
			map[string]any{
				"rulePriority": 1,
				"description":  fmt.Sprintf("Keep the most recent %d images", count),
				"selection": map[string]any{
					"tagStatus":   "any",
					"countType":   "imageCountMoreThan",
					"countNumber": count,
				},
				"action": map[string]any{"type": "expire"},
			},
		},
	}
	text, err := json.Marshal(policy)
	if err != nil {
		panic(err)
	}
	return string(text)
}

func repository(name string, retention int) ecr.Repository {
	return ecr.Repository{
		RepositoryName: name,
		ImageScanningConfiguration: ecr.Repository_ImageScanningConfiguration{
			ScanOnPush: true,
		},
		LifecyclePolicy: ecr.Repository_LifecyclePolicy{
			LifecyclePolicyText: expireOldest(retention),
		},
	}
}

// New declares the container-registry stack.
func New() (*groundwork.Stack, error) {
	s := groundwork.NewStack(StackName, "Container registries and image pull role")

	api := s.Add("ApiRepository", repository("aaa/api", apiImageRetention))
	worker := s.Add("WorkerRepository", repository("aaa/worker", workerImageRetention))
	migrations := s.Add("MigrationsRepository", repository("aaa/migrations", migrationsImageRetention))

	pullRole := s.Add("ImagePullRole", iam.Role{
		Description:              "Role for pulling AAA platform container images",
		AssumeRolePolicyDocument: AssumeRolePolicy(ServicePrincipal{"ecs-tasks.amazonaws.com"}),
		Policies: Any(iam.Role_Policy{
			PolicyName: "PullImages",
			PolicyDocument: NewPolicyDocument(PolicyStatement{
				Effect: "Allow",
				Action: []string{
					"ecr:GetAuthorizationToken",
					"ecr:BatchCheckLayerAvailability",
					"ecr:GetDownloadUrlForLayer",
					"ecr:BatchGetImage",
				},
				// Scoped to exactly the three repositories above.
				Resource: Any(api.Attr("Arn"), worker.Attr("Arn"), migrations.Attr("Arn")),
			}),
		}),
	})

	s.SetOutput("ApiRepositoryURI", groundwork.Output{
		Description: "Pull address of the api repository",
		Value:       api.Attr("RepositoryUri"),
		Export:      &groundwork.Export{Name: StackName + "-ApiRepositoryURI"},
	})
	s.SetOutput("WorkerRepositoryURI", groundwork.Output{
		Description: "Pull address of the worker repository",
		Value:       worker.Attr("RepositoryUri"),
		Export:      &groundwork.Export{Name: StackName + "-WorkerRepositoryURI"},
	})
	s.SetOutput("MigrationsRepositoryURI", groundwork.Output{
		Description: "Pull address of the migrations repository",
		Value:       migrations.Attr("RepositoryUri"),
		Export:      &groundwork.Export{Name: StackName + "-MigrationsRepositoryURI"},
	})
	s.SetOutput("ImagePullRoleARN", groundwork.Output{
		Description: "Image pull role ARN",
		Value:       pullRole.Attr("Arn"),
		Export:      &groundwork.Export{Name: StackName + "-ImagePullRoleARN"},
	})

	return s, s.Err()
}
