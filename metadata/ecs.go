package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/soto-project/aws-credential-core/credential"
	"github.com/soto-project/aws-credential-core/httpclient"
	"github.com/soto-project/aws-credential-core/internal/environment"
	"github.com/soto-project/aws-credential-core/logging"
)

// ecsRelativePathEnvVar is the environment variable ECS task roles publish
// the credential endpoint's relative path in.
// ref. https://docs.aws.amazon.com/AmazonECS/latest/userguide/task-iam-roles.html
const ecsRelativePathEnvVar = "AWS_CONTAINER_CREDENTIALS_RELATIVE_URI"

// ecsHost is the fixed ECS task metadata host.
const ecsHost = "http://169.254.170.2"

// ECSClient fetches credentials from the ECS container credentials
// endpoint. It is active only when AWS_CONTAINER_CREDENTIALS_RELATIVE_URI
// is set in the environment; GetCredential fails with
// ErrNoECSMetadataService otherwise.
type ECSClient struct {
	httpClient httpclient.Client
	env        environment.Reader
	logger     logging.Logger

	// host overrides ecsHost; used by tests.
	host string
}

// NewECSClient constructs an ECSClient.
func NewECSClient(httpClient httpclient.Client, env environment.Reader, logger logging.Logger) *ECSClient {
	return &ECSClient{httpClient: httpClient, env: env, logger: logger, host: ecsHost}
}

// GetCredential implements provider.Provider.
func (c *ECSClient) GetCredential(ctx context.Context) (credential.Credential, error) {
	relPath, ok := c.env.Lookup(ecsRelativePathEnvVar)
	if !ok {
		return credential.Credential{}, ErrNoECSMetadataService
	}

	url := c.host + relPath
	resp, err := c.httpClient.Execute(ctx, &httpclient.Request{Method: http.MethodGet, URL: url}, timeout)
	if err != nil {
		return credential.Credential{}, fmt.Errorf("metadata: ecs request failed: %w", err)
	}
	if resp.Status != http.StatusOK {
		return credential.Credential{}, fmt.Errorf("metadata: ecs request returned status %d", resp.Status)
	}
	if len(resp.Body) == 0 {
		return credential.Credential{}, ErrMissingMetadata
	}

	var payload credentialPayload
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return credential.Credential{}, fmt.Errorf("%w: %s", ErrFailedToDecode, err)
	}

	expiration, err := payload.expiration()
	if err != nil {
		return credential.Credential{}, fmt.Errorf("%w: %s", ErrFailedToDecode, err)
	}

	c.logger.Debug("ecs: obtained credentials for role %s", payload.RoleArn)
	cred := credential.New(c.env, payload.AccessKeyID, payload.SecretAccessKey, payload.Token, expiration)
	return cred.WithSource("ecs"), nil
}
