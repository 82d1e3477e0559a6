package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/soto-project/aws-credential-core/credential"
	"github.com/soto-project/aws-credential-core/httpclient"
	"github.com/soto-project/aws-credential-core/internal/environment"
	"github.com/soto-project/aws-credential-core/logging"
)

// ref. https://docs.aws.amazon.com/AWSEC2/latest/UserGuide/iam-roles-for-amazon-ec2.html
const (
	imdsHost            = "http://169.254.169.254"
	imdsTokenPath       = "/latest/api/token"
	imdsRolePath        = "/latest/meta-data/iam/security-credentials/"
	imdsTokenTTLHeader  = "X-aws-ec2-metadata-token-ttl-seconds"
	imdsTokenTTLSeconds = "21600"
	imdsTokenHeader     = "X-aws-ec2-metadata-token"
)

// IMDSClient fetches credentials from the EC2 Instance Metadata Service. A
// single GetCredential call runs a three-step state machine: request an
// IMDSv2 token, look up the active instance role, then fetch that role's
// credentials. A failure to obtain a token is not fatal: the client falls
// back to unauthenticated IMDSv1 requests for the remaining steps.
type IMDSClient struct {
	httpClient httpclient.Client
	env        environment.Reader
	logger     logging.Logger

	// host overrides imdsHost; used by tests.
	host string
}

// NewIMDSClient constructs an IMDSClient.
func NewIMDSClient(httpClient httpclient.Client, env environment.Reader, logger logging.Logger) *IMDSClient {
	return &IMDSClient{httpClient: httpClient, env: env, logger: logger, host: imdsHost}
}

// GetCredential implements provider.Provider.
func (c *IMDSClient) GetCredential(ctx context.Context) (credential.Credential, error) {
	token := c.requestToken(ctx)

	role, err := c.lookupRole(ctx, token)
	if err != nil {
		return credential.Credential{}, err
	}

	return c.fetchCredential(ctx, token, role)
}

// requestToken performs the IMDSv2 TokenRequest step. Any failure --
// non-200 status or a transport error -- is treated as "no token", not as a
// fatal error: the remaining steps proceed unauthenticated (IMDSv1).
func (c *IMDSClient) requestToken(ctx context.Context) string {
	resp, err := c.httpClient.Execute(ctx, &httpclient.Request{
		Method:  http.MethodPut,
		URL:     c.host + imdsTokenPath,
		Headers: map[string]string{imdsTokenTTLHeader: imdsTokenTTLSeconds},
	}, timeout)
	if err != nil {
		c.logger.Warn("imds: token request failed, falling back to imdsv1: %v", err)
		return ""
	}
	if resp.Status != http.StatusOK || len(resp.Body) == 0 {
		c.logger.Warn("imds: token request returned status %d, falling back to imdsv1", resp.Status)
		return ""
	}
	return string(resp.Body)
}

func (c *IMDSClient) lookupRole(ctx context.Context, token string) (string, error) {
	resp, err := c.httpClient.Execute(ctx, &httpclient.Request{
		Method:  http.MethodGet,
		URL:     c.host + imdsRolePath,
		Headers: tokenHeader(token),
	}, timeout)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrCouldNotGetInstanceRoleName, err)
	}
	if resp.Status != http.StatusOK || len(resp.Body) == 0 {
		return "", fmt.Errorf("%w: status %d", ErrCouldNotGetInstanceRoleName, resp.Status)
	}
	return strings.TrimSpace(string(resp.Body)), nil
}

func (c *IMDSClient) fetchCredential(ctx context.Context, token, role string) (credential.Credential, error) {
	resp, err := c.httpClient.Execute(ctx, &httpclient.Request{
		Method:  http.MethodGet,
		URL:     c.host + imdsRolePath + role,
		Headers: tokenHeader(token),
	}, timeout)
	if err != nil {
		return credential.Credential{}, fmt.Errorf("metadata: imds credential request failed: %w", err)
	}
	if resp.Status != http.StatusOK {
		return credential.Credential{}, fmt.Errorf("%w: imds credential request returned status %d", ErrMissingMetadata, resp.Status)
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

	c.logger.Debug("imds: obtained credentials for role %s (token=%t)", role, token != "")
	cred := credential.New(c.env, payload.AccessKeyID, payload.SecretAccessKey, payload.Token, expiration)
	return cred.WithSource("ec2"), nil
}

func tokenHeader(token string) map[string]string {
	if token == "" {
		return nil
	}
	return map[string]string{imdsTokenHeader: token}
}
