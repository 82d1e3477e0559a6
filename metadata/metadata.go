// Package metadata implements the AWS container (ECS) and instance (EC2
// IMDS) metadata credential clients: HTTP-based one-shot fetchers that a
// provider.Rotating wraps into an expiration-aware cache.
package metadata

import (
	"errors"
	"time"
)

// dateLayout is Go's rendering of the metadata services' ISO-8601 date
// format, yyyy-MM-dd'T'HH:mm:ss'Z' in UTC.
const dateLayout = "2006-01-02T15:04:05Z"

// timeout is applied to every HTTP step the clients in this package take.
// There is no in-band retry: retry policy belongs to the caller (the
// surrounding AWSClient), not to the metadata clients themselves.
const timeout = 2 * time.Second

var (
	// ErrNoECSMetadataService is returned by the ECS client when
	// AWS_CONTAINER_CREDENTIALS_RELATIVE_URI is not set.
	ErrNoECSMetadataService = errors.New("metadata: AWS_CONTAINER_CREDENTIALS_RELATIVE_URI is not set")

	// ErrMissingMetadata is returned when a metadata endpoint responds
	// successfully but with an empty body, and when the IMDS credential
	// fetch gets a non-200 status.
	ErrMissingMetadata = errors.New("metadata: empty response body")

	// ErrFailedToDecode is returned when a metadata endpoint's JSON body
	// could not be decoded into the expected shape.
	ErrFailedToDecode = errors.New("metadata: failed to decode credential response")

	// ErrCouldNotGetInstanceRoleName is returned when the IMDS role-name
	// lookup does not succeed.
	ErrCouldNotGetInstanceRoleName = errors.New("metadata: could not determine instance role name")
)

// credentialPayload is the common shape of both the ECS and IMDS JSON
// credential documents; IMDS additionally sets Code/LastUpdated/Type, which
// this package decodes but does not use.
type credentialPayload struct {
	AccessKeyID     string `json:"AccessKeyId"`
	SecretAccessKey string `json:"SecretAccessKey"`
	Token           string `json:"Token"`
	Expiration      string `json:"Expiration"`
	RoleArn         string `json:"RoleArn,omitempty"`
	Code            string `json:"Code,omitempty"`
	LastUpdated     string `json:"LastUpdated,omitempty"`
	Type            string `json:"Type,omitempty"`
}

func (p credentialPayload) expiration() (*time.Time, error) {
	if p.Expiration == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, p.Expiration)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
