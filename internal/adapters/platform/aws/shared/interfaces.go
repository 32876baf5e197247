package shared

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/olusolaa/resource-warden/internal/core/ports"
)

// RateLimiter gates AWS API calls behind the account-wide rate limit.
type RateLimiter interface {
	Wait(ctx context.Context, logger ports.Logger) error
}

// STSClientInterface defines the method needed from the AWS SDK STS client.
type STSClientInterface interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}
