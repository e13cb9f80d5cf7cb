package store

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/brain2/matchcore/internal/matcherr"
)

// NewDynamoClient resolves AWS credentials and region through the
// default chain and builds the DynamoDB client DynamoListingStore
// wraps. Failing to resolve a session is a construction-time
// ConfigError, not a per-request failure.
func NewDynamoClient(ctx context.Context, region string) (*dynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, matcherr.Config("failed to load aws configuration", err)
	}
	return dynamodb.NewFromConfig(cfg), nil
}
