package database

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBOptions selects the region and, for local runs, an endpoint
// override such as http://dynamodb:8000.
type DynamoDBOptions struct {
	Region   string
	Endpoint string
}

// ConnectDynamoDB builds a DynamoDB client for the quote and audit tables.
//
// Credentials come from AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY, defaulting
// to "local" so DynamoDB Local works without extra setup.
func ConnectDynamoDB(ctx context.Context, opts DynamoDBOptions) (*dynamodb.Client, error) {
	cfg, err := newDynamoDBConfig(ctx, opts)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}), nil
}

func newDynamoDBConfig(ctx context.Context, opts DynamoDBOptions) (aws.Config, error) {
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}

	// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
	creds := credentials.NewStaticCredentialsProvider(
		getenvDefault("AWS_ACCESS_KEY_ID", "local"),
		getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
		"",
	)

	return config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(creds),
	)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
