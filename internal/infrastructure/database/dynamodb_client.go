package database

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Settings are the DynamoDB connection knobs, read from the environment.
// Endpoint is only set when running against dynamodb-local; left empty, the
// SDK resolves the real regional endpoint.
type Settings struct {
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// SettingsFromEnv reads AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY
// and DYNAMODB_ENDPOINT. The credential defaults are placeholders accepted by
// dynamodb-local, which never validates them.
func SettingsFromEnv() Settings {
	s := Settings{
		Region:    os.Getenv("AWS_REGION"),
		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		Endpoint:  os.Getenv("DYNAMODB_ENDPOINT"),
	}
	if s.Region == "" {
		s.Region = "us-east-1"
	}
	if s.AccessKey == "" {
		s.AccessKey = "local"
	}
	if s.SecretKey == "" {
		s.SecretKey = "local"
	}
	return s
}

// ConnectDynamoDB builds the client every repository shares. Startup fails
// hard when the SDK configuration cannot be assembled.
func ConnectDynamoDB() *dynamodb.Client {
	settings := SettingsFromEnv()
	cfg, err := settings.load(context.Background())
	if err != nil {
		log.Fatalf("[database][dynamodb] config load failed: %v", err)
	}
	if settings.Endpoint != "" {
		log.Printf("[database][dynamodb] using local endpoint %s", settings.Endpoint)
	}
	return dynamodb.NewFromConfig(cfg)
}

func (s Settings) load(ctx context.Context) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(s.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.AccessKey, s.SecretKey, ""),
		),
	}
	if s.Endpoint != "" {
		opts = append(opts, config.WithEndpointResolverWithOptions(s.endpointResolver()))
	}
	return config.LoadDefaultConfig(ctx, opts...)
}

// endpointResolver pins the DynamoDB service to the configured local
// endpoint and leaves every other service on SDK resolution.
func (s Settings) endpointResolver() aws.EndpointResolverWithOptionsFunc {
	return func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
		if service != dynamodb.ServiceID {
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		}
		return aws.Endpoint{
			URL:               s.Endpoint,
			SigningRegion:     region,
			HostnameImmutable: true,
		}, nil
	}
}
