package di

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"

	"contactkeeper/application/ports"
	"contactkeeper/application/services"
	"contactkeeper/infrastructure/config"
	dynamorepo "contactkeeper/infrastructure/persistence/dynamodb"
	"contactkeeper/infrastructure/persistence/memory"
	"contactkeeper/pkg/auth"
	"contactkeeper/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	ContactRepo ports.ContactRepository
	UserRepo    ports.UserRepository
	Contacts    *services.ContactService
	Users       *services.UserService
	Tokens      *auth.TokenService
	Metrics     *observability.Metrics
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration, instrumented with X-Ray
// when tracing is enabled
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}
	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideMetrics creates the CloudWatch metrics publisher. Returns nil
// when metrics are disabled; a nil publisher records nothing.
func ProvideMetrics(cfg *config.Config, client *awscloudwatch.Client, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewMetrics(client, logger)
}

// ProvideTokenService creates the bearer-token signer/validator
func ProvideTokenService(cfg *config.Config) (*auth.TokenService, error) {
	return auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiry)
}

// ProvideContactRepository selects the contact store: DynamoDB normally,
// an in-memory store in development so the API runs without AWS access
func ProvideContactRepository(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) ports.ContactRepository {
	if cfg.IsDevelopment() {
		return memory.NewContactRepository()
	}
	return dynamorepo.NewContactRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideUserRepository selects the user store, mirroring the contact store
func ProvideUserRepository(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) ports.UserRepository {
	if cfg.IsDevelopment() {
		return memory.NewUserRepository()
	}
	return dynamorepo.NewUserRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideContactService creates the contact service
func ProvideContactService(repo ports.ContactRepository, logger *zap.Logger) *services.ContactService {
	return services.NewContactService(repo, logger)
}

// ProvideUserService creates the user service
func ProvideUserService(repo ports.UserRepository, tokens *auth.TokenService, logger *zap.Logger) *services.UserService {
	return services.NewUserService(repo, tokens, logger)
}
