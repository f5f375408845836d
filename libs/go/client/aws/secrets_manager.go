package aws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/guardian/guardian-api/libs/go/logger"
	"go.uber.org/zap"
)

// ErrSecretNotFound is returned when neither the ARN nor the fallback variable yields a value.
var ErrSecretNotFound = errors.New("secret not found")

// SecretsAPI is the subset of the Secrets Manager client used here.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerClient resolves guardian secrets (database DSN, RPC URL, keeper key).
type SecretsManagerClient struct {
	api    SecretsAPI
	getenv func(string) string
	logger *zap.Logger
}

// NewSecretsManagerClient uses the default AWS configuration chain.
func NewSecretsManagerClient(ctx context.Context) (*SecretsManagerClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return NewSecretsManagerClientWithAPI(secretsmanager.NewFromConfig(cfg), os.Getenv), nil
}

// NewSecretsManagerClientWithAPI builds a client over api. getenv defaults to os.Getenv.
func NewSecretsManagerClientWithAPI(api SecretsAPI, getenv func(string) string) *SecretsManagerClient {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &SecretsManagerClient{
		api:    api,
		getenv: getenv,
		logger: logger.Named(logger.ComponentSecrets),
	}
}

// GetSecretString reads the secret named by the ARN in secretArnEnvVar, falling back to the
// plain value of fallbackEnvVar. A secret stored as a single key JSON object yields that key's value.
func (c *SecretsManagerClient) GetSecretString(ctx context.Context, secretArnEnvVar, fallbackEnvVar string) (string, error) {
	if arn := c.getenv(secretArnEnvVar); arn != "" {
		value, err := c.fetch(ctx, arn)
		if err == nil {
			return unwrapSingleKey(value), nil
		}
		c.logger.Warn("Failed to retrieve secret from Secrets Manager, falling back to env var",
			zap.String("arn_env_var", secretArnEnvVar),
			zap.String("fallback_env_var", fallbackEnvVar),
			zap.Error(err))
	}

	if fallbackEnvVar != "" {
		if value := c.getenv(fallbackEnvVar); value != "" {
			c.logger.Debug("Using secret from environment", zap.String("env_var", fallbackEnvVar))
			return value, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s and %s", ErrSecretNotFound, secretArnEnvVar, fallbackEnvVar)
}

// GetSecretJSON unmarshals the JSON secret named by the ARN in secretArnEnvVar into target.
// The fallback variable, when set, must hold JSON as well.
func (c *SecretsManagerClient) GetSecretJSON(ctx context.Context, secretArnEnvVar, fallbackEnvVar string, target any) error {
	var raw string
	if arn := c.getenv(secretArnEnvVar); arn != "" {
		value, err := c.fetch(ctx, arn)
		if err != nil {
			c.logger.Warn("Failed to retrieve JSON secret from Secrets Manager",
				zap.String("arn_env_var", secretArnEnvVar),
				zap.Error(err))
		}
		raw = value
	}
	if raw == "" && fallbackEnvVar != "" {
		raw = c.getenv(fallbackEnvVar)
	}
	if raw == "" {
		return fmt.Errorf("%w: tried %s and %s", ErrSecretNotFound, secretArnEnvVar, fallbackEnvVar)
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("secret %s is not valid JSON: %w", secretArnEnvVar, err)
	}
	return nil
}

func (c *SecretsManagerClient) fetch(ctx context.Context, arn string) (string, error) {
	out, err := c.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: aws.String(arn)})
	if err != nil {
		return "", err
	}
	if out.SecretString == nil || *out.SecretString == "" {
		return "", fmt.Errorf("secret %s has no string value", arn)
	}
	c.logger.Debug("Fetched secret from Secrets Manager", zap.String("arn", arn))
	return *out.SecretString, nil
}

func unwrapSingleKey(value string) string {
	var fields map[string]string
	if err := json.Unmarshal([]byte(value), &fields); err != nil || len(fields) != 1 {
		return value
	}
	for _, v := range fields {
		return v
	}
	return value
}
