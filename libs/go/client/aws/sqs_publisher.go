package aws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/logger"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"go.uber.org/zap"
)

// SQSAPI is the subset of the SQS client used here.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher forwards guard events to a queue as JSON.
type SQSPublisher struct {
	api      SQSAPI
	queueURL string
	logger   *zap.Logger
}

// NewSQSPublisher uses the default AWS configuration chain.
func NewSQSPublisher(ctx context.Context, queueURL string) (*SQSPublisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return NewSQSPublisherWithAPI(sqs.NewFromConfig(cfg), queueURL)
}

func NewSQSPublisherWithAPI(api SQSAPI, queueURL string) (*SQSPublisher, error) {
	if queueURL == "" {
		return nil, fmt.Errorf("queue url is required")
	}
	return &SQSPublisher{
		api:      api,
		queueURL: queueURL,
		logger:   logger.Named(logger.ComponentQueue),
	}, nil
}

// Publish sends event with its name and account as message attributes.
func (p *SQSPublisher) Publish(ctx context.Context, event business.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	out, err := p.api.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"EventName": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.Name),
			},
			"Account": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.Account.Hex()),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	p.logger.Debug("Event published",
		zap.String("event", event.Name),
		zap.String("account", event.Account.Hex()),
		zap.String("message_id", aws.ToString(out.MessageId)))
	return nil
}

var _ interfaces.EventPublisher = (*SQSPublisher)(nil)
