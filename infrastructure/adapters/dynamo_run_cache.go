package adapters

import (
	"context"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/config"
	"generate-lecture-video/domain"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

type dynamoSlideResultItem struct {
	RunID       string `dynamodbav:"run_id"`
	SlideNumber int    `dynamodbav:"slide_number"`
	AudioURL    string `dynamodbav:"audio_url"`
	LipSyncURL  string `dynamodbav:"lip_sync_url"`
	ComposedURL string `dynamodbav:"composed_url"`
	TTL         int64  `dynamodbav:"ttl"`
}

// dynamoRunCache keeps per-slide results around for post-mortem display
// after a failed run. Items expire via the table's TTL attribute.
type dynamoRunCache struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoRunCache(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB, dynamoConfig *config.DynamoConfig) outbound.RunCachePort {
	return &dynamoRunCache{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (c *dynamoRunCache) Save(ctx context.Context, result domain.SlideResult, runID string) error {
	item := dynamoSlideResultItem{
		RunID:       runID,
		SlideNumber: result.SlideNumber,
		AudioURL:    result.AudioURL,
		LipSyncURL:  result.LipSyncURL,
		ComposedURL: result.ComposedURL,
		TTL:         time.Now().Add(time.Duration(c.dynamoConfig.TtlMinutes) * time.Minute).Unix(),
	}
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		c.logger.ErrorWithFields(err, "failed to marshal slide result item", map[string]interface{}{
			"run_id":       runID,
			"slide_number": result.SlideNumber,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(c.dynamoConfig.TableName),
	}

	if _, err := c.dynamoSvc.PutItemWithContext(ctx, input); err != nil {
		c.logger.ErrorWithFields(err, "failed to save slide result item", map[string]interface{}{
			"run_id":       runID,
			"slide_number": result.SlideNumber,
		})
		return err
	}

	return nil
}
