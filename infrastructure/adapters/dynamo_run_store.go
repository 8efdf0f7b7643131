package adapters

import (
	"context"
	"media-orchestrator/application/ports/outbound"
	"media-orchestrator/config"
	"media-orchestrator/domain"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

type dynamoStageItem struct {
	Stage     string `dynamodbav:"stage"`
	Success   bool   `dynamodbav:"success"`
	LocalPath string `dynamodbav:"local_path,omitempty"`
	Locator   string `dynamodbav:"locator,omitempty"`
	TraceId   string `dynamodbav:"trace_id,omitempty"`
	Error     string `dynamodbav:"error,omitempty"`
}

type dynamoRunItem struct {
	RunId  string            `dynamodbav:"run_id"`
	UserId string            `dynamodbav:"user_id"`
	State  string            `dynamodbav:"state"`
	Error  string            `dynamodbav:"error,omitempty"`
	Stages []dynamoStageItem `dynamodbav:"stages"`
	TTL    int64             `dynamodbav:"ttl"`
}

type dynamoRunStore struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoRunStore(dynamoSvc *dynamodb.DynamoDB, dynamoConfig *config.DynamoConfig, logger outbound.LoggerPort) outbound.RunStorePort {
	return &dynamoRunStore{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (s *dynamoRunStore) Save(ctx context.Context, run *domain.PipelineRun) error {
	item := dynamoRunItem{
		RunId:  run.ID,
		UserId: run.UserID,
		State:  string(run.State),
		Error:  run.Error,
		Stages: make([]dynamoStageItem, 0, len(run.Stages)),
		TTL:    time.Now().Add(time.Duration(s.dynamoConfig.TtlMinutes) * time.Minute).Unix(),
	}
	for _, outcome := range run.Stages {
		item.Stages = append(item.Stages, dynamoStageItem{
			Stage:     string(outcome.Stage),
			Success:   outcome.Result.Success,
			LocalPath: outcome.Result.LocalPath,
			Locator:   outcome.Result.Locator,
			TraceId:   outcome.Result.TraceID,
			Error:     outcome.Result.Error,
		})
	}

	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to marshal run item", map[string]interface{}{
			"run_id": run.ID,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(s.dynamoConfig.TableName),
	}

	_, err = s.dynamoSvc.PutItemWithContext(ctx, input)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to save run item", map[string]interface{}{
			"run_id": run.ID,
		})
		return err
	}

	return nil
}
