package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/HadarPadael/facyBook-Server/logger"
)

// DynamoService implements Store on top of DynamoDB. String-set fields map
// onto DynamoDB string sets, so AddToSet/RemoveFromSet ride on the ADD and
// DELETE update actions, which are atomic per item.
type DynamoService struct {
	Client *dynamodb.Client
}

// LoadAWSConfig loads the shared AWS configuration for the given region.
func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// NewDynamoDBClient builds a DynamoDB client. A non-empty endpoint overrides
// the resolved one (local DynamoDB).
func NewDynamoDBClient(cfg aws.Config, endpoint string) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

// GetItem retrieves a document, or ErrNotFound.
func (ds *DynamoService) GetItem(ctx context.Context, table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &table,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item from table '%s': %w", table, err)
	}
	if output.Item == nil {
		return nil, ErrNotFound
	}
	return output.Item, nil
}

// PutItem marshals and stores a document.
func (ds *DynamoService) PutItem(ctx context.Context, table string, item interface{}) error {
	marshaledItem, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &table,
		Item:      marshaledItem,
	})
	if err != nil {
		return fmt.Errorf("failed to put item in table '%s': %w", table, err)
	}
	return nil
}

// DeleteItem removes a document from a table.
func (ds *DynamoService) DeleteItem(ctx context.Context, table string, key map[string]types.AttributeValue) error {
	_, err := ds.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &table,
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item from table '%s': %w", table, err)
	}
	return nil
}

// ScanItems reads a whole table into result, following pagination.
func (ds *DynamoService) ScanItems(ctx context.Context, table string, result interface{}) error {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue

	for {
		output, err := ds.Client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         &table,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return fmt.Errorf("failed to scan table '%s': %w", table, err)
		}
		items = append(items, output.Items...)

		if output.LastEvaluatedKey == nil {
			break
		}
		startKey = output.LastEvaluatedKey
	}

	if err := attributevalue.UnmarshalListOfMaps(items, result); err != nil {
		return fmt.Errorf("failed to unmarshal scan result: %w", err)
	}
	return nil
}

// AddToSet atomically adds value to a string-set field of an existing
// document. Unknown keys are a silent no-op so a bad handle cannot create a
// ghost document.
func (ds *DynamoService) AddToSet(ctx context.Context, table string, key map[string]types.AttributeValue, field, value string) error {
	return ds.updateSet(ctx, table, key, "ADD #f :v", field, value)
}

// RemoveFromSet atomically removes value from a string-set field. Absent
// members and unknown keys are no-ops.
func (ds *DynamoService) RemoveFromSet(ctx context.Context, table string, key map[string]types.AttributeValue, field, value string) error {
	return ds.updateSet(ctx, table, key, "DELETE #f :v", field, value)
}

func (ds *DynamoService) updateSet(ctx context.Context, table string, key map[string]types.AttributeValue, expression, field, value string) error {
	_, err := ds.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           &table,
		Key:                 key,
		UpdateExpression:    aws.String(expression),
		ConditionExpression: aws.String("attribute_exists(#k)"),
		ExpressionAttributeNames: map[string]string{
			"#f": field,
			"#k": keyAttributeName(key),
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberSS{Value: []string{value}},
		},
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			logger.Debugf("set update on missing item in '%s' skipped", table)
			return nil
		}
		return fmt.Errorf("failed to update set field '%s' in table '%s': %w", field, table, err)
	}
	return nil
}

// SetStringSet replaces a string-set field of an existing document. DynamoDB
// rejects empty string sets, so an empty values slice removes the field.
func (ds *DynamoService) SetStringSet(ctx context.Context, table string, key map[string]types.AttributeValue, field string, values []string) error {
	input := &dynamodb.UpdateItemInput{
		TableName:           &table,
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(#k)"),
		ExpressionAttributeNames: map[string]string{
			"#f": field,
			"#k": keyAttributeName(key),
		},
	}
	if len(values) == 0 {
		input.UpdateExpression = aws.String("REMOVE #f")
	} else {
		input.UpdateExpression = aws.String("SET #f = :v")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberSS{Value: values},
		}
	}

	_, err := ds.Client.UpdateItem(ctx, input)
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to set field '%s' in table '%s': %w", field, table, err)
	}
	return nil
}

func keyAttributeName(key map[string]types.AttributeValue) string {
	for name := range key {
		return name
	}
	return ""
}
