// Package db keeps catalog entries in DynamoDB, keyed by entry id.
package db

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/abcdex/config"
	"github.com/jsphweid/abcdex/model"
)

const (
	// DynamoDB batch limits
	maxWriteBatch = 25
	maxGetBatch   = 100
	maxAttempts   = 5
)

type Store struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func New(cfg config.Dynamo) (*Store, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session: %w", err)
	}
	return NewWithClient(dynamodb.New(sess), cfg.Table), nil
}

func NewWithClient(client dynamodbiface.DynamoDBAPI, table string) *Store {
	return &Store{client: client, table: table}
}

func chunks[T any](items []T, size int) [][]T {
	var res [][]T
	for len(items) > size {
		res = append(res, items[:size])
		items = items[size:]
	}
	if len(items) > 0 {
		res = append(res, items)
	}
	return res
}

// PutEntries writes entries in batches, resending whatever DynamoDB
// hands back as unprocessed.
func (s *Store) PutEntries(ctx context.Context, entries []model.Entry) error {
	for _, batch := range chunks(entries, maxWriteBatch) {
		var requests []*dynamodb.WriteRequest
		for _, e := range batch {
			item, err := dynamodbattribute.MarshalMap(e)
			if err != nil {
				return fmt.Errorf("marshalling entry %s: %w", e.ID, err)
			}
			requests = append(requests, &dynamodb.WriteRequest{
				PutRequest: &dynamodb.PutRequest{Item: item},
			})
		}

		pending := map[string][]*dynamodb.WriteRequest{s.table: requests}
		for attempt := 0; len(pending) > 0; attempt++ {
			if attempt == maxAttempts {
				return fmt.Errorf("%d entries still unprocessed after %d attempts", len(pending[s.table]), maxAttempts)
			}
			out, err := s.client.BatchWriteItemWithContext(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
			if err != nil {
				return fmt.Errorf("error from DynamoDB: %w", err)
			}
			pending = out.UnprocessedItems
		}
	}
	return nil
}

// GetEntries looks up entries by id. Ids with no entry are left out of
// the result.
func (s *Store) GetEntries(ctx context.Context, ids []string) (map[string]model.Entry, error) {
	res := make(map[string]model.Entry)
	for _, batch := range chunks(ids, maxGetBatch) {
		var keys []map[string]*dynamodb.AttributeValue
		for _, id := range batch {
			keys = append(keys, map[string]*dynamodb.AttributeValue{
				"PK": {S: aws.String(id)},
			})
		}

		pending := map[string]*dynamodb.KeysAndAttributes{s.table: {Keys: keys}}
		for attempt := 0; len(pending) > 0; attempt++ {
			if attempt == maxAttempts {
				return nil, fmt.Errorf("keys still unprocessed after %d attempts", maxAttempts)
			}
			out, err := s.client.BatchGetItemWithContext(ctx, &dynamodb.BatchGetItemInput{RequestItems: pending})
			if err != nil {
				return nil, fmt.Errorf("error from DynamoDB: %w", err)
			}
			for _, item := range out.Responses[s.table] {
				var e model.Entry
				if err := dynamodbattribute.UnmarshalMap(item, &e); err != nil {
					return nil, fmt.Errorf("unmarshalling entry: %w", err)
				}
				res[e.ID] = e
			}
			pending = out.UnprocessedKeys
		}
	}
	return res, nil
}
