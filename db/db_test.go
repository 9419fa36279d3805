package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/abcdex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo keeps items in memory and hands back the last request of the
// first write batch as unprocessed.
type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	items      map[string]map[string]*dynamodb.AttributeValue
	writeCalls int
	getCalls   int
	fail       bool
}

func newFake() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]*dynamodb.AttributeValue)}
}

func (f *fakeDynamo) BatchWriteItemWithContext(_ aws.Context, in *dynamodb.BatchWriteItemInput, _ ...request.Option) (*dynamodb.BatchWriteItemOutput, error) {
	if f.fail {
		return nil, errors.New("throttled")
	}
	f.writeCalls++
	out := &dynamodb.BatchWriteItemOutput{}
	for table, reqs := range in.RequestItems {
		if len(reqs) > maxWriteBatch {
			return nil, fmt.Errorf("batch of %d", len(reqs))
		}
		if f.writeCalls == 1 && len(reqs) > 1 {
			out.UnprocessedItems = map[string][]*dynamodb.WriteRequest{table: reqs[len(reqs)-1:]}
			reqs = reqs[:len(reqs)-1]
		}
		for _, r := range reqs {
			f.items[*r.PutRequest.Item["PK"].S] = r.PutRequest.Item
		}
	}
	return out, nil
}

func (f *fakeDynamo) BatchGetItemWithContext(_ aws.Context, in *dynamodb.BatchGetItemInput, _ ...request.Option) (*dynamodb.BatchGetItemOutput, error) {
	f.getCalls++
	out := &dynamodb.BatchGetItemOutput{Responses: make(map[string][]map[string]*dynamodb.AttributeValue)}
	for table, ka := range in.RequestItems {
		if len(ka.Keys) > maxGetBatch {
			return nil, fmt.Errorf("batch of %d", len(ka.Keys))
		}
		for _, k := range ka.Keys {
			if item, ok := f.items[*k["PK"].S]; ok {
				out.Responses[table] = append(out.Responses[table], item)
			}
		}
	}
	return out, nil
}

func entries(n int) []model.Entry {
	var res []model.Entry
	for i := 0; i < n; i++ {
		res = append(res, model.Entry{
			ID:       fmt.Sprintf("id-%d", i),
			File:     "jigs.abc",
			Index:    i,
			Title:    fmt.Sprintf("Tune %d", i),
			Key:      "Gmaj",
			NumNotes: 10 + i,
			Warnings: []string{"missing-key: no K: field"},
		})
	}
	return res
}

func TestPutAndGetEntries(t *testing.T) {
	assert := assert.New(t)
	fake := newFake()
	store := NewWithClient(fake, "abcdex-tunes")
	ctx := context.Background()

	in := entries(60)
	require.NoError(t, store.PutEntries(ctx, in))
	assert.Len(fake.items, 60)
	// 3 batches plus one resend
	assert.Equal(4, fake.writeCalls)
	assert.Equal("Tune 7", *fake.items["id-7"]["Title"].S)
	_, hasErr := fake.items["id-7"]["Error"]
	assert.False(hasErr)

	ids := []string{"missing"}
	for i := 0; i < 150; i++ {
		ids = append(ids, fmt.Sprintf("id-%d", i))
	}

	got, err := store.GetEntries(ctx, ids)
	require.NoError(t, err)
	assert.Equal(2, fake.getCalls)
	assert.Len(got, 60)
	assert.Equal(in[42], got["id-42"])
}

func TestPutEntriesError(t *testing.T) {
	fake := newFake()
	fake.fail = true
	err := NewWithClient(fake, "t").PutEntries(context.Background(), entries(1))
	assert.ErrorContains(t, err, "throttled")
}

func TestChunks(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, chunks([]int{1, 2, 3, 4, 5}, 2))
	assert.Nil(t, chunks([]int{}, 2))
}
