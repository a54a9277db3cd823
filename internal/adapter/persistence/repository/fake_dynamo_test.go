package repository

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo records inputs and replays canned outputs.
type fakeDynamo struct {
	mu sync.Mutex

	putIn    *dynamodb.PutItemInput
	getIn    []*dynamodb.GetItemInput
	updateIn *dynamodb.UpdateItemInput
	queryIn  *dynamodb.QueryInput

	putErr    error
	getOut    []*dynamodb.GetItemOutput
	getErr    error
	updateOut *dynamodb.UpdateItemOutput
	updateErr error
	queryOut  *dynamodb.QueryOutput
	queryErr  error
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putIn = in
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getIn = append(f.getIn, in)
	if f.getErr != nil {
		return nil, f.getErr
	}
	if len(f.getOut) == 0 {
		return &dynamodb.GetItemOutput{}, nil
	}
	out := f.getOut[0]
	f.getOut = f.getOut[1:]
	return out, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateIn = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateOut == nil {
		return &dynamodb.UpdateItemOutput{}, nil
	}
	return f.updateOut, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryIn = in
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if f.queryOut == nil {
		return &dynamodb.QueryOutput{}, nil
	}
	return f.queryOut, nil
}

func conditionalCheckFailed() error {
	return &types.ConditionalCheckFailedException{Message: new(string)}
}

func strAttr(av map[string]types.AttributeValue, key string) string {
	if s, ok := av[key].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}
