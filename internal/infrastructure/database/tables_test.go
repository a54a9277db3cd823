package database

import (
	"context"
	"errors"
	"testing"

	"yelagiri_booking/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTableCreator struct {
	created []string
	err     map[string]error
}

func (f *fakeTableCreator) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	name := aws.ToString(in.TableName)
	if err := f.err[name]; err != nil {
		return nil, err
	}
	f.created = append(f.created, name)
	return &dynamodb.CreateTableOutput{}, nil
}

func testConfig() *config.Config {
	return &config.Config{BookingsTable: "bookings", PaymentsTable: "payments", InvoicesTable: "invoices"}
}

func TestTableDefinitions(t *testing.T) {
	defs := TableDefinitions(testConfig())
	require.Len(t, defs, 3)

	bookings := defs[0]
	assert.Equal(t, "bookings", aws.ToString(bookings.TableName))
	require.Len(t, bookings.GlobalSecondaryIndexes, 2)
	assert.Equal(t, BookingsOrderIDIndex, aws.ToString(bookings.GlobalSecondaryIndexes[0].IndexName))
	assert.Equal(t, BookingsCustomerEmailIndex, aws.ToString(bookings.GlobalSecondaryIndexes[1].IndexName))
	assert.Len(t, bookings.AttributeDefinitions, 3)

	assert.Len(t, defs[1].GlobalSecondaryIndexes, 1)
	assert.Empty(t, defs[2].GlobalSecondaryIndexes)
}

func TestCreateTables(t *testing.T) {
	t.Run("existing tables are skipped", func(t *testing.T) {
		f := &fakeTableCreator{err: map[string]error{"payments": &types.ResourceInUseException{}}}
		require.NoError(t, CreateTables(context.Background(), f, testConfig()))
		assert.Equal(t, []string{"bookings", "invoices"}, f.created)
	})

	t.Run("other errors abort", func(t *testing.T) {
		f := &fakeTableCreator{err: map[string]error{"bookings": errors.New("boom")}}
		err := CreateTables(context.Background(), f, testConfig())
		assert.ErrorContains(t, err, "create table bookings")
		assert.Empty(t, f.created)
	})
}
