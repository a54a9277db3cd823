package database

import (
	"context"
	"errors"
	"fmt"

	"yelagiri_booking/internal/infrastructure/config"
	"yelagiri_booking/internal/infrastructure/telemetry"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// Index names shared with the repositories.
const (
	BookingsOrderIDIndex       = "order_id-index"
	BookingsCustomerEmailIndex = "customer_email-index"
	PaymentsBookingIDIndex     = "booking_id-index"
)

type tableCreator interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// TableDefinitions returns the CreateTable inputs for every table the service uses.
func TableDefinitions(cfg *config.Config) []*dynamodb.CreateTableInput {
	return []*dynamodb.CreateTableInput{
		tableWithIndexes(cfg.BookingsTable, BookingsOrderIDIndex, "order_id", BookingsCustomerEmailIndex, "customer_email"),
		tableWithIndexes(cfg.PaymentsTable, PaymentsBookingIDIndex, "booking_id"),
		tableWithIndexes(cfg.InvoicesTable),
	}
}

// CreateTables creates missing tables; existing ones are left alone.
func CreateTables(ctx context.Context, ddb tableCreator, cfg *config.Config) error {
	for _, in := range TableDefinitions(cfg) {
		_, err := ddb.CreateTable(ctx, in)
		var inUse *types.ResourceInUseException
		switch {
		case err == nil:
			telemetry.Logger.Info("[database] table created", zap.String("table", aws.ToString(in.TableName)))
		case errors.As(err, &inUse):
			telemetry.Logger.Info("[database] table already exists", zap.String("table", aws.ToString(in.TableName)))
		default:
			return fmt.Errorf("create table %s: %w", aws.ToString(in.TableName), err)
		}
	}
	return nil
}

// tableWithIndexes builds a string-keyed table ("id") plus one GSI per
// (indexName, attribute) pair.
func tableWithIndexes(name string, indexPairs ...string) *dynamodb.CreateTableInput {
	in := &dynamodb.CreateTableInput{
		TableName:   aws.String(name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
	}
	for i := 0; i+1 < len(indexPairs); i += 2 {
		index, attr := indexPairs[i], indexPairs[i+1]
		in.AttributeDefinitions = append(in.AttributeDefinitions, types.AttributeDefinition{
			AttributeName: aws.String(attr), AttributeType: types.ScalarAttributeTypeS,
		})
		in.GlobalSecondaryIndexes = append(in.GlobalSecondaryIndexes, types.GlobalSecondaryIndex{
			IndexName: aws.String(index),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(attr), KeyType: types.KeyTypeHash},
			},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}
	return in
}
