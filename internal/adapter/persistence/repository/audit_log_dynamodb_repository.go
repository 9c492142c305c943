package repository

import (
	"context"

	"cargo_underwriting/internal/domain/entities"
	"cargo_underwriting/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultAuditLogsTableName = "quote_audit_logs"
	auditLogsQuoteIDIndex     = "quote_id-index"
)

type auditLogItem struct {
	ID        string                `dynamodbav:"id"`
	QuoteID   string                `dynamodbav:"quote_id"`
	Action    string                `dynamodbav:"action"`
	Details   entities.AuditDetails `dynamodbav:"details"`
	Timestamp string                `dynamodbav:"timestamp"`
}

// AuditLogDynamoRepository appends audit entries to DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: quote_id-index (PK: quote_id, SK: timestamp)

type AuditLogDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IAuditLogSink = (*AuditLogDynamoRepository)(nil)

func NewAuditLogDynamoRepository(ddb DynamoAPI, tableName string) *AuditLogDynamoRepository {
	if tableName == "" {
		tableName = getenvDefault("AUDIT_LOGS_TABLE", defaultAuditLogsTableName)
	}
	return &AuditLogDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *AuditLogDynamoRepository) Append(ctx context.Context, e entities.AuditLogEntry) error {
	av, err := attributevalue.MarshalMap(toAuditLogItem(e))
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return err
}

// ListByQuoteID returns a quote's audit trail, oldest first.
func (r *AuditLogDynamoRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.AuditLogEntry, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(auditLogsQuoteIDIndex),
		KeyConditionExpression: aws.String("quote_id = :qid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":qid": &types.AttributeValueMemberS{Value: quoteID},
		},
		ScanIndexForward: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.AuditLogEntry, 0, len(out.Items))
	for _, raw := range out.Items {
		var it auditLogItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromAuditLogItem(it))
	}
	return items, nil
}

func toAuditLogItem(e entities.AuditLogEntry) auditLogItem {
	return auditLogItem{
		ID:        e.ID,
		QuoteID:   e.QuoteID,
		Action:    string(e.Action),
		Details:   e.Details,
		Timestamp: formatTime(e.Timestamp),
	}
}

func fromAuditLogItem(it auditLogItem) entities.AuditLogEntry {
	return entities.AuditLogEntry{
		ID:        it.ID,
		QuoteID:   it.QuoteID,
		Action:    entities.AuditAction(it.Action),
		Details:   it.Details,
		Timestamp: parseTime(it.Timestamp),
	}
}
