package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cargo_underwriting/internal/domain/entities"
	"cargo_underwriting/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultQuotesTableName = "quotes"
	quotesStatusIndex      = "status-created_at-index"
)

// DynamoAPI is the subset of *dynamodb.Client the repositories use.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

var _ DynamoAPI = (*dynamodb.Client)(nil)

type locationItem struct {
	Country string `dynamodbav:"country"`
	City    string `dynamodbav:"city"`
}

type quoteItem struct {
	ID                 string       `dynamodbav:"id"`
	QuoteNumber        string       `dynamodbav:"quote_number"`
	CargoType          string       `dynamodbav:"cargo_type"`
	ShipmentValue      string       `dynamodbav:"shipment_value"`
	Origin             locationItem `dynamodbav:"origin"`
	Destination        locationItem `dynamodbav:"destination"`
	TransportationMode string       `dynamodbav:"transportation_mode"`
	StartDate          string       `dynamodbav:"start_date"`
	EndDate            string       `dynamodbav:"end_date"`
	CoverageTier       string       `dynamodbav:"coverage_tier,omitempty"`
	Premium            string       `dynamodbav:"premium"`
	Deductible         string       `dynamodbav:"deductible"`
	Status             string       `dynamodbav:"status"`
	RiskScore          *int         `dynamodbav:"risk_score,omitempty"`
	RejectionReason    string       `dynamodbav:"rejection_reason,omitempty"`
	ReviewDecision     string       `dynamodbav:"review_decision,omitempty"`
	ReviewReason       string       `dynamodbav:"review_reason,omitempty"`
	UnderwriterNotes   string       `dynamodbav:"underwriter_notes,omitempty"`
	ApprovalConditions []string     `dynamodbav:"approval_conditions,omitempty"`
	ApprovedAt         string       `dynamodbav:"approved_at,omitempty"`
	ReviewedAt         string       `dynamodbav:"reviewed_at,omitempty"`
	ReviewQueuedAt     string       `dynamodbav:"review_queued_at,omitempty"`
	QuoteExpiresAt     string       `dynamodbav:"quote_expires_at"`
	PaymentStatus      string       `dynamodbav:"payment_status"`
	CreatedAt          string       `dynamodbav:"created_at"`
	UpdatedAt          string       `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: status-created_at-index (PK: status, SK: created_at)
//
// Timestamps are written in a fixed-width UTC layout so that string order on
// created_at and quote_expires_at matches time order.
//
// Updates are plain SET expressions guarded only by attribute_exists(id):
// concurrent writers to the same quote are last-writer-wins.

type QuoteDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoAPI, tableName string) *QuoteDynamoRepository {
	if tableName == "" {
		tableName = getenvDefault("QUOTES_TABLE", defaultQuotesTableName)
	}
	return &QuoteDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}
	return decodeQuote(out.Item)
}

func (r *QuoteDynamoRepository) Update(ctx context.Context, id string, patch entities.QuotePatch) (entities.Quote, error) {
	return r.update(ctx, id, func(now string) (string, string, map[string]types.AttributeValue, map[string]string) {
		expr, vals, names := buildQuoteUpdate(patch, now)
		cond := "attribute_exists(#id)"
		if patch.ExpectedStatus != nil {
			cond += " AND #status = :expected_status"
			names["#status"] = "status"
			vals[":expected_status"] = &types.AttributeValueMemberS{Value: string(*patch.ExpectedStatus)}
		}
		return cond, expr, vals, names
	})
}

func (r *QuoteDynamoRepository) ListByStatus(ctx context.Context, status entities.QuoteStatus) ([]entities.Quote, error) {
	return r.queryStatus(ctx, status, "", nil)
}

func (r *QuoteDynamoRepository) ListExpiredSubmitted(ctx context.Context, now time.Time) ([]entities.Quote, error) {
	return r.queryStatus(ctx, entities.QuoteStatusSubmitted,
		"#expires < :now",
		map[string]types.AttributeValue{":now": &types.AttributeValueMemberS{Value: formatTime(now)}},
	)
}

// queryStatus walks every page of the status index, oldest first.
func (r *QuoteDynamoRepository) queryStatus(ctx context.Context, status entities.QuoteStatus, filter string, filterVals map[string]types.AttributeValue) ([]entities.Quote, error) {
	names := map[string]string{"#status": "status"}
	vals := map[string]types.AttributeValue{
		":status": &types.AttributeValueMemberS{Value: string(status)},
	}
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quotesStatusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ScanIndexForward:       aws.Bool(true),
	}
	if filter != "" {
		in.FilterExpression = aws.String(filter)
		names["#expires"] = "quote_expires_at"
		for k, v := range filterVals {
			vals[k] = v
		}
	}
	in.ExpressionAttributeNames = names
	in.ExpressionAttributeValues = vals

	var quotes []entities.Quote
	for {
		out, err := r.ddb.Query(ctx, in)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			q, err := decodeQuote(raw)
			if err != nil {
				return nil, err
			}
			quotes = append(quotes, q)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return quotes, nil
}

func (r *QuoteDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (condition, updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Quote, error) {
	now := formatTime(time.Now())
	condition, updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(condition),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	return decodeQuote(out.Attributes)
}

// buildQuoteUpdate turns the non-nil patch fields into a single SET
// expression. updated_at is always written.
func buildQuoteUpdate(p entities.QuotePatch, now string) (string, map[string]types.AttributeValue, map[string]string) {
	var sets []string
	vals := map[string]types.AttributeValue{}
	names := map[string]string{}
	set := func(attr string, v types.AttributeValue) {
		sets = append(sets, fmt.Sprintf("#%s = :%s", attr, attr))
		names["#"+attr] = attr
		vals[":"+attr] = v
	}
	str := func(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }

	if p.Status != nil {
		set("status", str(string(*p.Status)))
	}
	if p.RiskScore != nil {
		set("risk_score", &types.AttributeValueMemberN{Value: strconv.Itoa(*p.RiskScore)})
	}
	if p.RejectionReason != nil {
		set("rejection_reason", str(*p.RejectionReason))
	}
	if p.ReviewDecision != nil {
		set("review_decision", str(string(*p.ReviewDecision)))
	}
	if p.ReviewReason != nil {
		set("review_reason", str(*p.ReviewReason))
	}
	if p.UnderwriterNotes != nil {
		set("underwriter_notes", str(*p.UnderwriterNotes))
	}
	if p.ApprovalConditions != nil {
		list := make([]types.AttributeValue, 0, len(p.ApprovalConditions))
		for _, c := range p.ApprovalConditions {
			list = append(list, str(c))
		}
		set("approval_conditions", &types.AttributeValueMemberL{Value: list})
	}
	if p.ApprovedAt != nil {
		set("approved_at", str(formatTime(*p.ApprovedAt)))
	}
	if p.ReviewedAt != nil {
		set("reviewed_at", str(formatTime(*p.ReviewedAt)))
	}
	if p.ReviewQueuedAt != nil {
		set("review_queued_at", str(formatTime(*p.ReviewQueuedAt)))
	}
	updatedAt := now
	if !p.UpdatedAt.IsZero() {
		updatedAt = formatTime(p.UpdatedAt)
	}
	set("updated_at", str(updatedAt))

	return "SET " + strings.Join(sets, ", "), vals, names
}

func decodeQuote(raw map[string]types.AttributeValue) (entities.Quote, error) {
	var it quoteItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it)
}

func toQuoteItem(q entities.Quote) quoteItem {
	return quoteItem{
		ID:                 q.ID,
		QuoteNumber:        q.QuoteNumber,
		CargoType:          q.CargoType,
		ShipmentValue:      q.ShipmentValue.String(),
		Origin:             locationItem(q.Origin),
		Destination:        locationItem(q.Destination),
		TransportationMode: string(q.TransportationMode),
		StartDate:          formatTime(q.StartDate),
		EndDate:            formatTime(q.EndDate),
		CoverageTier:       string(q.CoverageTier),
		Premium:            q.Premium.String(),
		Deductible:         q.Deductible.String(),
		Status:             string(q.Status),
		RiskScore:          q.RiskScore,
		RejectionReason:    q.RejectionReason,
		ReviewDecision:     string(q.ReviewDecision),
		ReviewReason:       q.ReviewReason,
		UnderwriterNotes:   q.UnderwriterNotes,
		ApprovalConditions: q.ApprovalConditions,
		ApprovedAt:         formatOptionalTime(q.ApprovedAt),
		ReviewedAt:         formatOptionalTime(q.ReviewedAt),
		ReviewQueuedAt:     formatOptionalTime(q.ReviewQueuedAt),
		QuoteExpiresAt:     formatTime(q.QuoteExpiresAt),
		PaymentStatus:      string(q.PaymentStatus),
		CreatedAt:          formatTime(q.CreatedAt),
		UpdatedAt:          formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) (entities.Quote, error) {
	status, err := entities.ParseQuoteStatus(it.Status)
	if err != nil {
		return entities.Quote{}, fmt.Errorf("quote %s: %w", it.ID, err)
	}
	value, err := parseDecimal(it.ShipmentValue)
	if err != nil {
		return entities.Quote{}, fmt.Errorf("quote %s: shipment_value: %w", it.ID, err)
	}
	premium, err := parseDecimal(it.Premium)
	if err != nil {
		return entities.Quote{}, fmt.Errorf("quote %s: premium: %w", it.ID, err)
	}
	deductible, err := parseDecimal(it.Deductible)
	if err != nil {
		return entities.Quote{}, fmt.Errorf("quote %s: deductible: %w", it.ID, err)
	}

	return entities.Quote{
		ID:                 it.ID,
		QuoteNumber:        it.QuoteNumber,
		CargoType:          it.CargoType,
		ShipmentValue:      value,
		Origin:             entities.Location(it.Origin),
		Destination:        entities.Location(it.Destination),
		TransportationMode: entities.TransportationMode(it.TransportationMode),
		StartDate:          parseTime(it.StartDate),
		EndDate:            parseTime(it.EndDate),
		CoverageTier:       entities.CoverageTier(it.CoverageTier),
		Premium:            premium,
		Deductible:         deductible,
		Status:             status,
		RiskScore:          it.RiskScore,
		RejectionReason:    it.RejectionReason,
		ReviewDecision:     entities.ReviewOutcome(it.ReviewDecision),
		ReviewReason:       it.ReviewReason,
		UnderwriterNotes:   it.UnderwriterNotes,
		ApprovalConditions: it.ApprovalConditions,
		ApprovedAt:         parseOptionalTime(it.ApprovedAt),
		ReviewedAt:         parseOptionalTime(it.ReviewedAt),
		ReviewQueuedAt:     parseOptionalTime(it.ReviewQueuedAt),
		QuoteExpiresAt:     parseTime(it.QuoteExpiresAt),
		PaymentStatus:      entities.PaymentStatus(it.PaymentStatus),
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
	}, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
