package repository

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"cargo_underwriting/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

type fakeDynamo struct {
	putIn    *dynamodb.PutItemInput
	getOut   *dynamodb.GetItemOutput
	updateIn *dynamodb.UpdateItemInput
	updateFn func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	queries  []*dynamodb.QueryInput
	pages    []*dynamodb.QueryOutput
	err      error
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putIn = in
	return &dynamodb.PutItemOutput{}, f.err
}

func (f *fakeDynamo) GetItem(_ context.Context, _ *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.getOut == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getOut, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updateIn = in
	return f.updateFn(in)
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	cp := *in
	f.queries = append(f.queries, &cp)
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func sampleQuote() entities.Quote {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	score := 7
	queued := now.Add(time.Minute)
	return entities.Quote{
		ID:                 "q-1",
		QuoteNumber:        "CQ-20261016-ABCDEF",
		CargoType:          "chemicals",
		ShipmentValue:      decimal.RequireFromString("30000.50"),
		Origin:             entities.Location{Country: "Germany", City: "Hamburg"},
		Destination:        entities.Location{Country: "Brazil", City: "Santos"},
		TransportationMode: entities.TransportAir,
		StartDate:          now.AddDate(0, 0, 1),
		EndDate:            now.AddDate(0, 0, 31),
		CoverageTier:       entities.CoverageStandard,
		Premium:            decimal.RequireFromString("120.00"),
		Deductible:         decimal.NewFromInt(250),
		Status:             entities.QuoteStatusUnderReview,
		RiskScore:          &score,
		ReviewQueuedAt:     &queued,
		QuoteExpiresAt:     now.AddDate(0, 0, 30),
		PaymentStatus:      entities.PaymentStatusPending,
		CreatedAt:          now,
		UpdatedAt:          queued,
	}
}

func marshalQuote(t *testing.T, q entities.Quote) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return av
}

func TestQuoteDynamoRepository_CreateAndGet(t *testing.T) {
	fake := &fakeDynamo{}
	repo := NewQuoteDynamoRepository(fake, "quotes_test")
	q := sampleQuote()

	if _, err := repo.Create(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *fake.putIn.TableName != "quotes_test" || *fake.putIn.ConditionExpression != "attribute_not_exists(#id)" {
		t.Fatalf("unexpected put input: %+v", fake.putIn)
	}

	fake.getOut = &dynamodb.GetItemOutput{Item: fake.putIn.Item}
	got, err := repo.GetByID(context.Background(), "q-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.ShipmentValue.Equal(q.ShipmentValue) || !got.CreatedAt.Equal(q.CreatedAt) || !got.ReviewQueuedAt.Equal(*q.ReviewQueuedAt) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Status != q.Status || *got.RiskScore != 7 || got.ApprovedAt != nil || got.Origin != q.Origin {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestQuoteDynamoRepository_GetByIDMissing(t *testing.T) {
	repo := NewQuoteDynamoRepository(&fakeDynamo{}, "quotes")
	got, err := repo.GetByID(context.Background(), "nope")
	if err != nil || got.ID != "" {
		t.Fatalf("expected zero quote, got %+v %v", got, err)
	}
}

func TestQuoteDynamoRepository_UnknownStatusIsRejected(t *testing.T) {
	q := sampleQuote()
	q.Status = "archived"
	fake := &fakeDynamo{}
	fake.getOut = &dynamodb.GetItemOutput{Item: marshalQuote(t, q)}

	_, err := NewQuoteDynamoRepository(fake, "quotes").GetByID(context.Background(), "q-1")
	if err == nil || !strings.Contains(err.Error(), "unknown quote status") {
		t.Fatalf("expected unknown status error, got %v", err)
	}
}

func TestBuildQuoteUpdate(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	score := 3
	reason := "low risk profile"
	p := entities.QuotePatch{RiskScore: &score, ReviewReason: &reason, ApprovedAt: &now, ApprovalConditions: []string{"a"}, UpdatedAt: now}
	p.SetStatus(entities.QuoteStatusApproved)

	expr, vals, names := buildQuoteUpdate(p, "ignored")

	want := "SET #status = :status, #risk_score = :risk_score, #review_reason = :review_reason, #approval_conditions = :approval_conditions, #approved_at = :approved_at, #updated_at = :updated_at"
	if expr != want {
		t.Fatalf("unexpected expression:\n%s\n%s", expr, want)
	}
	if vals[":risk_score"].(*types.AttributeValueMemberN).Value != "3" {
		t.Fatalf("unexpected risk score value")
	}
	if vals[":updated_at"].(*types.AttributeValueMemberS).Value != "2026-10-16T12:00:00.000000000Z" {
		t.Fatalf("unexpected updated_at %v", vals[":updated_at"])
	}
	if names["#status"] != "status" || len(names) != 6 {
		t.Fatalf("unexpected names %v", names)
	}

	expr, vals, _ = buildQuoteUpdate(entities.QuotePatch{}, "now-value")
	if expr != "SET #updated_at = :updated_at" || vals[":updated_at"].(*types.AttributeValueMemberS).Value != "now-value" {
		t.Fatalf("expected updated_at fallback, got %s %v", expr, vals)
	}
}

func TestQuoteDynamoRepository_Update(t *testing.T) {
	t.Run("missing item maps to zero quote", func(t *testing.T) {
		fake := &fakeDynamo{updateFn: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		}}
		got, err := NewQuoteDynamoRepository(fake, "quotes").Update(context.Background(), "q-1", entities.QuotePatch{})
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero quote, got %+v %v", got, err)
		}
		if fake.updateIn.ExpressionAttributeNames["#id"] != "id" {
			t.Fatalf("expected #id in names")
		}
	})

	t.Run("status guard joins the condition", func(t *testing.T) {
		fake := &fakeDynamo{updateFn: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		}}
		p := entities.QuotePatch{}
		p.SetStatus(entities.QuoteStatusExpired)
		p.ExpectStatus(entities.QuoteStatusSubmitted)

		got, err := NewQuoteDynamoRepository(fake, "quotes").Update(context.Background(), "q-1", p)
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero quote, got %+v %v", got, err)
		}
		in := fake.updateIn
		if *in.ConditionExpression != "attribute_exists(#id) AND #status = :expected_status" {
			t.Fatalf("unexpected condition %s", *in.ConditionExpression)
		}
		if in.ExpressionAttributeValues[":expected_status"].(*types.AttributeValueMemberS).Value != "submitted" {
			t.Fatalf("unexpected expected status %v", in.ExpressionAttributeValues[":expected_status"])
		}
		if in.ExpressionAttributeValues[":status"].(*types.AttributeValueMemberS).Value != "expired" {
			t.Fatalf("unexpected new status %v", in.ExpressionAttributeValues[":status"])
		}
	})

	t.Run("unguarded update only checks existence", func(t *testing.T) {
		q := sampleQuote()
		fake := &fakeDynamo{updateFn: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return &dynamodb.UpdateItemOutput{Attributes: marshalQuote(t, q)}, nil
		}}
		if _, err := NewQuoteDynamoRepository(fake, "quotes").Update(context.Background(), "q-1", entities.QuotePatch{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *fake.updateIn.ConditionExpression != "attribute_exists(#id)" {
			t.Fatalf("unexpected condition %s", *fake.updateIn.ConditionExpression)
		}
	})

	t.Run("returns the new image", func(t *testing.T) {
		q := sampleQuote()
		fake := &fakeDynamo{updateFn: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return &dynamodb.UpdateItemOutput{Attributes: marshalQuote(t, q)}, nil
		}}
		got, err := NewQuoteDynamoRepository(fake, "quotes").Update(context.Background(), "q-1", entities.QuotePatch{})
		if err != nil || got.ID != "q-1" {
			t.Fatalf("unexpected result %+v %v", got, err)
		}
		if fake.updateIn.ReturnValues != types.ReturnValueAllNew {
			t.Fatalf("expected ALL_NEW")
		}
	})

	t.Run("other errors propagate", func(t *testing.T) {
		fake := &fakeDynamo{updateFn: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, errors.New("throttled")
		}}
		_, err := NewQuoteDynamoRepository(fake, "quotes").Update(context.Background(), "q-1", entities.QuotePatch{})
		if err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestQuoteDynamoRepository_Queries(t *testing.T) {
	a, b := sampleQuote(), sampleQuote()
	b.ID = "q-2"

	t.Run("list by status walks every page", func(t *testing.T) {
		fake := &fakeDynamo{pages: []*dynamodb.QueryOutput{
			{Items: []map[string]types.AttributeValue{marshalQuote(t, a)}, LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "q-1"}}},
			{Items: []map[string]types.AttributeValue{marshalQuote(t, b)}},
		}}
		got, err := NewQuoteDynamoRepository(fake, "quotes").ListByStatus(context.Background(), entities.QuoteStatusUnderReview)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[1].ID != "q-2" {
			t.Fatalf("unexpected quotes %+v", got)
		}
		if len(fake.queries) != 2 || fake.queries[1].ExclusiveStartKey == nil {
			t.Fatalf("expected a second page query")
		}
		if *fake.queries[0].IndexName != quotesStatusIndex || !*fake.queries[0].ScanIndexForward {
			t.Fatalf("unexpected query %+v", fake.queries[0])
		}
	})

	t.Run("expired submitted filters on quote_expires_at", func(t *testing.T) {
		fake := &fakeDynamo{pages: []*dynamodb.QueryOutput{{}}}
		now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
		if _, err := NewQuoteDynamoRepository(fake, "quotes").ListExpiredSubmitted(context.Background(), now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		in := fake.queries[0]
		if *in.FilterExpression != "#expires < :now" || in.ExpressionAttributeNames["#expires"] != "quote_expires_at" {
			t.Fatalf("unexpected filter %+v", in)
		}
		want := map[string]string{":status": "submitted", ":now": "2026-10-16T12:00:00.000000000Z"}
		got := map[string]string{}
		for k, v := range in.ExpressionAttributeValues {
			got[k] = v.(*types.AttributeValueMemberS).Value
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("unexpected values %v", got)
		}
	})
}

func TestTimeLayoutSortsLexicographically(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	earlier := formatTime(base)
	later := formatTime(base.Add(500 * time.Millisecond))
	if !(earlier < later) {
		t.Fatalf("expected %s < %s", earlier, later)
	}
	if !parseTime(later).Equal(base.Add(500 * time.Millisecond)) {
		t.Fatalf("round trip failed")
	}
	if parseOptionalTime("") != nil {
		t.Fatalf("expected nil for empty time")
	}
}

func TestDecodeQuote_CorruptMoney(t *testing.T) {
	for _, attr := range []string{"premium", "deductible"} {
		t.Run(attr, func(t *testing.T) {
			raw := marshalQuote(t, sampleQuote())
			raw[attr] = &types.AttributeValueMemberS{Value: "12,50"}
			_, err := decodeQuote(raw)
			if err == nil || !strings.Contains(err.Error(), attr) {
				t.Fatalf("expected %s decode error, got %v", attr, err)
			}
		})
	}
}
