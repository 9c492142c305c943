package postgres

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"cargo_underwriting/internal/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		if r.values[i] == nil {
			continue
		}
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

type fakeDB struct {
	execSQL  string
	execArgs []any
	rowSQL   string
	rowArgs  []any
	row      pgx.Row
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL, f.execArgs = sql, args
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.rowSQL, f.rowArgs = sql, args
	return f.row
}

var testNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func quoteRowValues(status string) []any {
	score := 5
	return []any{
		"q-1", "CQ-20261016-ABCDEF", "pharma", "30000.00",
		"Germany", "Hamburg", "Brazil", "Santos",
		"air", testNow.AddDate(0, 0, 1), testNow.AddDate(0, 0, 31), "standard",
		"120.00", "250.00", status, &score,
		nil, nil, (*string)(nil), nil,
		[]string{}, nil, nil, &testNow,
		testNow.AddDate(0, 0, 30), "pending", testNow, testNow,
	}
}

func TestScanQuote(t *testing.T) {
	q, err := scanQuote(fakeRow{values: quoteRowValues("under_review")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Status != entities.QuoteStatusUnderReview || *q.RiskScore != 5 {
		t.Fatalf("unexpected quote %+v", q)
	}
	if !q.ShipmentValue.Equal(decimal.NewFromInt(30_000)) || !q.Deductible.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("unexpected money fields %+v", q)
	}
	if q.ApprovalConditions != nil || q.ReviewReason != "" || q.ReviewQueuedAt == nil {
		t.Fatalf("unexpected optional fields %+v", q)
	}

	if _, err := scanQuote(fakeRow{values: quoteRowValues("archived")}); err == nil {
		t.Fatalf("expected unknown status error")
	}
}

func TestQuoteRepository_GetByIDMissing(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
	q, err := NewQuoteRepository(db).GetByID(context.Background(), "nope")
	if err != nil || q.ID != "" {
		t.Fatalf("expected zero quote, got %+v %v", q, err)
	}
	if db.rowArgs[0] != "nope" || !strings.Contains(db.rowSQL, "WHERE id = $1") {
		t.Fatalf("unexpected query %s %v", db.rowSQL, db.rowArgs)
	}
}

func TestQuoteRepository_UpdateMissing(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
	q, err := NewQuoteRepository(db).Update(context.Background(), "nope", entities.QuotePatch{})
	if err != nil || q.ID != "" {
		t.Fatalf("expected zero quote, got %+v %v", q, err)
	}
}

func TestQuoteRepository_Create(t *testing.T) {
	db := &fakeDB{}
	q := entities.Quote{
		ID:            "q-1",
		ShipmentValue: decimal.RequireFromString("1234.50"),
		Status:        entities.QuoteStatusSubmitted,
	}
	if _, err := NewQuoteRepository(db).Create(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.execArgs) != 28 {
		t.Fatalf("expected 28 args, got %d", len(db.execArgs))
	}
	if db.execArgs[3] != "1234.5" || db.execArgs[14] != "submitted" {
		t.Fatalf("unexpected args %v", db.execArgs)
	}
	if db.execArgs[16].(*string) != nil {
		t.Fatalf("expected NULL rejection_reason")
	}
	if conds, ok := db.execArgs[20].([]string); !ok || conds == nil {
		t.Fatalf("expected empty approval_conditions, got %#v", db.execArgs[20])
	}
}

func TestBuildQuoteUpdate(t *testing.T) {
	score := 8
	reason := "risk score exceeds threshold"
	p := entities.QuotePatch{RiskScore: &score, RejectionReason: &reason, UpdatedAt: testNow}
	p.SetStatus(entities.QuoteStatusRejected)

	sql, args := buildQuoteUpdate("q-1", p, time.Time{})

	if !strings.HasPrefix(sql, "UPDATE quotes SET status = $2, risk_score = $3, rejection_reason = $4, updated_at = $5 WHERE id = $1 RETURNING ") {
		t.Fatalf("unexpected sql: %s", sql)
	}
	want := []any{"q-1", "rejected", 8, reason, testNow}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("unexpected args %v", args)
	}

	sql, args = buildQuoteUpdate("q-1", entities.QuotePatch{}, testNow)
	if !strings.HasPrefix(sql, "UPDATE quotes SET updated_at = $2 WHERE id = $1") || args[1] != testNow {
		t.Fatalf("expected updated_at fallback: %s %v", sql, args)
	}
}

func TestBuildQuoteUpdate_ExpectedStatus(t *testing.T) {
	p := entities.QuotePatch{UpdatedAt: testNow}
	p.SetStatus(entities.QuoteStatusExpired)
	p.ExpectStatus(entities.QuoteStatusSubmitted)

	sql, args := buildQuoteUpdate("q-1", p, time.Time{})

	if !strings.HasPrefix(sql, "UPDATE quotes SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4 RETURNING ") {
		t.Fatalf("unexpected sql: %s", sql)
	}
	want := []any{"q-1", "expired", testNow, "submitted"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestQuoteRepository_UpdateStatusMoved(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
	p := entities.QuotePatch{}
	p.SetStatus(entities.QuoteStatusExpired)
	p.ExpectStatus(entities.QuoteStatusSubmitted)

	q, err := NewQuoteRepository(db).Update(context.Background(), "q-1", p)
	if err != nil || q.ID != "" {
		t.Fatalf("expected zero quote, got %+v %v", q, err)
	}
	if !strings.Contains(db.rowSQL, "AND status = $") || db.rowArgs[len(db.rowArgs)-1] != "submitted" {
		t.Fatalf("expected status guard, got %s %v", db.rowSQL, db.rowArgs)
	}
}

func TestScanQuote_CorruptMoney(t *testing.T) {
	cases := map[string]int{"premium": 12, "deductible": 13}
	for name, idx := range cases {
		t.Run(name, func(t *testing.T) {
			values := quoteRowValues("approved")
			values[idx] = "not-a-number"
			_, err := scanQuote(fakeRow{values: values})
			if err == nil || !strings.Contains(err.Error(), name) {
				t.Fatalf("expected %s decode error, got %v", name, err)
			}
		})
	}
}
