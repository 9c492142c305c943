package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"cargo_underwriting/internal/domain/entities"
	"cargo_underwriting/internal/domain/underwriting"
	mock_interfaces "cargo_underwriting/internal/usecase/interfaces/mocks"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func reviewQuote(id string, score int, created time.Time) entities.Quote {
	q := submittedQuote(id)
	q.Status = entities.QuoteStatusUnderReview
	q.RiskScore = &score
	queued := created
	q.ReviewQueuedAt = &queued
	q.CreatedAt = created
	return q
}

func TestQuoteReviewUseCase_ApplyDecision(t *testing.T) {
	t.Run("rejection writes the reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		audit := mock_interfaces.NewMockIAuditLogSink(ctrl)
		uc := NewQuoteReviewUseCase(repo, audit, nil, WithClock(clockwork.NewFakeClockAt(testNow)))

		q := reviewQuote("q-1", 9, testNow.Add(-time.Hour))
		d := entities.ReviewDecision{Decision: entities.ReviewRejected, Reason: underwriting.DecisionReasonHighRisk, UnderwriterNotes: "n", Priority: entities.PriorityHigh, Resolution: entities.ResolutionImmediate}

		var patch entities.QuotePatch
		repo.EXPECT().Update(gomock.Any(), "q-1", gomock.Any()).DoAndReturn(applyPatch(q, &patch))
		audit.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e entities.AuditLogEntry) error {
			if e.Details.Source != "automatic_review" || e.Details.ReviewDecision == nil {
				t.Fatalf("unexpected audit details: %+v", e.Details)
			}
			return nil
		})

		got, err := uc.ApplyDecision(context.Background(), q, d)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.QuoteStatusRejected || got.RejectionReason != underwriting.DecisionReasonHighRisk {
			t.Fatalf("unexpected quote: %+v", got)
		}
		if patch.ApprovedAt != nil {
			t.Fatalf("approved_at must not be set on rejection")
		}
		if patch.ReviewedAt == nil || *patch.ReviewDecision != entities.ReviewRejected || *patch.UnderwriterNotes != "n" {
			t.Fatalf("expected review fields, got %+v", patch)
		}
	})

	t.Run("reviewed_at and approved_at are set once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteReviewUseCase(repo, nil, nil, WithClock(clockwork.NewFakeClockAt(testNow)))

		q := reviewQuote("q-1", 2, testNow.Add(-time.Hour))
		earlier := testNow.Add(-30 * time.Minute)
		q.ReviewedAt = &earlier
		q.ApprovedAt = &earlier

		var patch entities.QuotePatch
		repo.EXPECT().Update(gomock.Any(), "q-1", gomock.Any()).DoAndReturn(applyPatch(q, &patch))

		got, err := uc.ApplyDecision(context.Background(), q, entities.ReviewDecision{Decision: entities.ReviewApproved, Reason: "ok"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if patch.ReviewedAt != nil || patch.ApprovedAt != nil {
			t.Fatalf("timestamps must not be rewritten, got %+v", patch)
		}
		if !got.ApprovedAt.Equal(earlier) {
			t.Fatalf("expected original approved_at, got %v", got.ApprovedAt)
		}
	})

	t.Run("needs more info", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteReviewUseCase(repo, nil, nil, WithClock(clockwork.NewFakeClockAt(testNow)))
		q := reviewQuote("q-1", 7, testNow)

		repo.EXPECT().Update(gomock.Any(), "q-1", gomock.Any()).DoAndReturn(applyPatch(q, nil))

		got, err := uc.ApplyDecision(context.Background(), q, entities.ReviewDecision{Decision: entities.ReviewNeedsMoreInfo, Reason: underwriting.DecisionReasonChemicalsMSDS})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.QuoteStatusNeedsInfo || got.RejectionReason != "" {
			t.Fatalf("unexpected quote: %+v", got)
		}
	})

	t.Run("unknown decision", func(t *testing.T) {
		uc := NewQuoteReviewUseCase(nil, nil, nil)
		_, err := uc.ApplyDecision(context.Background(), reviewQuote("q-1", 5, testNow), entities.ReviewDecision{Decision: "maybe"})
		if !errors.Is(err, ErrInvalidReviewDecision) {
			t.Fatalf("expected ErrInvalidReviewDecision, got %v", err)
		}
	})

	t.Run("terminal quote", func(t *testing.T) {
		uc := NewQuoteReviewUseCase(nil, nil, nil)
		q := reviewQuote("q-1", 5, testNow)
		q.Status = entities.QuoteStatusExpired
		_, err := uc.ApplyDecision(context.Background(), q, entities.ReviewDecision{Decision: entities.ReviewApproved})
		if !errors.Is(err, ErrQuoteTerminal) {
			t.Fatalf("expected ErrQuoteTerminal, got %v", err)
		}
	})
}

func TestQuoteReviewUseCase_ProcessPendingReviews(t *testing.T) {
	t.Run("drains oldest first and keeps going on failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		audit := mock_interfaces.NewMockIAuditLogSink(ctrl)
		uc := NewQuoteReviewUseCase(repo, audit, underwriting.NewDecider(underwriting.DefaultRules()),
			WithClock(clockwork.NewFakeClockAt(testNow)),
			WithReviewDelay(0),
		)

		low := reviewQuote("low", 2, testNow.Add(-3*time.Hour))
		unscored := reviewQuote("unscored", 0, testNow.Add(-2*time.Hour))
		unscored.RiskScore = nil
		high := reviewQuote("high", 9, testNow.Add(-1*time.Hour))

		repo.EXPECT().ListByStatus(gomock.Any(), entities.QuoteStatusUnderReview).
			Return([]entities.Quote{high, low, unscored}, nil)
		gomock.InOrder(
			repo.EXPECT().Update(gomock.Any(), "low", gomock.Any()).DoAndReturn(applyPatch(low, nil)),
			repo.EXPECT().Update(gomock.Any(), "high", gomock.Any()).Return(entities.Quote{}, errors.New("db")),
		)
		audit.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

		res, err := uc.ProcessPendingReviews(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Processed != 1 || res.Failed != 2 {
			t.Fatalf("unexpected counts: %+v", res)
		}
		ids := []string{res.Results[0].QuoteID, res.Results[1].QuoteID, res.Results[2].QuoteID}
		if !reflect.DeepEqual(ids, []string{"low", "unscored", "high"}) {
			t.Fatalf("expected oldest first, got %v", ids)
		}
		if res.Results[0].Status != entities.QuoteStatusApproved {
			t.Fatalf("expected low risk approved, got %+v", res.Results[0])
		}
		if res.Results[1].Error == "" || res.Results[2].Error == "" {
			t.Fatalf("expected per-quote errors, got %+v", res.Results)
		}
		if res.Results[2].Decision == nil || res.Results[2].Decision.Decision != entities.ReviewRejected {
			t.Fatalf("expected the decision to be reported even when the write fails, got %+v", res.Results[2])
		}
	})

	t.Run("waits between quotes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		clock := clockwork.NewFakeClockAt(testNow)
		uc := NewQuoteReviewUseCase(repo, nil, underwriting.NewDecider(underwriting.DefaultRules()),
			WithClock(clock),
			WithReviewDelay(100*time.Millisecond),
		)

		a := reviewQuote("a", 1, testNow.Add(-2*time.Hour))
		b := reviewQuote("b", 1, testNow.Add(-1*time.Hour))
		repo.EXPECT().ListByStatus(gomock.Any(), entities.QuoteStatusUnderReview).Return([]entities.Quote{a, b}, nil)
		repo.EXPECT().Update(gomock.Any(), "a", gomock.Any()).DoAndReturn(applyPatch(a, nil))
		repo.EXPECT().Update(gomock.Any(), "b", gomock.Any()).DoAndReturn(applyPatch(b, nil))

		type outcome struct {
			res ReviewBatchResult
			err error
		}
		done := make(chan outcome, 1)
		go func() {
			res, err := uc.ProcessPendingReviews(context.Background())
			done <- outcome{res, err}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := clock.BlockUntilContext(ctx, 1); err != nil {
			t.Fatalf("batch never waited between quotes: %v", err)
		}
		clock.Advance(100 * time.Millisecond)

		out := <-done
		if out.err != nil || out.res.Processed != 2 {
			t.Fatalf("unexpected outcome: %+v", out)
		}
	})

	t.Run("list failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteReviewUseCase(repo, nil, nil)
		repo.EXPECT().ListByStatus(gomock.Any(), entities.QuoteStatusUnderReview).Return(nil, errors.New("db"))

		_, err := uc.ProcessPendingReviews(context.Background())
		if !errors.Is(err, ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
	})
}

func TestQuoteReviewUseCase_ManualReview(t *testing.T) {
	t.Run("rejection requires notes", func(t *testing.T) {
		uc := NewQuoteReviewUseCase(nil, nil, nil)
		_, err := uc.ManualReview(context.Background(), "q-1", ManualReviewCommand{Decision: entities.ReviewRejected, Notes: "  "})
		if !errors.Is(err, ErrInvalidReviewDecision) {
			t.Fatalf("expected ErrInvalidReviewDecision, got %v", err)
		}
	})

	t.Run("needs more info is not a manual outcome", func(t *testing.T) {
		uc := NewQuoteReviewUseCase(nil, nil, nil)
		_, err := uc.ManualReview(context.Background(), "q-1", ManualReviewCommand{Decision: entities.ReviewNeedsMoreInfo})
		if !errors.Is(err, ErrInvalidReviewDecision) {
			t.Fatalf("expected ErrInvalidReviewDecision, got %v", err)
		}
	})

	t.Run("terminal quote refuses", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteReviewUseCase(repo, nil, nil)
		q := reviewQuote("q-1", 5, testNow)
		q.Status = entities.QuoteStatusRejected
		q.RejectionReason = "x"
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(q, nil)

		_, err := uc.ManualReview(context.Background(), "q-1", ManualReviewCommand{Decision: entities.ReviewApproved})
		if !errors.Is(err, ErrQuoteTerminal) {
			t.Fatalf("expected ErrQuoteTerminal, got %v", err)
		}
	})

	t.Run("approval with conditions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		audit := mock_interfaces.NewMockIAuditLogSink(ctrl)
		uc := NewQuoteReviewUseCase(repo, audit, nil, WithClock(clockwork.NewFakeClockAt(testNow)))

		q := reviewQuote("q-1", 6, testNow.Add(-time.Hour))
		q.CargoType = "machinery"
		q.ShipmentValue = decimal.NewFromInt(20_000)
		q.Status = entities.QuoteStatusNeedsInfo

		var patch entities.QuotePatch
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(q, nil)
		repo.EXPECT().Update(gomock.Any(), "q-1", gomock.Any()).DoAndReturn(applyPatch(q, &patch))
		audit.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("audit down"))

		got, err := uc.ManualReview(context.Background(), "q-1", ManualReviewCommand{
			Decision:   entities.ReviewApproved,
			Conditions: []string{" crated transport ", "", "temperature log"},
			Reviewer:   "ana",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.QuoteStatusApproved || got.ApprovedAt == nil {
			t.Fatalf("unexpected quote: %+v", got)
		}
		if !reflect.DeepEqual(patch.ApprovalConditions, []string{"crated transport", "temperature log"}) {
			t.Fatalf("unexpected conditions: %v", patch.ApprovalConditions)
		}
		if *patch.ReviewReason != manualApprovalReason || *patch.UnderwriterNotes != "[ana]" {
			t.Fatalf("unexpected review fields: reason=%q notes=%q", *patch.ReviewReason, *patch.UnderwriterNotes)
		}
	})

	t.Run("rejection uses notes as reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteReviewUseCase(repo, nil, nil, WithClock(clockwork.NewFakeClockAt(testNow)))
		q := reviewQuote("q-1", 6, testNow)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(q, nil)
		repo.EXPECT().Update(gomock.Any(), "q-1", gomock.Any()).DoAndReturn(applyPatch(q, nil))

		got, err := uc.ManualReview(context.Background(), "q-1", ManualReviewCommand{Decision: entities.ReviewRejected, Notes: "insufficient packaging"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.QuoteStatusRejected || got.RejectionReason != "insufficient packaging" {
			t.Fatalf("unexpected quote: %+v", got)
		}
		if len(got.ApprovalConditions) != 0 {
			t.Fatalf("rejections carry no conditions")
		}
	})
}
