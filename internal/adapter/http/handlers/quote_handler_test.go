package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cargo_underwriting/internal/adapter/http/handlers/mocks"
	"cargo_underwriting/internal/domain/entities"
	"cargo_underwriting/internal/usecase"
	mock_interfaces "cargo_underwriting/internal/usecase/interfaces/mocks"
	"cargo_underwriting/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

const validQuoteBody = `{
	"cargo_type": "electronics",
	"shipment_value": 5000,
	"origin": {"country": "Germany", "city": "Hamburg"},
	"destination": {"country": "United States", "city": "New York"},
	"transportation_mode": "sea",
	"start_date": "2026-10-17",
	"end_date": "2026-11-16"
}`

type quoteHandlerFixture struct {
	quotes     *mocks.MockIQuoteUseCase
	processing *mocks.MockIQuoteProcessingUseCase
	enqueuer   *mock_interfaces.MockITaskEnqueuer
	router     *gin.Engine
}

func newQuoteHandlerFixture(t *testing.T, withEnqueuer bool) quoteHandlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	f := quoteHandlerFixture{
		quotes:     mocks.NewMockIQuoteUseCase(ctrl),
		processing: mocks.NewMockIQuoteProcessingUseCase(ctrl),
	}
	var h *QuoteHandler
	if withEnqueuer {
		f.enqueuer = mock_interfaces.NewMockITaskEnqueuer(ctrl)
		h = NewQuoteHandler(f.quotes, f.processing, f.enqueuer)
	} else {
		h = NewQuoteHandler(f.quotes, f.processing, nil)
	}

	f.router = gin.New()
	f.router.POST("/v1/quotes", h.CreateQuote)
	f.router.GET("/v1/quotes", h.ListQuotes)
	f.router.GET("/v1/quotes/:id", h.GetQuote)
	f.router.POST("/v1/quotes/:id/process", h.ProcessQuote)
	return f
}

func (f quoteHandlerFixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) pkg.HTTPError {
	t.Helper()
	var body pkg.HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %s: %v", w.Body.String(), err)
	}
	return body
}

func TestQuoteHandler_CreateQuote(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, false)
		w := f.do(http.MethodPost, "/v1/quotes", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, false)
		w := f.do(http.MethodPost, "/v1/quotes", `{"cargo_type":"food"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("bad date", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, false)
		body := bytes.Replace([]byte(validQuoteBody), []byte("2026-10-17"), []byte("17/10/2026"), 1)
		w := f.do(http.MethodPost, "/v1/quotes", string(body))
		if w.Code != http.StatusBadRequest || decodeError(t, w).Code != "INVALID_QUOTE_INPUT" {
			t.Fatalf("expected 400 INVALID_QUOTE_INPUT, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("usecase input error", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, false)
		f.quotes.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).
			Return(entities.Quote{}, fmt.Errorf("%w: shipment_value must be positive", usecase.ErrInvalidQuoteInput))

		w := f.do(http.MethodPost, "/v1/quotes", validQuoteBody)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if got := decodeError(t, w); got.Code != "INVALID_QUOTE_INPUT" || got.Message == "" {
			t.Fatalf("unexpected body %+v", got)
		}
	})

	t.Run("created", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, false)
		f.quotes.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cmd usecase.CreateQuoteCommand) (entities.Quote, error) {
				if cmd.TransportationMode != entities.TransportSea || !cmd.StartDate.Equal(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)) {
					t.Fatalf("unexpected command %+v", cmd)
				}
				return entities.Quote{ID: "q-1", Status: entities.QuoteStatusSubmitted}, nil
			})

		w := f.do(http.MethodPost, "/v1/quotes", validQuoteBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "q-1" || body["status"] != "submitted" {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("created and processed", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, false)
		f.quotes.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(entities.Quote{ID: "q-1"}, nil)
		f.processing.EXPECT().ProcessQuote(gomock.Any(), "q-1", true).Return(usecase.ProcessResult{
			Quote:    entities.Quote{ID: "q-1", Status: entities.QuoteStatusApproved},
			Decision: entities.QuoteStatusApproved,
		}, nil)

		w := f.do(http.MethodPost, "/v1/quotes?process=true", validQuoteBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["decision"] != "approved" {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("invalid process flag", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, false)
		w := f.do(http.MethodPost, "/v1/quotes?process=maybe", validQuoteBody)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_GetAndList(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, false)
		f.quotes.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		w := f.do(http.MethodGet, "/v1/quotes/missing", "")
		if w.Code != http.StatusNotFound || decodeError(t, w).Code != "QUOTE_NOT_FOUND" {
			t.Fatalf("expected 404, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("found", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, false)
		f.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1"}, nil)

		w := f.do(http.MethodGet, "/v1/quotes/q-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("list invalid status", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, false)
		f.quotes.EXPECT().ListByStatus(gomock.Any(), "archived").Return(nil, usecase.ErrInvalidQuoteStatus)

		w := f.do(http.MethodGet, "/v1/quotes?status=archived", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("list store failure", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, false)
		f.quotes.EXPECT().ListByStatus(gomock.Any(), "under_review").
			Return(nil, fmt.Errorf("%w: list: %w", usecase.ErrPersistence, errors.New("timeout")))

		w := f.do(http.MethodGet, "/v1/quotes?status=under_review", "")
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})

	t.Run("list", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, false)
		f.quotes.EXPECT().ListByStatus(gomock.Any(), "under_review").
			Return([]entities.Quote{{ID: "q-1"}, {ID: "q-2"}}, nil)

		w := f.do(http.MethodGet, "/v1/quotes?status=under_review", "")
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if w.Code != http.StatusOK || len(body) != 2 {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})
}

func TestQuoteHandler_ProcessQuote(t *testing.T) {
	t.Run("defaults to immediate", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, false)
		f.processing.EXPECT().ProcessQuote(gomock.Any(), "q-1", true).Return(usecase.ProcessResult{
			Quote:    entities.Quote{ID: "q-1"},
			Decision: entities.QuoteStatusRejected,
			Message:  "Your quote could not be approved: Shipments to or from restricted countries cannot be insured",
		}, nil)

		w := f.do(http.MethodPost, "/v1/quotes/q-1/process", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("queued review", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, false)
		f.processing.EXPECT().ProcessQuote(gomock.Any(), "q-1", false).Return(usecase.ProcessResult{
			Quote:    entities.Quote{ID: "q-1"},
			Decision: entities.QuoteStatusUnderReview,
		}, nil)

		w := f.do(http.MethodPost, "/v1/quotes/q-1/process?immediate=false", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("missing quote", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, false)
		f.processing.EXPECT().ProcessQuote(gomock.Any(), "q-1", true).Return(usecase.ProcessResult{}, usecase.ErrQuoteNotFound)

		w := f.do(http.MethodPost, "/v1/quotes/q-1/process", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("async without enqueuer", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, false)
		w := f.do(http.MethodPost, "/v1/quotes/q-1/process?async=true", "")
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})

	t.Run("async enqueued", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, true)
		f.enqueuer.EXPECT().EnqueueProcessQuote(gomock.Any(), "q-1", false).Return("task-9", nil)

		w := f.do(http.MethodPost, "/v1/quotes/q-1/process?async=true&immediate=false", "")
		if w.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["task_id"] != "task-9" || body["status"] != "queued" {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("async enqueue failure", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, true)
		f.enqueuer.EXPECT().EnqueueProcessQuote(gomock.Any(), "q-1", true).Return("", errors.New("redis down"))

		w := f.do(http.MethodPost, "/v1/quotes/q-1/process?async=true", "")
		if w.Code != http.StatusServiceUnavailable || decodeError(t, w).Code != "ENQUEUE_FAILED" {
			t.Fatalf("expected 503 ENQUEUE_FAILED, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("invalid flag", func(t *testing.T) {
		f := newQuoteHandlerFixture(t, false)
		w := f.do(http.MethodPost, "/v1/quotes/q-1/process?immediate=perhaps", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestMapQuoteError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{usecase.ErrInvalidQuoteID, http.StatusBadRequest, "INVALID_REQUEST"},
		{usecase.ErrInvalidQuoteStatus, http.StatusBadRequest, "INVALID_REQUEST"},
		{usecase.ErrInvalidQuoteInput, http.StatusBadRequest, "INVALID_QUOTE_INPUT"},
		{usecase.ErrInvalidReviewDecision, http.StatusBadRequest, "INVALID_REVIEW_DECISION"},
		{usecase.ErrQuoteNotFound, http.StatusNotFound, "QUOTE_NOT_FOUND"},
		{usecase.ErrQuoteTerminal, http.StatusConflict, "QUOTE_TERMINAL"},
		{usecase.ErrPersistence, http.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		got := mapQuoteError(tc.err)
		if got.HTTPStatus != tc.status || got.Code != tc.code {
			t.Fatalf("%v: expected %d %s, got %d %s", tc.err, tc.status, tc.code, got.HTTPStatus, got.Code)
		}
	}
}
