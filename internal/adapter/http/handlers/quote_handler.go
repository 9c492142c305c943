package handlers

import (
	"errors"
	"net/http"
	"strconv"

	request "cargo_underwriting/internal/adapter/http/dto/request"
	response "cargo_underwriting/internal/adapter/http/dto/response"
	"cargo_underwriting/internal/usecase"
	"cargo_underwriting/internal/usecase/interfaces"
	"cargo_underwriting/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)
	errInvalidQueryParam   = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid query parameter", http.StatusBadRequest)
	errAsyncUnavailable    = pkg.NewDomainErrorSimple("ASYNC_PROCESSING_UNAVAILABLE", "Background processing is not configured", http.StatusServiceUnavailable)
)

// QuoteHandler serves quote intake, lookups and processing.
type QuoteHandler struct {
	quotes     usecase.IQuoteUseCase
	processing usecase.IQuoteProcessingUseCase
	enqueuer   interfaces.ITaskEnqueuer
}

// NewQuoteHandler builds the handler. enqueuer may be nil, in which case
// async processing answers 503.
func NewQuoteHandler(quotes usecase.IQuoteUseCase, processing usecase.IQuoteProcessingUseCase, enqueuer interfaces.ITaskEnqueuer) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, processing: processing, enqueuer: enqueuer}
}

// CreateQuote godoc
// @Summary      Submit a cargo quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        process  query  bool  false  "Process the quote right after intake"
// @Param        payload  body   request.CreateQuoteRequest  true  "Quote"
// @Success      201  {object}  response.QuoteResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}
	process, err := boolQuery(c, "process", false)
	if err != nil {
		c.JSON(errInvalidQueryParam.HTTPStatus, errInvalidQueryParam.ToHTTPError())
		return
	}

	cmd, err := payload.ToCommand()
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", err.Error(), http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	quote, err := h.quotes.CreateQuote(c.Request.Context(), cmd)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if !process {
		c.JSON(http.StatusCreated, response.FromQuote(quote))
		return
	}

	result, err := h.processing.ProcessQuote(c.Request.Context(), quote.ID, true)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromProcessResult(result))
}

// GetQuote godoc
// @Summary      Get a quote
// @Tags         quotes
// @Produce      json
// @Param        id   path  string  true  "Quote ID"
// @Success      200  {object}  response.QuoteResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.quotes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// ListQuotes godoc
// @Summary      List quotes by status
// @Tags         quotes
// @Produce      json
// @Param        status  query  string  true  "Quote status"
// @Success      200  {array}   response.QuoteResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.quotes.ListByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

// ProcessQuote godoc
// @Summary      Run a quote through underwriting
// @Tags         quotes
// @Produce      json
// @Param        id         path   string  true   "Quote ID"
// @Param        immediate  query  bool    false  "Run the automatic review right away (default true)"
// @Param        async      query  bool    false  "Hand the work to the background worker"
// @Success      200  {object}  response.ProcessResponse
// @Success      202  {object}  response.EnqueuedResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quotes/{id}/process [post]
func (h *QuoteHandler) ProcessQuote(c *gin.Context) {
	immediate, err := boolQuery(c, "immediate", true)
	if err != nil {
		c.JSON(errInvalidQueryParam.HTTPStatus, errInvalidQueryParam.ToHTTPError())
		return
	}
	async, err := boolQuery(c, "async", false)
	if err != nil {
		c.JSON(errInvalidQueryParam.HTTPStatus, errInvalidQueryParam.ToHTTPError())
		return
	}
	quoteID := c.Param("id")

	if async {
		if h.enqueuer == nil {
			c.JSON(errAsyncUnavailable.HTTPStatus, errAsyncUnavailable.ToHTTPError())
			return
		}
		taskID, err := h.enqueuer.EnqueueProcessQuote(c.Request.Context(), quoteID, immediate)
		if err != nil {
			appErr := pkg.NewDomainError("ENQUEUE_FAILED", "Could not queue quote processing", err, http.StatusServiceUnavailable)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.JSON(http.StatusAccepted, response.EnqueuedResponse{QuoteID: quoteID, TaskID: taskID, Status: "queued"})
		return
	}

	result, err := h.processing.ProcessQuote(c.Request.Context(), quoteID, immediate)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromProcessResult(result))
}

func boolQuery(c *gin.Context, key string, def bool) (bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	return strconv.ParseBool(raw)
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidQuoteStatus):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidQuoteInput):
		return pkg.NewDomainError("INVALID_QUOTE_INPUT", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidReviewDecision):
		return pkg.NewDomainError("INVALID_REVIEW_DECISION", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteTerminal):
		return pkg.NewDomainErrorSimple("QUOTE_TERMINAL", "Quote is already rejected or expired", http.StatusConflict)
	case errors.Is(err, usecase.ErrPersistence):
		return pkg.NewDomainError("STORE_UNAVAILABLE", "Quote store is unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
