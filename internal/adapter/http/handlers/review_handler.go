package handlers

import (
	"net/http"

	request "cargo_underwriting/internal/adapter/http/dto/request"
	response "cargo_underwriting/internal/adapter/http/dto/response"
	"cargo_underwriting/internal/usecase"
	"cargo_underwriting/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidReviewPayload = pkg.NewDomainErrorSimple("INVALID_REVIEW_INPUT", "Invalid review payload", http.StatusBadRequest)
)

// ReviewHandler exposes the review queue, underwriter overrides and the
// expiration sweep.
type ReviewHandler struct {
	reviews    usecase.IQuoteReviewUseCase
	expiration usecase.IQuoteExpirationUseCase
}

func NewReviewHandler(reviews usecase.IQuoteReviewUseCase, expiration usecase.IQuoteExpirationUseCase) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, expiration: expiration}
}

// ManualReview godoc
// @Summary      Override a quote decision
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "Quote ID"
// @Param        payload  body  request.ManualReviewRequest  true  "Decision"
// @Success      200  {object}  response.QuoteResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /quotes/{id}/review [post]
func (h *ReviewHandler) ManualReview(c *gin.Context) {
	var payload request.ManualReviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidReviewPayload.HTTPStatus, errInvalidReviewPayload.ToHTTPError())
		return
	}

	quote, err := h.reviews.ManualReview(c.Request.Context(), c.Param("id"), payload.ToCommand())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// ProcessPendingReviews godoc
// @Summary      Drain the review queue
// @Tags         reviews
// @Produce      json
// @Success      200  {object}  response.ReviewBatchResponse
// @Router       /reviews/process [post]
func (h *ReviewHandler) ProcessPendingReviews(c *gin.Context) {
	result, err := h.reviews.ProcessPendingReviews(c.Request.Context())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromReviewBatch(result))
}

// ExpireQuotes godoc
// @Summary      Expire stale submitted quotes
// @Tags         quotes
// @Produce      json
// @Success      200  {object}  response.ExpirationResponse
// @Router       /quotes/expire [post]
func (h *ReviewHandler) ExpireQuotes(c *gin.Context) {
	n, err := h.expiration.CheckExpiredQuotes(c.Request.Context())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.ExpirationResponse{Expired: n})
}
