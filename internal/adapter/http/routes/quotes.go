package routes

import (
	"cargo_underwriting/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes  = "/quotes"
	PathReviews = "/reviews"
)

func addQuoteRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler, reviewHandler *handlers.ReviewHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("", quoteHandler.ListQuotes)
		quotes.POST("/expire", reviewHandler.ExpireQuotes)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.POST("/:id/process", quoteHandler.ProcessQuote)
		quotes.POST("/:id/review", reviewHandler.ManualReview)
	}

	reviews := rg.Group(PathReviews)
	{
		reviews.POST("/process", reviewHandler.ProcessPendingReviews)
	}
}
