package routes

import (
	"github.com/gin-gonic/gin"

	"summit_contracting/internal/adapter/http/handlers"
)

const (
	PathEditor   = "/editor"
	PathQuotes   = "/quotes"
	PathDeposits = "/deposits"
)

func addProposalRoutes(rg *gin.RouterGroup, sessionHandler *handlers.SessionHandler, quoteHandler *handlers.QuoteHandler, depositHandler *handlers.DepositHandler) {
	editor := rg.Group(PathEditor)
	{
		editor.GET("/unsaved", sessionHandler.AnyUnsaved)

		editor.POST("/sessions", sessionHandler.OpenSession)
		editor.GET("/sessions/:session_id", sessionHandler.GetSession)
		editor.PUT("/sessions/:session_id/document", sessionHandler.ApplyEdit)
		editor.POST("/sessions/:session_id/clear", sessionHandler.ClearDocument)
		editor.POST("/sessions/:session_id/save", sessionHandler.SaveNow)
		editor.POST("/sessions/:session_id/navigation", sessionHandler.ReportIntent)
		editor.POST("/sessions/:session_id/navigation/decision", sessionHandler.ResolveIntent)
		editor.GET("/sessions/:session_id/export", sessionHandler.ExportPDF)
		editor.DELETE("/sessions/:session_id", sessionHandler.CloseSession)
	}

	quotes := rg.Group(PathQuotes)
	{
		quotes.GET("/:quote_id", quoteHandler.GetQuote)
		quotes.PATCH("/:quote_id/send", quoteHandler.SendQuote)
		quotes.PATCH("/:quote_id/accept", quoteHandler.AcceptQuote)
		quotes.PATCH("/:quote_id/reject", quoteHandler.RejectQuote)
	}

	deposits := rg.Group(PathDeposits)
	{
		deposits.POST("/:quote_id", depositHandler.CreateDepositByQuoteID)
		deposits.GET("/:quote_id", depositHandler.GetDepositByQuoteID)
	}
}
