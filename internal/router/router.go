package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pil1/IngridProduction-sub001/internal/config"
	"github.com/pil1/IngridProduction-sub001/internal/handler"
	"github.com/pil1/IngridProduction-sub001/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	documentH *handler.DocumentHandler,
	suggestionH *handler.SuggestionHandler,
	cardH *handler.CardHandler,
	conversationH *handler.ConversationHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health check
	r.GET("/health", healthH.Health)

	v1 := r.Group("/api/v1")

	// All API routes require a valid JWT carrying the capability set.
	protected := v1.Group("")
	protected.Use(middleware.Security(cfg.JWT.Secret, cfg.JWT.Issuer))

	// Document pipeline
	documents := protected.Group("/documents")
	documents.POST("", documentH.Process)

	// Suggestion review workflow
	suggestions := protected.Group("/suggestions")
	suggestions.GET("", suggestionH.List)
	suggestions.GET("/export", suggestionH.Export)
	suggestions.POST("/:id/approve", suggestionH.Approve)
	suggestions.POST("/:id/reject", suggestionH.Reject)
	suggestions.POST("/:id/merge", suggestionH.Merge)

	// Action cards
	cards := protected.Group("/cards")
	cards.GET("", cardH.List)
	cards.GET("/:id", cardH.Get)
	cards.POST("/:id/approve", cardH.Approve)
	cards.POST("/:id/reject", cardH.Reject)

	// Conversational front end
	conversations := protected.Group("/conversations")
	conversations.POST("", conversationH.Start)
	conversations.GET("/:id", conversationH.Get)
	conversations.POST("/:id/messages", conversationH.Message)
	conversations.POST("/:id/close", conversationH.Close)

	return r
}
