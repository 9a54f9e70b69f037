package chat

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pjogani/vedics-api/internal/adapters/primary/http/controllers/identity"
	"github.com/pjogani/vedics-api/internal/domain"
	assistantUsecase "github.com/pjogani/vedics-api/internal/usecases/assistant"
)

type Controller struct {
	AssistantService *assistantUsecase.Service
	Log              *slog.Logger
}

func New(assistantService *assistantUsecase.Service, log *slog.Logger) *Controller {
	return &Controller{
		AssistantService: assistantService,
		Log:              log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/v1/chat")
	{
		group.POST("", c.sendMessage)
		group.GET("/messages", c.listMessages)
		group.POST("/reset", c.reset)
	}
}

// SendMessageRequest реплика пользователя в рамках сессии
type SendMessageRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// sendMessage передаёт сообщение ассистенту и возвращает его ответ
func (c *Controller) sendMessage(ctx *gin.Context) {
	userID, ok := identity.UserID(ctx)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Log.Warn("failed to bind chat request", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "session_id and message are required"})
		return
	}

	result, err := c.AssistantService.Chat(ctx.Request.Context(), userID, req.SessionID, req.Message)
	if err != nil {
		c.Log.Error("failed to process chat message", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// listMessages возвращает переписку активного диалога сессии
func (c *Controller) listMessages(ctx *gin.Context) {
	userID, ok := identity.UserID(ctx)
	if !ok {
		return
	}

	sessionID := ctx.Query("session_id")
	if sessionID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "session_id query parameter is required"})
		return
	}

	messages, err := c.AssistantService.Messages(ctx.Request.Context(), userID, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ctx.JSON(http.StatusOK, gin.H{"messages": []domain.ConversationMessage{}})
			return
		}
		c.Log.Error("failed to list chat messages", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"messages": messages})
}

// reset закрывает активные диалоги, следующая реплика начнёт новый тред
func (c *Controller) reset(ctx *gin.Context) {
	userID, ok := identity.UserID(ctx)
	if !ok {
		return
	}

	if err := c.AssistantService.Reset(ctx.Request.Context(), userID); err != nil {
		c.Log.Error("failed to reset conversations", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
