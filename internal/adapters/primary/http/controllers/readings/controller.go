package readings

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pjogani/vedics-api/internal/adapters/primary/http/controllers/identity"
	"github.com/pjogani/vedics-api/internal/domain"
	kafkaPorts "github.com/pjogani/vedics-api/internal/ports/kafka"
	profilesUsecase "github.com/pjogani/vedics-api/internal/usecases/profiles"
	readingsUsecase "github.com/pjogani/vedics-api/internal/usecases/readings"
)

type Controller struct {
	ReadingsService *readingsUsecase.Service
	ProfileService  *profilesUsecase.Service
	Dispatcher      kafkaPorts.IDispatcher
	Log             *slog.Logger
}

func New(
	readingsService *readingsUsecase.Service,
	profileService *profilesUsecase.Service,
	dispatcher kafkaPorts.IDispatcher,
	log *slog.Logger,
) *Controller {
	return &Controller{
		ReadingsService: readingsService,
		ProfileService:  profileService,
		Dispatcher:      dispatcher,
		Log:             log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/v1/readings")
	{
		group.GET("/daily", c.getDaily)
		group.GET("", c.listLongTerm)
		group.POST("/:type/regenerate", c.regenerate)
	}
}

// getDaily возвращает прогноз на сегодня, генерируя его при необходимости
func (c *Controller) getDaily(ctx *gin.Context) {
	userID, ok := identity.UserID(ctx)
	if !ok {
		return
	}

	reading, err := c.ReadingsService.TodayReading(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.Log.Error("failed to get daily reading", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, reading)
}

// listLongTerm возвращает живые долгосрочные прогнозы. Если пачка числится
// завершённой, но каких-то типов не хватает, отправляет задание на догенерацию.
func (c *Controller) listLongTerm(ctx *gin.Context) {
	userID, ok := identity.UserID(ctx)
	if !ok {
		return
	}

	readings, err := c.ReadingsService.ListLongTerm(ctx.Request.Context(), userID)
	if err != nil {
		c.Log.Error("failed to list readings", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	status, err := c.ProfileService.ReadingStatus(ctx.Request.Context(), userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		c.Log.Error("failed to get reading status", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if status == domain.ReadingStatusCompleted {
		c.dispatchMissingIfAny(ctx, userID)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":   status,
		"readings": readings,
	})
}

// RegenerateResponse ответ на запрос перегенерации
type RegenerateResponse struct {
	Accepted    bool   `json:"accepted"`
	ReadingType string `json:"reading_type"`
}

// regenerate ставит задание на перегенерацию одного прогноза
func (c *Controller) regenerate(ctx *gin.Context) {
	userID, ok := identity.UserID(ctx)
	if !ok {
		return
	}

	readingType := domain.ReadingType(ctx.Param("type"))
	if !readingType.IsValid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown reading type"})
		return
	}

	if c.Dispatcher == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "background generation is not available"})
		return
	}

	if err := c.Dispatcher.DispatchRegenerate(ctx.Request.Context(), userID, readingType); err != nil {
		c.Log.Error("failed to dispatch regenerate job", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusAccepted, RegenerateResponse{
		Accepted:    true,
		ReadingType: string(readingType),
	})
}

// dispatchMissingIfAny отправляет задание на недостающие типы, не ломая ответ
// при ошибке диспетчеризации
func (c *Controller) dispatchMissingIfAny(ctx *gin.Context, userID uuid.UUID) {
	if c.Dispatcher == nil {
		return
	}

	missing, err := c.ReadingsService.MissingLongTermTypes(ctx.Request.Context(), userID)
	if err != nil {
		c.Log.Warn("failed to check missing reading types", "error", err, "user_id", userID)
		return
	}
	if len(missing) == 0 {
		return
	}

	c.Log.Info("missing readings detected, dispatching generation job",
		"user_id", userID,
		"missing", len(missing),
	)
	if err := c.Dispatcher.DispatchMissingReadings(ctx.Request.Context(), userID); err != nil {
		c.Log.Warn("failed to dispatch missing readings job", "error", err, "user_id", userID)
	}
}
