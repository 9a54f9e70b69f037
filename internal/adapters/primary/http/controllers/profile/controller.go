package profile

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pjogani/vedics-api/internal/adapters/primary/http/controllers/identity"
	"github.com/pjogani/vedics-api/internal/domain"
	profilesUsecase "github.com/pjogani/vedics-api/internal/usecases/profiles"
)

type Controller struct {
	ProfileService *profilesUsecase.Service
	Log            *slog.Logger
}

func New(profileService *profilesUsecase.Service, log *slog.Logger) *Controller {
	return &Controller{
		ProfileService: profileService,
		Log:            log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/v1/profile")
	{
		group.GET("", c.getProfile)
		group.PUT("", c.updateBirthData)
		group.GET("/chart", c.getChart)
		group.GET("/reading-status", c.getReadingStatus)
	}
}

// UpdateBirthDataRequest запрос на обновление данных рождения.
// Отсутствующее поле означает "не менять".
type UpdateBirthDataRequest struct {
	DateOfBirth       *string `json:"date_of_birth"` // YYYY-MM-DD
	TimeOfBirth       *string `json:"time_of_birth"` // HH:MM
	PlaceOfBirth      *string `json:"place_of_birth"`
	PreferredLanguage *string `json:"preferred_language"`
}

// getProfile возвращает профиль пользователя, создавая пустой при первом обращении
func (c *Controller) getProfile(ctx *gin.Context) {
	userID, ok := identity.UserID(ctx)
	if !ok {
		return
	}

	profile, err := c.ProfileService.GetOrCreate(ctx.Request.Context(), userID)
	if err != nil {
		c.Log.Error("failed to get profile", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// updateBirthData обновляет данные рождения и пересчитывает карту
func (c *Controller) updateBirthData(ctx *gin.Context) {
	userID, ok := identity.UserID(ctx)
	if !ok {
		return
	}

	var req UpdateBirthDataRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Log.Warn("failed to bind birth data request", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	input, err := req.toBirthData()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := c.ProfileService.UpdateBirthData(ctx.Request.Context(), userID, input)
	if err != nil {
		c.Log.Error("failed to update birth data", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// getChart возвращает рассчитанную натальную карту
func (c *Controller) getChart(ctx *gin.Context) {
	userID, ok := identity.UserID(ctx)
	if !ok {
		return
	}

	chart, err := c.ProfileService.GetChart(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "birth chart not computed"})
			return
		}
		c.Log.Error("failed to get chart", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.Data(http.StatusOK, "application/json", chart)
}

// getReadingStatus возвращает статус фоновой генерации долгосрочных прогнозов
func (c *Controller) getReadingStatus(ctx *gin.Context) {
	userID, ok := identity.UserID(ctx)
	if !ok {
		return
	}

	status, err := c.ProfileService.ReadingStatus(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.Log.Error("failed to get reading status", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": status})
}

// toBirthData разбирает строковые поля запроса в доменный ввод
func (r UpdateBirthDataRequest) toBirthData() (domain.BirthData, error) {
	var input domain.BirthData

	if r.DateOfBirth != nil {
		date, err := time.Parse("2006-01-02", *r.DateOfBirth)
		if err != nil {
			return input, errors.New("date_of_birth must be YYYY-MM-DD")
		}
		input.DateOfBirth = &date
	}
	if r.TimeOfBirth != nil {
		t, err := time.Parse("15:04", *r.TimeOfBirth)
		if err != nil {
			return input, errors.New("time_of_birth must be HH:MM")
		}
		input.TimeOfBirth = &t
	}
	input.PlaceOfBirth = r.PlaceOfBirth
	input.PreferredLanguage = r.PreferredLanguage

	return input, nil
}
