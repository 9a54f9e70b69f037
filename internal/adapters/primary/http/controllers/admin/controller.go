package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pjogani/vedics-api/internal/ports/service"
)

type Controller struct {
	Geocoder service.IGeocoderService
	Log      *slog.Logger
}

func New(geocoder service.IGeocoderService, log *slog.Logger) *Controller {
	return &Controller{
		Geocoder: geocoder,
		Log:      log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	admin := router.Group("/admin")
	{
		admin.GET("/geocoder/requests", c.geocoderRequests)
	}
}

// geocoderRequests возвращает последние обращения к внешнему геокодеру
// из журнала запросов; limit по умолчанию 50
func (c *Controller) geocoderRequests(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}

	entries, err := c.Geocoder.RecentRequests(ctx.Request.Context(), limit)
	if err != nil {
		c.Log.Error("failed to list geocoder requests", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"requests": entries})
}
