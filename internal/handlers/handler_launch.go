package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/contai-app/contai_backend/internal/apperrors"
	portssvc "github.com/contai-app/contai_backend/internal/core/ports/services"
	"github.com/contai-app/contai_backend/internal/dto"
	"github.com/contai-app/contai_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// launchHandler handles HTTP requests related to launches.
type launchHandler struct {
	launchService portssvc.LaunchSvcFacade
}

// newLaunchHandler creates a new launchHandler.
func newLaunchHandler(ls portssvc.LaunchSvcFacade) *launchHandler {
	return &launchHandler{
		launchService: ls,
	}
}

// registerLaunchRoutes registers all launch-related routes.
func registerLaunchRoutes(rg *gin.RouterGroup, launchService portssvc.LaunchSvcFacade) {
	h := newLaunchHandler(launchService)

	launches := rg.Group("/launches")
	{
		launches.POST("", h.createLaunch)
		launches.GET("", h.listLaunches)
		launches.GET("/by-month", h.listLaunchesByMonth)
		launches.GET("/summary", h.getMonthSummary)
		launches.GET("/statement.csv", h.exportMonthStatement)
		launches.GET("/:id", h.getLaunch)
		launches.PUT("/:id", h.updateLaunch)
		launches.DELETE("/:id", h.deleteLaunch)
	}
}

// parseLaunchID parses the :id path parameter. A non-numeric id is a 400,
// not a 404: the request shape itself is invalid.
func parseLaunchID(c *gin.Context) (int64, bool) {
	launchID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid launch ID: must be a number"})
		return 0, false
	}
	return launchID, true
}

func (h *launchHandler) createLaunch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLaunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create launch request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required: description, amount, date, type"})
		return
	}

	createdLaunch, err := h.launchService.CreateLaunch(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Launch failed validation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create launch in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create launch"})
		return
	}

	logger.Info("Launch created successfully", slog.Int64("launch_id", createdLaunch.ID))
	c.JSON(http.StatusCreated, dto.ToLaunchResponse(createdLaunch))
}

func (h *launchHandler) listLaunches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	launches, err := h.launchService.ListLaunches(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list launches from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list launches"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListLaunchResponse(launches))
}

func (h *launchHandler) getLaunch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	launchID, ok := parseLaunchID(c)
	if !ok {
		return
	}

	launch, err := h.launchService.GetLaunchByID(c.Request.Context(), launchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Launch not found", slog.Int64("launch_id", launchID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Launch not found"})
			return
		}
		logger.Error("Failed to get launch from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve launch"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLaunchResponse(launch))
}

func (h *launchHandler) updateLaunch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	launchID, ok := parseLaunchID(c)
	if !ok {
		return
	}

	var req dto.UpdateLaunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update launch request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updatedLaunch, err := h.launchService.UpdateLaunch(c.Request.Context(), launchID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Launch not found for update", slog.Int64("launch_id", launchID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Launch not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Launch update failed validation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update launch in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update launch"})
		}
		return
	}

	logger.Info("Launch updated successfully", slog.Int64("launch_id", launchID))
	c.JSON(http.StatusOK, dto.ToLaunchResponse(updatedLaunch))
}

func (h *launchHandler) deleteLaunch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	launchID, ok := parseLaunchID(c)
	if !ok {
		return
	}

	err := h.launchService.DeleteLaunch(c.Request.Context(), launchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Launch not found for deletion", slog.Int64("launch_id", launchID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Launch not found"})
			return
		}
		logger.Error("Failed to delete launch in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete launch"})
		return
	}

	logger.Info("Launch deleted successfully", slog.Int64("launch_id", launchID))
	c.Status(http.StatusNoContent)
}

func (h *launchHandler) listLaunchesByMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.MonthParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for by-month request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Year and month are required"})
		return
	}

	launches, err := h.launchService.ListLaunchesByMonth(c.Request.Context(), params.Year, params.Month)
	if err != nil {
		logger.Error("Failed to list launches by month from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list launches"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListLaunchResponse(launches))
}

func (h *launchHandler) getMonthSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.MonthParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for summary request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Year and month are required"})
		return
	}

	summary, err := h.launchService.GetMonthSummary(c.Request.Context(), params.Year, params.Month)
	if err != nil {
		logger.Error("Failed to get month summary from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthSummaryResponse(summary))
}
