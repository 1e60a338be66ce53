package handler

import (
	"net/http"

	"heritageportal/internal/middleware"
	"heritageportal/internal/model"
	"heritageportal/internal/service"
	"heritageportal/pkg/response"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(
		model.RoleSuperAdmin, model.RoleAdmin, model.RoleContractor,
		model.RoleQualityManager, model.RoleFinancialOfficer, model.RoleWorker,
	)

	analytics := router.Group("/api/analytics")
	{
		analytics.GET("/projects/:id", anyRole, h.ProjectAnalytics)
		analytics.GET("/contractors/:id", anyRole, h.ContractorStats)
		analytics.GET("/workers/:id", anyRole, h.WorkerStats)
		analytics.GET("/monuments/:id", anyRole, h.MonumentAnalytics)
	}
}

// @Summary      Project Analytics
// @Description  Budget utilization, progress percentage, overdue flags and milestone tallies for one project
// @Tags         Analytics
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Security     BearerAuth
// @Router       /api/analytics/projects/{id} [get]
func (h *AnalyticsHandler) ProjectAnalytics(c *gin.Context) {
	stats, err := h.analyticsService.ProjectAnalytics(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

func (h *AnalyticsHandler) ContractorStats(c *gin.Context) {
	stats, err := h.analyticsService.ContractorStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

func (h *AnalyticsHandler) WorkerStats(c *gin.Context) {
	stats, err := h.analyticsService.WorkerStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

func (h *AnalyticsHandler) MonumentAnalytics(c *gin.Context) {
	stats, err := h.analyticsService.MonumentAnalytics(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
