package handler

import (
	"net/http"

	"heritageportal/internal/middleware"
	"heritageportal/internal/model"
	"heritageportal/internal/service"
	"heritageportal/pkg/pagination"
	"heritageportal/pkg/response"

	"github.com/gin-gonic/gin"
)

type MonumentHandler struct {
	monumentService service.MonumentService
}

func NewMonumentHandler(monumentService service.MonumentService) *MonumentHandler {
	return &MonumentHandler{monumentService: monumentService}
}

func (h *MonumentHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(
		model.RoleSuperAdmin, model.RoleAdmin, model.RoleContractor,
		model.RoleQualityManager, model.RoleFinancialOfficer, model.RoleWorker,
	)

	monuments := router.Group("/api/monuments")
	{
		monuments.POST("", middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin), h.CreateMonument)
		monuments.GET("", anyRole, h.ListMonuments)
		monuments.GET("/:id", anyRole, h.GetMonument)
		monuments.PATCH("/:id", middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin), h.UpdateMonument)
	}
}

func (h *MonumentHandler) CreateMonument(c *gin.Context) {
	var req service.CreateMonumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	monument, err := h.monumentService.CreateMonument(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, monument))
}

func (h *MonumentHandler) ListMonuments(c *gin.Context) {
	params := pagination.Parse(c)

	monuments, total, err := h.monumentService.ListMonuments(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"data":   monuments,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	})
}

func (h *MonumentHandler) GetMonument(c *gin.Context) {
	monument, err := h.monumentService.GetMonument(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, monument))
}

func (h *MonumentHandler) UpdateMonument(c *gin.Context) {
	var req service.UpdateMonumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	monument, err := h.monumentService.UpdateMonument(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, monument))
}
