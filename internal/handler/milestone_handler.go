package handler

import (
	"net/http"

	"heritageportal/internal/middleware"
	"heritageportal/internal/model"
	"heritageportal/internal/service"
	"heritageportal/pkg/response"

	"github.com/gin-gonic/gin"
)

type MilestoneHandler struct {
	milestoneService service.MilestoneService
}

func NewMilestoneHandler(milestoneService service.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestoneService: milestoneService}
}

func (h *MilestoneHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(
		model.RoleSuperAdmin, model.RoleAdmin, model.RoleContractor,
		model.RoleQualityManager, model.RoleFinancialOfficer, model.RoleWorker,
	)

	milestones := router.Group("/api/projects/:id/milestones")
	{
		milestones.POST("", middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin, model.RoleContractor), h.CreateMilestone)
		milestones.GET("", anyRole, h.ListMilestones)
		milestones.GET("/:milestoneId", anyRole, h.GetMilestone)
		milestones.PATCH("/:milestoneId", anyRole, h.UpdateMilestone)
		milestones.GET("/:milestoneId/history", anyRole, h.GetEditHistory)

		milestones.PUT("/:milestoneId/start", anyRole, h.StartMilestone)
		milestones.PUT("/:milestoneId/complete", middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin), h.CompleteMilestone)

		// Inspection / approval sub-protocol
		milestones.POST("/:milestoneId/inspections", middleware.RequireRole(model.RoleQualityManager), h.AddInspection)
		milestones.PUT("/:milestoneId/forward", middleware.RequireRole(model.RoleQualityManager), h.ForwardToAdmin)
		milestones.PUT("/:milestoneId/approve", middleware.RequireRole(model.RoleAdmin), h.ApproveReview)
		milestones.POST("/:milestoneId/bill", middleware.RequireRole(model.RoleFinancialOfficer), h.SubmitBill)
	}
}

func (h *MilestoneHandler) CreateMilestone(c *gin.Context) {
	var req service.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	milestone, err := h.milestoneService.CreateMilestone(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, milestone))
}

func (h *MilestoneHandler) ListMilestones(c *gin.Context) {
	milestones, err := h.milestoneService.ListMilestones(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, milestones))
}

func (h *MilestoneHandler) GetMilestone(c *gin.Context) {
	milestone, err := h.milestoneService.GetMilestone(c.Request.Context(), c.Param("id"), c.Param("milestoneId"))
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, milestone))
}

func (h *MilestoneHandler) UpdateMilestone(c *gin.Context) {
	var req service.UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	milestone, err := h.milestoneService.UpdateMilestone(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("milestoneId"), req)
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, milestone))
}

func (h *MilestoneHandler) StartMilestone(c *gin.Context) {
	milestone, err := h.milestoneService.StartMilestone(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("milestoneId"))
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, milestone))
}

func (h *MilestoneHandler) CompleteMilestone(c *gin.Context) {
	milestone, err := h.milestoneService.CompleteMilestone(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("milestoneId"))
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, milestone))
}

// @Summary      Add Inspection Record
// @Description  Append a quality-manager inspection to a milestone (before forwarding)
// @Tags         Milestones
// @Accept       json
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      403 {object} response.Response
// @Failure      409 {object} response.Response
// @Security     BearerAuth
// @Router       /api/projects/{id}/milestones/{milestoneId}/inspections [post]
func (h *MilestoneHandler) AddInspection(c *gin.Context) {
	var req service.AddInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	milestone, err := h.milestoneService.AddInspection(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("milestoneId"), req)
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, milestone))
}

func (h *MilestoneHandler) ForwardToAdmin(c *gin.Context) {
	milestone, err := h.milestoneService.ForwardToAdmin(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("milestoneId"))
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, milestone))
}

func (h *MilestoneHandler) ApproveReview(c *gin.Context) {
	milestone, err := h.milestoneService.ApproveReview(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("milestoneId"))
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, milestone))
}

func (h *MilestoneHandler) SubmitBill(c *gin.Context) {
	var req service.SubmitBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	milestone, err := h.milestoneService.SubmitBill(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("milestoneId"), req)
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, milestone))
}

func (h *MilestoneHandler) GetEditHistory(c *gin.Context) {
	history, err := h.milestoneService.GetEditHistory(c.Request.Context(), c.Param("id"), c.Param("milestoneId"))
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, history))
}
