package handler

import (
	"net/http"

	"heritageportal/internal/middleware"
	"heritageportal/internal/model"
	"heritageportal/internal/service"
	"heritageportal/internal/workflow"
	"heritageportal/pkg/pagination"
	"heritageportal/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(
		model.RoleSuperAdmin, model.RoleAdmin, model.RoleContractor,
		model.RoleQualityManager, model.RoleFinancialOfficer, model.RoleWorker,
	)

	projects := router.Group("/api/projects")
	{
		projects.POST("", middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin), h.CreateProject)
		projects.GET("", anyRole, h.ListProjects)
		projects.GET("/:id", anyRole, h.GetProject)
		projects.PATCH("/:id", middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin), h.UpdateProject)
		projects.GET("/:id/history", anyRole, h.GetEditHistory)

		// Lifecycle transitions; fine-grained role policy is enforced by
		// the workflow permission table.
		projects.PUT("/:id/start", anyRole, h.transition(workflow.EventStart))
		projects.PUT("/:id/pause", anyRole, h.transition(workflow.EventPause))
		projects.PUT("/:id/resume", anyRole, h.transition(workflow.EventResume))
		projects.PUT("/:id/complete", anyRole, h.transition(workflow.EventComplete))
		projects.PUT("/:id/progress", anyRole, h.SetProgress)
	}
}

// @Summary      Create Project
// @Description  Create a restoration project for a monument, assigned to a contractor
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, project))
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params := pagination.Parse(c)

	if contractorID := c.Query("contractor_id"); contractorID != "" {
		projects, err := h.projectService.ListContractorProjects(c.Request.Context(), contractorID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": http.StatusOK,
			"data":   projects,
			"total":  len(projects),
		})
		return
	}

	projects, total, err := h.projectService.ListProjects(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"data":   projects,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	})
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectService.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, project))
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req service.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, project))
}

// transition builds a handler applying one lifecycle event
func (h *ProjectHandler) transition(event workflow.Event) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, err := h.projectService.Transition(c.Request.Context(), currentUserID(c), c.Param("id"), event)
		if err != nil {
			status := httpStatus(err)
			c.JSON(status, response.Error(status, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, project))
	}
}

func (h *ProjectHandler) SetProgress(c *gin.Context) {
	var req service.SetProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	project, err := h.projectService.SetProgress(c.Request.Context(), currentUserID(c), c.Param("id"), *req.Progress)
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, project))
}

func (h *ProjectHandler) GetEditHistory(c *gin.Context) {
	history, err := h.projectService.GetEditHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, history))
}

// currentUserID pulls the authenticated user id set by the auth middleware
func currentUserID(c *gin.Context) string {
	userID, _ := c.Get("userID")
	id, _ := userID.(string)
	return id
}
