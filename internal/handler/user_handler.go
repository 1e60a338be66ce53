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

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}

	users := router.Group("/api/users")
	{
		users.POST("", middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin, model.RoleContractor), h.CreateUser)
		users.GET("", middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin), h.ListUsers)
		users.GET("/me", middleware.RequireRole(
			model.RoleSuperAdmin, model.RoleAdmin, model.RoleContractor,
			model.RoleQualityManager, model.RoleFinancialOfficer, model.RoleWorker,
		), h.Me)
		users.GET("/workers", middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin, model.RoleContractor), h.ListWorkers)
	}
}

// @Summary      Login
// @Description  Authenticate by mobile and password; sets an HttpOnly access token cookie
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response
// @Router       /api/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req service.LoginUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	token, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	}

	middleware.SetTokenCookie(c, token.Token)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, token))
}

func (h *UserHandler) Logout(c *gin.Context) {
	middleware.ClearTokenCookie(c)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "logged out"}))
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		status := httpStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, user))
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	params := pagination.Parse(c)

	users, total, err := h.userService.ListUsers(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"data":   users,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	})
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// ListWorkers returns the workers registered by a contractor. Admins may
// pass ?contractor_id=, contractors always see their own crew.
func (h *UserHandler) ListWorkers(c *gin.Context) {
	contractorID := c.Query("contractor_id")
	role, _ := c.Get("userRole")
	if roleStr, _ := role.(string); roleStr == model.RoleContractor || contractorID == "" {
		contractorID = currentUserID(c)
	}

	workers, err := h.userService.ListWorkers(c.Request.Context(), contractorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, workers))
}
