package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	rbacapp "vantage/internal/application/rbac"
	"vantage/internal/domain/rbac"
	"vantage/internal/shared/logger"
	"vantage/internal/shared/utils"
)

type PermissionHandler struct {
	rbacService *rbacapp.Service
	logger      logger.Interface
}

func NewPermissionHandler(rbacService *rbacapp.Service, logger logger.Interface) *PermissionHandler {
	return &PermissionHandler{
		rbacService: rbacService,
		logger:      logger,
	}
}

type PermissionResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Module      string    `json:"module"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type PermissionListResponse struct {
	Permissions []PermissionResponse `json:"permissions"`
	Total       int64                `json:"total"`
}

func toPermissionResponse(permission *rbac.Permission) PermissionResponse {
	return PermissionResponse{
		ID:          permission.ID(),
		Name:        permission.Name(),
		Module:      permission.Module(),
		Action:      permission.Action(),
		Description: permission.Description(),
		IsActive:    permission.IsActive(),
		CreatedAt:   permission.CreatedAt(),
	}
}

func (h *PermissionHandler) Create(c *gin.Context) {
	var req rbacapp.CreatePermissionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	permission, err := h.rbacService.CreatePermission(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toPermissionResponse(permission), "permission created successfully")
}

func (h *PermissionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	permission, err := h.rbacService.GetPermission(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toPermissionResponse(permission))
}

func (h *PermissionHandler) List(c *gin.Context) {
	filter := rbac.PermissionFilter{
		Module:   c.Query("module"),
		Action:   c.Query("action"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 50),
	}

	permissions, total, err := h.rbacService.ListPermissions(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	responses := make([]PermissionResponse, 0, len(permissions))
	for _, permission := range permissions {
		responses = append(responses, toPermissionResponse(permission))
	}

	utils.SuccessResponse(c, http.StatusOK, "", PermissionListResponse{Permissions: responses, Total: total})
}

func (h *PermissionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req rbacapp.UpdatePermissionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	permission, err := h.rbacService.UpdatePermission(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "permission updated successfully", toPermissionResponse(permission))
}

func (h *PermissionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.rbacService.DeletePermission(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
