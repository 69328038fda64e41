package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	rbacapp "vantage/internal/application/rbac"
	"vantage/internal/domain/rbac"
	"vantage/internal/shared/logger"
	"vantage/internal/shared/utils"
)

type RoleHandler struct {
	rbacService *rbacapp.Service
	logger      logger.Interface
}

func NewRoleHandler(rbacService *rbacapp.Service, logger logger.Interface) *RoleHandler {
	return &RoleHandler{
		rbacService: rbacService,
		logger:      logger,
	}
}

type RoleResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	Description   string `json:"description"`
	IsSuperAdmin  bool   `json:"is_super_admin"`
	IsActive      bool   `json:"is_active"`
	PermissionIDs []uint `json:"permission_ids"`
}

type RoleListResponse struct {
	Roles []RoleResponse `json:"roles"`
	Total int64          `json:"total"`
}

type AssignPermissionsRequest struct {
	PermissionIDs []uint `json:"permission_ids" binding:"required"`
}

func toRoleResponse(role *rbac.Role) RoleResponse {
	return RoleResponse{
		ID:            role.ID(),
		Name:          role.Name(),
		DisplayName:   role.DisplayName(),
		Description:   role.Description(),
		IsSuperAdmin:  role.IsSuperAdmin(),
		IsActive:      role.IsActive(),
		PermissionIDs: role.PermissionIDs(),
	}
}

func (h *RoleHandler) Create(c *gin.Context) {
	var req rbacapp.CreateRoleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	role, err := h.rbacService.CreateRole(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toRoleResponse(role), "role created successfully")
}

func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	role, err := h.rbacService.GetRole(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toRoleResponse(role))
}

func (h *RoleHandler) List(c *gin.Context) {
	filter := rbac.RoleFilter{
		Name:     c.Query("name"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}

	roles, total, err := h.rbacService.ListRoles(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	responses := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		responses = append(responses, toRoleResponse(role))
	}

	utils.SuccessResponse(c, http.StatusOK, "", RoleListResponse{Roles: responses, Total: total})
}

func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req rbacapp.UpdateRoleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	role, err := h.rbacService.UpdateRole(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "role updated successfully", toRoleResponse(role))
}

func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.rbacService.DeleteRole(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// AssignPermissions replaces the role's whole permission set.
func (h *RoleHandler) AssignPermissions(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req AssignPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	role, err := h.rbacService.AssignPermissions(c.Request.Context(), id, req.PermissionIDs)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "permissions assigned successfully", toRoleResponse(role))
}

func (h *RoleHandler) GetPermissions(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	permissions, err := h.rbacService.GetRolePermissions(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	responses := make([]PermissionResponse, 0, len(permissions))
	for _, permission := range permissions {
		responses = append(responses, toPermissionResponse(permission))
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}
