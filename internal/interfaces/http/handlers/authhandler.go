package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vantage/internal/application/auth"
	"vantage/internal/interfaces/http/middleware"
	"vantage/internal/shared/logger"
	"vantage/internal/shared/utils"
)

type AuthHandler struct {
	authService *auth.Service
	logger      logger.Interface
}

func NewAuthHandler(authService *auth.Service, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"`
	User      UserResponse `json:"user"`
}

// Login authenticates an email/password pair and returns a signed access
// token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", LoginResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
		User:      toUserResponse(result.User),
	})
}

// Me returns the authenticated caller's own account.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		// only reachable if the route is registered without the guard
		utils.ErrorResponse(c, http.StatusUnauthorized, "access token required")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toUserResponse(identity))
}
