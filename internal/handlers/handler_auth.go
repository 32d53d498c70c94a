package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/banking_app/internal/core/ports/services"
	"github.com/SscSPs/banking_app/internal/dto"
	"github.com/SscSPs/banking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService portssvc.UserSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade) *AuthHandler {
	return &AuthHandler{userService: us}
}

// RegisterPublicAuthRoutes sets up sign-up and sign-in. Both are rate limited per client IP.
func RegisterPublicAuthRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, limit gin.HandlerFunc) {
	h := NewAuthHandler(userService)

	auth := rg.Group("/auth", limit)
	{
		auth.POST("/signUp", h.SignUp)
		auth.POST("/signIn", h.SignIn)
	}
}

// RegisterAccountSettingsRoutes sets up the credential changes that need a logged-in user.
func RegisterAccountSettingsRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := NewAuthHandler(userService)

	auth := rg.Group("/auth")
	{
		auth.POST("/changePassword", h.ChangePassword)
		auth.POST("/changeEmail", h.ChangeEmail)
	}
}

// SignUp godoc
// @Summary Register new user
// @Description Creates the user at the identity provider and stores the local record.
// @Tags auth
// @Accept json
// @Produce json
// @Param signUp body dto.SignUpRequest true "Email and password"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "Identity provider failure"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/signUp [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SignUp", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.SignUp(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// SignIn godoc
// @Summary User sign in
// @Description Checks the credentials with the identity provider and returns an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param signIn body dto.SignInRequest true "Email and password"
// @Success 200 {object} dto.SignInResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "Identity provider failure"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/signIn [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SignIn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.userService.SignIn(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to sign in")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ChangePassword godoc
// @Summary Change password
// @Description Changes the password held by the identity provider.
// @Tags auth
// @Accept json
// @Produce json
// @Param changePassword body dto.ChangePasswordRequest true "Identity token and new password"
// @Success 200 {object} dto.EditUserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "Identity provider failure"
// @Security BearerAuth
// @Router /auth/changePassword [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangePassword", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.userService.ChangePassword(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to change password")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ChangeEmail godoc
// @Summary Change email
// @Description Changes the stored email, then the email held by the identity provider.
// @Tags auth
// @Accept json
// @Produce json
// @Param changeEmail body dto.ChangeEmailRequest true "Identity token and new email"
// @Success 200 {object} dto.EditUserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse "Error while changing user email"
// @Failure 502 {object} dto.ErrorResponse "Identity provider failure"
// @Security BearerAuth
// @Router /auth/changeEmail [post]
func (h *AuthHandler) ChangeEmail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangeEmail", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	ownerID, ok := resolveOwner(c, h.userService)
	if !ok {
		return
	}

	resp, err := h.userService.ChangeEmail(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err, "Error while changing user email")
		return
	}

	c.JSON(http.StatusOK, resp)
}
