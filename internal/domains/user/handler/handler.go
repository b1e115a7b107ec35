package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookreview-backend/internal/domains/user/model"
	"bookreview-backend/internal/domains/user/service"
	"bookreview-backend/internal/shared/middleware"
	"bookreview-backend/internal/shared/response"
	"bookreview-backend/pkg/logger"
)

// UserHandler handles HTTP requests for the user domain.
// Stateless - only holds dependencies.
type UserHandler struct {
	service service.ServiceInterface
}

func NewUserHandler(service service.ServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register handles POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/users/"+resp.User.ID.String())
	response.Success(c, http.StatusCreated, resp)
}

// Login handles POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========================================
// PROFILE ENDPOINTS
// ========================================

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user ID format")
		return
	}

	dto, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// UpdateUser handles PUT /users/:id (self or admin)
func (h *UserHandler) UpdateUser(c *gin.Context) {
	callerID, ok := middleware.AbortIfUnauthenticated(c)
	if !ok {
		return
	}
	callerRole, _ := middleware.RoleFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user ID format")
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	dto, err := h.service.UpdateProfile(c.Request.Context(), callerID, callerRole, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// ========================================
// ERROR MAPPING
// ========================================

// handleError maps domain errors to HTTP status codes.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
	case errors.Is(err, model.ErrEmailAlreadyExists):
		response.Conflict(c, model.ErrEmailAlreadyExists.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Unauthorized(c, model.ErrInvalidCredentials.Error())
	case errors.Is(err, model.ErrForbidden):
		response.Forbidden(c, model.ErrForbidden.Error())
	case errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, model.ErrUserNotFound.Error())
	default:
		// Detail stays in operator logs, not in the client response.
		logger.Error("user handler error", err)
		response.InternalServerError(c, "something went wrong")
	}
}
