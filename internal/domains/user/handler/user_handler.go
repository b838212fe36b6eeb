package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Amanisai/Emart/internal/domains/user/model"
	"github.com/Amanisai/Emart/internal/domains/user/service"
	"github.com/Amanisai/Emart/internal/shared/middleware"
	"github.com/Amanisai/Emart/internal/shared/response"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Signup handles POST /api/auth/signup
func (h *UserHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		h.mapUserError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Login handles POST /api/auth/login (shopper accounts)
func (h *UserHandler) Login(c *gin.Context) {
	h.login(c, model.RoleShopper)
}

// AdminLogin handles POST /api/auth/admin-login (admin accounts)
func (h *UserHandler) AdminLogin(c *gin.Context) {
	h.login(c, model.RoleAdmin)
}

func (h *UserHandler) login(c *gin.Context, expectedRole string) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req, expectedRole)
	if err != nil {
		h.mapUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Me handles GET /api/auth/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.mapUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// ListUsers handles GET /api/auth/users (admin only)
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		h.mapUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, users)
}

// UpdateRole handles PATCH /api/auth/users/:id/role (admin only)
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req model.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeValidation, err.Error())
		return
	}

	user, err := h.service.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		h.mapUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

func (h *UserHandler) mapUserError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeValidation, err.Error())
		return
	}

	switch {
	case errors.Is(err, model.ErrUserNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeUserNotFound, "User not found")
	case errors.Is(err, model.ErrEmailAlreadyExists):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeEmailExists, "Email already registered")
	case errors.Is(err, model.ErrInvalidCredentials):
		response.ErrorResponse(c, http.StatusUnauthorized, model.ErrCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, model.ErrRoleMismatch):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeRoleMismatch, "Account role does not match this login")
	case errors.Is(err, model.ErrInvalidRole):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidRole, "Invalid role")
	default:
		response.InternalServerError(c, "Something went wrong")
	}
}
