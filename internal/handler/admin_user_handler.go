package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusq/survey-backend/internal/middleware"
	"github.com/campusq/survey-backend/internal/model"
	"github.com/campusq/survey-backend/internal/response"
	"github.com/campusq/survey-backend/internal/service"
	"github.com/campusq/survey-backend/internal/validator"
)

// AdminUserHandler handles admin account management (superadmin only).
type AdminUserHandler struct {
	adminService *service.AdminService
}

// NewAdminUserHandler creates a new AdminUserHandler.
func NewAdminUserHandler(adminService *service.AdminService) *AdminUserHandler {
	return &AdminUserHandler{adminService: adminService}
}

// ListAdmins godoc
// GET /api/v1/admin/users
func (h *AdminUserHandler) ListAdmins(c *gin.Context) {
	admins, err := h.adminService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"admins": admins})
}

// CreateAdmin godoc
// POST /api/v1/admin/users
func (h *AdminUserHandler) CreateAdmin(c *gin.Context) {
	var req model.CreateAdminRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	admin, err := h.adminService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"admin": admin})
}

// DeleteAdmin godoc
// DELETE /api/v1/admin/users/:admin_id
// An admin cannot delete their own account.
func (h *AdminUserHandler) DeleteAdmin(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := strconv.Atoi(c.Param("admin_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	if id == claims.UserID {
		response.Fail(c, http.StatusConflict, response.ErrConflict)
		return
	}

	if err := h.adminService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "admin deleted"})
}
