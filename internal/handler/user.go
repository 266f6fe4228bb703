package handler

import (
	"net/http"
	"strings"

	"zapshift/internal/middleware"
	"zapshift/internal/model"
	"zapshift/internal/service"
	"zapshift/pkg/util"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Create handles POST /users, the sign-in-triggered registration call.
func (h *UserHandler) Create(c *gin.Context) {
	var req model.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	req.Email = util.NormalizeEmail(req.Email)
	if err := util.ValidateEmail(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if len(req.Name) > util.MaxNameLength {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Name exceeds maximum length", ""))
		return
	}

	user, created, err := h.users.Register(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}
	if !created {
		c.JSON(http.StatusOK, model.NewSuccessResponse("User already exists", user))
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("User registered", user))
}

// GetRole handles GET /users/role?email=
func (h *UserHandler) GetRole(c *gin.Context) {
	email := util.NormalizeEmail(c.Query("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("email query parameter is required", ""))
		return
	}

	ac, _ := middleware.GetAuth(c)
	if !ac.CanAccessEmail(email) {
		c.JSON(http.StatusForbidden, model.NewErrorResponse("Cannot read another user's role", ""))
		return
	}

	role, err := h.users.RoleByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err, "Failed to resolve role")
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": email, "role": role})
}

// Search handles GET /users/search?email= (admin)
func (h *UserHandler) Search(c *gin.Context) {
	fragment := strings.TrimSpace(c.Query("email"))
	if fragment == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("email query parameter is required", ""))
		return
	}

	users, err := h.users.Search(c.Request.Context(), fragment)
	if err != nil {
		respondError(c, err, "Failed to search users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// List handles GET /users (admin)
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// ChangeRole handles PATCH /users/:id/role (admin)
func (h *UserHandler) ChangeRole(c *gin.Context) {
	var req model.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	if err := h.users.ChangeRole(c.Request.Context(), c.Param("id"), req.Role); err != nil {
		respondError(c, err, "Failed to change role")
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Role updated", nil))
}
