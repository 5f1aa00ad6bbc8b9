package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abriand/user-registry-server/internal/api/http/middleware"
	"github.com/abriand/user-registry-server/internal/apierrors"
	"github.com/abriand/user-registry-server/internal/logger"
	"github.com/abriand/user-registry-server/internal/model"
)

// RegistryService defines user registry operations used by the handler.
type RegistryService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	DeleteUser(ctx context.Context, id int64, password string) error
}

// User handles HTTP endpoints for the user registry.
type User struct {
	registryService RegistryService
	logger          *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(registryService RegistryService, logger *logger.Logger) *User {
	return &User{
		registryService: registryService,
		logger:          logger,
	}
}

// CreateUserRequest is the POST /users payload. Fields are checked for
// presence only; names and postal codes stay free-form.
type CreateUserRequest struct {
	Firstname  string     `json:"firstname" validate:"required"`
	Lastname   string     `json:"lastname" validate:"required"`
	Email      string     `json:"email" validate:"required"`
	DateBirth  model.Date `json:"dateBirth" validate:"required"`
	PostalCode string     `json:"postalCode" validate:"required"`
	City       string     `json:"city" validate:"required"`
}

// DeleteUserRequest is the DELETE /users/:userId payload.
type DeleteUserRequest struct {
	Password string `json:"password"`
}

// ListUsers returns all users as a bare JSON array.
func (h *User) ListUsers(c *gin.Context) {
	users, err := h.registryService.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("User handler: list users failed",
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// CreateUser validates the payload and registers a new user.
func (h *User) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		c.JSON(http.StatusBadRequest, middleware.BadRequestErrorResponse{
			Message: "validation failed",
			Details: validationErrors,
		})
		return
	}

	user, err := h.registryService.CreateUser(c.Request.Context(), model.User{
		Firstname:  req.Firstname,
		Lastname:   req.Lastname,
		Email:      req.Email,
		DateBirth:  req.DateBirth,
		PostalCode: req.PostalCode,
		City:       req.City,
	})
	if err != nil {
		h.logger.Error("User handler: create user failed",
			"email", req.Email,
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "user created",
		"user":    user,
	})
}

// DeleteUser removes a user after the shared-secret check.
func (h *User) DeleteUser(c *gin.Context) {
	rawID := c.Param("userId")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		handleError(c, apierrors.NewErrInvalidUserID(rawID))
		return
	}

	// A missing or malformed body is treated as a missing password:
	// the credential check must run before anything touches storage.
	var req DeleteUserRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.registryService.DeleteUser(c.Request.Context(), id, req.Password); err != nil {
		h.logger.Error("User handler: delete user failed",
			"user_id", id,
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
