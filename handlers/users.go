package handlers

import (
	"errors"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"coastwatch/database"
	"coastwatch/middleware"
	"coastwatch/models"
)

// Register handles user registration
func (h *Handlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "user already exists"})
			return
		}
		log.Errorf("failed to register user: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to register user"})
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid email or password"})
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

// AdminLogin authenticates a user and additionally requires the admin
// role. This is the dashboard's entry point.
func (h *Handlers) AdminLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid email or password"})
		return
	}
	if user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "not authorized"})
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *Handlers) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := h.users.GenerateToken(user.ID.Hex())
	if err != nil {
		log.Errorf("failed to generate token: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to generate token"})
		return
	}

	c.JSON(status, models.AuthResponse{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	})
}

// Profile returns the identity behind the bearer token.
func (h *Handlers) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, models.ProfileResponse{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}

// ListUsers returns all users. Admin only.
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		log.Errorf("failed to list users: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUser applies profile field updates to a user. Admin only.
func (h *Handlers) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "user not found"})
			return
		}
		if errors.Is(err, database.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "email already taken"})
			return
		}
		log.Errorf("failed to update user: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// ToggleUserStatus flips a user's active flag. Admin only.
func (h *Handlers) ToggleUserStatus(c *gin.Context) {
	user, err := h.users.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "user not found"})
			return
		}
		log.Errorf("failed to toggle user status: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to toggle user status"})
		return
	}
	c.JSON(http.StatusOK, user)
}
