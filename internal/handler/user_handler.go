package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapp/internal/auth"
	"blogapp/internal/errors"
	"blogapp/internal/service"
)

// UserHandler bundles profile HTTP handlers.
type UserHandler struct {
	svc      service.UserService
	sessions *auth.SessionManager
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, sessions *auth.SessionManager) *UserHandler {
	return &UserHandler{svc: svc, sessions: sessions}
}

// UpdateUserRequest carries optional profile changes.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=32"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=3,max=72"`
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id", errors.ErrUserNotFound)
	if err != nil {
		return err
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "Profile changes"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	actorID, err := sessionUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", errors.ErrUserNotFound)
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), actorID, id, service.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete own account
// @Description Removes the account, its posts and every comment on them, then clears the session cookie.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	actorID, err := sessionUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", errors.ErrUserNotFound)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteUser(c.Request().Context(), actorID, id); err != nil {
		return errorResponse(err)
	}

	h.sessions.ClearSession(c)
	return c.JSON(http.StatusOK, MessageResponse{Message: "user has been deleted"})
}
