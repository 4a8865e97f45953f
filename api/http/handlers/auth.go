package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/taskboard/api/http/presenter"
	"github.com/artem13815/taskboard/pkg/users"
)

type AuthHandler struct {
	directory users.Directory
}

func NewAuthHandler(directory users.Directory) *AuthHandler {
	return &AuthHandler{directory: directory}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "registration payload"
// @Success 201 {object} users.User
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	if req.Email == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "Email and password are required")
	}

	user, err := h.directory.Register(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrValidation):
			return presenter.Error(c, http.StatusBadRequest, "Invalid email address")
		case errors.Is(err, users.ErrDuplicateEmail):
			return presenter.Error(c, http.StatusConflict, "Email already registered")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "Failed to register user")
		}
	}

	return presenter.JSON(c, http.StatusCreated, user)
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "login payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	if req.Email == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "Email and password are required")
	}

	result, err := h.directory.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			return presenter.Error(c, http.StatusUnauthorized, "Invalid email or password")
		}
		return presenter.Error(c, http.StatusInternalServerError, "Failed to login")
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"token": result.Token,
		"user":  result.User,
	})
}
