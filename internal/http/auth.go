package http

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"chessplay/internal/core"
	"chessplay/internal/service"
	"chessplay/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// RegisterHandler creates a new user account and signs the caller in
func (h *HTTPHandler) RegisterHandler(c *fiber.Ctx) error {
	var req core.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid request body",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "validation failed",
			Code:    core.ErrInvalidRequest,
			Details: describeValidation(err),
		})
	}

	if err := validatePassword(req.Password); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "weak password",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	// Normalize for case-insensitive storage
	req.Username = strings.ToLower(req.Username)

	user, err := h.svc.CreateUser(req.Username, req.Password)
	switch {
	case errors.Is(err, storage.ErrUserExists):
		return c.Status(fiber.StatusConflict).JSON(core.ErrorResponse{
			Error:   "user already exists",
			Code:    core.ErrUserExists,
			Details: "username already taken",
		})
	case errors.Is(err, service.ErrStorageDisabled):
		return storageDisabled(c)
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "failed to create user",
			Code:  core.ErrInternalError,
		})
	}

	return h.issueToken(c, user, fiber.StatusCreated)
}

// LoginHandler authenticates a user and returns a token
func (h *HTTPHandler) LoginHandler(c *fiber.Ctx) error {
	var req core.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid request body",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "validation failed",
			Code:    core.ErrInvalidRequest,
			Details: describeValidation(err),
		})
	}

	user, err := h.svc.AuthenticateUser(strings.ToLower(req.Username), req.Password)
	if errors.Is(err, service.ErrStorageDisabled) {
		return storageDisabled(c)
	}
	if err != nil {
		// Same answer for unknown user and bad password
		return c.Status(fiber.StatusUnauthorized).JSON(core.ErrorResponse{
			Error: "invalid credentials",
			Code:  core.ErrUnauthorized,
		})
	}

	// Last-login is informational; a failed update does not block sign-in
	_ = h.svc.UpdateLastLogin(user.UserID)

	return h.issueToken(c, user, fiber.StatusOK)
}

func (h *HTTPHandler) issueToken(c *fiber.Ctx, user *service.User, status int) error {
	token, expiresAt, err := h.svc.GenerateUserToken(user.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "failed to generate token",
			Code:  core.ErrInternalError,
		})
	}

	return c.Status(status).JSON(core.AuthResponse{
		Token:     token,
		UserID:    user.UserID,
		Username:  user.Username,
		ExpiresAt: expiresAt,
	})
}

// GetCurrentUserHandler returns the account behind the bearer token
func (h *HTTPHandler) GetCurrentUserHandler(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	user, err := h.svc.GetUserByID(userID)
	if errors.Is(err, service.ErrStorageDisabled) {
		return storageDisabled(c)
	}
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
			Error: "user not found",
			Code:  core.ErrUnauthorized,
		})
	}

	return c.JSON(core.UserResponse{
		UserID:      user.UserID,
		Username:    user.Username,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	})
}

func storageDisabled(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(core.ErrorResponse{
		Error:   "accounts unavailable",
		Code:    core.ErrResourceLimit,
		Details: "server is running without storage",
	})
}

// validatePassword requires at least one letter and one digit; length is
// bounded by the request tags
func validatePassword(password string) error {
	var hasLetter, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsNumber(r):
			hasNumber = true
		}
	}
	if !hasLetter || !hasNumber {
		return fmt.Errorf("password must contain at least one letter and one number")
	}
	return nil
}
