// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"farmgrocery/internal/feature/auth/domain/entity"
	"farmgrocery/internal/feature/auth/usecase"
	"farmgrocery/internal/platform/logger"
	"farmgrocery/internal/platform/session"
	"farmgrocery/internal/platform/view"
)

// AuthUsecase defines the auth operations this handler needs.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type AuthUsecase interface {
	// Register creates a new user from the registration form fields.
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	// Login authenticates a user by username and password.
	Login(ctx context.Context, username, password string) (*entity.User, error)
}

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterForm renders the registration form.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	view.HTML(c, http.StatusOK, "users/register", nil)
}

// Register creates an account from the submitted form and signs the new
// user in. Any failure comes back as a flash on the register form; the
// client never sees a raw error.
func (h *AuthHandler) Register(c *gin.Context) {
	in := usecase.RegisterInput{
		FirstName: c.PostForm("firstName"),
		LastName:  c.PostForm("lastName"),
		Email:     c.PostForm("email"),
		Phone:     c.PostForm("phone"),
		Username:  c.PostForm("username"),
		Password:  c.PostForm("password"),
	}

	user, err := h.auth.Register(c.Request.Context(), in)
	if err != nil {
		message := "Registration failed. Please try again."
		if errors.Is(err, usecase.ErrUsernameTaken) || errors.Is(err, usecase.ErrInvalidRegistration) {
			message = err.Error()
		} else {
			logger.FromContext(c).Error("registration failed", zap.Error(err))
		}
		session.Flash(c, "error", message)
		c.Redirect(http.StatusFound, "/register")
		return
	}

	session.Login(c, user)
	session.Flash(c, "success", "Welcome to Farm Grocery!")
	c.Redirect(http.StatusFound, "/farms")
}

// LoginForm renders the login form.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	view.HTML(c, http.StatusOK, "users/login", nil)
}

// Login authenticates the submitted credentials. On success the deferred
// return-to URL is honored exactly once, defaulting to the farm list.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.auth.Login(c.Request.Context(), username, password)
	if err != nil {
		// One generic message for unknown user and wrong password alike.
		session.Flash(c, "error", "Invalid username or password")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	session.Login(c, user)
	session.Flash(c, "success", "Welcome back!")

	redirectURL := session.ConsumeReturnTo(c)
	if redirectURL == "" {
		redirectURL = "/farms"
	}
	c.Redirect(http.StatusFound, redirectURL)
}

// Logout clears the session identity and redirects to the farm list.
func (h *AuthHandler) Logout(c *gin.Context) {
	session.Logout(c)
	session.Flash(c, "success", "See you soon!")
	c.Redirect(http.StatusFound, "/farms")
}
