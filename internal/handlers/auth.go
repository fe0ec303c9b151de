package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nehemiah-317/ictlogbook/internal/apperrors"
	"github.com/nehemiah-317/ictlogbook/internal/database"
	"github.com/nehemiah-317/ictlogbook/internal/middleware"
	"github.com/nehemiah-317/ictlogbook/internal/models"
)

func (h *Handler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, gin.H{
		"message": "POST username and password to /login",
	})
}

type loginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		renderError(c, bindError(err))
		return
	}

	user, err := database.Authenticate(c.Request.Context(), h.db, form.Username, form.Password)
	if errors.Is(err, database.ErrInvalidCredentials) {
		h.log.Warn("failed login", "username", form.Username, "client_ip", c.ClientIP())
		renderError(c, apperrors.NewValidationError(apperrors.FieldError{
			Field:  "username",
			Reason: "Please enter a correct username and password.",
		}))
		return
	}
	if err != nil {
		renderError(c, apperrors.NewInternalError("login failed", err.Error()))
		return
	}

	if err := middleware.Login(c, user); err != nil {
		renderError(c, apperrors.NewInternalError("failed to save session", err.Error()))
		return
	}

	h.log.Info("user logged in", "user_id", user.ID, "username", user.Username)
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome back, " + user.Username + "!",
		"user":    user,
		"next":    "/",
	})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := middleware.Logout(c); err != nil {
		renderError(c, apperrors.NewInternalError("failed to clear session", err.Error()))
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) Me(c *gin.Context) {
	render(c, http.StatusOK, nil)
}

// USERS (admin only)

type userForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	Role     string `form:"role" json:"role"`
}

func (h *Handler) CreateUser(c *gin.Context) {
	var form userForm
	if err := c.ShouldBind(&form); err != nil {
		renderError(c, bindError(err))
		return
	}

	form.Username = strings.TrimSpace(form.Username)
	var fields []apperrors.FieldError
	if len(form.Username) < 3 {
		fields = append(fields, apperrors.FieldError{Field: "username", Reason: "Username must be at least 3 characters"})
	}
	if len(form.Password) < 6 {
		fields = append(fields, apperrors.FieldError{Field: "password", Reason: "Password must be at least 6 characters"})
	}
	role := models.RoleStaff
	if form.Role != "" {
		role = models.UserRole(form.Role)
	}
	if !role.IsValid() {
		fields = append(fields, apperrors.FieldError{Field: "role", Reason: "Role must be admin or staff"})
	}
	if len(fields) > 0 {
		renderError(c, apperrors.NewValidationError(fields...))
		return
	}

	user, err := database.CreateUser(c.Request.Context(), h.db, form.Username, form.Password, role)
	if errors.Is(err, database.ErrUserExists) {
		renderError(c, apperrors.NewValidationError(apperrors.FieldError{Field: "username", Reason: "A user with that username already exists."}))
		return
	}
	if err != nil {
		renderError(c, apperrors.NewInternalError("failed to create user", err.Error()))
		return
	}

	actor := middleware.CurrentActor(c)
	h.audit.Record(c.Request.Context(), actor.ID, "user", user.ID, "create", "created user "+user.Username+" ("+string(user.Role)+")")

	render(c, http.StatusCreated, gin.H{"user": user})
}
