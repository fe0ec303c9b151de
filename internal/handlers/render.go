package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nehemiah-317/ictlogbook/internal/apperrors"
	"github.com/nehemiah-317/ictlogbook/internal/middleware"
)

// render writes data as JSON with the current user attached.
func render(c *gin.Context, status int, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if u := middleware.CurrentUser(c); u != nil {
		data["current_user"] = gin.H{
			"id":       u.ID,
			"username": u.Username,
			"role":     u.Role,
		}
	}

	c.JSON(status, data)
}

// renderError maps an error onto a response. Anonymous requests are sent to
// the login page.
func renderError(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		appErr = apperrors.NewInternalError("Something went wrong", err.Error())
	}

	if appErr.Type == apperrors.ErrorTypeUnauthenticated {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	if appErr.Type == apperrors.ErrorTypeInternal {
		_ = c.Error(err)
		// internal details stay in the log
		appErr = &apperrors.AppError{Type: appErr.Type, Message: appErr.Message, Code: appErr.Code}
	}

	render(c, appErr.Code, gin.H{"error": appErr})
}

func bindError(err error) error {
	return apperrors.NewValidationError(apperrors.FieldError{Field: "request", Reason: err.Error()})
}
