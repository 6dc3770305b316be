// File: handlers/admin.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tavola/middleware"
	"tavola/services/adminsession"
)

// AdminHandler serves admin login and logout.
type AdminHandler struct {
	Sessions adminsession.Service
	Logger   *zap.Logger
}

func NewAdminHandler(sessions adminsession.Service, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Sessions: sessions, Logger: logger}
}

// LoginHandler checks the admin password and sets the session cookie.
// Failures are uniform 401s regardless of cause.
func (h *AdminHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	token, err := h.Sessions.Login(input.Password)
	if err != nil {
		h.Logger.Warn("admin login rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Session cookie: MaxAge 0 keeps it for the browser session only.
	c.SetCookie(middleware.AdminSessionCookie, token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// LogoutHandler revokes the current session immediately.
func (h *AdminHandler) LogoutHandler(c *gin.Context) {
	if token, err := c.Cookie(middleware.AdminSessionCookie); err == nil {
		h.Sessions.Logout(token)
	}
	c.SetCookie(middleware.AdminSessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
