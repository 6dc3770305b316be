package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tavola/services/adminsession"
)

// AdminSessionCookie names the cookie carrying the admin session token.
const AdminSessionCookie = "tavola_admin_session"

// AdminAuth gates admin routes behind a valid session cookie. It fails
// closed: missing, unknown and revoked tokens all get a bare 401.
func AdminAuth(sessions adminsession.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AdminSessionCookie)
		if err != nil || !sessions.Authorize(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("adminToken", token)
		c.Next()
	}
}
