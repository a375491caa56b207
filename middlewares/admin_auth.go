package middlewares

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenbasket/produce-orders/config"
	"github.com/greenbasket/produce-orders/utils"
)

// AdminTokenHeader carries the shared admin credential on every gated call.
const AdminTokenHeader = "X-Admin-Token"

// AdminAuth guards catalog mutation and order read/export routes. The token
// is the configured admin password itself, static for the process lifetime.
func AdminAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AdminTokenHeader)
		if token == "" ||
			subtle.ConstantTimeCompare([]byte(token), []byte(cfg.AdminPassword)) != 1 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}
		c.Next()
	}
}
