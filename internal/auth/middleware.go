package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yourname/afresh/internal"
	"github.com/yourname/afresh/internal/config"
	"github.com/yourname/afresh/internal/response"
)

// NewProvider returns the local provider in development and the remote one
// everywhere else.
func NewProvider(cfg *config.Config, logger internal.Logger) Provider {
	if cfg.Env == config.EnvDevelopment {
		return NewLocalAuthProvider(cfg.AuthToken, cfg.AuthUserID, logger)
	}
	return NewRemoteAuthProvider(cfg.AuthServiceURL, logger)
}

func AuthMiddleware(provider Provider, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimPrefix(header, "Bearer ")
			token = strings.TrimSpace(token)
			var user *internal.User
			var err error
			if cfg.Env == config.EnvDevelopment {
				user, err = provider.ValidateTokenLocal(token)
			} else {
				user, err = provider.ValidateTokenRemote(c.Request.Context(), token)
			}
			if err == nil {
				c.Set("user", user)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Unauthorized"))
	}
}
