package server

import (
	"time"

	model "procurehub/internal/models"
	"procurehub/services/procurement/helpers"
	"procurehub/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// ActorMiddleware reads the caller identity established by the upstream
// auth gateway from trusted headers. Requests without the headers proceed
// as anonymous; role checks in the services refuse what they must.
func ActorMiddleware(c *gin.Context) {
	actor := model.Actor{
		ID:   c.GetHeader("X-Actor-ID"),
		Role: model.Role(c.GetHeader("X-Actor-Role")),
	}
	c.Set(helpers.ActorContextKey, actor)
	c.Next()
}
