package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/server/http/middleware"
)

// CurrentAgentID extracts the authenticated agent identifier from context.
func CurrentAgentID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.AgentIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}
