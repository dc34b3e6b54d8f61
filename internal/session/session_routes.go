package session

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	sessions := r.Group("/session")
	{
		sessions.GET("", handler.Status)
		sessions.POST("/login", handler.Login)
		sessions.POST("/logout", handler.Logout)
	}
}
