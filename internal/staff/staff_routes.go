package staff

import (
	"go-roster/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	requireSession gin.HandlerFunc,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	staff := r.Group("/staff")
	staff.Use(requireSession)
	staff.Use(middleware.ContextLogger(logger))
	{
		staff.GET("", handler.GetAll)
		staff.GET("/summary", handler.Summary)
		staff.GET("/birthdays", handler.Birthdays)

		staff.GET("/export",
			middleware.RateLimitBySession(0.5, 3),
			handler.Export,
		)
		staff.GET("/import/template",
			middleware.RateLimitBySession(0.5, 3),
			handler.Template,
		)
		staff.POST("/import",
			middleware.RateLimitBySession(0.2, 2),
			middleware.Idempotency(rdb, logger),
			handler.Import,
		)

		staff.POST("",
			middleware.Idempotency(rdb, logger),
			handler.Create,
		)
		staff.POST("/bulk-delete", handler.BulkDelete)

		staff.GET("/:id", handler.GetByID)
		staff.PUT("/:id", handler.Update)
		staff.DELETE("/:id", handler.Delete)
	}
}
