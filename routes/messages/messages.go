package messages

import (
	"Lexipic/controllers"
	"Lexipic/middleware"
	"Lexipic/pkg/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register registers the broadcast-room message endpoints.
func Register(g *gin.RouterGroup, db *gorm.DB, hub *realtime.Hub) {
	g.POST("/messages", middleware.RateLimit(), controllers.CreateMessage(db, hub))
	g.GET("/messages", controllers.ListMessages(db))
}
