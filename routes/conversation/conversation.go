package conversation

import (
	"Lexipic/controllers"
	"Lexipic/middleware"
	"Lexipic/pkg/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register registers conversation routes (protected).
func Register(g *gin.RouterGroup, db *gorm.DB, hub *realtime.Hub) {
	g.POST("/conversations", controllers.ResolveConversation(db))
	g.GET("/conversations", controllers.ListConversations(db))
	g.GET("/conversations/:conversation_id/messages", controllers.ListDirectMessages(db))
	g.POST("/conversations/:conversation_id/messages", middleware.RateLimit(), controllers.CreateDirectMessage(db, hub))
}
