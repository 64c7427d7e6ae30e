package routes

import (
	"net/http"

	"Lexipic/middleware"
	"Lexipic/pkg/pictograms"
	"Lexipic/pkg/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authRoutes "Lexipic/routes/auth"
	convRoutes "Lexipic/routes/conversation"
	messageRoutes "Lexipic/routes/messages"
	pictoRoutes "Lexipic/routes/pictograms"
	websocketRoutes "Lexipic/routes/websocket"
)

// RegisterRoutes wires the HTTP surface: public pictogram/message/auth
// endpoints and the protected conversation endpoints under /api, plus the
// realtime websocket at /ws.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, hub *realtime.Hub, search pictograms.Searcher) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Lexipic backend OK")
	})

	websocketRoutes.Register(r, hub)

	api := r.Group("/api")
	pictoRoutes.Register(api, search)
	messageRoutes.Register(api, db, hub)
	authRoutes.RegisterPublic(api, db)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())
	authRoutes.RegisterProtected(protected, db)
	convRoutes.Register(protected, db, hub)
}
