package websocket

import (
	"Lexipic/controllers"
	"Lexipic/pkg/realtime"

	"github.com/gin-gonic/gin"
)

func Register(r *gin.Engine, hub *realtime.Hub) {
	r.GET("/ws", controllers.RoomWS(hub))
}
