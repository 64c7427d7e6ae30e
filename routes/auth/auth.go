package auth

import (
	"Lexipic/controllers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterPublic registers /auth/register and /auth/login.
func RegisterPublic(g *gin.RouterGroup, db *gorm.DB) {
	g.POST("/auth/register", controllers.Register(db))
	g.POST("/auth/login", controllers.Login(db))
}

// RegisterProtected registers auth routes that need a valid token.
func RegisterProtected(g *gin.RouterGroup, db *gorm.DB) {
	g.GET("/auth/me", controllers.Me(db))
	g.POST("/auth/logout", controllers.Logout())
}
