package pictograms

import (
	"Lexipic/controllers"
	"Lexipic/middleware"
	picto "Lexipic/pkg/pictograms"

	"github.com/gin-gonic/gin"
)

// Register registers the pictogram generation endpoint.
func Register(g *gin.RouterGroup, search picto.Searcher) {
	ctl := controllers.NewPictogramController(search)
	g.POST("/pictograms/generate", middleware.RateLimit(), ctl.Generate())
}
