package controllers

import (
	"net/http"
	"strings"
	"time"

	"Lexipic/pkg/cache"
	"Lexipic/pkg/config"
	"Lexipic/pkg/pictograms"

	"github.com/gin-gonic/gin"
)

// PictogramController runs the text → pictograms pipeline: plan queries,
// fan out to the search service, dedupe, cap.
type PictogramController struct {
	svc pictograms.Searcher
}

func NewPictogramController(svc pictograms.Searcher) *PictogramController {
	return &PictogramController{svc: svc}
}

// Generate handles POST /api/pictograms/generate.
func (ctl *PictogramController) Generate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Text     string `json:"text"`
			Language string `json:"language"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Text) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Missing text"})
			return
		}

		lang := body.Language
		if lang == "" {
			lang = "es"
		}
		text := strings.TrimSpace(body.Text)

		// key on the exact trimmed text: the planner and the search client
		// both see the original casing, so the cache must too
		var result pictograms.Result
		ck := cache.KeyFromStrings("pictograms", lang, text)
		if v, ok := cache.Default().Get(ck); ok {
			result = v.(pictograms.Result)
		} else {
			queries := pictograms.Plan(text)
			result = pictograms.Aggregate(c.Request.Context(), ctl.svc, lang, queries, config.MaxPictograms)
			if len(result.Pictograms) > 0 {
				ttl := time.Duration(config.PictoCacheTTLSeconds) * time.Second
				cache.Default().Set(ck, result, ttl)
			}
		}

		resp := gin.H{
			"ok":          true,
			"pictograms":  result.Pictograms,
			"usedQueries": result.UsedQueries,
		}
		if result.Message != "" {
			resp["message"] = result.Message
		}
		c.JSON(http.StatusOK, resp)
	}
}
