package controllers

import (
	"net/http"
	"strconv"

	"Lexipic/models"
	"Lexipic/pkg/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultMessageLimit = 50

func chatMessageJSON(m *models.ChatMessage) gin.H {
	picts := m.Pictograms
	if picts == nil {
		picts = models.PictogramList{}
	}
	return gin.H{
		"id":         m.ID,
		"role":       m.Role,
		"text":       m.Text,
		"pictograms": picts,
		"language":   m.Language,
		"sessionId":  m.SessionID,
		"createdAt":  m.CreatedAt,
	}
}

// CreateMessage handles POST /api/messages (broadcast room). The stored
// message is fanned out to every realtime client; the HTTP response does not
// wait on delivery.
func CreateMessage(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Role       string               `json:"role"`
			Text       string               `json:"text"`
			Pictograms models.PictogramList `json:"pictograms"`
			Language   string               `json:"language"`
			SessionID  string               `json:"sessionId"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request"})
			return
		}
		if !models.ValidRole(body.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "role must be user or assistant"})
			return
		}
		if body.Language == "" {
			body.Language = "es"
		}

		msg := models.ChatMessage{
			Role:       body.Role,
			Text:       body.Text,
			Pictograms: body.Pictograms,
			Language:   body.Language,
			SessionID:  body.SessionID,
		}
		if err := db.Create(&msg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to save message"})
			return
		}

		payload := chatMessageJSON(&msg)
		go hub.Broadcast("new_message", payload)

		c.JSON(http.StatusCreated, gin.H{"ok": true, "message": payload})
	}
}

// ListMessages handles GET /api/messages?limit=N, newest first.
func ListMessages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultMessageLimit
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}

		var msgs []models.ChatMessage
		if err := db.Order("created_at DESC, id DESC").Limit(limit).Find(&msgs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "db error"})
			return
		}

		out := make([]gin.H, 0, len(msgs))
		for i := range msgs {
			out = append(out, chatMessageJSON(&msgs[i]))
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "messages": out})
	}
}
