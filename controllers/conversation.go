package controllers

import (
	"net/http"
	"strconv"
	"time"

	"Lexipic/middleware"
	"Lexipic/models"
	"Lexipic/pkg/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func conversationJSON(conv *models.Conversation) gin.H {
	p := conv.Participants()
	return gin.H{
		"id":            conv.ID,
		"participants":  []uint{p[0], p[1]},
		"lastMessageAt": conv.LastMessageAt,
		"createdAt":     conv.CreatedAt,
	}
}

func directMessageJSON(m *models.DirectMessage) gin.H {
	picts := m.Pictograms
	if picts == nil {
		picts = models.PictogramList{}
	}
	return gin.H{
		"id":             m.ID,
		"conversationId": m.ConversationID,
		"senderId":       m.SenderID,
		"text":           m.Text,
		"pictograms":     picts,
		"language":       m.Language,
		"createdAt":      m.CreatedAt,
	}
}

// resolveOrCreate finds the canonical conversation for an unordered user
// pair, creating it on first contact. The pair key carries a unique index,
// so when two concurrent requests race the loser's insert fails and is
// retried as a lookup of the winner's row.
func resolveOrCreate(db *gorm.DB, userA, userB uint) (*models.Conversation, error) {
	key := models.PairKeyFor(userA, userB)

	var conv models.Conversation
	err := db.Where("pair_key = ?", key).First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	low, high := models.NormalizePair(userA, userB)
	conv = models.Conversation{
		UserLowID:     low,
		UserHighID:    high,
		PairKey:       key,
		LastMessageAt: time.Now(),
	}
	if createErr := db.Create(&conv).Error; createErr != nil {
		// lost a create race; the unique index guarantees the re-read hits
		// the winner's row
		if retryErr := db.Where("pair_key = ?", key).First(&conv).Error; retryErr != nil {
			return nil, createErr
		}
	}
	return &conv, nil
}

// ResolveConversation handles POST /api/conversations (find-or-create).
func ResolveConversation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)

		var body struct {
			OtherUserID *uint `json:"otherUserId"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.OtherUserID == nil || *body.OtherUserID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "otherUserId is required"})
			return
		}
		other := *body.OtherUserID
		if other == uid {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "cannot start a conversation with yourself"})
			return
		}

		var otherUser models.User
		if err := db.First(&otherUser, other).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
			return
		}

		conv, err := resolveOrCreate(db, uid, other)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to resolve conversation"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "conversation": conversationJSON(conv)})
	}
}

// ListConversations handles GET /api/conversations, most recent activity
// first.
func ListConversations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)

		var convs []models.Conversation
		err := db.Where("user_low_id = ? OR user_high_id = ?", uid, uid).
			Order("last_message_at DESC").Find(&convs).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "db error"})
			return
		}

		out := make([]gin.H, 0, len(convs))
		for i := range convs {
			out = append(out, conversationJSON(&convs[i]))
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "conversations": out})
	}
}

// participantConversation loads a conversation and checks the caller is one
// of its two members. Non-members get the same 404 as a missing id.
func participantConversation(c *gin.Context, db *gorm.DB) (*models.Conversation, bool) {
	uid := middleware.CurrentUserID(c)
	cid, _ := strconv.Atoi(c.Param("conversation_id"))

	var conv models.Conversation
	if err := db.First(&conv, cid).Error; err != nil || !conv.HasParticipant(uid) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "conversation not found"})
		return nil, false
	}
	return &conv, true
}

// ListDirectMessages handles GET /api/conversations/:conversation_id/messages,
// oldest first.
func ListDirectMessages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		conv, ok := participantConversation(c, db)
		if !ok {
			return
		}

		var msgs []models.DirectMessage
		err := db.Where("conversation_id = ?", conv.ID).
			Order("created_at ASC, id ASC").Find(&msgs).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "db error"})
			return
		}

		out := make([]gin.H, 0, len(msgs))
		for i := range msgs {
			out = append(out, directMessageJSON(&msgs[i]))
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "messages": out})
	}
}

// CreateDirectMessage handles POST /api/conversations/:conversation_id/messages.
// The lastMessageAt touch is a second write after the insert; a crash in
// between leaves it stale, which only affects conversation-list order.
func CreateDirectMessage(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)
		conv, ok := participantConversation(c, db)
		if !ok {
			return
		}

		var body struct {
			Text       string               `json:"text"`
			Pictograms models.PictogramList `json:"pictograms"`
			Language   string               `json:"language"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request"})
			return
		}
		if body.Language == "" {
			body.Language = "es"
		}

		msg := models.DirectMessage{
			ConversationID: conv.ID,
			SenderID:       uid,
			Text:           body.Text,
			Pictograms:     body.Pictograms,
			Language:       body.Language,
		}
		if err := db.Create(&msg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to save message"})
			return
		}

		if err := db.Model(conv).Update("last_message_at", time.Now()).Error; err != nil {
			// non-fatal: the message is stored, only list ordering suffers
			c.Error(err)
		}

		payload := directMessageJSON(&msg)
		go hub.NotifyConversation(conv.ID, payload)

		c.JSON(http.StatusCreated, gin.H{"ok": true, "message": payload})
	}
}
