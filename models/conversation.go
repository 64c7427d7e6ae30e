package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Conversation is the canonical 1:1 thread between two users. The pair is
// unordered: resolving (A,B) and (B,A) must land on the same row. UserLowID
// and UserHighID hold the pair in sorted order and PairKey carries a unique
// index so concurrent find-or-create cannot persist the pair twice.
type Conversation struct {
	gorm.Model
	UserLowID     uint      `gorm:"not null;index"`
	UserHighID    uint      `gorm:"not null;index"`
	PairKey       string    `gorm:"size:50;uniqueIndex;not null"`
	LastMessageAt time.Time `gorm:"index"`
}

// NormalizePair returns the pair in canonical (sorted) order.
func NormalizePair(a, b uint) (low, high uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// PairKeyFor builds the canonical unique key for an unordered user pair.
func PairKeyFor(a, b uint) string {
	low, high := NormalizePair(a, b)
	return fmt.Sprintf("%d:%d", low, high)
}

// Participants returns both member ids, low first.
func (c *Conversation) Participants() [2]uint {
	return [2]uint{c.UserLowID, c.UserHighID}
}

// HasParticipant reports whether userID is a member of the conversation.
func (c *Conversation) HasParticipant(userID uint) bool {
	return userID == c.UserLowID || userID == c.UserHighID
}
