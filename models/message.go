package models

import (
	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a broadcast-room message. Created once, never mutated.
type ChatMessage struct {
	gorm.Model
	Role       string        `gorm:"size:20;not null"` // "user" or "assistant"
	Text       string        `gorm:"type:text"`
	Pictograms PictogramList `gorm:"type:text"`
	Language   string        `gorm:"size:10"`
	SessionID  string        `gorm:"size:80;index"`
}

// ValidRole reports whether role is one of the accepted message roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAssistant
}
