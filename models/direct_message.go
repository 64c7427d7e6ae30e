package models

import (
	"gorm.io/gorm"
)

// DirectMessage is a single message inside a Conversation. It references its
// conversation by id (foreign key, not embedding) and is immutable once
// created.
type DirectMessage struct {
	gorm.Model
	ConversationID uint          `gorm:"index;not null"`
	SenderID       uint          `gorm:"index;not null"`
	Text           string        `gorm:"type:text"`
	Pictograms     PictogramList `gorm:"type:text"`
	Language       string        `gorm:"size:10"`
}
