package models

import "time"

// Comment on a card. The author never changes after creation.
type Comment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	CardID    uint64    `gorm:"not null;index" json:"card_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
