package models

import "time"

// List is an ordered column within a board. Position is an ordering hint,
// not a unique rank; presentation breaks ties by id.
type List struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	BoardID    uint64    `gorm:"not null;index" json:"board_id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	IsArchived bool      `gorm:"not null;default:false" json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Board Board  `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	Cards []Card `gorm:"foreignKey:ListID" json:"cards,omitempty"`
}
