package models

import "time"

type Checklist struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	CardID   uint64 `gorm:"not null;index" json:"card_id"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Position int    `gorm:"not null;default:0" json:"position"`

	// Relations
	Items []ChecklistItem `gorm:"foreignKey:ChecklistID" json:"items,omitempty"`
}

// ChecklistItem tracks a single checkable entry. CompletedBy and CompletedAt
// are set together when IsComplete flips to true and cleared together when it
// flips back, never one without the other.
type ChecklistItem struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	ChecklistID uint64     `gorm:"not null;index" json:"checklist_id"`
	Content     string     `gorm:"type:varchar(500);not null" json:"content"`
	IsComplete  bool       `gorm:"not null;default:false" json:"is_complete"`
	Position    int        `gorm:"not null;default:0" json:"position"`
	CompletedBy *uint64    `json:"completed_by"`
	CompletedAt *time.Time `json:"completed_at"`
}
