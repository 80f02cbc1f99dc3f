package models

import "time"

type Card struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	ListID      uint64     `gorm:"not null;index" json:"list_id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Position    int        `gorm:"not null;default:0" json:"position"`
	DueDate     *time.Time `json:"due_date"`
	DueComplete bool       `gorm:"not null;default:false" json:"due_complete"`
	IsArchived  bool       `gorm:"not null;default:false" json:"is_archived"`
	CoverColor  string     `gorm:"type:varchar(20)" json:"cover_color"`
	CreatedBy   uint64     `gorm:"index" json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	List        List         `gorm:"foreignKey:ListID" json:"list,omitempty"`
	Creator     User         `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Labels      []Label      `gorm:"many2many:card_labels" json:"labels,omitempty"`
	Members     []User       `gorm:"many2many:card_members" json:"members,omitempty"`
	Comments    []Comment    `gorm:"foreignKey:CardID" json:"comments,omitempty"`
	Checklists  []Checklist  `gorm:"foreignKey:CardID" json:"checklists,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:CardID" json:"attachments,omitempty"`
}

// IsOverdue reports whether the card's due date has passed. A completed due
// date is never overdue, even in the past.
func (c *Card) IsOverdue(now time.Time) bool {
	if c.DueDate == nil || c.DueComplete {
		return false
	}
	return now.After(*c.DueDate)
}

// ChecklistProgress returns (completed, total) item counts across all of the
// card's checklists. Computed on read, never stored.
func (c *Card) ChecklistProgress() (completed, total int) {
	for _, checklist := range c.Checklists {
		for _, item := range checklist.Items {
			total++
			if item.IsComplete {
				completed++
			}
		}
	}
	return completed, total
}

// CardLabel is the card/label association row. The Card.Labels relation
// rides on this table; the explicit model keeps migration and cascade
// deletes honest.
type CardLabel struct {
	CardID  uint64 `gorm:"primarykey" json:"card_id"`
	LabelID uint64 `gorm:"primarykey" json:"label_id"`
}

// CardMember is the card/user assignment row.
type CardMember struct {
	CardID uint64 `gorm:"primarykey" json:"card_id"`
	UserID uint64 `gorm:"primarykey" json:"user_id"`
}
