package models

// Label categorizes cards on a board. Name may be empty (color-only labels
// are valid) and duplicate colors on one board are allowed.
type Label struct {
	ID      uint64 `gorm:"primarykey" json:"id"`
	BoardID uint64 `gorm:"not null;index" json:"board_id"`
	Name    string `gorm:"type:varchar(50)" json:"name"`
	Color   string `gorm:"type:varchar(20);not null" json:"color"`
}
