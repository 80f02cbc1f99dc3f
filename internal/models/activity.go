package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity action tags.
const (
	ActionCreatedBoard  = "created_board"
	ActionUpdatedBoard  = "updated_board"
	ActionArchivedBoard = "archived_board"
	ActionCreatedList   = "created_list"
	ActionRenamedList   = "renamed_list"
	ActionArchivedList  = "archived_list"
	ActionCreatedCard   = "created_card"
	ActionUpdatedCard   = "updated_card"
	ActionMovedCard     = "moved_card"
	ActionArchivedCard  = "archived_card"
	ActionDeletedCard   = "deleted_card"
	ActionAddedComment  = "added_comment"
	ActionAddedMember   = "added_member"
	ActionRemovedMember = "removed_member"
)

// Activity is an append-only audit record of a mutating action on a board.
// Rows are never updated or deleted on their own; they go away only when the
// whole board is deleted. A nil UserID marks a system action.
type Activity struct {
	ID         uint64            `gorm:"primarykey" json:"id"`
	BoardID    uint64            `gorm:"not null;index" json:"board_id"`
	UserID     *uint64           `json:"user_id"`
	Action     string            `gorm:"type:varchar(50);not null" json:"action"`
	TargetType string            `gorm:"type:varchar(50)" json:"target_type"`
	TargetID   uint64            `json:"target_id"`
	Details    datatypes.JSONMap `json:"details"`
	CreatedAt  time.Time         `json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
