package models

import "time"

type BoardRole string

const (
	RoleOwner  BoardRole = "owner"
	RoleAdmin  BoardRole = "admin"
	RoleMember BoardRole = "member"
	RoleViewer BoardRole = "viewer"
)

// Valid reports whether r is one of the known board roles.
func (r BoardRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// BoardMember is the role-tagged membership of a user on a board.
// The board creator has owner privileges even without a row here.
type BoardMember struct {
	BoardID uint64    `gorm:"primarykey" json:"board_id"`
	UserID  uint64    `gorm:"primarykey" json:"user_id"`
	Role    BoardRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	AddedAt time.Time `json:"added_at"`

	// Relations
	Board Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
