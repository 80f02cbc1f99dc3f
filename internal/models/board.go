package models

import "time"

type BoardVisibility string

const (
	VisibilityPrivate BoardVisibility = "private"
	VisibilityPublic  BoardVisibility = "public"
)

type Board struct {
	ID              uint64          `gorm:"primarykey" json:"id"`
	Name            string          `gorm:"type:varchar(100);not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	BackgroundColor string          `gorm:"type:varchar(20);default:'slate'" json:"background_color"`
	Visibility      BoardVisibility `gorm:"type:varchar(10);not null;default:'private'" json:"visibility"`
	IsArchived      bool            `gorm:"not null;default:false" json:"is_archived"`
	CreatedBy       uint64          `gorm:"not null;index" json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relations
	Creator    User          `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Lists      []List        `gorm:"foreignKey:BoardID" json:"lists,omitempty"`
	Labels     []Label       `gorm:"foreignKey:BoardID" json:"labels,omitempty"`
	Members    []BoardMember `gorm:"foreignKey:BoardID" json:"members,omitempty"`
	Activities []Activity    `gorm:"foreignKey:BoardID" json:"-"`
}

// MemberRole returns the user's explicit role on the board. The Members
// relation must be loaded; the creator has no implicit entry here.
func (b *Board) MemberRole(userID uint64) (BoardRole, bool) {
	for _, m := range b.Members {
		if m.UserID == userID {
			return m.Role, true
		}
	}
	return "", false
}

// IsOwner reports whether the user created the board or holds the owner role.
func (b *Board) IsOwner(userID uint64) bool {
	if b.CreatedBy == userID {
		return true
	}
	role, ok := b.MemberRole(userID)
	return ok && role == RoleOwner
}

// CanEdit reports whether the user may mutate the board's contents.
// Viewers are explicitly excluded.
func (b *Board) CanEdit(userID uint64) bool {
	if b.CreatedBy == userID {
		return true
	}
	role, ok := b.MemberRole(userID)
	if !ok {
		return false
	}
	return role == RoleOwner || role == RoleAdmin || role == RoleMember
}

// CanView reports whether the user may see the board. Public boards are
// visible to everyone; private boards only to the creator and explicit
// members, regardless of role.
func (b *Board) CanView(userID uint64) bool {
	if b.Visibility == VisibilityPublic {
		return true
	}
	if b.CreatedBy == userID {
		return true
	}
	_, ok := b.MemberRole(userID)
	return ok
}
