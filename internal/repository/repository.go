package repository

import (
	"github.com/shiftline/board-api/internal/models"
)

// Compound mutations take the activity entry describing them and persist both
// inside one transaction, so a failed write never leaves an orphaned audit
// row. Methods accepting a nil activity perform a plain write.

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List returns a page of users with the total count, for assignment pickers
	List(offset, limit int) ([]models.User, int64, error)

	// FindByIDs returns the users among the given IDs that exist
	FindByIDs(ids []uint64) ([]models.User, error)
}

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	// CreateWithDefaults creates a board together with its seed labels, seed
	// lists and the created_board activity entry as one atomic unit.
	CreateWithDefaults(board *models.Board, labels []models.Label, lists []models.List, activity *models.Activity) error

	// FindByID finds a board by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Board, error)

	// FindByIDWithContents loads a board with members, labels and its
	// non-archived lists and cards in position order (ties broken by id).
	FindByIDWithContents(id uint64) (*models.Board, error)

	// ListOwned returns non-archived boards created by the user
	ListOwned(userID uint64) ([]models.Board, error)

	// ListJoined returns non-archived boards the user is an explicit member of
	ListJoined(userID uint64) ([]models.Board, error)

	// ListPublic returns all non-archived public boards
	ListPublic() ([]models.Board, error)

	// Update saves board fields and the describing activity entry
	Update(board *models.Board, activity *models.Activity) error

	// Delete removes the board and everything it owns: lists, cards, card
	// associations, labels, comments, checklists, items, attachments,
	// memberships and activity entries.
	Delete(id uint64) error

	// AddMember adds a membership row
	AddMember(member *models.BoardMember, activity *models.Activity) error

	// RemoveMember deletes the membership row for the pair
	RemoveMember(boardID, userID uint64, activity *models.Activity) error

	// FindMember finds the membership row for the pair
	FindMember(boardID, userID uint64) (*models.BoardMember, error)

	// ListMembers lists all members of a board with their users
	ListMembers(boardID uint64) ([]models.BoardMember, error)
}

// LabelRepository defines the interface for label data access
type LabelRepository interface {
	Create(label *models.Label) error
	FindByID(id uint64) (*models.Label, error)
	ListByBoard(boardID uint64) ([]models.Label, error)

	// FindByIDsForBoard returns the labels among ids that belong to the board;
	// foreign labels are simply absent from the result.
	FindByIDsForBoard(ids []uint64, boardID uint64) ([]models.Label, error)

	Update(label *models.Label) error
	Delete(id uint64) error
}

// ListRepository defines the interface for list data access
type ListRepository interface {
	Create(list *models.List, activity *models.Activity) error

	// FindByID loads a list with its board and the board's members, so
	// callers can run access checks without further queries.
	FindByID(id uint64) (*models.List, error)

	Update(list *models.List, activity *models.Activity) error

	// MaxPosition returns the highest position among the board's lists,
	// archived ones included; zero for an empty board.
	MaxPosition(boardID uint64) (int, error)
}

// CardRepository defines the interface for card data access
type CardRepository interface {
	Create(card *models.Card, activity *models.Activity) error

	// FindByID finds a card by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Card, error)

	// FindByIDFull loads a card with labels, members, comments newest-first,
	// checklists with items, attachments, and its list/board/membership chain.
	FindByIDFull(id uint64) (*models.Card, error)

	Update(card *models.Card, activity *models.Activity) error

	// Delete removes the card and its owned children in one transaction.
	Delete(id uint64, activity *models.Activity) error

	// MaxPosition returns the highest position among the list's cards;
	// zero for an empty list.
	MaxPosition(listID uint64) (int, error)

	// ReplaceLabels replaces the card's full label set
	ReplaceLabels(cardID uint64, labels []models.Label) error

	// ReplaceMembers replaces the card's full assigned-member set
	ReplaceMembers(cardID uint64, users []models.User) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment, activity *models.Activity) error
	FindByID(id uint64) (*models.Comment, error)
	Delete(id uint64) error
}

// ChecklistRepository defines the interface for checklist data access
type ChecklistRepository interface {
	Create(checklist *models.Checklist) error

	// FindByID loads a checklist with its items in position order
	FindByID(id uint64) (*models.Checklist, error)

	// Delete removes the checklist and its items in one transaction
	Delete(id uint64) error

	// MaxPosition returns the highest checklist position on the card
	MaxPosition(cardID uint64) (int, error)

	CreateItem(item *models.ChecklistItem) error
	FindItem(id uint64) (*models.ChecklistItem, error)
	UpdateItem(item *models.ChecklistItem) error

	// MaxItemPosition returns the highest item position in the checklist
	MaxItemPosition(checklistID uint64) (int, error)
}

// AttachmentRepository defines the interface for attachment metadata access
type AttachmentRepository interface {
	Create(attachment *models.Attachment) error
	FindByID(id uint64) (*models.Attachment, error)
	ListByCard(cardID uint64) ([]models.Attachment, error)
	Delete(id uint64) error
}

// ActivityRepository defines the interface for the append-only activity log
type ActivityRepository interface {
	// Record appends an entry outside of any compound mutation
	Record(activity *models.Activity) error

	// ListByBoard returns the most recent entries, newest first
	ListByBoard(boardID uint64, limit int) ([]models.Activity, error)
}
