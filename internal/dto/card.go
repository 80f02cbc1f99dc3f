package dto

import (
	"time"

	"github.com/shiftline/board-api/internal/models"
)

// ChecklistProgressDTO summarizes item completion across a card's checklists
type ChecklistProgressDTO struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// CardTileDTO represents a card as shown on the board (minimal data)
type CardTileDTO struct {
	ID                uint64               `json:"id"`
	ListID            uint64               `json:"list_id"`
	Title             string               `json:"title"`
	Position          int                  `json:"position"`
	DueDate           *time.Time           `json:"due_date"`
	DueComplete       bool                 `json:"due_complete"`
	IsOverdue         bool                 `json:"is_overdue"`
	CoverColor        string               `json:"cover_color"`
	Labels            []LabelDTO           `json:"labels"`
	Members           []UserDTO            `json:"members"`
	ChecklistProgress ChecklistProgressDTO `json:"checklist_progress"`
}

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	User      *UserDTO  `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ChecklistItemDTO represents a checklist item
type ChecklistItemDTO struct {
	ID          uint64     `json:"id"`
	Content     string     `json:"content"`
	IsComplete  bool       `json:"is_complete"`
	Position    int        `json:"position"`
	CompletedBy *uint64    `json:"completed_by"`
	CompletedAt *time.Time `json:"completed_at"`
}

// ChecklistDTO represents a checklist with its items
type ChecklistDTO struct {
	ID       uint64             `json:"id"`
	Name     string             `json:"name"`
	Position int                `json:"position"`
	Items    []ChecklistItemDTO `json:"items"`
}

// AttachmentDTO represents attachment metadata
type AttachmentDTO struct {
	ID         uint64    `json:"id"`
	Filename   string    `json:"filename"`
	Filepath   string    `json:"filepath"`
	Filesize   int64     `json:"filesize"`
	Filetype   string    `json:"filetype"`
	Uploader   *UserDTO  `json:"uploader,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// CardDetailDTO represents a fully hydrated card
type CardDetailDTO struct {
	ID                uint64               `json:"id"`
	ListID            uint64               `json:"list_id"`
	Title             string               `json:"title"`
	Description       string               `json:"description"`
	Position          int                  `json:"position"`
	DueDate           *time.Time           `json:"due_date"`
	DueComplete       bool                 `json:"due_complete"`
	IsOverdue         bool                 `json:"is_overdue"`
	IsArchived        bool                 `json:"is_archived"`
	CoverColor        string               `json:"cover_color"`
	CreatedBy         uint64               `json:"created_by"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	Creator           *UserDTO             `json:"creator,omitempty"`
	Labels            []LabelDTO           `json:"labels"`
	Members           []UserDTO            `json:"members"`
	Comments          []CommentDTO         `json:"comments"`
	Checklists        []ChecklistDTO       `json:"checklists"`
	Attachments       []AttachmentDTO      `json:"attachments"`
	ChecklistProgress ChecklistProgressDTO `json:"checklist_progress"`
}

// ToCardTileDTO converts a Card model to CardTileDTO. Labels, members and
// checklist items must be preloaded for the derived fields to be right.
func ToCardTileDTO(card models.Card) CardTileDTO {
	completed, total := card.ChecklistProgress()
	tile := CardTileDTO{
		ID:                card.ID,
		ListID:            card.ListID,
		Title:             card.Title,
		Position:          card.Position,
		DueDate:           card.DueDate,
		DueComplete:       card.DueComplete,
		IsOverdue:         card.IsOverdue(time.Now()),
		CoverColor:        card.CoverColor,
		Labels:            ToLabelDTOs(card.Labels),
		Members:           make([]UserDTO, len(card.Members)),
		ChecklistProgress: ChecklistProgressDTO{Completed: completed, Total: total},
	}
	for i, member := range card.Members {
		tile.Members[i] = ToUserDTO(member)
	}
	return tile
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	item := CommentDTO{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.User.ID != 0 {
		user := ToUserDTO(comment.User)
		item.User = &user
	}
	return item
}

// ToChecklistDTO converts a Checklist model to ChecklistDTO
func ToChecklistDTO(checklist models.Checklist) ChecklistDTO {
	items := make([]ChecklistItemDTO, len(checklist.Items))
	for i, item := range checklist.Items {
		items[i] = ChecklistItemDTO{
			ID:          item.ID,
			Content:     item.Content,
			IsComplete:  item.IsComplete,
			Position:    item.Position,
			CompletedBy: item.CompletedBy,
			CompletedAt: item.CompletedAt,
		}
	}
	return ChecklistDTO{
		ID:       checklist.ID,
		Name:     checklist.Name,
		Position: checklist.Position,
		Items:    items,
	}
}

// ToAttachmentDTO converts an Attachment model to AttachmentDTO
func ToAttachmentDTO(attachment models.Attachment) AttachmentDTO {
	item := AttachmentDTO{
		ID:         attachment.ID,
		Filename:   attachment.Filename,
		Filepath:   attachment.Filepath,
		Filesize:   attachment.Filesize,
		Filetype:   attachment.Filetype,
		UploadedAt: attachment.UploadedAt,
	}
	if attachment.Uploader.ID != 0 {
		uploader := ToUserDTO(attachment.Uploader)
		item.Uploader = &uploader
	}
	return item
}

// ToAttachmentDTOs converts a slice of attachments
func ToAttachmentDTOs(attachments []models.Attachment) []AttachmentDTO {
	items := make([]AttachmentDTO, len(attachments))
	for i, attachment := range attachments {
		items[i] = ToAttachmentDTO(attachment)
	}
	return items
}

// ToCardDetailDTO converts a fully loaded Card model to CardDetailDTO
func ToCardDetailDTO(card models.Card) CardDetailDTO {
	completed, total := card.ChecklistProgress()
	detail := CardDetailDTO{
		ID:                card.ID,
		ListID:            card.ListID,
		Title:             card.Title,
		Description:       card.Description,
		Position:          card.Position,
		DueDate:           card.DueDate,
		DueComplete:       card.DueComplete,
		IsOverdue:         card.IsOverdue(time.Now()),
		IsArchived:        card.IsArchived,
		CoverColor:        card.CoverColor,
		CreatedBy:         card.CreatedBy,
		CreatedAt:         card.CreatedAt,
		UpdatedAt:         card.UpdatedAt,
		Labels:            ToLabelDTOs(card.Labels),
		Members:           make([]UserDTO, len(card.Members)),
		Comments:          make([]CommentDTO, len(card.Comments)),
		Checklists:        make([]ChecklistDTO, len(card.Checklists)),
		Attachments:       ToAttachmentDTOs(card.Attachments),
		ChecklistProgress: ChecklistProgressDTO{Completed: completed, Total: total},
	}

	if card.Creator.ID != 0 {
		creator := ToUserDTO(card.Creator)
		detail.Creator = &creator
	}
	for i, member := range card.Members {
		detail.Members[i] = ToUserDTO(member)
	}
	for i, comment := range card.Comments {
		detail.Comments[i] = ToCommentDTO(comment)
	}
	for i, checklist := range card.Checklists {
		detail.Checklists[i] = ToChecklistDTO(checklist)
	}

	return detail
}
