package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/shiftline/board-api/internal/models"
)

// BoardSummaryDTO represents a board in overview responses (minimal data)
type BoardSummaryDTO struct {
	ID              uint64                 `json:"id"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	BackgroundColor string                 `json:"background_color"`
	Visibility      models.BoardVisibility `json:"visibility"`
	CreatedBy       uint64                 `json:"created_by"`
	CreatedAt       time.Time              `json:"created_at"`
}

// BoardOverviewResponse groups the boards visible from the dashboard
type BoardOverviewResponse struct {
	Owned  []BoardSummaryDTO `json:"owned"`
	Joined []BoardSummaryDTO `json:"joined"`
	Public []BoardSummaryDTO `json:"public"`
}

// BoardMemberDTO represents a role-tagged membership in API responses
type BoardMemberDTO struct {
	User    UserDTO          `json:"user"`
	Role    models.BoardRole `json:"role"`
	AddedAt time.Time        `json:"added_at"`
}

// LabelDTO represents a label in API responses
type LabelDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ListDTO represents a list with its cards in board detail responses
type ListDTO struct {
	ID       uint64        `json:"id"`
	Name     string        `json:"name"`
	Position int           `json:"position"`
	Cards    []CardTileDTO `json:"cards"`
}

// BoardDetailDTO represents a fully hydrated board
type BoardDetailDTO struct {
	ID              uint64                 `json:"id"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	BackgroundColor string                 `json:"background_color"`
	Visibility      models.BoardVisibility `json:"visibility"`
	CreatedBy       uint64                 `json:"created_by"`
	CreatedAt       time.Time              `json:"created_at"`
	Members         []BoardMemberDTO       `json:"members"`
	Labels          []LabelDTO             `json:"labels"`
	Lists           []ListDTO              `json:"lists"`
}

// ActivityDTO represents an activity feed entry
type ActivityDTO struct {
	ID         uint64            `json:"id"`
	Action     string            `json:"action"`
	TargetType string            `json:"target_type"`
	TargetID   uint64            `json:"target_id"`
	Details    datatypes.JSONMap `json:"details"`
	User       *UserDTO          `json:"user"`
	CreatedAt  time.Time         `json:"created_at"`
}

// ToBoardSummaryDTO converts a Board model to BoardSummaryDTO
func ToBoardSummaryDTO(board models.Board) BoardSummaryDTO {
	return BoardSummaryDTO{
		ID:              board.ID,
		Name:            board.Name,
		Description:     board.Description,
		BackgroundColor: board.BackgroundColor,
		Visibility:      board.Visibility,
		CreatedBy:       board.CreatedBy,
		CreatedAt:       board.CreatedAt,
	}
}

// ToBoardSummaryDTOs converts a slice of boards
func ToBoardSummaryDTOs(boards []models.Board) []BoardSummaryDTO {
	items := make([]BoardSummaryDTO, len(boards))
	for i, board := range boards {
		items[i] = ToBoardSummaryDTO(board)
	}
	return items
}

// ToBoardMemberDTO converts a BoardMember model to BoardMemberDTO
func ToBoardMemberDTO(member models.BoardMember) BoardMemberDTO {
	return BoardMemberDTO{
		User:    ToUserDTO(member.User),
		Role:    member.Role,
		AddedAt: member.AddedAt,
	}
}

// ToLabelDTO converts a Label model to LabelDTO
func ToLabelDTO(label models.Label) LabelDTO {
	return LabelDTO{
		ID:    label.ID,
		Name:  label.Name,
		Color: label.Color,
	}
}

// ToLabelDTOs converts a slice of labels
func ToLabelDTOs(labels []models.Label) []LabelDTO {
	items := make([]LabelDTO, len(labels))
	for i, label := range labels {
		items[i] = ToLabelDTO(label)
	}
	return items
}

// ToBoardDetailDTO converts a fully loaded Board model to BoardDetailDTO.
// Members, labels, lists and cards must be preloaded.
func ToBoardDetailDTO(board models.Board) BoardDetailDTO {
	detail := BoardDetailDTO{
		ID:              board.ID,
		Name:            board.Name,
		Description:     board.Description,
		BackgroundColor: board.BackgroundColor,
		Visibility:      board.Visibility,
		CreatedBy:       board.CreatedBy,
		CreatedAt:       board.CreatedAt,
		Members:         make([]BoardMemberDTO, len(board.Members)),
		Labels:          ToLabelDTOs(board.Labels),
		Lists:           make([]ListDTO, len(board.Lists)),
	}

	for i, member := range board.Members {
		detail.Members[i] = ToBoardMemberDTO(member)
	}

	for i, list := range board.Lists {
		cards := make([]CardTileDTO, len(list.Cards))
		for j, card := range list.Cards {
			cards[j] = ToCardTileDTO(card)
		}
		detail.Lists[i] = ListDTO{
			ID:       list.ID,
			Name:     list.Name,
			Position: list.Position,
			Cards:    cards,
		}
	}

	return detail
}

// ToActivityDTO converts an Activity model to ActivityDTO
func ToActivityDTO(activity models.Activity) ActivityDTO {
	item := ActivityDTO{
		ID:         activity.ID,
		Action:     activity.Action,
		TargetType: activity.TargetType,
		TargetID:   activity.TargetID,
		Details:    activity.Details,
		CreatedAt:  activity.CreatedAt,
	}
	if activity.User != nil && activity.User.ID != 0 {
		user := ToUserDTO(*activity.User)
		item.User = &user
	}
	return item
}

// ToActivityDTOs converts a slice of activity entries
func ToActivityDTOs(activities []models.Activity) []ActivityDTO {
	items := make([]ActivityDTO, len(activities))
	for i, activity := range activities {
		items[i] = ToActivityDTO(activity)
	}
	return items
}
