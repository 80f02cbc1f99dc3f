package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/shiftline/board-api/internal/models"
	"github.com/shiftline/board-api/internal/repository"
	"github.com/shiftline/board-api/internal/utils"
)

var (
	ErrCardNotFound          = errors.New("card not found")
	ErrCommentNotFound       = errors.New("comment not found")
	ErrChecklistNotFound     = errors.New("checklist not found")
	ErrChecklistItemNotFound = errors.New("checklist item not found")
	ErrAttachmentNotFound    = errors.New("attachment not found")
	ErrTitleRequired         = errors.New("card title is required")
	ErrTitleEmpty            = errors.New("card title cannot be empty")
	ErrCommentRequired       = errors.New("comment content is required")
	ErrInvalidDueDate        = errors.New("due date is not a recognized timestamp")
	ErrFilenameRequired      = errors.New("attachment filename is required")
)

// CardService provides business logic for cards and everything they own:
// labels, assigned members, comments, checklists and attachments.
type CardService struct {
	cardRepo       repository.CardRepository
	listRepo       repository.ListRepository
	labelRepo      repository.LabelRepository
	userRepo       repository.UserRepository
	commentRepo    repository.CommentRepository
	checklistRepo  repository.ChecklistRepository
	attachmentRepo repository.AttachmentRepository
}

// NewCardService creates a new CardService.
func NewCardService(
	cardRepo repository.CardRepository,
	listRepo repository.ListRepository,
	labelRepo repository.LabelRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	checklistRepo repository.ChecklistRepository,
	attachmentRepo repository.AttachmentRepository,
) *CardService {
	return &CardService{
		cardRepo:       cardRepo,
		listRepo:       listRepo,
		labelRepo:      labelRepo,
		userRepo:       userRepo,
		commentRepo:    commentRepo,
		checklistRepo:  checklistRepo,
		attachmentRepo: attachmentRepo,
	}
}

// CreateCard appends a new card at the end of the list.
func (s *CardService) CreateCard(listID, actorID uint64, title string) (*models.Card, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}

	list, err := s.listRepo.FindByID(listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to find list: %w", err)
	}
	if !list.Board.CanEdit(actorID) {
		return nil, ErrPermissionDenied
	}

	maxPos, err := s.cardRepo.MaxPosition(listID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute card position: %w", err)
	}

	card := &models.Card{
		ListID:    listID,
		Title:     title,
		Position:  maxPos + 1,
		CreatedBy: actorID,
	}

	activity := &models.Activity{
		BoardID:    list.BoardID,
		UserID:     &actorID,
		Action:     models.ActionCreatedCard,
		TargetType: "card",
		Details:    datatypes.JSONMap{"title": title},
	}

	if err := s.cardRepo.Create(card, activity); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	return card, nil
}

// GetCard returns a card with its full contents if the user may view the board.
func (s *CardService) GetCard(cardID, actorID uint64) (*models.Card, error) {
	card, err := s.cardRepo.FindByIDFull(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}

	if !card.List.Board.CanView(actorID) {
		return nil, ErrPermissionDenied
	}

	return card, nil
}

// UpdateCardInput holds the optional card fields. A non-nil DueDate string is
// parsed; the empty string clears the due date.
type UpdateCardInput struct {
	Title       *string
	Description *string
	DueDate     *string
	DueComplete *bool
	CoverColor  *string
}

// UpdateCard applies a partial field update to a card.
func (s *CardService) UpdateCard(cardID, actorID uint64, input UpdateCardInput) (*models.Card, error) {
	card, err := s.loadCard(cardID)
	if err != nil {
		return nil, err
	}
	if !card.List.Board.CanEdit(actorID) {
		return nil, ErrPermissionDenied
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		card.Title = *input.Title
	}
	if input.Description != nil {
		card.Description = *input.Description
	}
	if input.DueDate != nil {
		due, err := utils.ParseDueDate(*input.DueDate)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
		card.DueDate = due
	}
	if input.DueComplete != nil {
		card.DueComplete = *input.DueComplete
	}
	if input.CoverColor != nil {
		card.CoverColor = *input.CoverColor
	}

	activity := &models.Activity{
		BoardID:    card.List.BoardID,
		UserID:     &actorID,
		Action:     models.ActionUpdatedCard,
		TargetType: "card",
		TargetID:   card.ID,
		Details:    datatypes.JSONMap{"title": card.Title},
	}

	if err := s.cardRepo.Update(card, activity); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return card, nil
}

// MoveCardInput holds the optional move targets.
type MoveCardInput struct {
	ListID   *uint64
	Position *int
}

// MoveCard moves a card to a new list and/or position. A target list that
// does not exist, or that belongs to a different board, is silently ignored:
// the card keeps its current list and only a supplied position is applied.
func (s *CardService) MoveCard(cardID, actorID uint64, input MoveCardInput) (*models.Card, error) {
	card, err := s.loadCard(cardID)
	if err != nil {
		return nil, err
	}
	board := &card.List.Board
	if !board.CanEdit(actorID) {
		return nil, ErrPermissionDenied
	}

	var activity *models.Activity

	if input.ListID != nil && *input.ListID != card.ListID {
		newList, err := s.listRepo.FindByID(*input.ListID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find target list: %w", err)
		}
		if newList != nil && newList.BoardID == board.ID {
			oldName := card.List.Name
			card.ListID = newList.ID
			card.List = *newList
			activity = &models.Activity{
				BoardID:    board.ID,
				UserID:     &actorID,
				Action:     models.ActionMovedCard,
				TargetType: "card",
				TargetID:   card.ID,
				Details:    datatypes.JSONMap{"from": oldName, "to": newList.Name},
			}
		}
	}

	if input.Position != nil {
		card.Position = *input.Position
	}

	if err := s.cardRepo.Update(card, activity); err != nil {
		return nil, fmt.Errorf("failed to move card: %w", err)
	}

	return card, nil
}

// ArchiveCard hides a card from the board without deleting it.
func (s *CardService) ArchiveCard(cardID, actorID uint64) error {
	card, err := s.loadCard(cardID)
	if err != nil {
		return err
	}
	if !card.List.Board.CanEdit(actorID) {
		return ErrPermissionDenied
	}

	card.IsArchived = true

	activity := &models.Activity{
		BoardID:    card.List.BoardID,
		UserID:     &actorID,
		Action:     models.ActionArchivedCard,
		TargetType: "card",
		TargetID:   card.ID,
		Details:    datatypes.JSONMap{"title": card.Title},
	}

	if err := s.cardRepo.Update(card, activity); err != nil {
		return fmt.Errorf("failed to archive card: %w", err)
	}
	return nil
}

// DeleteCard permanently removes a card and its owned children.
func (s *CardService) DeleteCard(cardID, actorID uint64) error {
	card, err := s.loadCard(cardID)
	if err != nil {
		return err
	}
	if !card.List.Board.CanEdit(actorID) {
		return ErrPermissionDenied
	}

	activity := &models.Activity{
		BoardID:    card.List.BoardID,
		UserID:     &actorID,
		Action:     models.ActionDeletedCard,
		TargetType: "card",
		TargetID:   card.ID,
		Details:    datatypes.JSONMap{"title": card.Title},
	}

	if err := s.cardRepo.Delete(card.ID, activity); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

// SetLabels replaces the card's full label set. Labels belonging to other
// boards are dropped from the set, not rejected.
func (s *CardService) SetLabels(cardID, actorID uint64, labelIDs []uint64) ([]models.Label, error) {
	card, err := s.loadCard(cardID)
	if err != nil {
		return nil, err
	}
	if !card.List.Board.CanEdit(actorID) {
		return nil, ErrPermissionDenied
	}

	labels, err := s.labelRepo.FindByIDsForBoard(labelIDs, card.List.BoardID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve labels: %w", err)
	}

	if err := s.cardRepo.ReplaceLabels(card.ID, labels); err != nil {
		return nil, fmt.Errorf("failed to set labels: %w", err)
	}
	return labels, nil
}

// SetMembers replaces the card's full assigned-member set. Any known user may
// be assigned; unknown IDs are dropped.
func (s *CardService) SetMembers(cardID, actorID uint64, userIDs []uint64) ([]models.User, error) {
	card, err := s.loadCard(cardID)
	if err != nil {
		return nil, err
	}
	if !card.List.Board.CanEdit(actorID) {
		return nil, ErrPermissionDenied
	}

	users, err := s.userRepo.FindByIDs(uniqueUint64(userIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve users: %w", err)
	}

	if err := s.cardRepo.ReplaceMembers(card.ID, users); err != nil {
		return nil, fmt.Errorf("failed to set members: %w", err)
	}
	return users, nil
}

// AddComment adds a comment to a card.
func (s *CardService) AddComment(cardID, actorID uint64, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrCommentRequired
	}

	card, err := s.loadCard(cardID)
	if err != nil {
		return nil, err
	}
	if !card.List.Board.CanEdit(actorID) {
		return nil, ErrPermissionDenied
	}

	comment := &models.Comment{
		CardID:  card.ID,
		UserID:  actorID,
		Content: content,
	}

	activity := &models.Activity{
		BoardID:    card.List.BoardID,
		UserID:     &actorID,
		Action:     models.ActionAddedComment,
		TargetType: "card",
		TargetID:   card.ID,
	}

	if err := s.commentRepo.Create(comment, activity); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a comment. Only the comment's author or the board
// owner may do so, a narrower rule than general edit rights.
func (s *CardService) DeleteComment(commentID, actorID uint64) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to find comment: %w", err)
	}

	card, err := s.loadCard(comment.CardID)
	if err != nil {
		return err
	}

	if comment.UserID != actorID && !card.List.Board.IsOwner(actorID) {
		return ErrPermissionDenied
	}

	if err := s.commentRepo.Delete(comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// AddChecklist appends a checklist to a card.
func (s *CardService) AddChecklist(cardID, actorID uint64, name string) (*models.Checklist, error) {
	card, err := s.loadCard(cardID)
	if err != nil {
		return nil, err
	}
	if !card.List.Board.CanEdit(actorID) {
		return nil, ErrPermissionDenied
	}

	if strings.TrimSpace(name) == "" {
		name = "Checklist"
	}

	maxPos, err := s.checklistRepo.MaxPosition(card.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute checklist position: %w", err)
	}

	checklist := &models.Checklist{
		CardID:   card.ID,
		Name:     name,
		Position: maxPos + 1,
	}
	if err := s.checklistRepo.Create(checklist); err != nil {
		return nil, fmt.Errorf("failed to create checklist: %w", err)
	}
	return checklist, nil
}

// DeleteChecklist removes a checklist and its items.
func (s *CardService) DeleteChecklist(checklistID, actorID uint64) error {
	checklist, card, err := s.loadChecklist(checklistID)
	if err != nil {
		return err
	}
	if !card.List.Board.CanEdit(actorID) {
		return ErrPermissionDenied
	}

	if err := s.checklistRepo.Delete(checklist.ID); err != nil {
		return fmt.Errorf("failed to delete checklist: %w", err)
	}
	return nil
}

// AddChecklistItem appends an item to a checklist.
func (s *CardService) AddChecklistItem(checklistID, actorID uint64, content string) (*models.ChecklistItem, error) {
	checklist, card, err := s.loadChecklist(checklistID)
	if err != nil {
		return nil, err
	}
	if !card.List.Board.CanEdit(actorID) {
		return nil, ErrPermissionDenied
	}

	maxPos, err := s.checklistRepo.MaxItemPosition(checklist.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute item position: %w", err)
	}

	item := &models.ChecklistItem{
		ChecklistID: checklist.ID,
		Content:     content,
		Position:    maxPos + 1,
	}
	if err := s.checklistRepo.CreateItem(item); err != nil {
		return nil, fmt.Errorf("failed to create checklist item: %w", err)
	}
	return item, nil
}

// ToggleChecklistItem flips an item's completion. CompletedBy and
// CompletedAt are set together on completion and cleared together on
// un-completion; never one without the other.
func (s *CardService) ToggleChecklistItem(itemID, actorID uint64) (*models.ChecklistItem, error) {
	item, err := s.checklistRepo.FindItem(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChecklistItemNotFound
		}
		return nil, fmt.Errorf("failed to find checklist item: %w", err)
	}

	_, card, err := s.loadChecklist(item.ChecklistID)
	if err != nil {
		return nil, err
	}
	if !card.List.Board.CanEdit(actorID) {
		return nil, ErrPermissionDenied
	}

	item.IsComplete = !item.IsComplete
	if item.IsComplete {
		now := time.Now()
		item.CompletedBy = &actorID
		item.CompletedAt = &now
	} else {
		item.CompletedBy = nil
		item.CompletedAt = nil
	}

	if err := s.checklistRepo.UpdateItem(item); err != nil {
		return nil, fmt.Errorf("failed to toggle checklist item: %w", err)
	}
	return item, nil
}

// AttachmentInput holds the metadata registered for an upload.
type AttachmentInput struct {
	Filename string
	Filepath string
	Filesize int64
	Filetype string
}

// AddAttachment registers attachment metadata on a card. The file contents
// are opaque to this service.
func (s *CardService) AddAttachment(cardID, actorID uint64, input AttachmentInput) (*models.Attachment, error) {
	if strings.TrimSpace(input.Filename) == "" {
		return nil, ErrFilenameRequired
	}

	card, err := s.loadCard(cardID)
	if err != nil {
		return nil, err
	}
	if !card.List.Board.CanEdit(actorID) {
		return nil, ErrPermissionDenied
	}

	attachment := &models.Attachment{
		CardID:     card.ID,
		Filename:   input.Filename,
		Filepath:   input.Filepath,
		Filesize:   input.Filesize,
		Filetype:   input.Filetype,
		UploadedBy: actorID,
	}
	if err := s.attachmentRepo.Create(attachment); err != nil {
		return nil, fmt.Errorf("failed to add attachment: %w", err)
	}
	return attachment, nil
}

// ListAttachments returns the card's attachment metadata.
func (s *CardService) ListAttachments(cardID, actorID uint64) ([]models.Attachment, error) {
	card, err := s.loadCard(cardID)
	if err != nil {
		return nil, err
	}
	if !card.List.Board.CanView(actorID) {
		return nil, ErrPermissionDenied
	}

	attachments, err := s.attachmentRepo.ListByCard(card.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return attachments, nil
}

// DeleteAttachment removes attachment metadata.
func (s *CardService) DeleteAttachment(attachmentID, actorID uint64) error {
	attachment, err := s.attachmentRepo.FindByID(attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttachmentNotFound
		}
		return fmt.Errorf("failed to find attachment: %w", err)
	}

	card, err := s.loadCard(attachment.CardID)
	if err != nil {
		return err
	}
	if !card.List.Board.CanEdit(actorID) {
		return ErrPermissionDenied
	}

	if err := s.attachmentRepo.Delete(attachment.ID); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return nil
}

// loadCard fetches a card with its list, board and membership chain for
// access checks.
func (s *CardService) loadCard(cardID uint64) (*models.Card, error) {
	card, err := s.cardRepo.FindByID(cardID, "List", "List.Board", "List.Board.Members")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	return card, nil
}

// loadChecklist fetches a checklist and its owning card with the access chain.
func (s *CardService) loadChecklist(checklistID uint64) (*models.Checklist, *models.Card, error) {
	checklist, err := s.checklistRepo.FindByID(checklistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrChecklistNotFound
		}
		return nil, nil, fmt.Errorf("failed to find checklist: %w", err)
	}

	card, err := s.loadCard(checklist.CardID)
	if err != nil {
		return nil, nil, err
	}
	return checklist, card, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
