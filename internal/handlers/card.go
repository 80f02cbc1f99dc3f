package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shiftline/board-api/internal/dto"
	apierrors "github.com/shiftline/board-api/internal/errors"
	"github.com/shiftline/board-api/internal/services"
)

// CardHandler coordinates card endpoints.
type CardHandler struct {
	cardService *services.CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService *services.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// GetCard returns a fully hydrated card.
func (h *CardHandler) GetCard(c *gin.Context) {
	userID, cardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	card, err := h.cardService.GetCard(cardID, userID)
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCardDetailDTO(*card))
}

// UpdateCard applies a partial field update. Sending due_date as an empty
// string clears the due date.
func (h *CardHandler) UpdateCard(c *gin.Context) {
	userID, cardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	type UpdateCardRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		DueDate     *string `json:"due_date"`
		DueComplete *bool   `json:"due_complete"`
		CoverColor  *string `json:"cover_color"`
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	card, err := h.cardService.UpdateCard(cardID, userID, services.UpdateCardInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		DueComplete: req.DueComplete,
		CoverColor:  req.CoverColor,
	})
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}

// MoveCard moves a card to another list and/or position.
func (h *CardHandler) MoveCard(c *gin.Context) {
	userID, cardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	type MoveCardRequest struct {
		ListID   *uint64 `json:"list_id"`
		Position *int    `json:"position"`
	}

	var req MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	card, err := h.cardService.MoveCard(cardID, userID, services.MoveCardInput{
		ListID:   req.ListID,
		Position: req.Position,
	})
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}

// ArchiveCard hides a card from the board.
func (h *CardHandler) ArchiveCard(c *gin.Context) {
	userID, cardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	if err := h.cardService.ArchiveCard(cardID, userID); err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Card archived"})
}

// DeleteCard permanently removes a card.
func (h *CardHandler) DeleteCard(c *gin.Context) {
	userID, cardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(cardID, userID); err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Card deleted"})
}

// SetLabels replaces the card's full label set.
func (h *CardHandler) SetLabels(c *gin.Context) {
	userID, cardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	type SetLabelsRequest struct {
		LabelIDs []uint64 `json:"label_ids"`
	}

	var req SetLabelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	labels, err := h.cardService.SetLabels(cardID, userID, req.LabelIDs)
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"labels": dto.ToLabelDTOs(labels)})
}

// SetMembers replaces the card's full assigned-member set.
func (h *CardHandler) SetMembers(c *gin.Context) {
	userID, cardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	type SetMembersRequest struct {
		UserIDs []uint64 `json:"user_ids"`
	}

	var req SetMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	users, err := h.cardService.SetMembers(cardID, userID, req.UserIDs)
	if err != nil {
		respondCardError(c, err)
		return
	}

	members := make([]dto.UserDTO, len(users))
	for i, user := range users {
		members[i] = dto.ToUserDTO(user)
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func respondCardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrCommentRequired),
		errors.Is(err, services.ErrInvalidDueDate),
		errors.Is(err, services.ErrFilenameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrCardNotFound),
		errors.Is(err, services.ErrListNotFound),
		errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrChecklistNotFound),
		errors.Is(err, services.ErrChecklistItemNotFound),
		errors.Is(err, services.ErrAttachmentNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
