package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shiftline/board-api/internal/dto"
	apierrors "github.com/shiftline/board-api/internal/errors"
	"github.com/shiftline/board-api/internal/services"
)

// CardContentHandler coordinates comment, checklist and attachment endpoints.
type CardContentHandler struct {
	cardService *services.CardService
}

// NewCardContentHandler creates a new CardContentHandler.
func NewCardContentHandler(cardService *services.CardService) *CardContentHandler {
	return &CardContentHandler{
		cardService: cardService,
	}
}

// AddComment adds a comment to a card.
func (h *CardContentHandler) AddComment(c *gin.Context) {
	userID, cardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	type AddCommentRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.cardService.AddComment(cardID, userID, req.Content)
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// DeleteComment removes a comment. Author or board owner only.
func (h *CardContentHandler) DeleteComment(c *gin.Context) {
	userID, commentID, ok := requestActorAndID(c, "commentId")
	if !ok {
		return
	}

	if err := h.cardService.DeleteComment(commentID, userID); err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// AddChecklist appends a checklist to a card.
func (h *CardContentHandler) AddChecklist(c *gin.Context) {
	userID, cardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	type AddChecklistRequest struct {
		Name string `json:"name"`
	}

	var req AddChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	checklist, err := h.cardService.AddChecklist(cardID, userID, req.Name)
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChecklistDTO(*checklist))
}

// DeleteChecklist removes a checklist and its items.
func (h *CardContentHandler) DeleteChecklist(c *gin.Context) {
	userID, checklistID, ok := requestActorAndID(c, "checklistId")
	if !ok {
		return
	}

	if err := h.cardService.DeleteChecklist(checklistID, userID); err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Checklist deleted"})
}

// AddChecklistItem appends an item to a checklist.
func (h *CardContentHandler) AddChecklistItem(c *gin.Context) {
	userID, checklistID, ok := requestActorAndID(c, "checklistId")
	if !ok {
		return
	}

	type AddItemRequest struct {
		Content string `json:"content"`
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.cardService.AddChecklistItem(checklistID, userID, req.Content)
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ToggleChecklistItem flips an item's completion state.
func (h *CardContentHandler) ToggleChecklistItem(c *gin.Context) {
	userID, itemID, ok := requestActorAndID(c, "itemId")
	if !ok {
		return
	}

	item, err := h.cardService.ToggleChecklistItem(itemID, userID)
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// AddAttachment registers attachment metadata on a card.
func (h *CardContentHandler) AddAttachment(c *gin.Context) {
	userID, cardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	type AddAttachmentRequest struct {
		Filename string `json:"filename" binding:"required,max=255"`
		Filepath string `json:"filepath"`
		Filesize int64  `json:"filesize"`
		Filetype string `json:"filetype"`
	}

	var req AddAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	attachment, err := h.cardService.AddAttachment(cardID, userID, services.AttachmentInput{
		Filename: req.Filename,
		Filepath: req.Filepath,
		Filesize: req.Filesize,
		Filetype: req.Filetype,
	})
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAttachmentDTO(*attachment))
}

// ListAttachments returns the card's attachment metadata.
func (h *CardContentHandler) ListAttachments(c *gin.Context) {
	userID, cardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	attachments, err := h.cardService.ListAttachments(cardID, userID)
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attachments": dto.ToAttachmentDTOs(attachments)})
}

// DeleteAttachment removes attachment metadata.
func (h *CardContentHandler) DeleteAttachment(c *gin.Context) {
	userID, attachmentID, ok := requestActorAndID(c, "attachmentId")
	if !ok {
		return
	}

	if err := h.cardService.DeleteAttachment(attachmentID, userID); err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attachment deleted"})
}
