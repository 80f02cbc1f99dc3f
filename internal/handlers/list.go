package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/shiftline/board-api/internal/errors"
	"github.com/shiftline/board-api/internal/services"
)

// ListHandler coordinates list endpoints. Lists are created through the
// board routes; this handles operations on an existing list.
type ListHandler struct {
	boardService *services.BoardService
	cardService  *services.CardService
}

// NewListHandler creates a new ListHandler.
func NewListHandler(boardService *services.BoardService, cardService *services.CardService) *ListHandler {
	return &ListHandler{
		boardService: boardService,
		cardService:  cardService,
	}
}

// RenameList renames a list. An empty name keeps the current one.
func (h *ListHandler) RenameList(c *gin.Context) {
	userID, listID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	type RenameListRequest struct {
		Name string `json:"name"`
	}

	var req RenameListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	list, err := h.boardService.RenameList(listID, userID, req.Name)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// ArchiveList hides a list from the board.
func (h *ListHandler) ArchiveList(c *gin.Context) {
	userID, listID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	if err := h.boardService.ArchiveList(listID, userID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "List archived"})
}

// MoveList writes the supplied position verbatim.
func (h *ListHandler) MoveList(c *gin.Context) {
	userID, listID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	type MoveListRequest struct {
		Position *int `json:"position" binding:"required"`
	}

	var req MoveListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.boardService.MoveList(listID, userID, *req.Position); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "List moved"})
}

// CreateCard appends a new card to the list.
func (h *ListHandler) CreateCard(c *gin.Context) {
	userID, listID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	type CreateCardRequest struct {
		Title string `json:"title" binding:"required,max=200"`
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	card, err := h.cardService.CreateCard(listID, userID, req.Title)
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, card)
}
