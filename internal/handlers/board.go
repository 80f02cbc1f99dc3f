package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shiftline/board-api/internal/dto"
	apierrors "github.com/shiftline/board-api/internal/errors"
	"github.com/shiftline/board-api/internal/middleware"
	"github.com/shiftline/board-api/internal/models"
	"github.com/shiftline/board-api/internal/services"
)

// BoardHandler coordinates board, membership, label and activity endpoints.
type BoardHandler struct {
	boardService *services.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// ListBoards returns the dashboard overview: owned, joined and public boards.
func (h *BoardHandler) ListBoards(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	overview, err := h.boardService.ListBoards(userID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BoardOverviewResponse{
		Owned:  dto.ToBoardSummaryDTOs(overview.Owned),
		Joined: dto.ToBoardSummaryDTOs(overview.Joined),
		Public: dto.ToBoardSummaryDTOs(overview.Public),
	})
}

// CreateBoard creates a new board with its default labels and lists.
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateBoardRequest struct {
		Name            string `json:"name" binding:"required,max=100"`
		Description     string `json:"description"`
		BackgroundColor string `json:"background_color"`
		Visibility      string `json:"visibility"`
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(services.CreateBoardInput{
		Name:            req.Name,
		Description:     req.Description,
		BackgroundColor: req.BackgroundColor,
		Visibility:      models.BoardVisibility(req.Visibility),
		OwnerID:         userID,
	})
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardSummaryDTO(*board))
}

// GetBoard returns a fully hydrated board.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	userID, boardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	board, err := h.boardService.GetBoard(boardID, userID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDetailDTO(*board))
}

// UpdateBoard updates board settings.
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	userID, boardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	type UpdateBoardRequest struct {
		Name            *string `json:"name"`
		Description     *string `json:"description"`
		BackgroundColor *string `json:"background_color"`
		Visibility      *string `json:"visibility"`
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateBoardInput{
		Name:            req.Name,
		Description:     req.Description,
		BackgroundColor: req.BackgroundColor,
	}
	if req.Visibility != nil {
		visibility := models.BoardVisibility(*req.Visibility)
		input.Visibility = &visibility
	}

	board, err := h.boardService.UpdateBoard(boardID, userID, input)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardSummaryDTO(*board))
}

// ArchiveBoard hides a board from default views.
func (h *BoardHandler) ArchiveBoard(c *gin.Context) {
	userID, boardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	if err := h.boardService.ArchiveBoard(boardID, userID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board archived"})
}

// DeleteBoard permanently removes a board and everything on it.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	userID, boardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(boardID, userID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board deleted"})
}

// ListMembers returns the board's membership set.
func (h *BoardHandler) ListMembers(c *gin.Context) {
	userID, boardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	members, err := h.boardService.ListMembers(boardID, userID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	items := make([]dto.BoardMemberDTO, len(members))
	for i, member := range members {
		items[i] = dto.ToBoardMemberDTO(member)
	}
	c.JSON(http.StatusOK, gin.H{"members": items})
}

// AddMember grants a user a role on the board.
func (h *BoardHandler) AddMember(c *gin.Context) {
	userID, boardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	type AddMemberRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
		Role   string `json:"role"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.boardService.AddMember(boardID, userID, req.UserID, models.BoardRole(req.Role)); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member added"})
}

// RemoveMember revokes a user's membership.
func (h *BoardHandler) RemoveMember(c *gin.Context) {
	userID, boardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	memberID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.boardService.RemoveMember(boardID, userID, memberID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

// ActivityFeed returns the board's most recent activity, newest first.
func (h *BoardHandler) ActivityFeed(c *gin.Context) {
	userID, boardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	activities, err := h.boardService.ActivityFeed(boardID, userID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": dto.ToActivityDTOs(activities)})
}

// CreateList appends a new list to the board.
func (h *BoardHandler) CreateList(c *gin.Context) {
	userID, boardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	type CreateListRequest struct {
		Name string `json:"name"`
	}

	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	list, err := h.boardService.CreateList(boardID, userID, req.Name)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, list)
}

// ListLabels returns the board's labels.
func (h *BoardHandler) ListLabels(c *gin.Context) {
	userID, boardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	labels, err := h.boardService.ListLabels(boardID, userID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"labels": dto.ToLabelDTOs(labels)})
}

// CreateLabel adds a label to the board.
func (h *BoardHandler) CreateLabel(c *gin.Context) {
	userID, boardID, ok := requestActorAndID(c, "id")
	if !ok {
		return
	}

	type CreateLabelRequest struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}

	var req CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	label, err := h.boardService.CreateLabel(boardID, userID, req.Name, req.Color)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLabelDTO(*label))
}

// UpdateLabel changes a label's name or color.
func (h *BoardHandler) UpdateLabel(c *gin.Context) {
	userID, labelID, ok := requestActorAndID(c, "labelId")
	if !ok {
		return
	}

	type UpdateLabelRequest struct {
		Name  *string `json:"name"`
		Color *string `json:"color"`
	}

	var req UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	label, err := h.boardService.UpdateLabel(labelID, userID, services.UpdateLabelInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLabelDTO(*label))
}

// DeleteLabel removes a label from the board and from every card.
func (h *BoardHandler) DeleteLabel(c *gin.Context) {
	userID, labelID, ok := requestActorAndID(c, "labelId")
	if !ok {
		return
	}

	if err := h.boardService.DeleteLabel(labelID, userID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Label deleted"})
}

// requestActorAndID extracts the authenticated user and a uint64 path
// parameter, writing the error response itself when either is missing.
func requestActorAndID(c *gin.Context, param string) (userID, id uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, 0, false
	}

	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, 0, false
	}

	return userID, id, true
}

func respondBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBoardNameRequired),
		errors.Is(err, services.ErrInvalidVisibility),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidLabelColor):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrListNotFound),
		errors.Is(err, services.ErrLabelNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
