package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/shiftline/board-api/internal/constants"
	"github.com/shiftline/board-api/internal/models"
	"github.com/shiftline/board-api/internal/repository"
)

var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrBoardNotFound     = errors.New("board not found")
	ErrListNotFound      = errors.New("list not found")
	ErrLabelNotFound     = errors.New("label not found")
	ErrBoardNameRequired = errors.New("board name cannot be empty")
	ErrInvalidVisibility = errors.New("visibility must be private or public")
	ErrInvalidRole       = errors.New("unknown board role")
	ErrInvalidLabelColor = errors.New("label color is not in the palette")
)

// BoardService provides business logic for boards, their lists and labels,
// membership and the activity feed.
type BoardService struct {
	boardRepo    repository.BoardRepository
	listRepo     repository.ListRepository
	labelRepo    repository.LabelRepository
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
}

// NewBoardService creates a new BoardService.
func NewBoardService(
	boardRepo repository.BoardRepository,
	listRepo repository.ListRepository,
	labelRepo repository.LabelRepository,
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
) *BoardService {
	return &BoardService{
		boardRepo:    boardRepo,
		listRepo:     listRepo,
		labelRepo:    labelRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
	}
}

// BoardOverview groups the boards visible to a user.
type BoardOverview struct {
	Owned  []models.Board
	Joined []models.Board
	Public []models.Board
}

// ListBoards returns the boards a user owns, has joined, and the public
// boards beyond those. Archived boards are excluded everywhere.
func (s *BoardService) ListBoards(userID uint64) (*BoardOverview, error) {
	owned, err := s.boardRepo.ListOwned(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned boards: %w", err)
	}

	joined, err := s.boardRepo.ListJoined(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list joined boards: %w", err)
	}

	public, err := s.boardRepo.ListPublic()
	if err != nil {
		return nil, fmt.Errorf("failed to list public boards: %w", err)
	}

	seen := make(map[uint64]struct{}, len(owned)+len(joined))
	for _, b := range owned {
		seen[b.ID] = struct{}{}
	}

	overview := &BoardOverview{Owned: owned}
	for _, b := range joined {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		overview.Joined = append(overview.Joined, b)
	}
	for _, b := range public {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		overview.Public = append(overview.Public, b)
	}

	return overview, nil
}

// CreateBoardInput represents parameters to create a new board.
type CreateBoardInput struct {
	Name            string
	Description     string
	BackgroundColor string
	Visibility      models.BoardVisibility
	OwnerID         uint64
}

// CreateBoard creates a board seeded with the default label palette, the
// three starter lists at positions 0,1,2 and a created_board activity entry.
// Either all of it commits or none of it does.
func (s *BoardService) CreateBoard(input CreateBoardInput) (*models.Board, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrBoardNameRequired
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = models.VisibilityPrivate
	}
	if visibility != models.VisibilityPrivate && visibility != models.VisibilityPublic {
		return nil, ErrInvalidVisibility
	}

	background := input.BackgroundColor
	if background == "" {
		background = "slate"
	}

	board := &models.Board{
		Name:            input.Name,
		Description:     input.Description,
		BackgroundColor: background,
		Visibility:      visibility,
		CreatedBy:       input.OwnerID,
	}

	labels := make([]models.Label, len(constants.DefaultLabelColors))
	for i, color := range constants.DefaultLabelColors {
		labels[i] = models.Label{Color: color}
	}

	lists := make([]models.List, len(constants.DefaultListNames))
	for i, name := range constants.DefaultListNames {
		lists[i] = models.List{Name: name, Position: i}
	}

	activity := &models.Activity{
		UserID:     &input.OwnerID,
		Action:     models.ActionCreatedBoard,
		TargetType: "board",
	}

	if err := s.boardRepo.CreateWithDefaults(board, labels, lists, activity); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return board, nil
}

// GetBoard returns a board with its ordered contents if the user may view it.
func (s *BoardService) GetBoard(boardID, userID uint64) (*models.Board, error) {
	board, err := s.boardRepo.FindByIDWithContents(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	if !board.CanView(userID) {
		return nil, ErrPermissionDenied
	}

	return board, nil
}

// UpdateBoardInput holds the optional board setting fields.
type UpdateBoardInput struct {
	Name            *string
	Description     *string
	BackgroundColor *string
	Visibility      *models.BoardVisibility
}

// UpdateBoard updates board settings. Only the owner may do so.
func (s *BoardService) UpdateBoard(boardID, actorID uint64, input UpdateBoardInput) (*models.Board, error) {
	board, err := s.loadBoard(boardID)
	if err != nil {
		return nil, err
	}
	if !board.IsOwner(actorID) {
		return nil, ErrPermissionDenied
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrBoardNameRequired
		}
		board.Name = *input.Name
	}
	if input.Description != nil {
		board.Description = *input.Description
	}
	if input.BackgroundColor != nil {
		board.BackgroundColor = *input.BackgroundColor
	}
	if input.Visibility != nil {
		if *input.Visibility != models.VisibilityPrivate && *input.Visibility != models.VisibilityPublic {
			return nil, ErrInvalidVisibility
		}
		board.Visibility = *input.Visibility
	}

	activity := &models.Activity{
		BoardID:    board.ID,
		UserID:     &actorID,
		Action:     models.ActionUpdatedBoard,
		TargetType: "board",
		TargetID:   board.ID,
	}

	if err := s.boardRepo.Update(board, activity); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	return board, nil
}

// ArchiveBoard hides a board from default views without deleting it.
func (s *BoardService) ArchiveBoard(boardID, actorID uint64) error {
	board, err := s.loadBoard(boardID)
	if err != nil {
		return err
	}
	if !board.IsOwner(actorID) {
		return ErrPermissionDenied
	}

	board.IsArchived = true

	activity := &models.Activity{
		BoardID:    board.ID,
		UserID:     &actorID,
		Action:     models.ActionArchivedBoard,
		TargetType: "board",
		TargetID:   board.ID,
	}

	if err := s.boardRepo.Update(board, activity); err != nil {
		return fmt.Errorf("failed to archive board: %w", err)
	}
	return nil
}

// DeleteBoard permanently removes a board and everything it owns.
func (s *BoardService) DeleteBoard(boardID, actorID uint64) error {
	board, err := s.loadBoard(boardID)
	if err != nil {
		return err
	}
	if !board.IsOwner(actorID) {
		return ErrPermissionDenied
	}

	if err := s.boardRepo.Delete(board.ID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return nil
}

// AddMember grants a user a role on the board. Adding someone who is already
// a member is a no-op; the existing role is kept.
func (s *BoardService) AddMember(boardID, actorID, userID uint64, role models.BoardRole) error {
	board, err := s.loadBoard(boardID)
	if err != nil {
		return err
	}
	if !board.IsOwner(actorID) {
		return ErrPermissionDenied
	}

	if role == "" {
		role = models.RoleMember
	}
	if !role.Valid() {
		return ErrInvalidRole
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.boardRepo.FindMember(boardID, userID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	member := &models.BoardMember{
		BoardID: boardID,
		UserID:  userID,
		Role:    role,
		AddedAt: time.Now(),
	}

	activity := &models.Activity{
		BoardID:    boardID,
		UserID:     &actorID,
		Action:     models.ActionAddedMember,
		TargetType: "user",
		TargetID:   userID,
		Details:    datatypes.JSONMap{"role": string(role)},
	}

	if err := s.boardRepo.AddMember(member, activity); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember revokes a user's membership. Takes effect on the next request;
// access checks are never cached.
func (s *BoardService) RemoveMember(boardID, actorID, userID uint64) error {
	board, err := s.loadBoard(boardID)
	if err != nil {
		return err
	}
	if !board.IsOwner(actorID) {
		return ErrPermissionDenied
	}

	activity := &models.Activity{
		BoardID:    boardID,
		UserID:     &actorID,
		Action:     models.ActionRemovedMember,
		TargetType: "user",
		TargetID:   userID,
	}

	if err := s.boardRepo.RemoveMember(boardID, userID, activity); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// ListMembers returns the board's explicit membership set.
func (s *BoardService) ListMembers(boardID, actorID uint64) ([]models.BoardMember, error) {
	board, err := s.loadBoard(boardID)
	if err != nil {
		return nil, err
	}
	if !board.CanView(actorID) {
		return nil, ErrPermissionDenied
	}

	members, err := s.boardRepo.ListMembers(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// ActivityFeed returns the board's most recent activity entries, newest
// first, capped at the feed limit.
func (s *BoardService) ActivityFeed(boardID, actorID uint64) ([]models.Activity, error) {
	board, err := s.loadBoard(boardID)
	if err != nil {
		return nil, err
	}
	if !board.CanView(actorID) {
		return nil, ErrPermissionDenied
	}

	activities, err := s.activityRepo.ListByBoard(boardID, constants.ActivityFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return activities, nil
}

// CreateList appends a new list at the end of the board.
func (s *BoardService) CreateList(boardID, actorID uint64, name string) (*models.List, error) {
	board, err := s.loadBoard(boardID)
	if err != nil {
		return nil, err
	}
	if !board.CanEdit(actorID) {
		return nil, ErrPermissionDenied
	}

	if strings.TrimSpace(name) == "" {
		name = "New List"
	}

	maxPos, err := s.listRepo.MaxPosition(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute list position: %w", err)
	}

	list := &models.List{
		BoardID:  boardID,
		Name:     name,
		Position: maxPos + 1,
	}

	activity := &models.Activity{
		BoardID:    boardID,
		UserID:     &actorID,
		Action:     models.ActionCreatedList,
		TargetType: "list",
		Details:    datatypes.JSONMap{"name": name},
	}

	if err := s.listRepo.Create(list, activity); err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	return list, nil
}

// RenameList renames a list. An empty name keeps the current one.
func (s *BoardService) RenameList(listID, actorID uint64, name string) (*models.List, error) {
	list, err := s.loadList(listID)
	if err != nil {
		return nil, err
	}
	if !list.Board.CanEdit(actorID) {
		return nil, ErrPermissionDenied
	}

	if strings.TrimSpace(name) == "" {
		return list, nil
	}

	oldName := list.Name
	list.Name = name

	activity := &models.Activity{
		BoardID:    list.BoardID,
		UserID:     &actorID,
		Action:     models.ActionRenamedList,
		TargetType: "list",
		TargetID:   list.ID,
		Details:    datatypes.JSONMap{"old_name": oldName, "new_name": name},
	}

	if err := s.listRepo.Update(list, activity); err != nil {
		return nil, fmt.Errorf("failed to rename list: %w", err)
	}
	return list, nil
}

// ArchiveList hides a list from the board without deleting it.
func (s *BoardService) ArchiveList(listID, actorID uint64) error {
	list, err := s.loadList(listID)
	if err != nil {
		return err
	}
	if !list.Board.CanEdit(actorID) {
		return ErrPermissionDenied
	}

	list.IsArchived = true

	activity := &models.Activity{
		BoardID:    list.BoardID,
		UserID:     &actorID,
		Action:     models.ActionArchivedList,
		TargetType: "list",
		TargetID:   list.ID,
		Details:    datatypes.JSONMap{"name": list.Name},
	}

	if err := s.listRepo.Update(list, activity); err != nil {
		return fmt.Errorf("failed to archive list: %w", err)
	}
	return nil
}

// MoveList writes the caller-supplied position verbatim. Collisions with
// sibling positions are tolerated; presentation breaks ties by id.
func (s *BoardService) MoveList(listID, actorID uint64, position int) error {
	list, err := s.loadList(listID)
	if err != nil {
		return err
	}
	if !list.Board.CanEdit(actorID) {
		return ErrPermissionDenied
	}

	list.Position = position
	if err := s.listRepo.Update(list, nil); err != nil {
		return fmt.Errorf("failed to move list: %w", err)
	}
	return nil
}

// CreateLabel adds a label to the board. Empty names are valid (color-only
// labels); duplicate colors are allowed.
func (s *BoardService) CreateLabel(boardID, actorID uint64, name, color string) (*models.Label, error) {
	board, err := s.loadBoard(boardID)
	if err != nil {
		return nil, err
	}
	if !board.CanEdit(actorID) {
		return nil, ErrPermissionDenied
	}

	if color == "" {
		color = "gray"
	}
	if !slices.Contains(constants.LabelPalette, color) {
		return nil, ErrInvalidLabelColor
	}

	label := &models.Label{
		BoardID: boardID,
		Name:    name,
		Color:   color,
	}
	if err := s.labelRepo.Create(label); err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}
	return label, nil
}

// ListLabels returns the board's labels.
func (s *BoardService) ListLabels(boardID, actorID uint64) ([]models.Label, error) {
	board, err := s.loadBoard(boardID)
	if err != nil {
		return nil, err
	}
	if !board.CanView(actorID) {
		return nil, ErrPermissionDenied
	}

	labels, err := s.labelRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

// UpdateLabelInput holds the optional label fields.
type UpdateLabelInput struct {
	Name  *string
	Color *string
}

// UpdateLabel changes a label's name or color.
func (s *BoardService) UpdateLabel(labelID, actorID uint64, input UpdateLabelInput) (*models.Label, error) {
	label, board, err := s.loadLabel(labelID)
	if err != nil {
		return nil, err
	}
	if !board.CanEdit(actorID) {
		return nil, ErrPermissionDenied
	}

	if input.Name != nil {
		label.Name = *input.Name
	}
	if input.Color != nil {
		if !slices.Contains(constants.LabelPalette, *input.Color) {
			return nil, ErrInvalidLabelColor
		}
		label.Color = *input.Color
	}

	if err := s.labelRepo.Update(label); err != nil {
		return nil, fmt.Errorf("failed to update label: %w", err)
	}
	return label, nil
}

// DeleteLabel removes a label and its card associations.
func (s *BoardService) DeleteLabel(labelID, actorID uint64) error {
	_, board, err := s.loadLabel(labelID)
	if err != nil {
		return err
	}
	if !board.CanEdit(actorID) {
		return ErrPermissionDenied
	}

	if err := s.labelRepo.Delete(labelID); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return nil
}

// loadBoard fetches a board with its membership set for access checks.
func (s *BoardService) loadBoard(boardID uint64) (*models.Board, error) {
	board, err := s.boardRepo.FindByID(boardID, "Members")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}
	return board, nil
}

// loadList fetches a list with its board and membership set.
func (s *BoardService) loadList(listID uint64) (*models.List, error) {
	list, err := s.listRepo.FindByID(listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to find list: %w", err)
	}
	return list, nil
}

// loadLabel fetches a label and its owning board with membership.
func (s *BoardService) loadLabel(labelID uint64) (*models.Label, *models.Board, error) {
	label, err := s.labelRepo.FindByID(labelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrLabelNotFound
		}
		return nil, nil, fmt.Errorf("failed to find label: %w", err)
	}

	board, err := s.loadBoard(label.BoardID)
	if err != nil {
		return nil, nil, err
	}
	return label, board, nil
}
