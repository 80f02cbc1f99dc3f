package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shiftline/board-api/internal/models"
	"github.com/shiftline/board-api/internal/repository"
)

type serviceTestEnv struct {
	db           *gorm.DB
	authService  *AuthService
	boardService *BoardService
	cardService  *CardService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.BoardMember{},
		&models.List{},
		&models.Card{},
		&models.CardLabel{},
		&models.CardMember{},
		&models.Label{},
		&models.Comment{},
		&models.Checklist{},
		&models.ChecklistItem{},
		&models.Attachment{},
		&models.Activity{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	listRepo := repository.NewListRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	cardRepo := repository.NewCardRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return serviceTestEnv{
		db:           db,
		authService:  NewAuthService(userRepo),
		boardService: NewBoardService(boardRepo, listRepo, labelRepo, userRepo, activityRepo),
		cardService:  NewCardService(cardRepo, listRepo, labelRepo, userRepo, commentRepo, checklistRepo, attachmentRepo),
	}
}

func (env serviceTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := env.authService.Signup(SignupInput{Username: username, Password: "supersecret"})
	require.NoError(t, err)
	return user
}

func (env serviceTestEnv) createBoard(t *testing.T, ownerID uint64, name string) *models.Board {
	t.Helper()
	board, err := env.boardService.CreateBoard(CreateBoardInput{Name: name, OwnerID: ownerID})
	require.NoError(t, err)
	return board
}

func TestBoardService_CreateBoard_Defaults(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")

	board := env.createBoard(t, owner.ID, "Roadmap")
	require.Equal(t, models.VisibilityPrivate, board.Visibility)

	var labels []models.Label
	require.NoError(t, env.db.Where("board_id = ?", board.ID).Find(&labels).Error)
	require.Len(t, labels, 6)
	for _, label := range labels {
		require.Empty(t, label.Name, "seed labels are color-only")
	}

	var lists []models.List
	require.NoError(t, env.db.Where("board_id = ?", board.ID).Order("position").Find(&lists).Error)
	require.Len(t, lists, 3)
	require.Equal(t, "To Do", lists[0].Name)
	require.Equal(t, "In Progress", lists[1].Name)
	require.Equal(t, "Done", lists[2].Name)
	for i, list := range lists {
		require.Equal(t, i, list.Position)
	}

	var activities []models.Activity
	require.NoError(t, env.db.Where("board_id = ?", board.ID).Find(&activities).Error)
	require.Len(t, activities, 1)
	require.Equal(t, models.ActionCreatedBoard, activities[0].Action)
}

func TestBoardService_CreateBoard_NameRequired(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")

	_, err := env.boardService.CreateBoard(CreateBoardInput{Name: "   ", OwnerID: owner.ID})
	require.ErrorIs(t, err, ErrBoardNameRequired)
}

func TestBoardService_GetBoard_Visibility(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	stranger := env.createUser(t, "mallory")

	private := env.createBoard(t, owner.ID, "Private")
	_, err := env.boardService.GetBoard(private.ID, stranger.ID)
	require.ErrorIs(t, err, ErrPermissionDenied)

	public, err := env.boardService.CreateBoard(CreateBoardInput{
		Name:       "Public",
		Visibility: models.VisibilityPublic,
		OwnerID:    owner.ID,
	})
	require.NoError(t, err)

	got, err := env.boardService.GetBoard(public.ID, stranger.ID)
	require.NoError(t, err)
	require.Equal(t, public.ID, got.ID)
}

func TestBoardService_AddMember_Idempotent(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	board := env.createBoard(t, owner.ID, "Roadmap")

	require.NoError(t, env.boardService.AddMember(board.ID, owner.ID, bob.ID, models.RoleAdmin))

	// Re-adding with a different role keeps the existing one.
	require.NoError(t, env.boardService.AddMember(board.ID, owner.ID, bob.ID, models.RoleViewer))

	var members []models.BoardMember
	require.NoError(t, env.db.Where("board_id = ? AND user_id = ?", board.ID, bob.ID).Find(&members).Error)
	require.Len(t, members, 1)
	require.Equal(t, models.RoleAdmin, members[0].Role)
}

func TestBoardService_AddMember_Errors(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	board := env.createBoard(t, owner.ID, "Roadmap")

	require.ErrorIs(t, env.boardService.AddMember(board.ID, owner.ID, 9999, ""), ErrUserNotFound)
	require.ErrorIs(t, env.boardService.AddMember(board.ID, owner.ID, bob.ID, "superuser"), ErrInvalidRole)
	require.ErrorIs(t, env.boardService.AddMember(board.ID, bob.ID, bob.ID, ""), ErrPermissionDenied)
}

func TestBoardService_RemoveMember_RevokesAccess(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	board := env.createBoard(t, owner.ID, "Roadmap")

	require.NoError(t, env.boardService.AddMember(board.ID, owner.ID, bob.ID, models.RoleMember))
	_, err := env.boardService.GetBoard(board.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, env.boardService.RemoveMember(board.ID, owner.ID, bob.ID))
	_, err = env.boardService.GetBoard(board.ID, bob.ID)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestBoardService_CreateList_AppendsAfterSeeds(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	board := env.createBoard(t, owner.ID, "Roadmap")

	list, err := env.boardService.CreateList(board.ID, owner.ID, "Blocked")
	require.NoError(t, err)
	require.Equal(t, 3, list.Position, "seed lists occupy 0..2")

	next, err := env.boardService.CreateList(board.ID, owner.ID, "")
	require.NoError(t, err)
	require.Equal(t, "New List", next.Name)
	require.Equal(t, 4, next.Position)
}

func TestBoardService_MoveList_VerbatimPosition(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	board := env.createBoard(t, owner.ID, "Roadmap")

	var lists []models.List
	require.NoError(t, env.db.Where("board_id = ?", board.ID).Order("position").Find(&lists).Error)

	// Collide with an occupied position; siblings keep their values.
	require.NoError(t, env.boardService.MoveList(lists[2].ID, owner.ID, 0))

	var moved models.List
	require.NoError(t, env.db.First(&moved, lists[2].ID).Error)
	require.Equal(t, 0, moved.Position)

	var sibling models.List
	require.NoError(t, env.db.First(&sibling, lists[0].ID).Error)
	require.Equal(t, 0, sibling.Position, "no renumbering on collision")
}

func TestBoardService_ViewerCannotEdit(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	viewer := env.createUser(t, "victor")
	board := env.createBoard(t, owner.ID, "Roadmap")

	require.NoError(t, env.boardService.AddMember(board.ID, owner.ID, viewer.ID, models.RoleViewer))

	_, err := env.boardService.CreateList(board.ID, viewer.ID, "Sneaky")
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = env.boardService.GetBoard(board.ID, viewer.ID)
	require.NoError(t, err, "viewer still sees the board")
}

func TestBoardService_UpdateBoard_OwnerOnly(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	admin := env.createUser(t, "adam")
	board := env.createBoard(t, owner.ID, "Roadmap")

	require.NoError(t, env.boardService.AddMember(board.ID, owner.ID, admin.ID, models.RoleAdmin))

	name := "Renamed"
	_, err := env.boardService.UpdateBoard(board.ID, admin.ID, UpdateBoardInput{Name: &name})
	require.ErrorIs(t, err, ErrPermissionDenied, "admins edit contents, not settings")

	updated, err := env.boardService.UpdateBoard(board.ID, owner.ID, UpdateBoardInput{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
}

func TestBoardService_CreateLabel_Palette(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	board := env.createBoard(t, owner.ID, "Roadmap")

	label, err := env.boardService.CreateLabel(board.ID, owner.ID, "Bug", "red")
	require.NoError(t, err)
	require.Equal(t, "red", label.Color)

	// Empty color falls back to gray; empty name is fine.
	label, err = env.boardService.CreateLabel(board.ID, owner.ID, "", "")
	require.NoError(t, err)
	require.Equal(t, "gray", label.Color)

	_, err = env.boardService.CreateLabel(board.ID, owner.ID, "Bad", "chartreuse")
	require.ErrorIs(t, err, ErrInvalidLabelColor)
}

func TestBoardService_DeleteBoard_Cascades(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	board := env.createBoard(t, owner.ID, "Roadmap")

	var list models.List
	require.NoError(t, env.db.Where("board_id = ?", board.ID).First(&list).Error)

	card, err := env.cardService.CreateCard(list.ID, owner.ID, "Ship it")
	require.NoError(t, err)

	_, err = env.cardService.AddComment(card.ID, owner.ID, "soon")
	require.NoError(t, err)

	checklist, err := env.cardService.AddChecklist(card.ID, owner.ID, "Steps")
	require.NoError(t, err)
	_, err = env.cardService.AddChecklistItem(checklist.ID, owner.ID, "step one")
	require.NoError(t, err)

	require.NoError(t, env.boardService.DeleteBoard(board.ID, owner.ID))

	for _, table := range []struct {
		name  string
		model interface{}
	}{
		{"boards", &models.Board{}},
		{"lists", &models.List{}},
		{"cards", &models.Card{}},
		{"labels", &models.Label{}},
		{"comments", &models.Comment{}},
		{"checklists", &models.Checklist{}},
		{"checklist items", &models.ChecklistItem{}},
		{"activities", &models.Activity{}},
		{"memberships", &models.BoardMember{}},
	} {
		var count int64
		require.NoError(t, env.db.Model(table.model).Count(&count).Error)
		require.Zero(t, count, "%s should be gone", table.name)
	}
}

func TestBoardService_ActivityFeed_NewestFirstCapped(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	board := env.createBoard(t, owner.ID, "Roadmap")

	// Generate well over the feed cap.
	for i := 0; i < 60; i++ {
		_, err := env.boardService.CreateList(board.ID, owner.ID, fmt.Sprintf("List %d", i))
		require.NoError(t, err)
	}

	feed, err := env.boardService.ActivityFeed(board.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, feed, 50)

	require.Equal(t, models.ActionCreatedList, feed[0].Action)
	require.Equal(t, "List 59", feed[0].Details["name"], "most recent entry first")

	for i := 1; i < len(feed); i++ {
		require.GreaterOrEqual(t, feed[i-1].ID, feed[i].ID, "feed ordered newest first")
	}
}

func TestBoardService_ArchiveBoard_HidesFromOverview(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	board := env.createBoard(t, owner.ID, "Roadmap")

	require.NoError(t, env.boardService.ArchiveBoard(board.ID, owner.ID))

	overview, err := env.boardService.ListBoards(owner.ID)
	require.NoError(t, err)
	require.Empty(t, overview.Owned)
	require.Empty(t, overview.Joined)
	require.Empty(t, overview.Public)
}
