package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shiftline/board-api/internal/constants"
	"github.com/shiftline/board-api/internal/database"
	"github.com/shiftline/board-api/internal/dto"
	"github.com/shiftline/board-api/internal/models"
	"github.com/shiftline/board-api/internal/repository"
	"github.com/shiftline/board-api/internal/services"
)

type boardTestEnv struct {
	db           *gorm.DB
	router       *gin.Engine
	authService  *services.AuthService
	boardService *services.BoardService
	currentUser  *uint64
}

// setupBoardTestEnv wires the full board route surface behind a stub auth
// middleware that injects *env.currentUser as the session user.
func setupBoardTestEnv(t *testing.T) *boardTestEnv {
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

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	listRepo := repository.NewListRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	cardRepo := repository.NewCardRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	authService := services.NewAuthService(userRepo)
	boardService := services.NewBoardService(boardRepo, listRepo, labelRepo, userRepo, activityRepo)
	cardService := services.NewCardService(cardRepo, listRepo, labelRepo, userRepo, commentRepo, checklistRepo, attachmentRepo)

	boardHandler := NewBoardHandler(boardService)
	cardHandler := NewCardHandler(cardService)

	env := &boardTestEnv{
		db:           db,
		authService:  authService,
		boardService: boardService,
		currentUser:  new(uint64),
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, *env.currentUser)
		c.Next()
	})

	boards := r.Group("/api/boards")
	{
		boards.GET("", boardHandler.ListBoards)
		boards.POST("", boardHandler.CreateBoard)
		boards.GET("/:id", boardHandler.GetBoard)
		boards.PATCH("/:id", boardHandler.UpdateBoard)
		boards.DELETE("/:id", boardHandler.DeleteBoard)
		boards.POST("/:id/members", boardHandler.AddMember)
		boards.GET("/:id/activity", boardHandler.ActivityFeed)
	}
	cards := r.Group("/api/cards")
	{
		cards.GET("/:id", cardHandler.GetCard)
	}
	env.router = r

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return env
}

func (env *boardTestEnv) actAs(userID uint64) {
	*env.currentUser = userID
}

func (env *boardTestEnv) request(t *testing.T, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestBoardHandler_CreateAndGet(t *testing.T) {
	env := setupBoardTestEnv(t)
	owner, err := env.authService.Signup(services.SignupInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)
	env.actAs(owner.ID)

	w := env.request(t, http.MethodPost, "/api/boards", map[string]string{"name": "Roadmap"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.BoardSummaryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "Roadmap", created.Name)

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/boards/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail dto.BoardDetailDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.Labels, 6)
	require.Len(t, detail.Lists, 3)
	require.Equal(t, "To Do", detail.Lists[0].Name)
}

func TestBoardHandler_GetBoard_Forbidden(t *testing.T) {
	env := setupBoardTestEnv(t)
	owner, err := env.authService.Signup(services.SignupInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)
	stranger, err := env.authService.Signup(services.SignupInput{Username: "mallory", Password: "supersecret"})
	require.NoError(t, err)

	board, err := env.boardService.CreateBoard(services.CreateBoardInput{Name: "Private", OwnerID: owner.ID})
	require.NoError(t, err)

	env.actAs(stranger.ID)
	w := env.request(t, http.MethodGet, fmt.Sprintf("/api/boards/%d", board.ID), nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestBoardHandler_GetBoard_NotFound(t *testing.T) {
	env := setupBoardTestEnv(t)
	user, err := env.authService.Signup(services.SignupInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)
	env.actAs(user.ID)

	w := env.request(t, http.MethodGet, "/api/boards/9999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodGet, "/api/boards/not-a-number", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBoardHandler_AddMember_Validation(t *testing.T) {
	env := setupBoardTestEnv(t)
	owner, err := env.authService.Signup(services.SignupInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)
	bob, err := env.authService.Signup(services.SignupInput{Username: "bob", Password: "supersecret"})
	require.NoError(t, err)

	board, err := env.boardService.CreateBoard(services.CreateBoardInput{Name: "Roadmap", OwnerID: owner.ID})
	require.NoError(t, err)
	env.actAs(owner.ID)

	path := fmt.Sprintf("/api/boards/%d/members", board.ID)

	w := env.request(t, http.MethodPost, path, map[string]interface{}{"user_id": bob.ID, "role": "admin"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, path, map[string]interface{}{"user_id": 9999})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodPost, path, map[string]interface{}{"user_id": bob.ID, "role": "superuser"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Re-adding an existing member succeeds and keeps the original role.
	w = env.request(t, http.MethodPost, path, map[string]interface{}{"user_id": bob.ID, "role": "viewer"})
	require.Equal(t, http.StatusOK, w.Code)

	var member models.BoardMember
	require.NoError(t, env.db.Where("board_id = ? AND user_id = ?", board.ID, bob.ID).First(&member).Error)
	require.Equal(t, models.RoleAdmin, member.Role)
}

func TestBoardHandler_ActivityFeed(t *testing.T) {
	env := setupBoardTestEnv(t)
	owner, err := env.authService.Signup(services.SignupInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)

	board, err := env.boardService.CreateBoard(services.CreateBoardInput{Name: "Roadmap", OwnerID: owner.ID})
	require.NoError(t, err)
	env.actAs(owner.ID)

	w := env.request(t, http.MethodGet, fmt.Sprintf("/api/boards/%d/activity", board.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Activities []dto.ActivityDTO `json:"activities"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Activities, 1)
	require.Equal(t, models.ActionCreatedBoard, response.Activities[0].Action)
	require.NotNil(t, response.Activities[0].User)
	require.Equal(t, "alice", response.Activities[0].User.Username)
}

func TestBoardHandler_DeleteBoard_OwnerOnly(t *testing.T) {
	env := setupBoardTestEnv(t)
	owner, err := env.authService.Signup(services.SignupInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)
	bob, err := env.authService.Signup(services.SignupInput{Username: "bob", Password: "supersecret"})
	require.NoError(t, err)

	board, err := env.boardService.CreateBoard(services.CreateBoardInput{Name: "Roadmap", OwnerID: owner.ID})
	require.NoError(t, err)
	require.NoError(t, env.boardService.AddMember(board.ID, owner.ID, bob.ID, models.RoleMember))

	env.actAs(bob.ID)
	w := env.request(t, http.MethodDelete, fmt.Sprintf("/api/boards/%d", board.ID), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	env.actAs(owner.ID)
	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/boards/%d", board.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/boards/%d", board.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
