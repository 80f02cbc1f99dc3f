package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shiftline/board-api/internal/models"
)

// boardFixture creates a board and returns it with its first seed list.
func boardFixture(t *testing.T, env serviceTestEnv, ownerID uint64) (*models.Board, models.List) {
	t.Helper()
	board := env.createBoard(t, ownerID, "Roadmap")

	var list models.List
	require.NoError(t, env.db.Where("board_id = ?", board.ID).Order("position").First(&list).Error)
	return board, list
}

func TestCardService_CreateCard_Appends(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	_, list := boardFixture(t, env, owner.ID)

	first, err := env.cardService.CreateCard(list.ID, owner.ID, "First")
	require.NoError(t, err)
	require.Equal(t, 1, first.Position, "empty list starts at max(0)+1")

	second, err := env.cardService.CreateCard(list.ID, owner.ID, "Second")
	require.NoError(t, err)
	require.Equal(t, 2, second.Position)

	_, err = env.cardService.CreateCard(list.ID, owner.ID, "  ")
	require.ErrorIs(t, err, ErrTitleRequired)
}

func TestCardService_MoveCard_WithinBoard(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	board, list := boardFixture(t, env, owner.ID)

	var done models.List
	require.NoError(t, env.db.Where("board_id = ? AND name = ?", board.ID, "Done").First(&done).Error)

	card, err := env.cardService.CreateCard(list.ID, owner.ID, "Ship it")
	require.NoError(t, err)

	pos := 7
	moved, err := env.cardService.MoveCard(card.ID, owner.ID, MoveCardInput{ListID: &done.ID, Position: &pos})
	require.NoError(t, err)
	require.Equal(t, done.ID, moved.ListID)
	require.Equal(t, 7, moved.Position)

	// The reassignment must survive the write, not just the returned struct.
	var persisted models.Card
	require.NoError(t, env.db.First(&persisted, card.ID).Error)
	require.Equal(t, done.ID, persisted.ListID)
	require.Equal(t, 7, persisted.Position)

	var activities []models.Activity
	require.NoError(t, env.db.Where("board_id = ? AND action = ?", board.ID, models.ActionMovedCard).Find(&activities).Error)
	require.Len(t, activities, 1)
	require.Equal(t, "To Do", activities[0].Details["from"])
	require.Equal(t, "Done", activities[0].Details["to"])
}

func TestCardService_MoveCard_CrossBoardIgnored(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	_, list := boardFixture(t, env, owner.ID)

	other := env.createBoard(t, owner.ID, "Other")
	var foreign models.List
	require.NoError(t, env.db.Where("board_id = ?", other.ID).First(&foreign).Error)

	card, err := env.cardService.CreateCard(list.ID, owner.ID, "Stay home")
	require.NoError(t, err)

	pos := 3
	moved, err := env.cardService.MoveCard(card.ID, owner.ID, MoveCardInput{ListID: &foreign.ID, Position: &pos})
	require.NoError(t, err, "cross-board target is skipped, not rejected")
	require.Equal(t, list.ID, moved.ListID, "card keeps its list")
	require.Equal(t, 3, moved.Position, "position is still applied")

	var count int64
	require.NoError(t, env.db.Model(&models.Activity{}).Where("action = ?", models.ActionMovedCard).Count(&count).Error)
	require.Zero(t, count, "no move activity when the list did not change")
}

func TestCardService_UpdateCard_DueDate(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	_, list := boardFixture(t, env, owner.ID)

	card, err := env.cardService.CreateCard(list.ID, owner.ID, "Deadline work")
	require.NoError(t, err)

	due := "2026-09-01T17:00"
	updated, err := env.cardService.UpdateCard(card.ID, owner.ID, UpdateCardInput{DueDate: &due})
	require.NoError(t, err)
	require.NotNil(t, updated.DueDate)

	clear := ""
	updated, err = env.cardService.UpdateCard(card.ID, owner.ID, UpdateCardInput{DueDate: &clear})
	require.NoError(t, err)
	require.Nil(t, updated.DueDate, "empty string clears the due date")

	bad := "next tuesday"
	_, err = env.cardService.UpdateCard(card.ID, owner.ID, UpdateCardInput{DueDate: &bad})
	require.ErrorIs(t, err, ErrInvalidDueDate)

	empty := " "
	_, err = env.cardService.UpdateCard(card.ID, owner.ID, UpdateCardInput{Title: &empty})
	require.ErrorIs(t, err, ErrTitleEmpty)
}

func TestCardService_SetLabels_FiltersForeign(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	board, list := boardFixture(t, env, owner.ID)

	other := env.createBoard(t, owner.ID, "Other")

	var ownLabel, foreignLabel models.Label
	require.NoError(t, env.db.Where("board_id = ?", board.ID).First(&ownLabel).Error)
	require.NoError(t, env.db.Where("board_id = ?", other.ID).First(&foreignLabel).Error)

	card, err := env.cardService.CreateCard(list.ID, owner.ID, "Tagged")
	require.NoError(t, err)

	labels, err := env.cardService.SetLabels(card.ID, owner.ID, []uint64{ownLabel.ID, foreignLabel.ID})
	require.NoError(t, err)
	require.Len(t, labels, 1, "foreign label dropped silently")
	require.Equal(t, ownLabel.ID, labels[0].ID)

	// Replacing with an empty set clears everything.
	labels, err = env.cardService.SetLabels(card.ID, owner.ID, nil)
	require.NoError(t, err)
	require.Empty(t, labels)
}

func TestCardService_SetMembers_DropsUnknown(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	_, list := boardFixture(t, env, owner.ID)

	card, err := env.cardService.CreateCard(list.ID, owner.ID, "Assigned")
	require.NoError(t, err)

	members, err := env.cardService.SetMembers(card.ID, owner.ID, []uint64{bob.ID, bob.ID, 9999})
	require.NoError(t, err)
	require.Len(t, members, 1, "unknown and duplicate IDs dropped")
	require.Equal(t, bob.ID, members[0].ID)
}

func TestCardService_ToggleChecklistItem(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	_, list := boardFixture(t, env, owner.ID)

	card, err := env.cardService.CreateCard(list.ID, owner.ID, "Stepwise")
	require.NoError(t, err)

	checklist, err := env.cardService.AddChecklist(card.ID, owner.ID, "")
	require.NoError(t, err)
	require.Equal(t, "Checklist", checklist.Name, "default name")

	item, err := env.cardService.AddChecklistItem(checklist.ID, owner.ID, "step one")
	require.NoError(t, err)
	require.False(t, item.IsComplete)

	toggled, err := env.cardService.ToggleChecklistItem(item.ID, owner.ID)
	require.NoError(t, err)
	require.True(t, toggled.IsComplete)
	require.NotNil(t, toggled.CompletedBy)
	require.Equal(t, owner.ID, *toggled.CompletedBy)
	require.NotNil(t, toggled.CompletedAt)

	toggled, err = env.cardService.ToggleChecklistItem(item.ID, owner.ID)
	require.NoError(t, err)
	require.False(t, toggled.IsComplete)
	require.Nil(t, toggled.CompletedBy, "cleared together with CompletedAt")
	require.Nil(t, toggled.CompletedAt)
}

func TestCardService_DeleteComment_AuthorOrBoardOwner(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	board, list := boardFixture(t, env, owner.ID)

	require.NoError(t, env.boardService.AddMember(board.ID, owner.ID, bob.ID, models.RoleMember))
	require.NoError(t, env.boardService.AddMember(board.ID, owner.ID, carol.ID, models.RoleAdmin))

	card, err := env.cardService.CreateCard(list.ID, owner.ID, "Discussed")
	require.NoError(t, err)

	comment, err := env.cardService.AddComment(card.ID, bob.ID, "my take")
	require.NoError(t, err)

	// An admin who is neither author nor owner cannot delete it.
	require.ErrorIs(t, env.cardService.DeleteComment(comment.ID, carol.ID), ErrPermissionDenied)

	// The author can.
	require.NoError(t, env.cardService.DeleteComment(comment.ID, bob.ID))

	// The board owner can delete anyone's comment.
	comment, err = env.cardService.AddComment(card.ID, bob.ID, "another take")
	require.NoError(t, err)
	require.NoError(t, env.cardService.DeleteComment(comment.ID, owner.ID))

	_, err = env.cardService.AddComment(card.ID, bob.ID, "  ")
	require.ErrorIs(t, err, ErrCommentRequired)
}

func TestCardService_DeleteCard_Cascades(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	_, list := boardFixture(t, env, owner.ID)

	card, err := env.cardService.CreateCard(list.ID, owner.ID, "Doomed")
	require.NoError(t, err)

	_, err = env.cardService.AddComment(card.ID, owner.ID, "bye")
	require.NoError(t, err)
	checklist, err := env.cardService.AddChecklist(card.ID, owner.ID, "Steps")
	require.NoError(t, err)
	_, err = env.cardService.AddChecklistItem(checklist.ID, owner.ID, "only step")
	require.NoError(t, err)

	require.NoError(t, env.cardService.DeleteCard(card.ID, owner.ID))

	var count int64
	require.NoError(t, env.db.Model(&models.Card{}).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, env.db.Model(&models.Comment{}).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, env.db.Model(&models.Checklist{}).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, env.db.Model(&models.ChecklistItem{}).Count(&count).Error)
	require.Zero(t, count)

	_, err = env.cardService.GetCard(card.ID, owner.ID)
	require.ErrorIs(t, err, ErrCardNotFound)
}

func TestCardService_Attachments(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	_, list := boardFixture(t, env, owner.ID)

	card, err := env.cardService.CreateCard(list.ID, owner.ID, "Documented")
	require.NoError(t, err)

	attachment, err := env.cardService.AddAttachment(card.ID, owner.ID, AttachmentInput{
		Filename: "design.pdf",
		Filepath: "/uploads/design.pdf",
		Filesize: 2048,
		Filetype: "application/pdf",
	})
	require.NoError(t, err)

	attachments, err := env.cardService.ListAttachments(card.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	require.Equal(t, "design.pdf", attachments[0].Filename)

	require.NoError(t, env.cardService.DeleteAttachment(attachment.ID, owner.ID))

	attachments, err = env.cardService.ListAttachments(card.ID, owner.ID)
	require.NoError(t, err)
	require.Empty(t, attachments)

	_, err = env.cardService.AddAttachment(card.ID, owner.ID, AttachmentInput{Filename: " "})
	require.ErrorIs(t, err, ErrFilenameRequired)
}

func TestCardService_GetCard_ViewRules(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	stranger := env.createUser(t, "mallory")
	_, list := boardFixture(t, env, owner.ID)

	card, err := env.cardService.CreateCard(list.ID, owner.ID, "Hidden")
	require.NoError(t, err)

	_, err = env.cardService.GetCard(card.ID, stranger.ID)
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = env.cardService.CreateCard(list.ID, stranger.ID, "Sneaky")
	require.ErrorIs(t, err, ErrPermissionDenied)
}
