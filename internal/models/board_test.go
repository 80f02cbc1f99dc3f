package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testBoard(visibility BoardVisibility) *Board {
	return &Board{
		ID:         1,
		Name:       "Roadmap",
		Visibility: visibility,
		CreatedBy:  100,
		Members: []BoardMember{
			{BoardID: 1, UserID: 2, Role: RoleOwner},
			{BoardID: 1, UserID: 3, Role: RoleAdmin},
			{BoardID: 1, UserID: 4, Role: RoleMember},
			{BoardID: 1, UserID: 5, Role: RoleViewer},
		},
	}
}

func TestBoard_IsOwner(t *testing.T) {
	board := testBoard(VisibilityPrivate)

	require.True(t, board.IsOwner(100), "creator is owner without a membership row")
	require.True(t, board.IsOwner(2), "owner-role member")
	require.False(t, board.IsOwner(3), "admin is not owner")
	require.False(t, board.IsOwner(4))
	require.False(t, board.IsOwner(5))
	require.False(t, board.IsOwner(999), "stranger")
}

func TestBoard_CanEdit(t *testing.T) {
	board := testBoard(VisibilityPrivate)

	require.True(t, board.CanEdit(100), "creator")
	require.True(t, board.CanEdit(2), "owner role")
	require.True(t, board.CanEdit(3), "admin role")
	require.True(t, board.CanEdit(4), "member role")
	require.False(t, board.CanEdit(5), "viewer may not edit")
	require.False(t, board.CanEdit(999), "stranger")
}

func TestBoard_CanView_Private(t *testing.T) {
	board := testBoard(VisibilityPrivate)

	require.True(t, board.CanView(100), "creator")
	require.True(t, board.CanView(5), "viewer sees the board")
	require.False(t, board.CanView(999), "stranger blocked on private board")
}

func TestBoard_CanView_Public(t *testing.T) {
	board := testBoard(VisibilityPublic)

	require.True(t, board.CanView(999), "public boards are visible to everyone")
}

func TestBoard_CanEdit_PublicStranger(t *testing.T) {
	// Public visibility grants viewing only; edits still require membership.
	board := testBoard(VisibilityPublic)

	require.False(t, board.CanEdit(999))
}

func TestBoard_MemberRole(t *testing.T) {
	board := testBoard(VisibilityPrivate)

	role, ok := board.MemberRole(3)
	require.True(t, ok)
	require.Equal(t, RoleAdmin, role)

	_, ok = board.MemberRole(100)
	require.False(t, ok, "creator has no implicit membership row")
}

func TestBoardRole_Valid(t *testing.T) {
	require.True(t, RoleOwner.Valid())
	require.True(t, RoleViewer.Valid())
	require.False(t, BoardRole("superuser").Valid())
	require.False(t, BoardRole("").Valid())
}
