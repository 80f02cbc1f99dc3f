package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCard_IsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		card Card
		want bool
	}{
		{"no due date", Card{}, false},
		{"future due date", Card{DueDate: &future}, false},
		{"past due date", Card{DueDate: &past}, true},
		{"past but completed", Card{DueDate: &past, DueComplete: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.card.IsOverdue(now))
		})
	}
}

func TestCard_ChecklistProgress(t *testing.T) {
	card := Card{
		Checklists: []Checklist{
			{Items: []ChecklistItem{
				{IsComplete: true},
				{IsComplete: false},
				{IsComplete: true},
			}},
			{Items: []ChecklistItem{
				{IsComplete: true},
				{IsComplete: false},
			}},
		},
	}

	completed, total := card.ChecklistProgress()
	require.Equal(t, 3, completed)
	require.Equal(t, 5, total)
}

func TestCard_ChecklistProgress_Empty(t *testing.T) {
	card := Card{}

	completed, total := card.ChecklistProgress()
	require.Zero(t, completed)
	require.Zero(t, total)
}
