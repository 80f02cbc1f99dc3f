package repository

import (
	"gorm.io/gorm"

	"github.com/shiftline/board-api/internal/models"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// Record appends an entry outside of any compound mutation
func (r *GormActivityRepository) Record(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

// ListByBoard returns the most recent entries for the board, newest first
func (r *GormActivityRepository) ListByBoard(boardID uint64, limit int) ([]models.Activity, error) {
	var activities []models.Activity
	if err := r.db.Preload("User").
		Where("board_id = ?", boardID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}
