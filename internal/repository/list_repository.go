package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shiftline/board-api/internal/models"
)

// GormListRepository is a GORM implementation of ListRepository
type GormListRepository struct {
	db *gorm.DB
}

// NewListRepository creates a new ListRepository
func NewListRepository(db *gorm.DB) ListRepository {
	return &GormListRepository{db: db}
}

// Create creates a list and its activity entry atomically
func (r *GormListRepository) Create(list *models.List, activity *models.Activity) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(list).Error; err != nil {
			return err
		}
		activity.TargetID = list.ID
		return tx.Create(activity).Error
	})
}

// FindByID loads a list with its board and the board's members
func (r *GormListRepository) FindByID(id uint64) (*models.List, error) {
	var list models.List
	if err := r.db.
		Preload("Board").
		Preload("Board.Members").
		First(&list, id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// Update saves list fields, with the activity entry when one is given.
// Associations are omitted; the preloaded Board is read-only context here.
func (r *GormListRepository) Update(list *models.List, activity *models.Activity) error {
	if activity == nil {
		return r.db.Omit(clause.Associations).Save(list).Error
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(list).Error; err != nil {
			return err
		}
		return tx.Create(activity).Error
	})
}

// MaxPosition returns the highest position among the board's lists
func (r *GormListRepository) MaxPosition(boardID uint64) (int, error) {
	var max int
	err := r.db.Model(&models.List{}).
		Where("board_id = ?", boardID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	return max, err
}
