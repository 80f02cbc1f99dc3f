package repository

import (
	"gorm.io/gorm"

	"github.com/shiftline/board-api/internal/models"
)

// GormLabelRepository is a GORM implementation of LabelRepository
type GormLabelRepository struct {
	db *gorm.DB
}

// NewLabelRepository creates a new LabelRepository
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &GormLabelRepository{db: db}
}

func (r *GormLabelRepository) Create(label *models.Label) error {
	return r.db.Create(label).Error
}

func (r *GormLabelRepository) FindByID(id uint64) (*models.Label, error) {
	var label models.Label
	if err := r.db.First(&label, id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

func (r *GormLabelRepository) ListByBoard(boardID uint64) ([]models.Label, error) {
	var labels []models.Label
	if err := r.db.Where("board_id = ?", boardID).Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// FindByIDsForBoard returns the labels among ids owned by the board.
// IDs pointing at other boards' labels simply drop out of the result.
func (r *GormLabelRepository) FindByIDsForBoard(ids []uint64, boardID uint64) ([]models.Label, error) {
	if len(ids) == 0 {
		return []models.Label{}, nil
	}
	var labels []models.Label
	if err := r.db.Where("id IN ? AND board_id = ?", ids, boardID).Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *GormLabelRepository) Update(label *models.Label) error {
	return r.db.Save(label).Error
}

func (r *GormLabelRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("label_id = ?", id).Delete(&models.CardLabel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Label{}, id).Error
	})
}
