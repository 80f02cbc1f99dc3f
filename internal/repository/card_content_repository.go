package repository

import (
	"gorm.io/gorm"

	"github.com/shiftline/board-api/internal/models"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a comment and its activity entry atomically
func (r *GormCommentRepository) Create(comment *models.Comment, activity *models.Activity) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Create(activity).Error
	})
}

func (r *GormCommentRepository) FindByID(id uint64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *GormCommentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

// GormChecklistRepository is a GORM implementation of ChecklistRepository
type GormChecklistRepository struct {
	db *gorm.DB
}

// NewChecklistRepository creates a new ChecklistRepository
func NewChecklistRepository(db *gorm.DB) ChecklistRepository {
	return &GormChecklistRepository{db: db}
}

func (r *GormChecklistRepository) Create(checklist *models.Checklist) error {
	return r.db.Create(checklist).Error
}

// FindByID loads a checklist with its items in position order
func (r *GormChecklistRepository) FindByID(id uint64) (*models.Checklist, error) {
	var checklist models.Checklist
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position, id")
		}).
		First(&checklist, id).Error
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

// Delete removes the checklist and its items in one transaction
func (r *GormChecklistRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("checklist_id = ?", id).Delete(&models.ChecklistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Checklist{}, id).Error
	})
}

func (r *GormChecklistRepository) MaxPosition(cardID uint64) (int, error) {
	var max int
	err := r.db.Model(&models.Checklist{}).
		Where("card_id = ?", cardID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	return max, err
}

func (r *GormChecklistRepository) CreateItem(item *models.ChecklistItem) error {
	return r.db.Create(item).Error
}

func (r *GormChecklistRepository) FindItem(id uint64) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormChecklistRepository) UpdateItem(item *models.ChecklistItem) error {
	return r.db.Save(item).Error
}

func (r *GormChecklistRepository) MaxItemPosition(checklistID uint64) (int, error) {
	var max int
	err := r.db.Model(&models.ChecklistItem{}).
		Where("checklist_id = ?", checklistID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	return max, err
}

// GormAttachmentRepository is a GORM implementation of AttachmentRepository
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new AttachmentRepository
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

func (r *GormAttachmentRepository) Create(attachment *models.Attachment) error {
	return r.db.Create(attachment).Error
}

func (r *GormAttachmentRepository) FindByID(id uint64) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := r.db.First(&attachment, id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *GormAttachmentRepository) ListByCard(cardID uint64) ([]models.Attachment, error) {
	var attachments []models.Attachment
	if err := r.db.Preload("Uploader").
		Where("card_id = ?", cardID).
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *GormAttachmentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Attachment{}, id).Error
}
