package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shiftline/board-api/internal/models"
)

// GormCardRepository is a GORM implementation of CardRepository
type GormCardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &GormCardRepository{db: db}
}

// Create creates a card and its activity entry atomically
func (r *GormCardRepository) Create(card *models.Card, activity *models.Activity) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(card).Error; err != nil {
			return err
		}
		activity.TargetID = card.ID
		return tx.Create(activity).Error
	})
}

// FindByID finds a card by ID with optional preloading
func (r *GormCardRepository) FindByID(id uint64, preload ...string) (*models.Card, error) {
	var card models.Card
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&card, id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByIDFull loads a card with all owned collections and the access chain.
// Comments come newest-first; checklists and items in position order.
func (r *GormCardRepository) FindByIDFull(id uint64) (*models.Card, error) {
	var card models.Card
	err := r.db.
		Preload("List").
		Preload("List.Board").
		Preload("List.Board.Members").
		Preload("Creator").
		Preload("Labels").
		Preload("Members").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Preload("Comments.User").
		Preload("Checklists", func(db *gorm.DB) *gorm.DB {
			return db.Order("position, id")
		}).
		Preload("Checklists.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position, id")
		}).
		Preload("Attachments").
		First(&card, id).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// Update saves card fields, with the activity entry when one is given.
// Associations are omitted so a preloaded List cannot clobber a reassigned
// ListID on the way out.
func (r *GormCardRepository) Update(card *models.Card, activity *models.Activity) error {
	if activity == nil {
		return r.db.Omit(clause.Associations).Save(card).Error
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(card).Error; err != nil {
			return err
		}
		return tx.Create(activity).Error
	})
}

// Delete removes the card and its owned children in one transaction
func (r *GormCardRepository) Delete(id uint64, activity *models.Activity) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var checklistIDs []uint64
		if err := tx.Model(&models.Checklist{}).Where("card_id = ?", id).Pluck("id", &checklistIDs).Error; err != nil {
			return err
		}
		if len(checklistIDs) > 0 {
			if err := tx.Where("checklist_id IN ?", checklistIDs).Delete(&models.ChecklistItem{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("card_id = ?", id).Delete(&models.Checklist{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&models.CardLabel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&models.CardMember{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Card{}, id).Error; err != nil {
			return err
		}
		if activity != nil {
			return tx.Create(activity).Error
		}
		return nil
	})
}

// MaxPosition returns the highest position among the list's cards
func (r *GormCardRepository) MaxPosition(listID uint64) (int, error) {
	var max int
	err := r.db.Model(&models.Card{}).
		Where("list_id = ?", listID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	return max, err
}

// ReplaceLabels replaces the card's full label set
func (r *GormCardRepository) ReplaceLabels(cardID uint64, labels []models.Label) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", cardID).Delete(&models.CardLabel{}).Error; err != nil {
			return err
		}
		if len(labels) == 0 {
			return nil
		}
		rows := make([]models.CardLabel, len(labels))
		for i, label := range labels {
			rows[i] = models.CardLabel{CardID: cardID, LabelID: label.ID}
		}
		return tx.Create(&rows).Error
	})
}

// ReplaceMembers replaces the card's full assigned-member set
func (r *GormCardRepository) ReplaceMembers(cardID uint64, users []models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", cardID).Delete(&models.CardMember{}).Error; err != nil {
			return err
		}
		if len(users) == 0 {
			return nil
		}
		rows := make([]models.CardMember, len(users))
		for i, user := range users {
			rows[i] = models.CardMember{CardID: cardID, UserID: user.ID}
		}
		return tx.Create(&rows).Error
	})
}
