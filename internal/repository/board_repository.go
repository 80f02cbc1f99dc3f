package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shiftline/board-api/internal/models"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// CreateWithDefaults creates a board, its seed labels and lists, and the
// created_board activity entry atomically.
func (r *GormBoardRepository) CreateWithDefaults(board *models.Board, labels []models.Label, lists []models.List, activity *models.Activity) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}

		for i := range labels {
			labels[i].BoardID = board.ID
		}
		if len(labels) > 0 {
			if err := tx.Create(&labels).Error; err != nil {
				return err
			}
		}

		for i := range lists {
			lists[i].BoardID = board.ID
		}
		if len(lists) > 0 {
			if err := tx.Create(&lists).Error; err != nil {
				return err
			}
		}

		activity.BoardID = board.ID
		activity.TargetID = board.ID
		return tx.Create(activity).Error
	})
}

// FindByID finds a board by ID with optional preloading
func (r *GormBoardRepository) FindByID(id uint64, preload ...string) (*models.Board, error) {
	var board models.Board
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindByIDWithContents loads a board with members, labels, and non-archived
// lists and cards ordered by position with id as the tie-breaker.
func (r *GormBoardRepository) FindByIDWithContents(id uint64) (*models.Board, error) {
	var board models.Board
	err := r.db.
		Preload("Members").
		Preload("Members.User").
		Preload("Labels").
		Preload("Lists", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_archived = ?", false).Order("position, id")
		}).
		Preload("Lists.Cards", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_archived = ?", false).Order("position, id")
		}).
		Preload("Lists.Cards.Labels").
		Preload("Lists.Cards.Members").
		Preload("Lists.Cards.Checklists.Items").
		First(&board, id).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// ListOwned returns non-archived boards created by the user
func (r *GormBoardRepository) ListOwned(userID uint64) ([]models.Board, error) {
	var boards []models.Board
	if err := r.db.
		Where("created_by = ? AND is_archived = ?", userID, false).
		Order("created_at DESC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// ListJoined returns non-archived boards the user is an explicit member of
func (r *GormBoardRepository) ListJoined(userID uint64) ([]models.Board, error) {
	var boards []models.Board
	if err := r.db.
		Joins("JOIN board_members ON board_members.board_id = boards.id").
		Where("board_members.user_id = ? AND boards.is_archived = ?", userID, false).
		Order("boards.created_at DESC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// ListPublic returns all non-archived public boards
func (r *GormBoardRepository) ListPublic() ([]models.Board, error) {
	var boards []models.Board
	if err := r.db.
		Where("visibility = ? AND is_archived = ?", models.VisibilityPublic, false).
		Order("created_at DESC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// Update saves board fields together with the describing activity entry.
// Associations are omitted so preloaded Members are never re-written.
func (r *GormBoardRepository) Update(board *models.Board, activity *models.Activity) error {
	if activity == nil {
		return r.db.Omit(clause.Associations).Save(board).Error
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(board).Error; err != nil {
			return err
		}
		return tx.Create(activity).Error
	})
}

// Delete removes a board and all dependent rows in one transaction,
// children before parents.
func (r *GormBoardRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var listIDs []uint64
		if err := tx.Model(&models.List{}).Where("board_id = ?", id).Pluck("id", &listIDs).Error; err != nil {
			return err
		}

		if len(listIDs) > 0 {
			var cardIDs []uint64
			if err := tx.Model(&models.Card{}).Where("list_id IN ?", listIDs).Pluck("id", &cardIDs).Error; err != nil {
				return err
			}

			if len(cardIDs) > 0 {
				var checklistIDs []uint64
				if err := tx.Model(&models.Checklist{}).Where("card_id IN ?", cardIDs).Pluck("id", &checklistIDs).Error; err != nil {
					return err
				}
				if len(checklistIDs) > 0 {
					if err := tx.Where("checklist_id IN ?", checklistIDs).Delete(&models.ChecklistItem{}).Error; err != nil {
						return err
					}
				}
				if err := tx.Where("card_id IN ?", cardIDs).Delete(&models.Checklist{}).Error; err != nil {
					return err
				}
				if err := tx.Where("card_id IN ?", cardIDs).Delete(&models.Comment{}).Error; err != nil {
					return err
				}
				if err := tx.Where("card_id IN ?", cardIDs).Delete(&models.Attachment{}).Error; err != nil {
					return err
				}
				if err := tx.Where("card_id IN ?", cardIDs).Delete(&models.CardLabel{}).Error; err != nil {
					return err
				}
				if err := tx.Where("card_id IN ?", cardIDs).Delete(&models.CardMember{}).Error; err != nil {
					return err
				}
				if err := tx.Where("list_id IN ?", listIDs).Delete(&models.Card{}).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("board_id = ?", id).Delete(&models.List{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("board_id = ?", id).Delete(&models.Label{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.BoardMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Board{}, id).Error
	})
}

// AddMember adds a membership row and its activity entry
func (r *GormBoardRepository) AddMember(member *models.BoardMember, activity *models.Activity) error {
	if activity == nil {
		return r.db.Create(member).Error
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		return tx.Create(activity).Error
	})
}

// RemoveMember deletes the membership row for the pair
func (r *GormBoardRepository) RemoveMember(boardID, userID uint64, activity *models.Activity) error {
	remove := func(tx *gorm.DB) error {
		return tx.Where("board_id = ? AND user_id = ?", boardID, userID).
			Delete(&models.BoardMember{}).Error
	}
	if activity == nil {
		return remove(r.db)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := remove(tx); err != nil {
			return err
		}
		return tx.Create(activity).Error
	})
}

// FindMember finds the membership row for the pair
func (r *GormBoardRepository) FindMember(boardID, userID uint64) (*models.BoardMember, error) {
	var member models.BoardMember
	if err := r.db.Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of a board with their users
func (r *GormBoardRepository) ListMembers(boardID uint64) ([]models.BoardMember, error) {
	var members []models.BoardMember
	if err := r.db.Preload("User").
		Where("board_id = ?", boardID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
