package repository

import (
	"errors"
	"fmt"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// roundRepository implements the RoundRepository interface
type roundRepository struct {
	db *gorm.DB
}

// NewRoundRepository creates a new round repository instance
func NewRoundRepository(db *gorm.DB) RoundRepository {
	return &roundRepository{db: db}
}

func withOptions(db *gorm.DB) *gorm.DB {
	return db.Preload("Options", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("sort_order ASC, id ASC")
	}).Preload("Options.Conditions")
}

// Create creates a new round in the database
func (r *roundRepository) Create(round *models.ContributionRound) error {
	return r.db.Omit(clause.Associations).Create(round).Error
}

// GetByID retrieves a round with its options and their conditions
func (r *roundRepository) GetByID(id uint) (*models.ContributionRound, error) {
	var round models.ContributionRound
	if err := withOptions(r.db).First(&round, id).Error; err != nil {
		return nil, err
	}
	return &round, nil
}

// GetActive retrieves the active round. Returns gorm.ErrRecordNotFound when no round is active.
func (r *roundRepository) GetActive() (*models.ContributionRound, error) {
	var round models.ContributionRound
	err := withOptions(r.db).Where("status = ?", models.ROUND_STATUS_ACTIVE).
		Order("id ASC").First(&round).Error
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// GetDefault retrieves the first round by status order (active, closed, draft)
func (r *roundRepository) GetDefault() (*models.ContributionRound, error) {
	var round models.ContributionRound
	err := withOptions(r.db).Order("status ASC, id ASC").First(&round).Error
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// GetAll retrieves all rounds without options
func (r *roundRepository) GetAll() ([]models.ContributionRound, error) {
	var rounds []models.ContributionRound
	err := r.db.Order("status ASC, id DESC").Find(&rounds).Error
	return rounds, err
}

// GetByStatus retrieves all rounds with the given status
func (r *roundRepository) GetByStatus(status string) ([]models.ContributionRound, error) {
	var rounds []models.ContributionRound
	err := r.db.Where("status = ?", status).Order("id DESC").Find(&rounds).Error
	return rounds, err
}

// FindOtherActive returns an active round other than id, or nil if there is none
func (r *roundRepository) FindOtherActive(id uint) (*models.ContributionRound, error) {
	var round models.ContributionRound
	err := r.db.Where("status = ? AND id <> ?", models.ROUND_STATUS_ACTIVE, id).
		Order("id ASC").First(&round).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// Update saves the round's own columns
func (r *roundRepository) Update(round *models.ContributionRound) error {
	return r.db.Omit(clause.Associations).Save(round).Error
}

// UpdateStatus changes only the status column
func (r *roundRepository) UpdateStatus(id uint, status string) error {
	result := r.db.Model(&models.ContributionRound{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a round together with its options, conditions and selections
func (r *roundRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		optionIDs := tx.Model(&models.ContributionOption{}).Select("id").Where("round_id = ?", id)

		if err := tx.Where("round_id = ?", id).Delete(&models.ContributionSelection{}).Error; err != nil {
			return fmt.Errorf("failed to delete selections: %w", err)
		}
		// minimum/default point at the round's own options
		if err := tx.Model(&models.ContributionRound{}).Where("id = ?", id).
			Updates(map[string]interface{}{"minimum_amount_id": nil, "default_amount_id": nil}).Error; err != nil {
			return fmt.Errorf("failed to clear round references: %w", err)
		}
		if err := tx.Where("option_id IN (?)", optionIDs).Delete(&models.ContributionCondition{}).Error; err != nil {
			return fmt.Errorf("failed to delete conditions: %w", err)
		}
		if err := tx.Where("round_id = ?", id).Delete(&models.ContributionOption{}).Error; err != nil {
			return fmt.Errorf("failed to delete options: %w", err)
		}
		result := tx.Delete(&models.ContributionRound{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
