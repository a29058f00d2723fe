package repository

import (
	"fmt"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// optionRepository implements the OptionRepository interface
type optionRepository struct {
	db *gorm.DB
}

// NewOptionRepository creates a new option repository instance
func NewOptionRepository(db *gorm.DB) OptionRepository {
	return &optionRepository{db: db}
}

// Create creates a new option in the database
func (r *optionRepository) Create(option *models.ContributionOption) error {
	return r.db.Omit(clause.Associations).Create(option).Error
}

// GetByID retrieves an option with its conditions
func (r *optionRepository) GetByID(id uint) (*models.ContributionOption, error) {
	var option models.ContributionOption
	err := r.db.Preload("Conditions").Preload("Conditions.SubscriptionType").First(&option, id).Error
	if err != nil {
		return nil, err
	}
	return &option, nil
}

// GetByRoundID retrieves the options of a round in display order
func (r *optionRepository) GetByRoundID(roundID uint) ([]models.ContributionOption, error) {
	var options []models.ContributionOption
	err := r.db.Preload("Conditions").Where("round_id = ?", roundID).
		Order("sort_order ASC, id ASC").Find(&options).Error
	return options, err
}

// Update saves the option's own columns
func (r *optionRepository) Update(option *models.ContributionOption) error {
	return r.db.Omit(clause.Associations).Save(option).Error
}

// Delete removes an option. Selections keep their price and lose the option
// reference; an option used as a round's minimum amount cannot be deleted.
func (r *optionRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var protected int64
		if err := tx.Model(&models.ContributionRound{}).Where("minimum_amount_id = ?", id).
			Count(&protected).Error; err != nil {
			return err
		}
		if protected > 0 {
			return ErrOptionIsMinimum
		}

		if err := tx.Model(&models.ContributionSelection{}).Where("selected_option_id = ?", id).
			Update("selected_option_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach selections: %w", err)
		}
		if err := tx.Model(&models.ContributionRound{}).Where("default_amount_id = ?", id).
			Update("default_amount_id", nil).Error; err != nil {
			return fmt.Errorf("failed to clear default amount: %w", err)
		}
		if err := tx.Where("option_id = ?", id).Delete(&models.ContributionCondition{}).Error; err != nil {
			return fmt.Errorf("failed to delete conditions: %w", err)
		}

		result := tx.Delete(&models.ContributionOption{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SaveCondition creates the condition or updates the price of the existing
// condition for the same option and subscription type
func (r *optionRepository) SaveCondition(condition *models.ContributionCondition) error {
	return r.db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "option_id"}, {Name: "subscription_type_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"price"}),
	}).Create(condition).Error
}

// DeleteCondition removes a condition by its ID
func (r *optionRepository) DeleteCondition(id uint) error {
	return r.db.Delete(&models.ContributionCondition{}, id).Error
}

// GetConditionByID retrieves a condition by its ID
func (r *optionRepository) GetConditionByID(id uint) (*models.ContributionCondition, error) {
	var condition models.ContributionCondition
	if err := r.db.First(&condition, id).Error; err != nil {
		return nil, err
	}
	return &condition, nil
}
