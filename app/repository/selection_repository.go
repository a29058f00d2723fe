package repository

import (
	"errors"
	"fmt"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// selectionRepository implements the SelectionRepository interface
type selectionRepository struct {
	db *gorm.DB
}

// NewSelectionRepository creates a new selection repository instance
func NewSelectionRepository(db *gorm.DB) SelectionRepository {
	return &selectionRepository{db: db}
}

// Upsert inserts the selection or overwrites the existing one of the same
// round and subscription. The stored row is returned.
func (r *selectionRepository) Upsert(selection *models.ContributionSelection) (*models.ContributionSelection, error) {
	err := r.db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "round_id"}, {Name: "subscription_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"selected_option_id", "price", "contact_me", "modification_date", "updated_at",
		}),
	}).Create(selection).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save selection: %w", err)
	}

	stored, err := r.FindByRoundAndSubscription(selection.RoundID, selection.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return stored, nil
}

// FindByRoundAndSubscription returns the selection of a subscription in a round, or nil
func (r *selectionRepository) FindByRoundAndSubscription(roundID, subscriptionID uint) (*models.ContributionSelection, error) {
	var selection models.ContributionSelection
	err := r.db.Preload("SelectedOption").
		Where("round_id = ? AND subscription_id = ?", roundID, subscriptionID).
		First(&selection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &selection, nil
}

// GetByRoundID retrieves all selections of a round
func (r *selectionRepository) GetByRoundID(roundID uint) ([]models.ContributionSelection, error) {
	var selections []models.ContributionSelection
	err := r.db.Preload("SelectedOption").Where("round_id = ?", roundID).
		Order("id ASC").Find(&selections).Error
	return selections, err
}

// GetBySubscriptionID retrieves the selections of a subscription across all rounds
func (r *selectionRepository) GetBySubscriptionID(subscriptionID uint) ([]models.ContributionSelection, error) {
	var selections []models.ContributionSelection
	err := r.db.Preload("Round").Preload("SelectedOption").
		Where("subscription_id = ?", subscriptionID).
		Order("round_id DESC").Find(&selections).Error
	return selections, err
}

// CountByRoundID returns the number of stored selections of a round, valid or not
func (r *selectionRepository) CountByRoundID(roundID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ContributionSelection{}).Where("round_id = ?", roundID).Count(&count).Error
	return count, err
}

// ExistsForSubscription reports whether the subscription ever made a selection
func (r *selectionRepository) ExistsForSubscription(subscriptionID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ContributionSelection{}).Where("subscription_id = ?", subscriptionID).Count(&count).Error
	return count > 0, err
}
