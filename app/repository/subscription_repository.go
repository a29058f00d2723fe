package repository

import (
	"time"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"gorm.io/gorm"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func withParts(db *gorm.DB) *gorm.DB {
	return db.Preload("Parts", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id ASC")
	}).Preload("Parts.Type").Preload("PrimaryMember")
}

// GetByID retrieves a subscription with its parts, their types and the primary member
func (r *subscriptionRepository) GetByID(id uint) (*models.Subscription, error) {
	var sub models.Subscription
	if err := withParts(r.db).First(&sub, id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetForMember returns the member's future subscription if there is one,
// otherwise the current one. Returns nil when the member has neither.
func (r *subscriptionRepository) GetForMember(memberID uint, now time.Time) (*models.Subscription, error) {
	var subs []models.Subscription
	err := withParts(r.db).
		Where("primary_member_id = ? AND deactivation_date IS NULL", memberID).
		Order("id DESC").Find(&subs).Error
	if err != nil {
		return nil, err
	}

	var current *models.Subscription
	for i := range subs {
		if subs[i].IsFuture(now) {
			return &subs[i], nil
		}
		if current == nil {
			current = &subs[i]
		}
	}
	return current, nil
}

// GetActiveWithParts retrieves all subscriptions without a deactivation date
func (r *subscriptionRepository) GetActiveWithParts() ([]models.Subscription, error) {
	var subs []models.Subscription
	err := withParts(r.db).Where("deactivation_date IS NULL").Order("id ASC").Find(&subs).Error
	return subs, err
}

// GetTypes retrieves all subscription types
func (r *subscriptionRepository) GetTypes() ([]models.SubscriptionType, error) {
	var types []models.SubscriptionType
	err := r.db.Order("id ASC").Find(&types).Error
	return types, err
}
