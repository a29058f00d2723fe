package repository

import (
	"errors"
	"time"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"gorm.io/gorm"
)

// ErrOptionIsMinimum is returned when deleting an option that still defines a round's minimum amount
var ErrOptionIsMinimum = errors.New("option is the minimum amount of a round")

// RoundRepository defines the interface for contribution round operations
type RoundRepository interface {
	Create(round *models.ContributionRound) error
	GetByID(id uint) (*models.ContributionRound, error)
	GetActive() (*models.ContributionRound, error)
	GetDefault() (*models.ContributionRound, error)
	GetAll() ([]models.ContributionRound, error)
	GetByStatus(status string) ([]models.ContributionRound, error)
	FindOtherActive(id uint) (*models.ContributionRound, error)
	Update(round *models.ContributionRound) error
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
}

// OptionRepository defines the interface for round options and their conditions
type OptionRepository interface {
	Create(option *models.ContributionOption) error
	GetByID(id uint) (*models.ContributionOption, error)
	GetByRoundID(roundID uint) ([]models.ContributionOption, error)
	Update(option *models.ContributionOption) error
	Delete(id uint) error
	SaveCondition(condition *models.ContributionCondition) error
	DeleteCondition(id uint) error
	GetConditionByID(id uint) (*models.ContributionCondition, error)
}

// SelectionRepository defines the interface for member selections
type SelectionRepository interface {
	Upsert(selection *models.ContributionSelection) (*models.ContributionSelection, error)
	FindByRoundAndSubscription(roundID, subscriptionID uint) (*models.ContributionSelection, error)
	GetByRoundID(roundID uint) ([]models.ContributionSelection, error)
	GetBySubscriptionID(subscriptionID uint) ([]models.ContributionSelection, error)
	CountByRoundID(roundID uint) (int64, error)
	ExistsForSubscription(subscriptionID uint) (bool, error)
}

// SubscriptionRepository reads subscriptions of the host application
type SubscriptionRepository interface {
	GetByID(id uint) (*models.Subscription, error)
	GetForMember(memberID uint, now time.Time) (*models.Subscription, error)
	GetActiveWithParts() ([]models.Subscription, error)
	GetTypes() ([]models.SubscriptionType, error)
}

// MemberRepository defines the interface for member lookups
type MemberRepository interface {
	Create(member *models.Member) error
	GetByID(id uint) (*models.Member, error)
	GetByEmail(email string) (*models.Member, error)
	UpdateLastLogin(id uint, at time.Time) error
}

// SettingRepository defines the interface for application settings
type SettingRepository interface {
	Get() (*models.AppSettings, error)
	Reload() (*models.AppSettings, error)
	Save(settings *models.AppSettings) error
}

// Repositories holds all repository instances
type Repositories struct {
	Round        RoundRepository
	Option       OptionRepository
	Selection    SelectionRepository
	Subscription SubscriptionRepository
	Member       MemberRepository
	Setting      SettingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Round:        NewRoundRepository(db),
		Option:       NewOptionRepository(db),
		Selection:    NewSelectionRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Member:       NewMemberRepository(db),
		Setting:      NewSettingRepository(db),
	}
}
