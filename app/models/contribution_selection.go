package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxMoney is the largest amount a DECIMAL(9,2) money column holds
var MaxMoney = decimal.RequireFromString("9999999.99")

// ContributionSelection records the choice of one subscription in one round.
// Price is frozen when the selection is saved.
type ContributionSelection struct {
	ID               uint                `gorm:"primaryKey" json:"id"`
	RoundID          uint                `gorm:"not null;uniqueIndex:idx_round_subscription" json:"round_id"`
	Round            *ContributionRound  `gorm:"foreignKey:RoundID" json:"-"`
	SubscriptionID   uint                `gorm:"not null;uniqueIndex:idx_round_subscription;index" json:"subscription_id"`
	SelectedOptionID *uint               `gorm:"index" json:"selected_option_id,omitempty"`
	SelectedOption   *ContributionOption `gorm:"foreignKey:SelectedOptionID" json:"-"`
	Price            decimal.Decimal     `gorm:"type:DECIMAL(9,2);not null" json:"price"`
	ContactMe        bool                `gorm:"not null" json:"contact_me"`
	ModificationDate time.Time           `gorm:"type:date" json:"modification_date"`
	CreatedAt        time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the ContributionSelection model
func (ContributionSelection) TableName() string {
	return "contribution_selections"
}

// IsOtherAmount reports whether the member entered a free amount
func (s *ContributionSelection) IsOtherAmount() bool {
	return s.SelectedOptionID == nil
}

// OptionName returns the chosen option's name or a placeholder for free amounts
func (s *ContributionSelection) OptionName() string {
	if s.SelectedOption != nil {
		return s.SelectedOption.Name
	}
	return "Anderer Betrag"
}
