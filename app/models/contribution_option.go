package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ContributionOption is a priced choice offered to members within a round
type ContributionOption struct {
	ID         uint                    `gorm:"primaryKey" json:"id"`
	RoundID    uint                    `gorm:"index;not null" json:"round_id"`
	Name       string                  `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required,min=1,max=100"`
	Multiplier *float64                `json:"multiplier,omitempty" validate:"omitempty,gte=0"`
	Visible    bool                    `gorm:"not null" json:"visible"`
	SortOrder  uint                    `gorm:"not null;index" json:"sort_order"`
	Conditions []ContributionCondition `gorm:"foreignKey:OptionID" json:"conditions,omitempty"`
	CreatedAt  time.Time               `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time               `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the ContributionOption model
func (ContributionOption) TableName() string {
	return "contribution_options"
}

func (o *ContributionOption) Validate() error {
	return validator.New().Struct(o)
}

// Factor returns the multiplier, defaulting to 1 when none is stored
func (o *ContributionOption) Factor() float64 {
	if o.Multiplier == nil {
		return 1
	}
	return *o.Multiplier
}

// ContributionCondition overrides the price of an option for one subscription type
type ContributionCondition struct {
	ID                 uint             `gorm:"primaryKey" json:"id"`
	OptionID           uint             `gorm:"not null;uniqueIndex:idx_option_type" json:"option_id"`
	SubscriptionTypeID uint             `gorm:"not null;uniqueIndex:idx_option_type" json:"subscription_type_id"`
	SubscriptionType   SubscriptionType `gorm:"foreignKey:SubscriptionTypeID" json:"-"`
	Price              decimal.Decimal  `gorm:"type:DECIMAL(9,2);not null" json:"price"`
}

// TableName specifies the table name for the ContributionCondition model
func (ContributionCondition) TableName() string {
	return "contribution_conditions"
}
