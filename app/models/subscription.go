package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionType carries the nominal price of a subscription part
type SubscriptionType struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"type:varchar(100);not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:DECIMAL(9,2);not null" json:"price"`
	TrialDays int             `gorm:"not null" json:"trial_days"`
}

// TableName specifies the table name for the SubscriptionType model
func (SubscriptionType) TableName() string {
	return "subscription_types"
}

// IsTrial reports whether parts of this type are trial parts
func (t *SubscriptionType) IsTrial() bool {
	return t.TrialDays != 0
}

// Subscription is owned by the host application and only read here
type Subscription struct {
	ID               uint               `gorm:"primaryKey" json:"id"`
	PrimaryMemberID  uint               `gorm:"index;not null" json:"primary_member_id"`
	PrimaryMember    Member             `gorm:"foreignKey:PrimaryMemberID" json:"-"`
	CreationDate     time.Time          `gorm:"type:date" json:"creation_date"`
	ActivationDate   *time.Time         `gorm:"type:date" json:"activation_date,omitempty"`
	CancellationDate *time.Time         `gorm:"type:date" json:"cancellation_date,omitempty"`
	DeactivationDate *time.Time         `gorm:"type:date" json:"deactivation_date,omitempty"`
	Parts            []SubscriptionPart `gorm:"foreignKey:SubscriptionID" json:"parts,omitempty"`
}

// TableName specifies the table name for the Subscription model
func (Subscription) TableName() string {
	return "subscriptions"
}

// IsFuture reports whether the subscription has not started yet at t
func (s *Subscription) IsFuture(t time.Time) bool {
	return s.DeactivationDate == nil && (s.ActivationDate == nil || s.ActivationDate.After(t))
}

// SubscriptionPart is one dated share of a subscription
type SubscriptionPart struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	SubscriptionID   uint             `gorm:"index;not null" json:"subscription_id"`
	TypeID           uint             `gorm:"index;not null" json:"type_id"`
	Type             SubscriptionType `gorm:"foreignKey:TypeID" json:"type"`
	CreationDate     time.Time        `gorm:"type:date" json:"creation_date"`
	CancellationDate *time.Time       `gorm:"type:date" json:"cancellation_date,omitempty"`
	DeactivationDate *time.Time       `gorm:"type:date" json:"deactivation_date,omitempty"`
}

// TableName specifies the table name for the SubscriptionPart model
func (SubscriptionPart) TableName() string {
	return "subscription_parts"
}
