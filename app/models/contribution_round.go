package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	ROUND_STATUS_DRAFT  = "D"
	ROUND_STATUS_ACTIVE = "A"
	ROUND_STATUS_CLOSED = "C"
)

// RoundStatusLabels maps status codes to their display names
var RoundStatusLabels = map[string]string{
	ROUND_STATUS_DRAFT:  "Entwurf",
	ROUND_STATUS_ACTIVE: "Aktiv",
	ROUND_STATUS_CLOSED: "Geschlossen",
}

// IsValidRoundStatus reports whether s is one of the known status codes
func IsValidRoundStatus(s string) bool {
	_, ok := RoundStatusLabels[s]
	return ok
}

// ContributionRound is a campaign in which members pledge an additional contribution
type ContributionRound struct {
	ID                 uint                 `gorm:"primaryKey" json:"id"`
	Name               string               `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required,min=1,max=100"`
	Description        string               `gorm:"type:text" json:"description"`
	TargetAmount       decimal.Decimal      `gorm:"type:DECIMAL(9,2);not null" json:"target_amount"`
	TargetMultiplier   *float64             `json:"target_multiplier,omitempty" validate:"omitempty,gt=0"`
	OtherAmount        bool                 `gorm:"not null" json:"other_amount"`
	MinimumAmountID    *uint                `gorm:"index" json:"minimum_amount_id,omitempty"`
	MinimumAmount      *ContributionOption  `gorm:"foreignKey:MinimumAmountID" json:"-"`
	DefaultAmountID    *uint                `gorm:"index" json:"default_amount_id,omitempty"`
	DefaultAmount      *ContributionOption  `gorm:"foreignKey:DefaultAmountID" json:"-"`
	Status             string               `gorm:"type:varchar(1);index;not null" json:"status" validate:"required,oneof=D A C"`
	CreationCutoff     *time.Time           `gorm:"type:date" json:"creation_cutoff,omitempty"`
	CancellationCutoff *time.Time           `gorm:"type:date" json:"cancellation_cutoff,omitempty"`
	Options            []ContributionOption `gorm:"foreignKey:RoundID" json:"options,omitempty"`
	CreatedAt          time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the ContributionRound model
func (ContributionRound) TableName() string {
	return "contribution_rounds"
}

func (r *ContributionRound) Validate() error {
	return validator.New().Struct(r)
}

func (r *ContributionRound) IsDraft() bool  { return r.Status == ROUND_STATUS_DRAFT }
func (r *ContributionRound) IsActive() bool { return r.Status == ROUND_STATUS_ACTIVE }
func (r *ContributionRound) IsClosed() bool { return r.Status == ROUND_STATUS_CLOSED }

// StatusLabel returns the human readable status
func (r *ContributionRound) StatusLabel() string {
	return RoundStatusLabels[r.Status]
}

// Target returns the round's goal. A target multiplier takes precedence over
// the fixed amount and is applied to the nominal total of all subject parts.
func (r *ContributionRound) Target(nominalTotal decimal.Decimal) decimal.Decimal {
	if r.TargetMultiplier != nil {
		return nominalTotal.Mul(decimal.NewFromFloat(*r.TargetMultiplier)).RoundBank(2)
	}
	return r.TargetAmount
}

// OptionByID returns the round option with the given id, if it was loaded
func (r *ContributionRound) OptionByID(id uint) *ContributionOption {
	for i := range r.Options {
		if r.Options[i].ID == id {
			return &r.Options[i]
		}
	}
	return nil
}
