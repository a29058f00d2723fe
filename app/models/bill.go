package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BusinessYear groups the bills of one accounting period
type BusinessYear struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	StartDate time.Time `gorm:"type:date" json:"start_date"`
	EndDate   time.Time `gorm:"type:date" json:"end_date"`
}

func (BusinessYear) TableName() string {
	return "billing_business_years"
}

// BillItemType classifies bill items
type BillItemType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

func (BillItemType) TableName() string {
	return "billing_bill_item_types"
}

// Bill is the invoice of one member for one business year
type Bill struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	MemberID       uint         `gorm:"not null;index:idx_bill_member_year" json:"member_id"`
	BusinessYearID uint         `gorm:"not null;index:idx_bill_member_year" json:"business_year_id"`
	BusinessYear   BusinessYear `gorm:"foreignKey:BusinessYearID" json:"-"`
	BillDate       time.Time    `gorm:"type:date" json:"bill_date"`
	Items          []BillItem   `gorm:"foreignKey:BillID" json:"items,omitempty"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (Bill) TableName() string {
	return "billing_bills"
}

// BillItem is one line of a bill. Items created from a contribution round are
// identified by their description.
type BillItem struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	BillID           uint            `gorm:"not null;uniqueIndex:idx_bill_description" json:"bill_id"`
	Description      string          `gorm:"type:varchar(150);not null;uniqueIndex:idx_bill_description" json:"description"`
	CustomItemTypeID *uint           `gorm:"index" json:"custom_item_type_id,omitempty"`
	Amount           decimal.Decimal `gorm:"type:DECIMAL(9,2);not null" json:"amount"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BillItem) TableName() string {
	return "billing_bill_items"
}
