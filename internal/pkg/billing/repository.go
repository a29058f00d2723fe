package billing

import (
	"errors"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the billing sink.
type Repository interface {
	FindBill(memberID, businessYearID uint) (*models.Bill, error)
	FindItem(billID uint, description string) (*models.BillItem, error)
	UpsertItem(item *models.BillItem) error
	DeleteItems(description string, businessYearID uint) (int64, error)
	ListBusinessYears() ([]models.BusinessYear, error)
	ListItemTypes() ([]models.BillItemType, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// FindBill returns the member's bill of a business year, or nil when none was generated yet
func (r *gormRepository) FindBill(memberID, businessYearID uint) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.Where("member_id = ? AND business_year_id = ?", memberID, businessYearID).
		Order("id ASC").First(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *gormRepository) FindItem(billID uint, description string) (*models.BillItem, error) {
	var item models.BillItem
	err := r.db.Where("bill_id = ? AND description = ?", billID, description).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormRepository) UpsertItem(item *models.BillItem) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "bill_id"},
			{Name: "description"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"custom_item_type_id",
			"amount",
			"updated_at",
		}),
	}).Create(item).Error
}

func (r *gormRepository) DeleteItems(description string, businessYearID uint) (int64, error) {
	bills := r.db.Model(&models.Bill{}).Select("id").Where("business_year_id = ?", businessYearID)
	result := r.db.Where("description = ? AND bill_id IN (?)", description, bills).Delete(&models.BillItem{})
	return result.RowsAffected, result.Error
}

func (r *gormRepository) ListBusinessYears() ([]models.BusinessYear, error) {
	var years []models.BusinessYear
	err := r.db.Order("start_date DESC").Find(&years).Error
	return years, err
}

func (r *gormRepository) ListItemTypes() ([]models.BillItemType, error) {
	var types []models.BillItemType
	err := r.db.Order("name ASC").Find(&types).Error
	return types, err
}
