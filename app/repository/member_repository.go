package repository

import (
	"time"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"gorm.io/gorm"
)

// memberRepository implements the MemberRepository interface
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository instance
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create creates a new member in the database
func (r *memberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

// GetByID retrieves a member by ID
func (r *memberRepository) GetByID(id uint) (*models.Member, error) {
	var member models.Member
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByEmail retrieves a member by email address
func (r *memberRepository) GetByEmail(email string) (*models.Member, error) {
	var member models.Member
	if err := r.db.Where("email = ?", email).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateLastLogin stores the time of the last successful login
func (r *memberRepository) UpdateLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.Member{}).Where("id = ?", id).Update("last_login_at", at).Error
}
