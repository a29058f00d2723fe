package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const (
	ROLE_MEMBER = "member"
	ROLE_ADMIN  = "admin"
)

// Member is a person of the cooperative. Members log in and act as primary
// member of their subscription.
type Member struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"type:varchar(100)" json:"first_name" validate:"required,max=100"`
	LastName    string     `gorm:"type:varchar(100)" json:"last_name" validate:"required,max=100"`
	Email       string     `gorm:"type:varchar(200);uniqueIndex" json:"email" validate:"required,email,max=200"`
	Password    string     `gorm:"type:text" json:"-"`
	Role        string     `gorm:"type:varchar(20)" json:"role" validate:"oneof=member admin"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Member model
func (Member) TableName() string {
	return "members"
}

func (m *Member) Validate() error {
	v := validator.New()

	return v.Struct(m)
}

func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

func (m *Member) IsAdmin() bool {
	return m.Role == ROLE_ADMIN
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
