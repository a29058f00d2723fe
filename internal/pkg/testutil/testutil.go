package testutil

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
)

// NewTestDB opens an in-memory sqlite database with all tables migrated.
// A single connection keeps the in-memory database alive for the whole test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// Date returns midnight UTC of the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DatePtr is Date returning a pointer
func DatePtr(year int, month time.Month, day int) *time.Time {
	d := Date(year, month, day)
	return &d
}

// Float returns a pointer to f
func Float(f float64) *float64 {
	return &f
}

// Money parses a decimal literal and panics on malformed input
func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Fixture creates rows for tests
type Fixture struct {
	DB *gorm.DB
	t  *testing.T
}

func NewFixture(t *testing.T, db *gorm.DB) *Fixture {
	return &Fixture{DB: db, t: t}
}

func (f *Fixture) Member(email string) *models.Member {
	f.t.Helper()
	hash, err := models.HashPassword("geheim123")
	require.NoError(f.t, err)
	m := &models.Member{FirstName: "Test", LastName: email, Email: email, Password: hash, Role: models.ROLE_MEMBER}
	require.NoError(f.t, f.DB.Create(m).Error)
	return m
}

func (f *Fixture) Type(name, price string, trialDays int) *models.SubscriptionType {
	f.t.Helper()
	st := &models.SubscriptionType{Name: name, Price: Money(price), TrialDays: trialDays}
	require.NoError(f.t, f.DB.Create(st).Error)
	return st
}

// Subscription creates a subscription of member with one part per type, all
// created on the given date
func (f *Fixture) Subscription(member *models.Member, created time.Time, types ...*models.SubscriptionType) *models.Subscription {
	f.t.Helper()
	sub := &models.Subscription{PrimaryMemberID: member.ID, CreationDate: created, ActivationDate: &created}
	require.NoError(f.t, f.DB.Omit("PrimaryMember", "Parts").Create(sub).Error)
	for _, st := range types {
		f.Part(sub, st, created)
	}
	return f.Reload(sub)
}

func (f *Fixture) Part(sub *models.Subscription, st *models.SubscriptionType, created time.Time) *models.SubscriptionPart {
	f.t.Helper()
	part := &models.SubscriptionPart{SubscriptionID: sub.ID, TypeID: st.ID, CreationDate: created}
	require.NoError(f.t, f.DB.Omit("Type").Create(part).Error)
	return part
}

// Reload fetches the subscription with parts, types and primary member
func (f *Fixture) Reload(sub *models.Subscription) *models.Subscription {
	f.t.Helper()
	var out models.Subscription
	require.NoError(f.t, f.DB.Preload("Parts").Preload("Parts.Type").Preload("PrimaryMember").First(&out, sub.ID).Error)
	return &out
}

func (f *Fixture) Round(name string, status string, mutate ...func(*models.ContributionRound)) *models.ContributionRound {
	f.t.Helper()
	r := &models.ContributionRound{Name: name, Status: status, TargetAmount: Money("1000")}
	for _, fn := range mutate {
		fn(r)
	}
	require.NoError(f.t, f.DB.Omit("Options", "MinimumAmount", "DefaultAmount").Create(r).Error)
	return r
}

func (f *Fixture) Option(round *models.ContributionRound, name string, multiplier *float64, visible bool, sortOrder uint) *models.ContributionOption {
	f.t.Helper()
	o := &models.ContributionOption{RoundID: round.ID, Name: name, Multiplier: multiplier, Visible: visible, SortOrder: sortOrder}
	require.NoError(f.t, f.DB.Omit("Conditions").Create(o).Error)
	return o
}

func (f *Fixture) Condition(option *models.ContributionOption, st *models.SubscriptionType, price string) *models.ContributionCondition {
	f.t.Helper()
	c := &models.ContributionCondition{OptionID: option.ID, SubscriptionTypeID: st.ID, Price: Money(price)}
	require.NoError(f.t, f.DB.Omit("SubscriptionType").Create(c).Error)
	return c
}

// SetMinimum points the round's minimum amount at option
func (f *Fixture) SetMinimum(round *models.ContributionRound, option *models.ContributionOption) {
	f.t.Helper()
	require.NoError(f.t, f.DB.Model(&models.ContributionRound{}).Where("id = ?", round.ID).
		Update("minimum_amount_id", option.ID).Error)
	round.MinimumAmountID = &option.ID
}

// SetDefault points the round's default amount at option
func (f *Fixture) SetDefault(round *models.ContributionRound, option *models.ContributionOption) {
	f.t.Helper()
	require.NoError(f.t, f.DB.Model(&models.ContributionRound{}).Where("id = ?", round.ID).
		Update("default_amount_id", option.ID).Error)
	round.DefaultAmountID = &option.ID
}

func (f *Fixture) Selection(round *models.ContributionRound, sub *models.Subscription, option *models.ContributionOption, price string) *models.ContributionSelection {
	f.t.Helper()
	s := &models.ContributionSelection{RoundID: round.ID, SubscriptionID: sub.ID, Price: Money(price), ModificationDate: time.Now()}
	if option != nil {
		s.SelectedOptionID = &option.ID
	}
	require.NoError(f.t, f.DB.Omit("Round", "SelectedOption").Create(s).Error)
	return s
}
