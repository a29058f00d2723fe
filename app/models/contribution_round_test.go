package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestContributionRound_Target(t *testing.T) {
	r := &ContributionRound{TargetAmount: decimal.RequireFromString("5000")}
	assert.True(t, r.Target(decimal.RequireFromString("1234.56")).Equal(decimal.RequireFromString("5000")))

	m := 1.1
	r.TargetMultiplier = &m
	assert.Equal(t, "1100.00", r.Target(decimal.RequireFromString("1000")).StringFixed(2))
}

func TestContributionRound_Validate(t *testing.T) {
	r := &ContributionRound{Name: "Runde 2026", Status: ROUND_STATUS_DRAFT}
	assert.NoError(t, r.Validate())

	r.Status = "X"
	assert.Error(t, r.Validate())

	r.Status = ROUND_STATUS_ACTIVE
	r.Name = ""
	assert.Error(t, r.Validate())
}

func TestIsValidRoundStatus(t *testing.T) {
	for _, s := range []string{ROUND_STATUS_DRAFT, ROUND_STATUS_ACTIVE, ROUND_STATUS_CLOSED} {
		assert.True(t, IsValidRoundStatus(s), s)
	}
	assert.False(t, IsValidRoundStatus(""))
	assert.False(t, IsValidRoundStatus("active"))
}

func TestContributionOption_Factor(t *testing.T) {
	o := &ContributionOption{}
	assert.Equal(t, 1.0, o.Factor())

	m := 0.8
	o.Multiplier = &m
	assert.Equal(t, 0.8, o.Factor())
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("geheim123")
	assert.NoError(t, err)
	assert.NotEqual(t, "geheim123", hash)
	assert.True(t, CheckPasswordHash("geheim123", hash))
	assert.False(t, CheckPasswordHash("falsch", hash))
}

func TestAppSettings_Validate(t *testing.T) {
	s := DefaultAppSettings()
	assert.NoError(t, s.Validate())

	s.Currency = "Franken"
	assert.Error(t, s.Validate())
}
