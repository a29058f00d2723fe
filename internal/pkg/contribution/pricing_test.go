package contribution

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/testutil"
)

func TestPriceTable_ConditionWinsOverMultiplier(t *testing.T) {
	opt := &models.ContributionOption{
		ID:         1,
		Multiplier: testutil.Float(1.2),
		Conditions: []models.ContributionCondition{
			{OptionID: 1, SubscriptionTypeID: typeHalf.ID, Price: testutil.Money("65")},
		},
	}
	table := NewPriceTable(opt, DefaultConfig())

	assert.Equal(t, "120.00", table.PriceByType(&typeRegular).StringFixed(2))
	assert.Equal(t, "65.00", table.PriceByType(&typeHalf).StringFixed(2))
}

func TestPriceTable_NilOptionIsNominal(t *testing.T) {
	table := NewPriceTable(nil, DefaultConfig())
	assert.True(t, table.PriceByType(&typeRegular).Equal(typeRegular.Price))
}

func TestPriceTable_MultiplierPricingDisabled(t *testing.T) {
	opt := &models.ContributionOption{ID: 1, Multiplier: testutil.Float(0.8)}
	cfg := DefaultConfig()
	cfg.MultiplierPricing = false

	assert.Equal(t, "100.00", NewPriceTable(opt, cfg).PriceByType(&typeRegular).StringFixed(2))
}

func TestResolver_SumsSubjectParts(t *testing.T) {
	created := testutil.Date(2024, 1, 1)
	sub := subscription(1, created,
		part(1, typeRegular, created),
		part(2, typeHalf, created),
		part(3, typeTrial, created),
	)
	round := &models.ContributionRound{}
	opt := &models.ContributionOption{ID: 1, Multiplier: testutil.Float(1.1)}

	r := NewResolver(round, DefaultConfig())
	assert.Equal(t, "160.00", r.NominalPrice(&sub).StringFixed(2))
	assert.Equal(t, "176.00", r.PriceFor(opt, &sub).StringFixed(2))
}

func TestResolver_RoundsHalfEvenOnce(t *testing.T) {
	created := testutil.Date(2024, 1, 1)
	cheap := models.SubscriptionType{ID: 9, Price: testutil.Money("0.05")}
	sub := subscription(1, created, part(1, cheap, created))
	r := NewResolver(&models.ContributionRound{}, DefaultConfig())

	// 0.05 * 0.5 = 0.025 rounds to the even cent
	assert.Equal(t, "0.02", r.PriceFor(&models.ContributionOption{Multiplier: testutil.Float(0.5)}, &sub).StringFixed(2))
	// 0.05 * 0.7 = 0.035 rounds up to the even cent
	assert.Equal(t, "0.04", r.PriceFor(&models.ContributionOption{Multiplier: testutil.Float(0.7)}, &sub).StringFixed(2))
}

func TestResolver_MinimumAndDefaultOptions(t *testing.T) {
	low := models.ContributionOption{ID: 4, Name: "Tief"}
	high := models.ContributionOption{ID: 5, Name: "Hoch"}
	round := &models.ContributionRound{Options: []models.ContributionOption{low, high}}

	r := NewResolver(round, DefaultConfig())
	assert.Nil(t, r.MinimumOption())
	assert.Nil(t, r.DefaultOption())

	round.MinimumAmountID = &low.ID
	round.DefaultAmountID = &high.ID
	assert.Equal(t, "Tief", r.MinimumOption().Name)
	assert.Equal(t, "Hoch", r.DefaultOption().Name)
}

func TestPricesByType(t *testing.T) {
	opt := &models.ContributionOption{
		ID:         1,
		Multiplier: testutil.Float(0.8),
		Conditions: []models.ContributionCondition{{SubscriptionTypeID: typeTrial.ID, Price: testutil.Money("0")}},
	}
	prices := PricesByType(opt, []models.SubscriptionType{typeRegular, typeHalf, typeTrial}, DefaultConfig())

	assert.Len(t, prices, 3)
	assert.Equal(t, "80.00", prices[0].Price.StringFixed(2))
	assert.Equal(t, "48.00", prices[1].Price.StringFixed(2))
	assert.Equal(t, "0.00", prices[2].Price.StringFixed(2))
}
