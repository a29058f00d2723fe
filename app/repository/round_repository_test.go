package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/testutil"
)

func TestRoundRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	fx := testutil.NewFixture(t, db)
	rounds := NewRoundRepository(db)

	st := fx.Type("Gemüse", "100", 0)
	sub := fx.Subscription(fx.Member("a@example.org"), testutil.Date(2025, 1, 1), st)
	round := fx.Round("Runde 1", models.ROUND_STATUS_DRAFT)
	opt := fx.Option(round, "Minimum", testutil.Float(0.8), true, 1)
	fx.Condition(opt, st, "85")
	fx.SetMinimum(round, opt)
	fx.Selection(round, sub, opt, "85")

	other := fx.Round("Runde 2", models.ROUND_STATUS_DRAFT)
	fx.Option(other, "Andere", nil, true, 1)

	require.NoError(t, rounds.Delete(round.ID))

	_, err := rounds.GetByID(round.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	for _, model := range []interface{}{&models.ContributionSelection{}, &models.ContributionCondition{}} {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		assert.Zero(t, n)
	}

	var options int64
	require.NoError(t, db.Model(&models.ContributionOption{}).Count(&options).Error)
	assert.Equal(t, int64(1), options, "options of other rounds survive")

	assert.ErrorIs(t, rounds.Delete(round.ID), gorm.ErrRecordNotFound)
}

func TestRoundRepository_ActiveAndDefault(t *testing.T) {
	db := testutil.NewTestDB(t)
	fx := testutil.NewFixture(t, db)
	rounds := NewRoundRepository(db)

	_, err := rounds.GetActive()
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	draft := fx.Round("Entwurf", models.ROUND_STATUS_DRAFT)
	closed := fx.Round("Alt", models.ROUND_STATUS_CLOSED)

	def, err := rounds.GetDefault()
	require.NoError(t, err)
	assert.Equal(t, closed.ID, def.ID)

	active := fx.Round("Aktuell", models.ROUND_STATUS_ACTIVE)
	fx.Option(active, "B", nil, true, 2)
	fx.Option(active, "A", nil, true, 1)

	got, err := rounds.GetActive()
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)
	require.Len(t, got.Options, 2)
	assert.Equal(t, "A", got.Options[0].Name)

	def, err = rounds.GetDefault()
	require.NoError(t, err)
	assert.Equal(t, active.ID, def.ID)

	other, err := rounds.FindOtherActive(draft.ID)
	require.NoError(t, err)
	require.NotNil(t, other)
	assert.Equal(t, active.ID, other.ID)

	other, err = rounds.FindOtherActive(active.ID)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestRoundRepository_UpdateStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	fx := testutil.NewFixture(t, db)
	rounds := NewRoundRepository(db)

	round := fx.Round("Runde", models.ROUND_STATUS_DRAFT)
	require.NoError(t, rounds.UpdateStatus(round.ID, models.ROUND_STATUS_ACTIVE))

	got, err := rounds.GetByID(round.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive())

	assert.ErrorIs(t, rounds.UpdateStatus(999, models.ROUND_STATUS_ACTIVE), gorm.ErrRecordNotFound)
}

func TestSubscriptionRepository_GetForMember(t *testing.T) {
	db := testutil.NewTestDB(t)
	fx := testutil.NewFixture(t, db)
	subs := NewSubscriptionRepository(db)

	st := fx.Type("Gemüse", "100", 0)
	member := fx.Member("a@example.org")
	now := testutil.Date(2026, 3, 1)

	got, err := subs.GetForMember(member.ID, now)
	require.NoError(t, err)
	assert.Nil(t, got)

	current := fx.Subscription(member, testutil.Date(2025, 1, 1), st)
	got, err = subs.GetForMember(member.ID, now)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, current.ID, got.ID)
	require.Len(t, got.Parts, 1)
	assert.Equal(t, "100.00", got.Parts[0].Type.Price.StringFixed(2))

	future := fx.Subscription(member, testutil.Date(2026, 6, 1), st)
	got, err = subs.GetForMember(member.ID, now)
	require.NoError(t, err)
	assert.Equal(t, future.ID, got.ID)
}
