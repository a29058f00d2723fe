package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/testutil"
)

func TestSettingRepository_SaveAndReload(t *testing.T) {
	db := testutil.NewTestDB(t)
	settings := NewSettingRepository(db)
	t.Cleanup(func() { _ = models.SaveSettings(db, models.DefaultAppSettings()) })

	err := settings.Save(&models.AppSettings{SiteTitle: "", Currency: "CHF"})
	assert.Error(t, err, "title is required")

	require.NoError(t, settings.Save(&models.AppSettings{
		SiteTitle:                "Gemüsekooperative",
		Currency:                 "EUR",
		MultiplierPricingEnabled: false,
	}))

	got, err := settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Currency)

	// a row changed behind the application's back shows up after a reload
	require.NoError(t, db.Model(&models.Setting{}).
		Where("setting_key = ?", models.SettingCurrency).
		Update("value", "CHF").Error)

	got, err = settings.Reload()
	require.NoError(t, err)
	assert.Equal(t, "CHF", got.Currency)
	assert.Equal(t, "Gemüsekooperative", got.SiteTitle)
	assert.False(t, got.MultiplierPricingEnabled)
	assert.False(t, got.EligibilityCutoffsEnabled)
}
