package viewmodel

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "12.50", Money(decimal.RequireFromString("12.5")))
	assert.Equal(t, "0.00", Money(decimal.Zero))
}

func TestDate(t *testing.T) {
	d := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "09.03.2024", Date(d))
	assert.Equal(t, "09.03.2024", Date(&d))

	var nilDate *time.Time
	assert.Equal(t, "", Date(nilDate))
	assert.Equal(t, "", Date(time.Time{}))
	assert.Equal(t, "", Date("2024-03-09"))
}

func TestIDHelpers(t *testing.T) {
	id := uint(7)
	assert.True(t, IsID(&id, 7))
	assert.False(t, IsID(&id, 8))
	assert.False(t, IsID(nil, 7))

	assert.Equal(t, "7", IDValue(&id))
	assert.Equal(t, "", IDValue(nil))
}

func TestLayoutTitle(t *testing.T) {
	l := Layout{SiteTitle: "Beitragsrunden"}
	assert.Equal(t, "Beitragsrunden", l.Title())

	l.Page = "Zusammenfassung"
	assert.Equal(t, "Beitragsrunden | Zusammenfassung", l.Title())
}
