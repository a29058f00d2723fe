package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/testutil"
)

func setupBilling(t *testing.T) (*gorm.DB, *Service, *models.BusinessYear, *models.BusinessYear) {
	db := testutil.NewTestDB(t)
	y2025 := &models.BusinessYear{Name: "2025", StartDate: testutil.Date(2025, 1, 1), EndDate: testutil.Date(2025, 12, 31)}
	y2026 := &models.BusinessYear{Name: "2026", StartDate: testutil.Date(2026, 1, 1), EndDate: testutil.Date(2026, 12, 31)}
	require.NoError(t, db.Create(y2025).Error)
	require.NoError(t, db.Create(y2026).Error)
	return db, NewServiceFromDB(db), y2025, y2026
}

func createBill(t *testing.T, db *gorm.DB, memberID, yearID uint) *models.Bill {
	b := &models.Bill{MemberID: memberID, BusinessYearID: yearID, BillDate: testutil.Date(2026, 1, 15)}
	require.NoError(t, db.Omit("BusinessYear", "Items").Create(b).Error)
	return b
}

func TestService_TransferIsIdempotent(t *testing.T) {
	db, svc, _, y2026 := setupBilling(t)
	ctx := context.Background()
	createBill(t, db, 1, y2026.ID)
	createBill(t, db, 2, y2026.ID)

	req := TransferRequest{
		RoundName:      "Runde 2026",
		BusinessYearID: y2026.ID,
		Lines: []Line{
			{MemberID: 1, Amount: testutil.Money("20")},
			{MemberID: 2, Amount: testutil.Money("-10.50")},
			{MemberID: 3, Amount: testutil.Money("5")},
		},
	}

	res, err := svc.Transfer(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 0, res.Updated)
	assert.Equal(t, []uint{3}, res.FailedMembers)
	assert.Equal(t, 1, res.Failed())
	assert.NotEmpty(t, res.RunID)

	req.Lines[0].Amount = testutil.Money("25")
	res, err = svc.Transfer(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 2, res.Updated)

	var items []models.BillItem
	require.NoError(t, db.Order("bill_id ASC").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, "Beitragsrunde Runde 2026", items[0].Description)
	assert.Equal(t, "25.00", items[0].Amount.StringFixed(2))
	assert.Equal(t, "-10.50", items[1].Amount.StringFixed(2))
}

func TestService_UndoIsScopedToBusinessYear(t *testing.T) {
	db, svc, y2025, y2026 := setupBilling(t)
	ctx := context.Background()
	createBill(t, db, 1, y2025.ID)
	createBill(t, db, 1, y2026.ID)

	for _, year := range []uint{y2025.ID, y2026.ID} {
		_, err := svc.Transfer(ctx, TransferRequest{
			RoundName:      "Runde",
			BusinessYearID: year,
			Lines:          []Line{{MemberID: 1, Amount: testutil.Money("10")}},
		})
		require.NoError(t, err)
	}

	n, err := svc.Undo(ctx, UndoRequest{RoundName: "Runde", BusinessYearID: y2026.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var remaining []models.BillItem
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
}

func TestService_RequiresRoundAndYear(t *testing.T) {
	_, svc, _, _ := setupBilling(t)
	_, err := svc.Transfer(context.Background(), TransferRequest{RoundName: " "})
	assert.Error(t, err)
	_, err = svc.Undo(context.Background(), UndoRequest{RoundName: "Runde"})
	assert.Error(t, err)
}

func TestNoopSink(t *testing.T) {
	var sink Sink = NoopSink{}
	assert.False(t, sink.Enabled())
	_, err := sink.Transfer(context.Background(), TransferRequest{})
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = sink.Undo(context.Background(), UndoRequest{})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "Beitragsrunde Herbst", Description("Herbst"))
}
