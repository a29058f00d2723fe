package contribution

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/testutil"
)

var (
	typeRegular = models.SubscriptionType{ID: 1, Name: "Gemüse", Price: testutil.Money("100")}
	typeHalf    = models.SubscriptionType{ID: 2, Name: "Halbes Gemüse", Price: testutil.Money("60")}
	typeTrial   = models.SubscriptionType{ID: 3, Name: "Probe", Price: testutil.Money("30"), TrialDays: 30}
)

func part(id uint, st models.SubscriptionType, created time.Time) models.SubscriptionPart {
	return models.SubscriptionPart{ID: id, TypeID: st.ID, Type: st, CreationDate: created}
}

func subscription(id uint, created time.Time, parts ...models.SubscriptionPart) models.Subscription {
	return models.Subscription{ID: id, PrimaryMemberID: id, CreationDate: created, Parts: parts}
}

func TestEligibility_ExcludesTrialAndDeactivatedParts(t *testing.T) {
	created := testutil.Date(2025, 1, 1)
	deactivated := part(3, typeRegular, created)
	deactivated.DeactivationDate = testutil.DatePtr(2025, 6, 1)
	sub := subscription(1, created,
		part(1, typeRegular, created),
		part(2, typeTrial, created),
		deactivated,
	)

	e := NewEligibility(&models.ContributionRound{}, DefaultConfig())
	parts := e.SubjectParts(&sub)

	assert.Len(t, parts, 1)
	assert.Equal(t, uint(1), parts[0].ID)
	assert.True(t, e.IsSubject(&sub))
}

func TestEligibility_OnlyTrialIsNotSubject(t *testing.T) {
	created := testutil.Date(2025, 1, 1)
	sub := subscription(1, created, part(1, typeTrial, created))

	e := NewEligibility(&models.ContributionRound{}, DefaultConfig())
	assert.False(t, e.IsSubject(&sub))
	assert.Empty(t, e.SubjectParts(&sub))
}

func TestEligibility_CancellationCutoff(t *testing.T) {
	created := testutil.Date(2024, 1, 1)
	round := &models.ContributionRound{CancellationCutoff: testutil.DatePtr(2025, 3, 31)}

	tests := []struct {
		name         string
		cancellation *time.Time
		want         bool
	}{
		{"not cancelled", nil, true},
		{"cancelled before cutoff", testutil.DatePtr(2025, 3, 1), false},
		{"cancelled on cutoff day", testutil.DatePtr(2025, 3, 31), false},
		{"cancelled after cutoff", testutil.DatePtr(2025, 4, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := part(1, typeRegular, created)
			p.CancellationDate = tt.cancellation
			sub := subscription(1, created, p)
			assert.Equal(t, tt.want, NewEligibility(round, DefaultConfig()).IsSubject(&sub))
		})
	}
}

func TestEligibility_CreationCutoff(t *testing.T) {
	round := &models.ContributionRound{CreationCutoff: testutil.DatePtr(2025, 1, 1)}
	e := NewEligibility(round, DefaultConfig())

	old := subscription(1, testutil.Date(2024, 12, 31), part(1, typeRegular, testutil.Date(2024, 12, 31)))
	onDay := subscription(2, testutil.Date(2025, 1, 1), part(2, typeRegular, testutil.Date(2025, 1, 1)))
	newer := subscription(3, testutil.Date(2025, 2, 1), part(3, typeRegular, testutil.Date(2025, 2, 1)))

	assert.False(t, e.IsSubject(&old))
	assert.True(t, e.IsSubject(&onDay))
	assert.True(t, e.IsSubject(&newer))
}

func TestEligibility_CutoffsCanBeDisabled(t *testing.T) {
	round := &models.ContributionRound{
		CreationCutoff:     testutil.DatePtr(2025, 1, 1),
		CancellationCutoff: testutil.DatePtr(2025, 3, 31),
	}
	p := part(1, typeRegular, testutil.Date(2024, 1, 1))
	p.CancellationDate = testutil.DatePtr(2025, 1, 15)
	sub := subscription(1, testutil.Date(2024, 1, 1), p)

	cfg := DefaultConfig()
	assert.False(t, NewEligibility(round, cfg).IsSubject(&sub))

	cfg.EligibilityCutoffs = false
	assert.True(t, NewEligibility(round, cfg).IsSubject(&sub))
}

func TestEligibility_SubscriptionDatesApply(t *testing.T) {
	created := testutil.Date(2024, 1, 1)
	sub := subscription(1, created, part(1, typeRegular, created))
	sub.DeactivationDate = testutil.DatePtr(2025, 1, 1)

	e := NewEligibility(&models.ContributionRound{}, DefaultConfig())
	assert.False(t, e.IsSubject(&sub))
	assert.Empty(t, e.SubjectParts(&sub))
}

func TestEligibility_SubjectSubscriptionsAreDistinct(t *testing.T) {
	created := testutil.Date(2024, 1, 1)
	a := subscription(1, created, part(1, typeRegular, created), part(2, typeHalf, created))
	b := subscription(2, created, part(3, typeTrial, created))

	e := NewEligibility(&models.ContributionRound{}, DefaultConfig())
	subs := e.SubjectSubscriptions([]models.Subscription{a, b, a})

	assert.Len(t, subs, 1)
	assert.Equal(t, uint(1), subs[0].ID)
	assert.Len(t, e.AllSubjectParts([]models.Subscription{a, b, a}), 2)
}
