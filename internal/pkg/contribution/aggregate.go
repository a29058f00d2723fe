package contribution

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"github.com/ManuelReschke/juntagrico-contribution/app/repository"
)

var hundred = decimal.NewFromInt(100)

// Percent returns value as a percentage of total, rounded to two places.
// A zero total counts as complete and yields 100.
func Percent(value, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return hundred
	}
	return value.Mul(hundred).Div(total).RoundBank(2)
}

// PercentOf is Percent for counts
func PercentOf(count, total int) decimal.Decimal {
	return Percent(decimal.NewFromInt(int64(count)), decimal.NewFromInt(int64(total)))
}

// OptionSummary holds the statistics of one option
type OptionSummary struct {
	Option              models.ContributionOption
	SelectionCount      int
	SelectionPercentage decimal.Decimal
	Total               decimal.Decimal
	AveragePrice        decimal.Decimal
}

// Summary holds the statistics of a round
type Summary struct {
	Round                  *models.ContributionRound
	SubjectSubscriptions   int
	Submitted              int
	OtherAmounts           int
	OtherAmountsPercentage decimal.Decimal
	ContactRequests        int
	TotalSelected          decimal.Decimal
	TotalUnselected        decimal.Decimal
	CurrentTotal           decimal.Decimal
	NominalTotal           decimal.Decimal
	Target                 decimal.Decimal
	TargetPercentage       decimal.Decimal
	Progress               decimal.Decimal
	AveragePrice           decimal.Decimal
	Options                []OptionSummary
}

// Summarize computes the statistics of round from materialized data.
// Only selections of subscriptions that are subject to the round count.
func Summarize(round *models.ContributionRound, subs []models.Subscription, selections []models.ContributionSelection, cfg Config) Summary {
	resolver := NewResolver(round, cfg)
	subject := resolver.Eligibility().SubjectSubscriptions(subs)

	bySub := make(map[uint]*models.ContributionSelection, len(selections))
	for i := range selections {
		if selections[i].RoundID == round.ID {
			bySub[selections[i].SubscriptionID] = &selections[i]
		}
	}

	s := Summary{
		Round:                round,
		SubjectSubscriptions: len(subject),
		TotalSelected:        decimal.Zero,
		TotalUnselected:      decimal.Zero,
		NominalTotal:         decimal.Zero,
		AveragePrice:         decimal.Zero,
	}

	optionCounts := make(map[uint]int)
	optionTotals := make(map[uint]decimal.Decimal)
	defaultOption := resolver.DefaultOption()

	for i := range subject {
		sub := &subject[i]
		s.NominalTotal = s.NominalTotal.Add(resolver.NominalPrice(sub))

		sel, ok := bySub[sub.ID]
		if !ok {
			s.TotalUnselected = s.TotalUnselected.Add(resolver.PriceFor(defaultOption, sub))
			continue
		}
		s.Submitted++
		s.TotalSelected = s.TotalSelected.Add(sel.Price)
		if sel.ContactMe {
			s.ContactRequests++
		}
		if sel.SelectedOptionID == nil {
			s.OtherAmounts++
			continue
		}
		optionCounts[*sel.SelectedOptionID]++
		optionTotals[*sel.SelectedOptionID] = optionTotals[*sel.SelectedOptionID].Add(sel.Price)
	}

	s.CurrentTotal = s.TotalSelected.Add(s.TotalUnselected)
	s.Progress = PercentOf(s.Submitted, s.SubjectSubscriptions)
	s.OtherAmountsPercentage = PercentOf(s.OtherAmounts, s.Submitted)
	s.Target = round.Target(s.NominalTotal)
	s.TargetPercentage = Percent(s.CurrentTotal, s.Target)
	if s.Submitted > 0 {
		s.AveragePrice = s.TotalSelected.Div(decimal.NewFromInt(int64(s.Submitted))).RoundBank(2)
	}

	for _, opt := range round.Options {
		stat := OptionSummary{
			Option:              opt,
			SelectionCount:      optionCounts[opt.ID],
			SelectionPercentage: PercentOf(optionCounts[opt.ID], s.Submitted),
			Total:               optionTotals[opt.ID],
			AveragePrice:        decimal.Zero,
		}
		if stat.SelectionCount > 0 {
			stat.AveragePrice = stat.Total.Div(decimal.NewFromInt(int64(stat.SelectionCount))).RoundBank(2)
		}
		s.Options = append(s.Options, stat)
	}
	return s
}

// DetailRow is one subject subscription of a round with its selection
type DetailRow struct {
	Subscription models.Subscription
	Nominal      decimal.Decimal
	Selection    *models.ContributionSelection
}

// Aggregator loads round data and computes statistics
type Aggregator struct {
	rounds        repository.RoundRepository
	subscriptions repository.SubscriptionRepository
	selections    repository.SelectionRepository
	config        ConfigProvider
}

func NewAggregator(
	rounds repository.RoundRepository,
	subscriptions repository.SubscriptionRepository,
	selections repository.SelectionRepository,
	config ConfigProvider,
) *Aggregator {
	return &Aggregator{rounds: rounds, subscriptions: subscriptions, selections: selections, config: config}
}

func (a *Aggregator) load(roundID uint) (*models.ContributionRound, []models.Subscription, []models.ContributionSelection, error) {
	round, err := a.rounds.GetByID(roundID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil, ErrRoundNotFound
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load round: %w", err)
	}
	subs, err := a.subscriptions.GetActiveWithParts()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	selections, err := a.selections.GetByRoundID(roundID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load selections: %w", err)
	}
	return round, subs, selections, nil
}

// Summary computes the statistics of a round
func (a *Aggregator) Summary(ctx context.Context, roundID uint) (*Summary, error) {
	round, subs, selections, err := a.load(roundID)
	if err != nil {
		return nil, err
	}
	s := Summarize(round, subs, selections, a.config())
	return &s, nil
}

// Details lists the subject subscriptions of a round with their selection
func (a *Aggregator) Details(ctx context.Context, roundID uint) (*models.ContributionRound, []DetailRow, error) {
	round, subs, selections, err := a.load(roundID)
	if err != nil {
		return nil, nil, err
	}

	bySub := make(map[uint]*models.ContributionSelection, len(selections))
	for i := range selections {
		bySub[selections[i].SubscriptionID] = &selections[i]
	}

	resolver := NewResolver(round, a.config())
	subject := resolver.Eligibility().SubjectSubscriptions(subs)
	rows := make([]DetailRow, 0, len(subject))
	for i := range subject {
		rows = append(rows, DetailRow{
			Subscription: subject[i],
			Nominal:      resolver.NominalPrice(&subject[i]),
			Selection:    bySub[subject[i].ID],
		})
	}
	return round, rows, nil
}

// ValidSelections returns the selections of subject subscriptions, paired
// with their subscription, for transfers to billing
func (a *Aggregator) ValidSelections(ctx context.Context, roundID uint) (*models.ContributionRound, []ValidSelection, error) {
	round, rows, err := a.Details(ctx, roundID)
	if err != nil {
		return nil, nil, err
	}
	var out []ValidSelection
	for _, row := range rows {
		if row.Selection == nil {
			continue
		}
		out = append(out, ValidSelection{Subscription: row.Subscription, Selection: *row.Selection, Nominal: row.Nominal})
	}
	return round, out, nil
}

// ValidSelection is a selection that counts for the round
type ValidSelection struct {
	Subscription models.Subscription
	Selection    models.ContributionSelection
	Nominal      decimal.Decimal
}

// Delta is the amount above the nominal price
func (v ValidSelection) Delta() decimal.Decimal {
	return v.Selection.Price.Sub(v.Nominal)
}
