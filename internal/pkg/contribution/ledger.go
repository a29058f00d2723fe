package contribution

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"github.com/ManuelReschke/juntagrico-contribution/app/repository"
)

// SubmitInput is one member choice. Either OptionID is set or Other is true
// with FreeAmount holding the entered amount.
type SubmitInput struct {
	Round        *models.ContributionRound
	Subscription *models.Subscription
	OptionID     *uint
	Other        bool
	FreeAmount   *decimal.Decimal
	ContactMe    bool
}

// PricedOption is an option offered to one subscription together with its price
type PricedOption struct {
	Option models.ContributionOption
	Price  decimal.Decimal
}

// Ledger records member selections
type Ledger struct {
	selections repository.SelectionRepository
	config     ConfigProvider
	now        func() time.Time
}

func NewLedger(selections repository.SelectionRepository, config ConfigProvider) *Ledger {
	return &Ledger{selections: selections, config: config, now: time.Now}
}

// Prior returns the existing selection of sub in round, or nil
func (l *Ledger) Prior(round *models.ContributionRound, sub *models.Subscription) (*models.ContributionSelection, error) {
	return l.selections.FindByRoundAndSubscription(round.ID, sub.ID)
}

// VisibleOptions lists the visible options of round priced for sub. Once a
// selection exists only options at least as expensive are offered.
func (l *Ledger) VisibleOptions(round *models.ContributionRound, sub *models.Subscription, prior *models.ContributionSelection) []PricedOption {
	resolver := NewResolver(round, l.config())
	out := make([]PricedOption, 0, len(round.Options))
	for _, opt := range round.Options {
		if !opt.Visible {
			continue
		}
		price := resolver.PriceFor(&opt, sub)
		if prior != nil && price.LessThan(prior.Price) {
			continue
		}
		out = append(out, PricedOption{Option: opt, Price: price})
	}
	return out
}

// MinimumFor returns the lowest free amount sub may enter: the price of the
// round's minimum option, raised to the prior selection's price
func (l *Ledger) MinimumFor(round *models.ContributionRound, sub *models.Subscription, prior *models.ContributionSelection) decimal.Decimal {
	resolver := NewResolver(round, l.config())
	minimum := decimal.Zero
	if opt := resolver.MinimumOption(); opt != nil {
		minimum = resolver.PriceFor(opt, sub)
	}
	if prior != nil && prior.Price.GreaterThan(minimum) {
		minimum = prior.Price
	}
	return minimum
}

// Submit validates the choice and stores it, replacing an earlier selection
// of the same subscription in the same round
func (l *Ledger) Submit(ctx context.Context, in SubmitInput) (*models.ContributionSelection, error) {
	round, sub := in.Round, in.Subscription
	if !round.IsActive() {
		return nil, ErrRoundNotActive
	}
	cfg := l.config()
	resolver := NewResolver(round, cfg)
	if !resolver.Eligibility().IsSubject(sub) {
		return nil, ErrNotSubject
	}

	prior, err := l.Prior(round, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior selection: %w", err)
	}

	selection := &models.ContributionSelection{
		RoundID:          round.ID,
		SubscriptionID:   sub.ID,
		ContactMe:        in.ContactMe,
		ModificationDate: l.now(),
	}

	switch {
	case in.Other:
		price, verr := l.validateFreeAmount(round, sub, prior, in.FreeAmount, cfg)
		if verr != nil {
			return nil, verr
		}
		selection.Price = price
	case in.OptionID != nil:
		opt := round.OptionByID(*in.OptionID)
		if opt == nil || !opt.Visible {
			return nil, fieldError(FieldSelection, "Ungültige Auswahl")
		}
		price := resolver.PriceFor(opt, sub)
		if prior != nil && price.LessThan(prior.Price) {
			return nil, fieldError(FieldSelection, fmt.Sprintf(
				"Der Beitrag darf nicht tiefer sein als der bisherige (%s %s)", prior.Price.StringFixed(2), cfg.Currency,
			))
		}
		selection.SelectedOptionID = &opt.ID
		selection.Price = price
	default:
		return nil, fieldError(FieldSelection, "Bitte wähle eine Option")
	}

	stored, err := l.selections.Upsert(selection)
	if err != nil {
		return nil, err
	}

	zap.L().Info("contribution selection saved",
		zap.Uint("round_id", round.ID),
		zap.Uint("subscription_id", sub.ID),
		zap.String("price", stored.Price.StringFixed(2)),
		zap.Bool("other_amount", stored.IsOtherAmount()),
		zap.Bool("replaced", prior != nil),
	)
	return stored, nil
}

func (l *Ledger) validateFreeAmount(
	round *models.ContributionRound,
	sub *models.Subscription,
	prior *models.ContributionSelection,
	amount *decimal.Decimal,
	cfg Config,
) (decimal.Decimal, error) {
	if !round.OtherAmount {
		return decimal.Zero, fieldError(FieldSelection, "Ein anderer Betrag ist in dieser Beitragsrunde nicht möglich")
	}
	if amount == nil {
		return decimal.Zero, fieldError(FieldOtherAmount, "Gib einen Betrag ein")
	}
	if !amount.Equal(amount.Truncate(2)) {
		return decimal.Zero, fieldError(FieldOtherAmount, "Höchstens zwei Nachkommastellen")
	}
	if amount.GreaterThan(models.MaxMoney) {
		return decimal.Zero, fieldError(FieldOtherAmount, "Höchstens 7 Stellen vor dem Komma")
	}
	minimum := l.MinimumFor(round, sub, prior)
	if amount.LessThan(minimum) {
		return decimal.Zero, fieldError(FieldOtherAmount, fmt.Sprintf(
			"Der Mindestbetrag ist %s %s", minimum.StringFixed(2), cfg.Currency,
		))
	}
	return *amount, nil
}
