package contribution

import (
	"github.com/shopspring/decimal"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
)

// PriceTable resolves the per-part price of one option
type PriceTable struct {
	explicit map[uint]decimal.Decimal
	factor   decimal.Decimal
}

// NewPriceTable builds the table of option. A nil option prices every part
// at its nominal price. Conditions of the option must be loaded.
func NewPriceTable(option *models.ContributionOption, cfg Config) PriceTable {
	pt := PriceTable{explicit: map[uint]decimal.Decimal{}, factor: decimal.NewFromInt(1)}
	if option == nil {
		return pt
	}
	for _, c := range option.Conditions {
		pt.explicit[c.SubscriptionTypeID] = c.Price
	}
	if cfg.MultiplierPricing {
		pt.factor = decimal.NewFromFloat(option.Factor())
	}
	return pt
}

// PriceByType returns the unrounded price of one part of type st
func (pt PriceTable) PriceByType(st *models.SubscriptionType) decimal.Decimal {
	if p, ok := pt.explicit[st.ID]; ok {
		return p
	}
	return st.Price.Mul(pt.factor)
}

// Resolver computes contribution prices of subscriptions in one round
type Resolver struct {
	round       *models.ContributionRound
	cfg         Config
	eligibility *Eligibility
}

func NewResolver(round *models.ContributionRound, cfg Config) *Resolver {
	return &Resolver{round: round, cfg: cfg, eligibility: NewEligibility(round, cfg)}
}

// Eligibility returns the filter the resolver prices with
func (r *Resolver) Eligibility() *Eligibility {
	return r.eligibility
}

// PriceFor sums the option price over the subject parts of sub and rounds
// the total half-even to cents. A nil option yields the nominal price.
func (r *Resolver) PriceFor(option *models.ContributionOption, sub *models.Subscription) decimal.Decimal {
	table := NewPriceTable(option, r.cfg)
	total := decimal.Zero
	for _, part := range r.eligibility.SubjectParts(sub) {
		total = total.Add(table.PriceByType(&part.Type))
	}
	return total.RoundBank(2)
}

// NominalPrice sums the type prices over the subject parts of sub
func (r *Resolver) NominalPrice(sub *models.Subscription) decimal.Decimal {
	return r.PriceFor(nil, sub)
}

// MinimumOption returns the round's minimum amount option, if configured and loaded
func (r *Resolver) MinimumOption() *models.ContributionOption {
	if r.round.MinimumAmountID == nil {
		return nil
	}
	return r.round.OptionByID(*r.round.MinimumAmountID)
}

// DefaultOption returns the option unselected subscriptions are projected with
func (r *Resolver) DefaultOption() *models.ContributionOption {
	if r.round.DefaultAmountID == nil {
		return nil
	}
	return r.round.OptionByID(*r.round.DefaultAmountID)
}

// TypePrice is the price of an option for one subscription type
type TypePrice struct {
	Type  models.SubscriptionType
	Price decimal.Decimal
}

// PricesByType lists the option's price for each type, rounded to cents
func PricesByType(option *models.ContributionOption, types []models.SubscriptionType, cfg Config) []TypePrice {
	table := NewPriceTable(option, cfg)
	out := make([]TypePrice, 0, len(types))
	for i := range types {
		out = append(out, TypePrice{Type: types[i], Price: table.PriceByType(&types[i]).RoundBank(2)})
	}
	return out
}
