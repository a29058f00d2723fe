package contribution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"github.com/ManuelReschke/juntagrico-contribution/app/repository"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/billing"
)

// Service bundles the contribution components for the controllers
type Service struct {
	repos *repository.Repositories

	Ledger     *Ledger
	Aggregator *Aggregator
	Lifecycle  *Lifecycle
	Billing    billing.Sink

	config ConfigProvider
	now    func() time.Time
}

// NewService wires the components. sink and locker may be nil.
func NewService(repos *repository.Repositories, sink billing.Sink, locker Locker, config ConfigProvider) *Service {
	if sink == nil {
		sink = billing.NoopSink{}
	}
	if config == nil {
		config = SettingsConfig
	}
	return &Service{
		repos:      repos,
		Ledger:     NewLedger(repos.Selection, config),
		Aggregator: NewAggregator(repos.Round, repos.Subscription, repos.Selection, config),
		Lifecycle:  NewLifecycle(repos.Round, locker),
		Billing:    sink,
		config:     config,
		now:        time.Now,
	}
}

// Config returns the current feature configuration
func (s *Service) Config() Config {
	return s.config()
}

// ActiveRound returns the active round or ErrNoActiveRound
func (s *Service) ActiveRound(ctx context.Context) (*models.ContributionRound, error) {
	return s.Lifecycle.ActiveRound(ctx)
}

// Round loads a round with its options
func (s *Service) Round(ctx context.Context, id uint) (*models.ContributionRound, error) {
	round, err := s.repos.Round.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoundNotFound
	}
	return round, err
}

// SubscriptionOf returns the subscription a member contributes for, or nil
func (s *Service) SubscriptionOf(ctx context.Context, memberID uint) (*models.Subscription, error) {
	return s.repos.Subscription.GetForMember(memberID, s.now())
}

// ShowMenu reports whether the member menu entry is shown: a round is
// active or the member's subscription has a selection
func (s *Service) ShowMenu(ctx context.Context, memberID uint) (bool, error) {
	if _, err := s.ActiveRound(ctx); err == nil {
		return true, nil
	} else if !errors.Is(err, ErrNoActiveRound) {
		return false, err
	}
	sub, err := s.SubscriptionOf(ctx, memberID)
	if err != nil || sub == nil {
		return false, err
	}
	return s.repos.Selection.ExistsForSubscription(sub.ID)
}

// SelectionView is everything the member selection form shows
type SelectionView struct {
	Round        *models.ContributionRound
	Subscription *models.Subscription
	Prior        *models.ContributionSelection
	Options      []PricedOption
	Nominal      string
	Minimum      string
	Currency     string
}

// SelectionForm prepares the selection form of sub in the active round
func (s *Service) SelectionForm(ctx context.Context, sub *models.Subscription) (*SelectionView, error) {
	round, err := s.ActiveRound(ctx)
	if err != nil {
		return nil, err
	}
	cfg := s.config()
	prior, err := s.Ledger.Prior(round, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior selection: %w", err)
	}
	resolver := NewResolver(round, cfg)
	return &SelectionView{
		Round:        round,
		Subscription: sub,
		Prior:        prior,
		Options:      s.Ledger.VisibleOptions(round, sub, prior),
		Nominal:      resolver.NominalPrice(sub).StringFixed(2),
		Minimum:      s.Ledger.MinimumFor(round, sub, prior).StringFixed(2),
		Currency:     cfg.Currency,
	}, nil
}

// Submit records a member choice in the active round
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.ContributionSelection, error) {
	if in.Round == nil {
		round, err := s.ActiveRound(ctx)
		if err != nil {
			return nil, err
		}
		in.Round = round
	}
	return s.Ledger.Submit(ctx, in)
}

// SelectionsOf lists every selection of a subscription, newest round first
func (s *Service) SelectionsOf(ctx context.Context, subscriptionID uint) ([]models.ContributionSelection, error) {
	return s.repos.Selection.GetBySubscriptionID(subscriptionID)
}

// Transfer books the amount above nominal of every valid selection of the
// round onto the bills of the business year
func (s *Service) Transfer(ctx context.Context, roundID, businessYearID uint, itemTypeID *uint) (*billing.TransferResult, error) {
	if !s.Billing.Enabled() {
		return nil, billing.ErrDisabled
	}
	round, selections, err := s.Aggregator.ValidSelections(ctx, roundID)
	if err != nil {
		return nil, err
	}
	lines := make([]billing.Line, 0, len(selections))
	for _, v := range selections {
		lines = append(lines, billing.Line{
			MemberID:       v.Subscription.PrimaryMemberID,
			SubscriptionID: v.Subscription.ID,
			Amount:         v.Delta(),
		})
	}
	return s.Billing.Transfer(ctx, billing.TransferRequest{
		RoundName:      round.Name,
		BusinessYearID: businessYearID,
		ItemTypeID:     itemTypeID,
		Lines:          lines,
	})
}

// UndoTransfer removes the round's bill items from the business year
func (s *Service) UndoTransfer(ctx context.Context, roundID, businessYearID uint) (int64, error) {
	if !s.Billing.Enabled() {
		return 0, billing.ErrDisabled
	}
	round, err := s.Round(ctx, roundID)
	if err != nil {
		return 0, err
	}
	return s.Billing.Undo(ctx, billing.UndoRequest{RoundName: round.Name, BusinessYearID: businessYearID})
}
