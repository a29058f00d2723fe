package apiv1

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/contribution"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/logger"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/usercontext"
)

// APIServer implements the ServerInterface
type APIServer struct {
	svc *contribution.Service
}

// NewAPIServer creates a new API server instance
func NewAPIServer(svc *contribution.Service) *APIServer {
	return &APIServer{svc: svc}
}

func internalError(c *fiber.Ctx, message string, err error) error {
	logger.FromContext(c.UserContext()).Error(message, zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(Error{Error: "internal_server_error", Message: message})
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Pong{Ping: "pong"})
}

// GetActiveRound returns the active round with its visible options. Prices
// are included when the member's subscription takes part in the round.
func (s *APIServer) GetActiveRound(c *fiber.Ctx) error {
	ctx := c.UserContext()
	round, err := s.svc.ActiveRound(ctx)
	if errors.Is(err, contribution.ErrNoActiveRound) {
		return c.Status(fiber.StatusNotFound).JSON(Error{Error: "not_found", Message: "no active round"})
	}
	if err != nil {
		return internalError(c, "failed to load active round", err)
	}

	cfg := s.svc.Config()
	out := ActiveRound{
		ID:          round.ID,
		Name:        round.Name,
		Description: round.Description,
		OtherAmount: round.OtherAmount,
		Currency:    cfg.Currency,
		Options:     []Option{},
	}

	sub, err := s.svc.SubscriptionOf(ctx, usercontext.GetMemberID(c))
	if err != nil {
		return internalError(c, "failed to load subscription", err)
	}
	resolver := contribution.NewResolver(round, cfg)
	if sub == nil || !resolver.Eligibility().IsSubject(sub) {
		for _, opt := range round.Options {
			if opt.Visible {
				out.Options = append(out.Options, Option{ID: opt.ID, Name: opt.Name, SortOrder: opt.SortOrder})
			}
		}
		return c.JSON(out)
	}

	view, err := s.svc.SelectionForm(ctx, sub)
	if err != nil {
		return internalError(c, "failed to load selection", err)
	}
	for _, po := range view.Options {
		price := po.Price.StringFixed(2)
		out.Options = append(out.Options, Option{ID: po.Option.ID, Name: po.Option.Name, SortOrder: po.Option.SortOrder, Price: &price})
	}
	out.NominalPrice = &view.Nominal
	if round.OtherAmount {
		out.MinimumAmount = &view.Minimum
	}
	if view.Prior != nil {
		out.Selection = &Selection{
			OptionID:         view.Prior.SelectedOptionID,
			Price:            view.Prior.Price.StringFixed(2),
			ContactMe:        view.Prior.ContactMe,
			ModificationDate: view.Prior.ModificationDate.UTC().Format(time.RFC3339),
		}
	}
	return c.JSON(out)
}

// GetRoundSummary returns the statistics of a round. Admin only, enforced by
// the router.
func (s *APIServer) GetRoundSummary(c *fiber.Ctx, id uint) error {
	summary, err := s.svc.Aggregator.Summary(c.UserContext(), id)
	if errors.Is(err, contribution.ErrRoundNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(Error{Error: "not_found", Message: "round not found"})
	}
	if err != nil {
		return internalError(c, "failed to compute summary", err)
	}
	return c.JSON(toRoundSummary(summary, s.svc.Config().Currency))
}

func toRoundSummary(s *contribution.Summary, currency string) RoundSummary {
	out := RoundSummary{
		ID:                     s.Round.ID,
		Name:                   s.Round.Name,
		Status:                 s.Round.Status,
		Currency:               currency,
		SubjectSubscriptions:   s.SubjectSubscriptions,
		Submitted:              s.Submitted,
		Progress:               s.Progress.StringFixed(2),
		OtherAmounts:           s.OtherAmounts,
		OtherAmountsPercentage: s.OtherAmountsPercentage.StringFixed(2),
		ContactRequests:        s.ContactRequests,
		TotalSelected:          s.TotalSelected.StringFixed(2),
		TotalUnselected:        s.TotalUnselected.StringFixed(2),
		CurrentTotal:           s.CurrentTotal.StringFixed(2),
		NominalTotal:           s.NominalTotal.StringFixed(2),
		Target:                 s.Target.StringFixed(2),
		TargetPercentage:       s.TargetPercentage.StringFixed(2),
		AveragePrice:           s.AveragePrice.StringFixed(2),
		Options:                make([]OptionSummary, 0, len(s.Options)),
	}
	for _, o := range s.Options {
		out.Options = append(out.Options, OptionSummary{
			ID:                  o.Option.ID,
			Name:                o.Option.Name,
			SelectionCount:      o.SelectionCount,
			SelectionPercentage: o.SelectionPercentage.StringFixed(2),
			Total:               o.Total.StringFixed(2),
			AveragePrice:        o.AveragePrice.StringFixed(2),
		})
	}
	return out
}
