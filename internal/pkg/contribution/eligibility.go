package contribution

import (
	"time"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
)

// PartPredicate decides whether a subscription part takes part in a round
type PartPredicate func(part *models.SubscriptionPart) bool

// SubscriptionPredicate decides whether a subscription's own dates allow it to take part
type SubscriptionPredicate func(sub *models.Subscription) bool

// dateWindow holds the dates shared by subscriptions and parts
type dateWindow struct {
	creation     time.Time
	cancellation *time.Time
	deactivation *time.Time
}

type windowPredicate func(w dateWindow) bool

func notDeactivated(w dateWindow) bool {
	return w.deactivation == nil
}

// notCancelledBy excludes anything cancelled on or before the cutoff day
func notCancelledBy(cutoff time.Time) windowPredicate {
	return func(w dateWindow) bool {
		return w.cancellation == nil || day(*w.cancellation).After(day(cutoff))
	}
}

// createdSince keeps only what was created on or after the cutoff day
func createdSince(cutoff time.Time) windowPredicate {
	return func(w dateWindow) bool {
		return !day(w.creation).Before(day(cutoff))
	}
}

func dateFilter(round *models.ContributionRound, cfg Config) []windowPredicate {
	preds := []windowPredicate{notDeactivated}
	if !cfg.EligibilityCutoffs {
		return preds
	}
	if round.CancellationCutoff != nil {
		preds = append(preds, notCancelledBy(*round.CancellationCutoff))
	}
	if round.CreationCutoff != nil {
		preds = append(preds, createdSince(*round.CreationCutoff))
	}
	return preds
}

func matchAll(preds []windowPredicate, w dateWindow) bool {
	for _, p := range preds {
		if !p(w) {
			return false
		}
	}
	return true
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Eligibility evaluates which subscriptions and parts are subject to a round
type Eligibility struct {
	Part         PartPredicate
	Subscription SubscriptionPredicate
}

// NewEligibility composes the filters of round. Parts must have their type loaded.
func NewEligibility(round *models.ContributionRound, cfg Config) *Eligibility {
	dates := dateFilter(round, cfg)
	return &Eligibility{
		Part: func(p *models.SubscriptionPart) bool {
			if p.Type.IsTrial() {
				return false
			}
			return matchAll(dates, dateWindow{p.CreationDate, p.CancellationDate, p.DeactivationDate})
		},
		Subscription: func(s *models.Subscription) bool {
			return matchAll(dates, dateWindow{s.CreationDate, s.CancellationDate, s.DeactivationDate})
		},
	}
}

// SubjectParts returns the parts of sub that are subject to the round.
// A subscription failing its own date filter has no subject parts.
func (e *Eligibility) SubjectParts(sub *models.Subscription) []models.SubscriptionPart {
	if !e.Subscription(sub) {
		return nil
	}
	var parts []models.SubscriptionPart
	for i := range sub.Parts {
		if e.Part(&sub.Parts[i]) {
			parts = append(parts, sub.Parts[i])
		}
	}
	return parts
}

// IsSubject reports whether sub has at least one subject part
func (e *Eligibility) IsSubject(sub *models.Subscription) bool {
	if !e.Subscription(sub) {
		return false
	}
	for i := range sub.Parts {
		if e.Part(&sub.Parts[i]) {
			return true
		}
	}
	return false
}

// SubjectSubscriptions returns the distinct subscriptions subject to the round, in input order
func (e *Eligibility) SubjectSubscriptions(subs []models.Subscription) []models.Subscription {
	seen := make(map[uint]struct{}, len(subs))
	out := make([]models.Subscription, 0, len(subs))
	for i := range subs {
		if _, dup := seen[subs[i].ID]; dup {
			continue
		}
		if e.IsSubject(&subs[i]) {
			seen[subs[i].ID] = struct{}{}
			out = append(out, subs[i])
		}
	}
	return out
}

// AllSubjectParts returns the subject parts of all subject subscriptions
func (e *Eligibility) AllSubjectParts(subs []models.Subscription) []models.SubscriptionPart {
	var parts []models.SubscriptionPart
	for _, sub := range e.SubjectSubscriptions(subs) {
		parts = append(parts, e.SubjectParts(&sub)...)
	}
	return parts
}
