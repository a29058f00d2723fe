package contribution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"github.com/ManuelReschke/juntagrico-contribution/app/repository"
)

const (
	statusLockKey = "contribution:round:status"
	statusLockTTL = 10 * time.Second
)

// Locker serializes status changes across processes
type Locker interface {
	// Lock acquires key for ttl or fails when the key is taken.
	Lock(ctx context.Context, key string, ttl time.Duration) (unlock func(), err error)
}

var transitions = map[string][]string{
	models.ROUND_STATUS_DRAFT:  {models.ROUND_STATUS_ACTIVE, models.ROUND_STATUS_CLOSED},
	models.ROUND_STATUS_ACTIVE: {models.ROUND_STATUS_CLOSED},
	models.ROUND_STATUS_CLOSED: nil,
}

// CanTransition reports whether a round may move from one status to another
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Lifecycle changes the status of rounds
type Lifecycle struct {
	rounds repository.RoundRepository
	locker Locker
}

// NewLifecycle creates a lifecycle. locker may be nil.
func NewLifecycle(rounds repository.RoundRepository, locker Locker) *Lifecycle {
	return &Lifecycle{rounds: rounds, locker: locker}
}

// ActiveRound looks the active round up in the store
func (l *Lifecycle) ActiveRound(ctx context.Context) (*models.ContributionRound, error) {
	round, err := l.rounds.GetActive()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveRound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load active round: %w", err)
	}
	return round, nil
}

// CanActivate reports whether no other round is active. The blocking round is returned otherwise.
func (l *Lifecycle) CanActivate(round *models.ContributionRound) (bool, *models.ContributionRound, error) {
	other, err := l.rounds.FindOtherActive(round.ID)
	if err != nil {
		return false, nil, err
	}
	return other == nil, other, nil
}

// SetStatus moves a round to status
func (l *Lifecycle) SetStatus(ctx context.Context, roundID uint, status string) (*models.ContributionRound, error) {
	if !models.IsValidRoundStatus(status) {
		return nil, ErrInvalidStatus
	}

	if l.locker != nil {
		unlock, err := l.locker.Lock(ctx, statusLockKey, statusLockTTL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLocked, err)
		}
		defer unlock()
	}

	round, err := l.rounds.GetByID(roundID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoundNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load round: %w", err)
	}

	if round.Status == status {
		return round, nil
	}
	if !CanTransition(round.Status, status) {
		return nil, ErrInvalidTransition
	}

	if status == models.ROUND_STATUS_ACTIVE {
		ok, other, err := l.CanActivate(round)
		if err != nil {
			return nil, fmt.Errorf("failed to check active rounds: %w", err)
		}
		if !ok {
			return nil, &ActivationBlockedError{Round: round.Name, Active: other.Name}
		}
	}

	if err := l.rounds.UpdateStatus(round.ID, status); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	zap.L().Info("contribution round status changed",
		zap.Uint("round_id", round.ID),
		zap.String("from", round.Status),
		zap.String("to", status),
	)
	round.Status = status
	return round, nil
}
