package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
)

// ErrDisabled is returned by sinks without a billing backend
var ErrDisabled = errors.New("billing integration is not enabled")

// Sink receives contribution amounts for invoicing
type Sink interface {
	Enabled() bool
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
	Undo(ctx context.Context, req UndoRequest) (int64, error)
	BusinessYears(ctx context.Context) ([]models.BusinessYear, error)
	ItemTypes(ctx context.Context) ([]models.BillItemType, error)
}

// NoopSink is used when no billing backend is configured
type NoopSink struct{}

func (NoopSink) Enabled() bool { return false }

func (NoopSink) Transfer(context.Context, TransferRequest) (*TransferResult, error) {
	return nil, ErrDisabled
}

func (NoopSink) Undo(context.Context, UndoRequest) (int64, error) {
	return 0, ErrDisabled
}

func (NoopSink) BusinessYears(context.Context) ([]models.BusinessYear, error) { return nil, nil }

func (NoopSink) ItemTypes(context.Context) ([]models.BillItemType, error) { return nil, nil }

// Service books contribution amounts as bill items.
type Service struct {
	repo Repository
}

// NewService creates a billing service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

func (s *Service) Enabled() bool { return true }

// Transfer creates or updates one bill item per line on the member's bill of
// the business year. Lines of members without a bill are reported, not fatal.
func (s *Service) Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	name := strings.TrimSpace(req.RoundName)
	if name == "" || req.BusinessYearID == 0 {
		return nil, errors.New("round name and business year are required")
	}

	result := &TransferResult{RunID: uuid.NewString()}
	log := zap.L().With(
		zap.String("run_id", result.RunID),
		zap.String("round", name),
		zap.Uint("business_year_id", req.BusinessYearID),
	)
	description := Description(name)

	for _, line := range req.Lines {
		bill, err := s.repo.FindBill(line.MemberID, req.BusinessYearID)
		if err != nil {
			return result, fmt.Errorf("failed to load bill of member %d: %w", line.MemberID, err)
		}
		if bill == nil {
			result.FailedMembers = append(result.FailedMembers, line.MemberID)
			log.Warn("no bill for member", zap.Uint("member_id", line.MemberID))
			continue
		}

		existing, err := s.repo.FindItem(bill.ID, description)
		if err != nil {
			return result, fmt.Errorf("failed to load bill item: %w", err)
		}
		item := &models.BillItem{
			BillID:           bill.ID,
			Description:      description,
			CustomItemTypeID: req.ItemTypeID,
			Amount:           line.Amount,
		}
		if err := s.repo.UpsertItem(item); err != nil {
			return result, fmt.Errorf("failed to save bill item: %w", err)
		}
		if existing == nil {
			result.Created++
		} else {
			result.Updated++
		}
	}

	log.Info("contribution transfer finished",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed()),
	)
	return result, nil
}

// Undo deletes the round's items from all bills of the business year
func (s *Service) Undo(ctx context.Context, req UndoRequest) (int64, error) {
	if strings.TrimSpace(req.RoundName) == "" || req.BusinessYearID == 0 {
		return 0, errors.New("round name and business year are required")
	}
	n, err := s.repo.DeleteItems(Description(strings.TrimSpace(req.RoundName)), req.BusinessYearID)
	if err != nil {
		return 0, err
	}
	zap.L().Info("contribution transfer undone",
		zap.String("round", req.RoundName),
		zap.Uint("business_year_id", req.BusinessYearID),
		zap.Int64("deleted", n),
	)
	return n, nil
}

func (s *Service) BusinessYears(ctx context.Context) ([]models.BusinessYear, error) {
	return s.repo.ListBusinessYears()
}

func (s *Service) ItemTypes(ctx context.Context) ([]models.BillItemType, error) {
	return s.repo.ListItemTypes()
}
