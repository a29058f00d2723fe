package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Line is the amount one member owes on top of the nominal subscription price
type Line struct {
	MemberID       uint
	SubscriptionID uint
	Amount         decimal.Decimal
}

// TransferRequest carries the lines of one round into a business year
type TransferRequest struct {
	RoundName      string
	BusinessYearID uint
	ItemTypeID     *uint
	Lines          []Line
}

// UndoRequest removes the items of one round from a business year
type UndoRequest struct {
	RoundName      string
	BusinessYearID uint
}

// TransferResult reports the outcome of a transfer. Members without a bill
// in the business year are listed in FailedMembers.
type TransferResult struct {
	RunID         string
	Created       int
	Updated       int
	FailedMembers []uint
}

// Failed returns the number of lines that could not be booked
func (r *TransferResult) Failed() int {
	return len(r.FailedMembers)
}

// Description returns the bill item text identifying a round
func Description(roundName string) string {
	return fmt.Sprintf("Beitragsrunde %s", roundName)
}
