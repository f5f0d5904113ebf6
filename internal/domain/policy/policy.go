package policy

import (
	"errors"
	"fmt"
	"time"

	"tour-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

var (
	ErrInvalidNoticeDays       = errors.New("notice days must be between 0 and 365")
	ErrInvalidRefundPercentage = errors.New("refund percentage must be between 0 and 100")
	ErrCancellationRejected    = errors.New("reservation was never paid and the notice period has passed")
)

// Policy is a cancellation policy as plain data. The named policies
// ("Flexible", "Strict") differ only in their stored parameters, so
// refund computation is a single parametrized function rather than a
// type per policy kind.
type Policy struct {
	id               uuid.UUID
	name             string
	noticeDays       int
	refundPercentage int
}

func NewPolicy(id uuid.UUID, name string, noticeDays, refundPercentage int) (Policy, error) {
	if noticeDays < 0 || noticeDays > 365 {
		return Policy{}, ErrInvalidNoticeDays
	}
	if refundPercentage < 0 || refundPercentage > 100 {
		return Policy{}, ErrInvalidRefundPercentage
	}
	return Policy{
		id:               id,
		name:             name,
		noticeDays:       noticeDays,
		refundPercentage: refundPercentage,
	}, nil
}

func (p Policy) ID() uuid.UUID         { return p.id }
func (p Policy) Name() string          { return p.name }
func (p Policy) NoticeDays() int       { return p.noticeDays }
func (p Policy) RefundPercentage() int { return p.refundPercentage }

// RefundDecision is the outcome of evaluating a cancellation against a
// policy. Refundable=true with RefundPercentage=0 is a successful
// zero-refund cancellation, distinct from a rejected one.
type RefundDecision struct {
	Refundable       bool
	TotalAmount      int64
	RefundPercentage int
	RefundAmount     int64
	Reason           string
}

// ComputeRefund evaluates how much of totalAmount is returned when a
// reservation with the given status is cancelled now, with travel due
// on referenceDate.
//
// Inside the notice window a reservation that was never paid is not
// cancellable through this path at all; one that was already paid
// cancels with a zero refund.
func ComputeRefund(
	status reservation.Status,
	totalAmount int64,
	pol Policy,
	referenceDate time.Time,
	now time.Time,
) (RefundDecision, error) {
	daysUntil := daysBetween(now, referenceDate)

	if daysUntil >= pol.noticeDays {
		refund := totalAmount * int64(pol.refundPercentage) / 100
		return RefundDecision{
			Refundable:       true,
			TotalAmount:      totalAmount,
			RefundPercentage: pol.refundPercentage,
			RefundAmount:     refund,
			Reason: fmt.Sprintf("%d%% refund: cancelled %d days ahead, %q requires %d",
				pol.refundPercentage, daysUntil, pol.name, pol.noticeDays),
		}, nil
	}

	if status == reservation.StatusPending {
		return RefundDecision{}, ErrCancellationRejected
	}

	return RefundDecision{
		Refundable:       true,
		TotalAmount:      totalAmount,
		RefundPercentage: 0,
		RefundAmount:     0,
		Reason: fmt.Sprintf("no refund: cancelled %d days ahead, %q requires %d",
			daysUntil, pol.name, pol.noticeDays),
	}, nil
}

// daysBetween counts whole 24h days from a to b. The division truncates
// toward zero, so any span shorter than a full day in either direction
// counts as 0: a reference date a few hours past still satisfies a
// zero-notice policy.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
