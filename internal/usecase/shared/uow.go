package shared

import (
	"context"
	"time"

	"tour-booking/internal/domain/policy"
	"tour-booking/internal/domain/product"
	"tour-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

// UnitOfWork runs multi-repository write sequences in one transaction.
// The inventory ledger is deliberately NOT reachable through Tx: seat
// counts may live in a different store than reservation records, so
// the lifecycle engine treats ledger mutations as independently
// committed operations and compensates explicitly (see commands).
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Reservations() ReservationRepository
	Payments() PaymentRepository
}

// InventoryLedger owns the available-seat counter for a product.
// Reserve performs a single atomic conditional compare-and-decrement:
// it either applies fully or not at all, never partially.
type InventoryLedger interface {
	// Reserve fails with a CONFLICT repository error (no mutation)
	// when fewer than count seats remain. count must be >= 1.
	Reserve(ctx context.Context, productID uuid.UUID, count int) error
	// Release returns count seats. Callers are responsible for calling
	// it exactly once per cancelled reservation.
	Release(ctx context.Context, productID uuid.UUID, count int) error
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// UpdateStatus applies a conditional status write guarded by the
	// expected prior status. When another caller already moved the
	// record, it fails with a CONFLICT repository error and writes
	// nothing, so concurrent transitions serialize to one winner.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, target reservation.Status, at time.Time) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *PaymentRecord) error
}

// PaymentRecord is the external collaborator's payment row, consumed
// read-only by the lifecycle core.
type PaymentRecord struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Amount        int64
	Method        PaymentMethod
	Status        PaymentStatus
	PaidAt        time.Time
}

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// CatalogReads is the narrow read-only interface onto catalog storage
// (products and their cancellation policies).
type CatalogReads interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*product.Product, error)
	PolicyByID(ctx context.Context, id uuid.UUID) (policy.Policy, error)
}
