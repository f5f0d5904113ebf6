// Package memory backs the unit test suites with an in-process store
// that mirrors the behavior of the Postgres repositories, including
// conditional writes and their error kinds.
package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"tour-booking/internal/domain/policy"
	"tour-booking/internal/domain/product"
	"tour-booking/internal/domain/reservation"
	"tour-booking/internal/infra"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/queries"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type productRow struct {
	id        uuid.UUID
	kind      product.Kind
	name      string
	unitPrice int64
	seats     int
	policyID  uuid.UUID
	startDate *time.Time
}

type reservationRow struct {
	id            uuid.UUID
	customerID    uuid.UUID
	packageID     *uuid.UUID
	destinationID *uuid.UUID
	status        reservation.Status
	personCount   int
	totalAmount   int64
	createdAt     time.Time
	updatedAt     time.Time
}

type Store struct {
	mu           sync.Mutex
	products     map[uuid.UUID]*productRow
	policies     map[uuid.UUID]policy.Policy
	reservations map[uuid.UUID]*reservationRow
	payments     map[uuid.UUID]shared.PaymentRecord

	logger *slog.Logger

	// Test hooks, invoked before the corresponding write applies.
	CreateReservationHook func() error
	ReleaseHook           func() error
}

func NewStore() *Store {
	return &Store{
		products:     make(map[uuid.UUID]*productRow),
		policies:     make(map[uuid.UUID]policy.Policy),
		reservations: make(map[uuid.UUID]*reservationRow),
		payments:     make(map[uuid.UUID]shared.PaymentRecord),
		logger:       slog.Default(),
	}
}

func (s *Store) SeedPolicy(pol policy.Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policies[pol.ID()] = pol
}

func (s *Store) SeedProduct(p *product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID()] = &productRow{
		id:        p.ID(),
		kind:      p.Kind(),
		name:      p.Name(),
		unitPrice: p.UnitPrice(),
		seats:     p.AvailableSeats(),
		policyID:  p.PolicyID(),
		startDate: p.StartDate(),
	}
}

// AvailableSeats exposes the live counter for assertions.
func (s *Store) AvailableSeats(productID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.products[productID]
	if !ok {
		return -1
	}
	return row.seats
}

// InventoryLedger

func (s *Store) Reserve(_ context.Context, productID uuid.UUID, count int) error {
	if count < 1 {
		return errs.Newf("seat count must be at least 1, got %d", count)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.products[productID]
	if !ok {
		return infra.WrapRepoErr(s.logger, infra.KindNotFound, "product not found", nil)
	}
	if row.seats < count {
		return infra.WrapRepoErr(s.logger, infra.KindConflict, "not enough seats available", nil)
	}
	row.seats -= count
	return nil
}

func (s *Store) Release(_ context.Context, productID uuid.UUID, count int) error {
	if s.ReleaseHook != nil {
		if err := s.ReleaseHook(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.products[productID]
	if !ok {
		return infra.WrapRepoErr(s.logger, infra.KindNotFound, "product not found", nil)
	}
	row.seats += count
	return nil
}

// ReservationRepository

func (s *Store) Create(_ context.Context, res *reservation.Reservation) error {
	if s.CreateReservationHook != nil {
		if err := s.CreateReservationHook(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reservations[res.ID()]; ok {
		return infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "reservation already exists", nil)
	}
	ref := res.ProductRef()
	s.reservations[res.ID()] = &reservationRow{
		id:            res.ID(),
		customerID:    res.CustomerID(),
		packageID:     ref.PackageID(),
		destinationID: ref.DestinationID(),
		status:        res.Status(),
		personCount:   res.PersonCount(),
		totalAmount:   res.TotalAmount(),
		createdAt:     res.CreatedAt(),
		updatedAt:     res.UpdatedAt(),
	}
	return nil
}

func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "reservation not found", nil)
	}
	ref, err := reservation.NewProductRef(row.packageID, row.destinationID)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "corrupt product reference", err)
	}
	return reservation.ReconstructReservation(
		row.id, row.customerID, ref, row.status,
		row.totalAmount, row.personCount, row.createdAt, row.updatedAt,
	), nil
}

func (s *Store) UpdateStatus(_ context.Context, id uuid.UUID, expected, target reservation.Status, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.reservations[id]
	if !ok {
		return infra.WrapRepoErr(s.logger, infra.KindNotFound, "reservation not found", nil)
	}
	if row.status != expected {
		return infra.WrapRepoErr(s.logger, infra.KindConflict, "reservation status changed concurrently", nil)
	}
	row.status = target
	row.updatedAt = at
	return nil
}

// PaymentRepository

func (s *Store) CreatePayment(_ context.Context, p *shared.PaymentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payments[p.ID]; ok {
		return infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "payment already exists", nil)
	}
	if _, ok := s.reservations[p.ReservationID]; !ok {
		return infra.WrapRepoErr(s.logger, infra.KindForeignKeyViolated, "payment references unknown reservation", nil)
	}
	s.payments[p.ID] = *p
	return nil
}

// CatalogReads

func (s *Store) ProductByID(_ context.Context, id uuid.UUID) (*product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.products[id]
	if !ok {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "product not found", nil)
	}
	prod, err := product.NewProduct(row.id, row.kind, row.name, row.unitPrice, row.seats, row.policyID, row.startDate)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "corrupt product row", err)
	}
	return prod, nil
}

func (s *Store) PolicyByID(_ context.Context, id uuid.UUID) (policy.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pol, ok := s.policies[id]
	if !ok {
		return policy.Policy{}, infra.WrapRepoErr(s.logger, infra.KindNotFound, "cancellation policy not found", nil)
	}
	return pol, nil
}

// Read-side repositories

func (s *Store) FindViewByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "reservation not found", nil)
	}
	return s.toViewLocked(row), nil
}

func (s *Store) FindByCustomerID(_ context.Context, customerID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*queries.ReservationListItem, 0)
	for _, row := range s.reservations {
		if row.customerID != customerID {
			continue
		}
		items = append(items, &queries.ReservationListItem{
			ID:          row.id,
			ProductName: s.productNameLocked(row),
			Status:      row.status.String(),
			PersonCount: row.personCount,
			TotalAmount: row.totalAmount,
			CreatedAt:   row.createdAt,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if int32(len(items)) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) FindByReservationID(_ context.Context, reservationID uuid.UUID) ([]*queries.PaymentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*queries.PaymentView, 0)
	for _, p := range s.payments {
		if p.ReservationID != reservationID {
			continue
		}
		items = append(items, paymentView(p))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].PaidAt.Before(items[j].PaidAt) })
	return items, nil
}

func (s *Store) CompletedInRange(_ context.Context, from, to time.Time) ([]*queries.PaymentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*queries.PaymentView, 0)
	for _, p := range s.payments {
		if p.Status != shared.PaymentStatusCompleted {
			continue
		}
		if p.PaidAt.Before(from) || !p.PaidAt.Before(to) {
			continue
		}
		items = append(items, paymentView(p))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].PaidAt.Before(items[j].PaidAt) })
	return items, nil
}

func (s *Store) FindAllPolicies(_ context.Context) ([]*queries.PolicyView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*queries.PolicyView, 0, len(s.policies))
	for _, pol := range s.policies {
		items = append(items, &queries.PolicyView{
			ID:               pol.ID(),
			Name:             pol.Name(),
			NoticeDays:       pol.NoticeDays(),
			RefundPercentage: pol.RefundPercentage(),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *Store) FindAllProducts(_ context.Context) ([]*queries.ProductListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*queries.ProductListItem, 0, len(s.products))
	for _, row := range s.products {
		items = append(items, &queries.ProductListItem{
			ID:             row.id,
			Kind:           string(row.kind),
			Name:           row.name,
			UnitPrice:      row.unitPrice,
			AvailableSeats: row.seats,
			PolicyID:       row.policyID,
			StartDate:      row.startDate,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *Store) toViewLocked(row *reservationRow) *queries.ReservationView {
	return &queries.ReservationView{
		ID:            row.id,
		CustomerID:    row.customerID,
		PackageID:     row.packageID,
		DestinationID: row.destinationID,
		ProductName:   s.productNameLocked(row),
		Status:        row.status.String(),
		PersonCount:   row.personCount,
		TotalAmount:   row.totalAmount,
		CreatedAt:     row.createdAt,
		UpdatedAt:     row.updatedAt,
	}
}

func (s *Store) productNameLocked(row *reservationRow) string {
	productID := uuid.Nil
	if row.packageID != nil {
		productID = *row.packageID
	} else if row.destinationID != nil {
		productID = *row.destinationID
	}
	if prod, ok := s.products[productID]; ok {
		return prod.name
	}
	return ""
}

func (s *Store) snapshot() (map[uuid.UUID]reservationRow, map[uuid.UUID]shared.PaymentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservations := make(map[uuid.UUID]reservationRow, len(s.reservations))
	for id, row := range s.reservations {
		reservations[id] = *row
	}
	payments := make(map[uuid.UUID]shared.PaymentRecord, len(s.payments))
	for id, p := range s.payments {
		payments[id] = p
	}
	return reservations, payments
}

func (s *Store) restore(reservations map[uuid.UUID]reservationRow, payments map[uuid.UUID]shared.PaymentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reservations = make(map[uuid.UUID]*reservationRow, len(reservations))
	for id, row := range reservations {
		r := row
		s.reservations[id] = &r
	}
	s.payments = payments
}

func paymentView(p shared.PaymentRecord) *queries.PaymentView {
	return &queries.PaymentView{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
		Method:        string(p.Method),
		Status:        string(p.Status),
		PaidAt:        p.PaidAt,
	}
}
