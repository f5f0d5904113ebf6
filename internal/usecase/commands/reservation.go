package commands

import (
	"context"
	"log/slog"

	"tour-booking/internal/domain/policy"
	"tour-booking/internal/domain/product"
	"tour-booking/internal/domain/reservation"
	reqdto "tour-booking/internal/handler/dto/request"
	"tour-booking/internal/infra"
	"tour-booking/internal/pkg/clock"
	"tour-booking/internal/pkg/config"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/queries"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound         = errs.New("product not found")
	ErrPolicyNotFound          = errs.New("cancellation policy not found")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrInsufficientInventory   = errs.New("insufficient inventory")
	ErrInvalidTransition       = errs.New("invalid status transition")
	ErrReservationConflict     = errs.New("reservation was modified concurrently")
	ErrCancellationRejected    = errs.New("cancellation rejected")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
	ErrCompensationFailed      = errs.New("compensating seat release failed")
)

type CancelReservationResult struct {
	Reservation *queries.ReservationView
	Refund      policy.RefundDecision
}

type ReservationCommands interface {
	Create(ctx context.Context, customerID uuid.UUID, req reqdto.CreateReservationRequest) (*queries.ReservationView, error)
	Confirm(ctx context.Context, customerID uuid.UUID, id uuid.UUID) (*queries.ReservationView, error)
	Complete(ctx context.Context, customerID uuid.UUID, id uuid.UUID) (*queries.ReservationView, error)
	Cancel(ctx context.Context, customerID uuid.UUID, id uuid.UUID) (*CancelReservationResult, error)
}

type reservationUseCaseImpl struct {
	reservations       shared.ReservationRepository
	ledger             shared.InventoryLedger
	catalog            shared.CatalogReads
	reservationQueries queries.ReservationQueries
	cfg                config.BookingConfig
	clock              clock.Clock
}

func NewReservationUseCase(
	reservations shared.ReservationRepository,
	ledger shared.InventoryLedger,
	catalog shared.CatalogReads,
	reservationQueries queries.ReservationQueries,
	cfg config.BookingConfig,
	clock clock.Clock,
) ReservationCommands {
	return &reservationUseCaseImpl{
		reservations:       reservations,
		ledger:             ledger,
		catalog:            catalog,
		reservationQueries: reservationQueries,
		cfg:                cfg,
		clock:              clock,
	}
}

// Create books seats and persists the reservation as two independently
// committed operations. The seat decrement commits first; when the
// record write then fails, the seats are handed back through a
// compensating release, and a failed release is escalated because the
// ledger would otherwise undercount capacity forever.
func (u *reservationUseCaseImpl) Create(
	ctx context.Context,
	customerID uuid.UUID,
	req reqdto.CreateReservationRequest,
) (*queries.ReservationView, error) {
	ref, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	prod, err := u.loadProduct(ctx, ref.ProductID())
	if err != nil {
		return nil, err
	}
	if (prod.Kind() == product.KindPackage) != ref.IsPackage() {
		return nil, ErrProductNotFound
	}

	res, err := reservation.NewReservation(
		customerID,
		ref,
		req.PersonCount,
		u.cfg.MaxPersonCount,
		prod.TotalPrice(req.PersonCount),
		u.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := u.ledger.Reserve(ctx, prod.ID(), res.PersonCount()); err != nil {
		switch {
		case infra.IsKind(err, infra.KindConflict):
			return nil, ErrInsufficientInventory
		case infra.IsKind(err, infra.KindNotFound):
			return nil, ErrProductNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := u.reservations.Create(ctx, res); err != nil {
		if releaseErr := u.ledger.Release(ctx, prod.ID(), res.PersonCount()); releaseErr != nil {
			slog.Error("compensating seat release did not apply",
				"reservation_id", res.ID(),
				"product_id", prod.ID(),
				"seats", res.PersonCount(),
				"error", releaseErr,
			)
			return nil, errs.Mark(releaseErr, ErrCompensationFailed)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := u.reservationQueries.GetByIDSystem(ctx, res.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *reservationUseCaseImpl) Confirm(ctx context.Context, customerID uuid.UUID, id uuid.UUID) (*queries.ReservationView, error) {
	return u.transition(ctx, customerID, id, reservation.StatusConfirmed)
}

func (u *reservationUseCaseImpl) Complete(ctx context.Context, customerID uuid.UUID, id uuid.UUID) (*queries.ReservationView, error) {
	return u.transition(ctx, customerID, id, reservation.StatusCompleted)
}

// Cancel evaluates the refund first, then commits the status change,
// then hands the seats back. The ordering is deliberate: once the
// CANCELLED write is durable a failed release surfaces as an error but
// never resurrects the reservation.
func (u *reservationUseCaseImpl) Cancel(
	ctx context.Context,
	customerID uuid.UUID,
	id uuid.UUID,
) (*CancelReservationResult, error) {
	res, err := u.loadOwned(ctx, customerID, id)
	if err != nil {
		return nil, err
	}
	prior := res.Status()
	if !res.IsCancellable() {
		return nil, errs.Mark(&reservation.InvalidTransitionError{
			Current:   prior,
			Requested: reservation.StatusCancelled,
			Allowed:   prior.NextStates(),
		}, ErrInvalidTransition)
	}

	prod, err := u.loadProduct(ctx, res.ProductRef().ProductID())
	if err != nil {
		return nil, err
	}
	pol, err := u.catalog.PolicyByID(ctx, prod.PolicyID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPolicyNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	now := u.clock.Now()
	referenceDate := prod.ReferenceDate(res.CreatedAt(), u.cfg.DestinationLeadDays)
	decision, err := policy.ComputeRefund(prior, res.TotalAmount(), pol, referenceDate, now)
	if err != nil {
		return nil, errs.Mark(err, ErrCancellationRejected)
	}

	if err := u.reservations.UpdateStatus(ctx, id, prior, reservation.StatusCancelled, now); err != nil {
		return nil, mapStatusWriteErr(err)
	}

	if err := u.ledger.Release(ctx, prod.ID(), res.PersonCount()); err != nil {
		slog.Error("seat release after cancellation did not apply",
			"reservation_id", id,
			"product_id", prod.ID(),
			"seats", res.PersonCount(),
			"error", err,
		)
		return nil, errs.Mark(err, ErrCompensationFailed)
	}

	view, err := u.reservationQueries.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &CancelReservationResult{Reservation: view, Refund: decision}, nil
}

func (u *reservationUseCaseImpl) transition(
	ctx context.Context,
	customerID uuid.UUID,
	id uuid.UUID,
	target reservation.Status,
) (*queries.ReservationView, error) {
	res, err := u.loadOwned(ctx, customerID, id)
	if err != nil {
		return nil, err
	}

	prior := res.Status()
	if err := res.TransitionTo(target, u.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrInvalidTransition)
	}

	if err := u.reservations.UpdateStatus(ctx, id, prior, target, res.UpdatedAt()); err != nil {
		return nil, mapStatusWriteErr(err)
	}

	view, err := u.reservationQueries.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// loadOwned hides reservations of other customers behind a not-found
// error, so ids cannot be probed across accounts.
func (u *reservationUseCaseImpl) loadOwned(ctx context.Context, customerID, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := u.reservations.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if res.CustomerID() != customerID {
		return nil, ErrReservationNotFound
	}
	return res, nil
}

func (u *reservationUseCaseImpl) loadProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	prod, err := u.catalog.ProductByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return prod, nil
}

func mapStatusWriteErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindConflict):
		return ErrReservationConflict
	case infra.IsKind(err, infra.KindNotFound):
		return ErrReservationNotFound
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}
