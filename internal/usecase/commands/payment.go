package commands

import (
	"context"

	"tour-booking/internal/domain/reservation"
	reqdto "tour-booking/internal/handler/dto/request"
	"tour-booking/internal/pkg/clock"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/queries"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidPaymentMethod = errs.New("invalid payment method")

type PaymentCommands interface {
	// RecordPayment settles a pending reservation in full and moves it
	// to PAID. The payment row and the status change commit together.
	RecordPayment(ctx context.Context, customerID uuid.UUID, reservationID uuid.UUID, req reqdto.RecordPaymentRequest) (*queries.PaymentView, error)
}

type paymentUseCaseImpl struct {
	uow          shared.UnitOfWork
	reservations shared.ReservationRepository
	clock        clock.Clock
}

func NewPaymentUseCase(
	uow shared.UnitOfWork,
	reservations shared.ReservationRepository,
	clock clock.Clock,
) PaymentCommands {
	return &paymentUseCaseImpl{
		uow:          uow,
		reservations: reservations,
		clock:        clock,
	}
}

func (u *paymentUseCaseImpl) RecordPayment(
	ctx context.Context,
	customerID uuid.UUID,
	reservationID uuid.UUID,
	req reqdto.RecordPaymentRequest,
) (*queries.PaymentView, error) {
	method := shared.PaymentMethod(req.Method)
	if !method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}

	res, err := u.loadOwned(ctx, customerID, reservationID)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	prior := res.Status()
	if err := res.TransitionTo(reservation.StatusPaid, now); err != nil {
		return nil, errs.Mark(err, ErrInvalidTransition)
	}

	record := &shared.PaymentRecord{
		ID:            uuid.New(),
		ReservationID: reservationID,
		Amount:        res.TotalAmount(),
		Method:        method,
		Status:        shared.PaymentStatusCompleted,
		PaidAt:        now,
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Payments().Create(ctx, record); err != nil {
			return err
		}
		return tx.Reservations().UpdateStatus(ctx, reservationID, prior, reservation.StatusPaid, now)
	})
	if err != nil {
		return nil, mapStatusWriteErr(err)
	}

	return &queries.PaymentView{
		ID:            record.ID,
		ReservationID: record.ReservationID,
		Amount:        record.Amount,
		Method:        string(record.Method),
		Status:        string(record.Status),
		PaidAt:        record.PaidAt,
	}, nil
}

func (u *paymentUseCaseImpl) loadOwned(ctx context.Context, customerID, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := u.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, mapStatusWriteErr(err)
	}
	if res.CustomerID() != customerID {
		return nil, ErrReservationNotFound
	}
	return res, nil
}
