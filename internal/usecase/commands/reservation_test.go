//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tour-booking/internal/domain/policy"
	"tour-booking/internal/domain/product"
	"tour-booking/internal/domain/reservation"
	reqdto "tour-booking/internal/handler/dto/request"
	"tour-booking/internal/infra/memory"
	"tour-booking/internal/pkg/clock"
	"tour-booking/internal/pkg/config"
	"tour-booking/internal/usecase/commands"
	"tour-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// fixture wires the use cases against the in-memory store: a package
// departing in 60 days under the flexible policy, and a destination
// under the strict policy.
type fixture struct {
	store *memory.Store
	res   commands.ReservationCommands
	pay   commands.PaymentCommands
	clk   *clock.MockClock

	customerID    uuid.UUID
	packageID     uuid.UUID
	destinationID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	clk := clock.NewMockClock(testNow)

	flexible, err := policy.NewPolicy(uuid.New(), "Flexible", 7, 100)
	require.NoError(t, err)
	strict, err := policy.NewPolicy(uuid.New(), "Strict", 30, 50)
	require.NoError(t, err)
	store.SeedPolicy(flexible)
	store.SeedPolicy(strict)

	start := testNow.AddDate(0, 0, 60)
	pkg, err := product.NewProduct(uuid.New(), product.KindPackage, "Andes Trek", 150000, 10, flexible.ID(), &start)
	require.NoError(t, err)
	dest, err := product.NewProduct(uuid.New(), product.KindDestination, "Patagonia", 80000, 5, strict.ID(), nil)
	require.NoError(t, err)
	store.SeedProduct(pkg)
	store.SeedProduct(dest)

	cfg := config.BookingConfig{DestinationLeadDays: 30, MaxPersonCount: 50}
	reservationQueries := queries.NewReservationQueries(store.Views())

	return &fixture{
		store:         store,
		res:           commands.NewReservationUseCase(store, store, store, reservationQueries, cfg, clk),
		pay:           commands.NewPaymentUseCase(memory.NewUoW(store), store, clk),
		clk:           clk,
		customerID:    uuid.New(),
		packageID:     pkg.ID(),
		destinationID: dest.ID(),
	}
}

func (f *fixture) createPackage(t *testing.T, personCount int) *queries.ReservationView {
	t.Helper()
	view, err := f.res.Create(context.Background(), f.customerID, reqdto.CreateReservationRequest{
		PackageID:   &f.packageID,
		PersonCount: personCount,
	})
	require.NoError(t, err)
	return view
}

func (f *fixture) createDestination(t *testing.T, personCount int) *queries.ReservationView {
	t.Helper()
	view, err := f.res.Create(context.Background(), f.customerID, reqdto.CreateReservationRequest{
		DestinationID: &f.destinationID,
		PersonCount:   personCount,
	})
	require.NoError(t, err)
	return view
}

func (f *fixture) payFor(t *testing.T, reservationID uuid.UUID) {
	t.Helper()
	_, err := f.pay.RecordPayment(context.Background(), f.customerID, reservationID, reqdto.RecordPaymentRequest{Method: "CARD"})
	require.NoError(t, err)
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("books seats and prices from the catalog snapshot", func(t *testing.T) {
		f := newFixture(t)

		view := f.createPackage(t, 3)

		assert.Equal(t, f.customerID, view.CustomerID)
		assert.Equal(t, reservation.StatusPending.String(), view.Status)
		assert.Equal(t, 3, view.PersonCount)
		assert.Equal(t, int64(450000), view.TotalAmount)
		assert.Equal(t, "Andes Trek", view.ProductName)
		assert.Equal(t, testNow, view.CreatedAt)
		assert.Equal(t, 7, f.store.AvailableSeats(f.packageID))
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newFixture(t)
		missing := uuid.New()

		_, err := f.res.Create(ctx, f.customerID, reqdto.CreateReservationRequest{
			PackageID:   &missing,
			PersonCount: 1,
		})
		assert.ErrorIs(t, err, commands.ErrProductNotFound)
	})

	t.Run("package id booked as a destination", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.res.Create(ctx, f.customerID, reqdto.CreateReservationRequest{
			DestinationID: &f.packageID,
			PersonCount:   1,
		})
		assert.ErrorIs(t, err, commands.ErrProductNotFound)
		assert.Equal(t, 10, f.store.AvailableSeats(f.packageID))
	})

	t.Run("both references set", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.res.Create(ctx, f.customerID, reqdto.CreateReservationRequest{
			PackageID:     &f.packageID,
			DestinationID: &f.destinationID,
			PersonCount:   1,
		})
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("person count above the configured maximum", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.res.Create(ctx, f.customerID, reqdto.CreateReservationRequest{
			PackageID:   &f.packageID,
			PersonCount: 51,
		})
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
		assert.ErrorIs(t, err, reservation.ErrPersonCountTooHigh)
		assert.Equal(t, 10, f.store.AvailableSeats(f.packageID))
	})

	t.Run("not enough seats", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.res.Create(ctx, f.customerID, reqdto.CreateReservationRequest{
			DestinationID: &f.destinationID,
			PersonCount:   6,
		})
		assert.ErrorIs(t, err, commands.ErrInsufficientInventory)
		assert.Equal(t, 5, f.store.AvailableSeats(f.destinationID))
	})

	t.Run("seats are handed back when the record write fails", func(t *testing.T) {
		f := newFixture(t)
		f.store.CreateReservationHook = func() error { return errors.New("write refused") }

		_, err := f.res.Create(ctx, f.customerID, reqdto.CreateReservationRequest{
			PackageID:   &f.packageID,
			PersonCount: 4,
		})
		assert.ErrorIs(t, err, commands.ErrDatabaseOperationFailed)
		assert.Equal(t, 10, f.store.AvailableSeats(f.packageID))

		items, listErr := f.store.FindByCustomerID(ctx, f.customerID, 50)
		require.NoError(t, listErr)
		assert.Empty(t, items)
	})

	t.Run("failed hand-back escalates", func(t *testing.T) {
		f := newFixture(t)
		f.store.CreateReservationHook = func() error { return errors.New("write refused") }
		f.store.ReleaseHook = func() error { return errors.New("release refused") }

		_, err := f.res.Create(ctx, f.customerID, reqdto.CreateReservationRequest{
			PackageID:   &f.packageID,
			PersonCount: 4,
		})
		assert.ErrorIs(t, err, commands.ErrCompensationFailed)
		assert.Equal(t, 6, f.store.AvailableSeats(f.packageID))
	})
}

func TestConfirmAndComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("paid reservation confirms and completes", func(t *testing.T) {
		f := newFixture(t)
		created := f.createPackage(t, 2)
		f.payFor(t, created.ID)

		confirmed, err := f.res.Confirm(ctx, f.customerID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusConfirmed.String(), confirmed.Status)

		completed, err := f.res.Complete(ctx, f.customerID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCompleted.String(), completed.Status)
	})

	t.Run("confirm requires payment first", func(t *testing.T) {
		f := newFixture(t)
		created := f.createPackage(t, 2)

		_, err := f.res.Confirm(ctx, f.customerID, created.ID)
		assert.ErrorIs(t, err, commands.ErrInvalidTransition)

		var transitionErr *reservation.InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
	})

	t.Run("complete requires confirmation first", func(t *testing.T) {
		f := newFixture(t)
		created := f.createPackage(t, 2)
		f.payFor(t, created.ID)

		_, err := f.res.Complete(ctx, f.customerID, created.ID)
		assert.ErrorIs(t, err, commands.ErrInvalidTransition)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.res.Confirm(ctx, f.customerID, uuid.New())
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})

	t.Run("another customer's reservation reads as missing", func(t *testing.T) {
		f := newFixture(t)
		created := f.createPackage(t, 2)
		f.payFor(t, created.ID)

		_, err := f.res.Confirm(ctx, uuid.New(), created.ID)
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("full refund outside the notice window", func(t *testing.T) {
		f := newFixture(t)
		created := f.createPackage(t, 3)

		result, err := f.res.Cancel(ctx, f.customerID, created.ID)
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusCancelled.String(), result.Reservation.Status)
		assert.True(t, result.Refund.Refundable)
		assert.Equal(t, 100, result.Refund.RefundPercentage)
		assert.Equal(t, int64(450000), result.Refund.RefundAmount)
		assert.Equal(t, 10, f.store.AvailableSeats(f.packageID))
	})

	t.Run("half refund under the strict policy", func(t *testing.T) {
		f := newFixture(t)
		created := f.createDestination(t, 2)
		f.payFor(t, created.ID)

		result, err := f.res.Cancel(ctx, f.customerID, created.ID)
		require.NoError(t, err)

		assert.Equal(t, 50, result.Refund.RefundPercentage)
		assert.Equal(t, int64(80000), result.Refund.RefundAmount)
		assert.Equal(t, 5, f.store.AvailableSeats(f.destinationID))
	})

	t.Run("paid reservation inside the window cancels with no refund", func(t *testing.T) {
		f := newFixture(t)
		created := f.createDestination(t, 2)
		f.payFor(t, created.ID)

		f.clk.Add(25 * 24 * time.Hour)

		result, err := f.res.Cancel(ctx, f.customerID, created.ID)
		require.NoError(t, err)

		assert.True(t, result.Refund.Refundable)
		assert.Equal(t, 0, result.Refund.RefundPercentage)
		assert.Equal(t, int64(0), result.Refund.RefundAmount)
		assert.Equal(t, reservation.StatusCancelled.String(), result.Reservation.Status)
		assert.Equal(t, 5, f.store.AvailableSeats(f.destinationID))
	})

	t.Run("unpaid reservation inside the window is rejected", func(t *testing.T) {
		f := newFixture(t)
		created := f.createDestination(t, 2)

		f.clk.Add(25 * 24 * time.Hour)

		_, err := f.res.Cancel(ctx, f.customerID, created.ID)
		assert.ErrorIs(t, err, commands.ErrCancellationRejected)

		view, findErr := f.store.FindViewByID(ctx, created.ID)
		require.NoError(t, findErr)
		assert.Equal(t, reservation.StatusPending.String(), view.Status)
		assert.Equal(t, 3, f.store.AvailableSeats(f.destinationID))
	})

	t.Run("cancelling twice", func(t *testing.T) {
		f := newFixture(t)
		created := f.createPackage(t, 2)

		_, err := f.res.Cancel(ctx, f.customerID, created.ID)
		require.NoError(t, err)

		_, err = f.res.Cancel(ctx, f.customerID, created.ID)
		assert.ErrorIs(t, err, commands.ErrInvalidTransition)
	})

	t.Run("failed seat release leaves the cancellation durable", func(t *testing.T) {
		f := newFixture(t)
		created := f.createPackage(t, 2)
		f.store.ReleaseHook = func() error { return errors.New("release refused") }

		_, err := f.res.Cancel(ctx, f.customerID, created.ID)
		assert.ErrorIs(t, err, commands.ErrCompensationFailed)

		view, findErr := f.store.FindViewByID(ctx, created.ID)
		require.NoError(t, findErr)
		assert.Equal(t, reservation.StatusCancelled.String(), view.Status)
		assert.Equal(t, 8, f.store.AvailableSeats(f.packageID))
	})

	t.Run("another customer's reservation reads as missing", func(t *testing.T) {
		f := newFixture(t)
		created := f.createPackage(t, 2)

		_, err := f.res.Cancel(ctx, uuid.New(), created.ID)
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})
}
