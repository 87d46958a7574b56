package reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbpkg "github.com/BruksfildServices01/court-booking/internal/db"
	domain "github.com/BruksfildServices01/court-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/models"
	"github.com/BruksfildServices01/court-booking/internal/notification"
	"github.com/BruksfildServices01/court-booking/internal/testutil"
)

func TestCreateBookingDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.create.Execute(ctx, as(f.alice), f.input(testutil.At(10, 0), testutil.At(11, 0), 2))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), first.Status)
	assert.Equal(t, "80.00", first.TotalAmount.StringFixed(2))
	assert.Equal(t, "Court A", first.Court.Name)
	assert.Equal(t, "alice@example.com", first.User.Email)
	require.NotNil(t, first.Payment)
	assert.Equal(t, models.PaymentStatusPending, first.Payment.Status)
	assert.Equal(t, models.PaymentMethodInPerson, first.Payment.Method)
	assert.Equal(t, "80.00", first.Payment.Amount.StringFixed(2))
	assert.Equal(t, "PLN", first.Payment.Currency)

	_, err = f.create.Execute(ctx, as(f.bob), f.input(testutil.At(10, 30), testutil.At(11, 30), 2))
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))

	backToBack, err := f.create.Execute(ctx, as(f.bob), f.input(testutil.At(11, 0), testutil.At(12, 0), 4))
	require.NoError(t, err)
	assert.Equal(t, "80.00", backToBack.TotalAmount.StringFixed(2))

	confirmations, _ := f.notifier.counts()
	assert.Equal(t, 2, confirmations)
	assert.Equal(t, []string{"reservation_created", "reservation_conflict", "reservation_created"}, f.auditor.actions())
}

func TestCreatePricesProRata(t *testing.T) {
	f := newFixture(t)

	r, err := f.create.Execute(context.Background(), as(f.alice), f.input(testutil.At(9, 0), testutil.At(10, 30), 2))
	require.NoError(t, err)
	assert.Equal(t, "120.00", r.TotalAmount.StringFixed(2))
}

func TestCreateWithoutPriceIsFree(t *testing.T) {
	f := newFixture(t)
	free := testutil.CreateCourt(t, f.db, testutil.CourtOpts{Name: "Practice wall"})

	in := f.input(testutil.At(9, 0), testutil.At(10, 0), 1)
	in.CourtID = free.ID
	in.PaymentMethod = models.PaymentMethodTransfer

	r, err := f.create.Execute(context.Background(), as(f.alice), in)
	require.NoError(t, err)
	assert.Equal(t, "0.00", r.TotalAmount.StringFixed(2))
	assert.Equal(t, models.PaymentMethodTransfer, r.Payment.Method)
}

func TestCreateRejectionsPersistNothing(t *testing.T) {
	f := newFixture(t)
	inactive := testutil.CreateCourt(t, f.db, testutil.CourtOpts{Name: "Closed", PricePerHour: "50", Inactive: true})

	tests := []struct {
		name   string
		mutate func(in *CreateReservationInput)
		kind   httperr.Kind
		code   string
	}{
		{"over capacity", func(in *CreateReservationInput) { in.PlayersCount = 5 }, httperr.KindValidation, "too_many_players"},
		{"no players", func(in *CreateReservationInput) { in.PlayersCount = 0 }, httperr.KindValidation, "invalid_players_count"},
		{"end before start", func(in *CreateReservationInput) { in.EndAt = in.StartAt.Add(-time.Hour) }, httperr.KindValidation, "invalid_interval"},
		{"unknown payment method", func(in *CreateReservationInput) { in.PaymentMethod = "card" }, httperr.KindValidation, "invalid_payment_method"},
		{"inactive court", func(in *CreateReservationInput) { in.CourtID = inactive.ID }, httperr.KindState, "court_inactive"},
		{"missing court", func(in *CreateReservationInput) { in.CourtID = f.alice.ID }, httperr.KindNotFound, "court_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.input(testutil.At(10, 0), testutil.At(11, 0), 2)
			tt.mutate(&in)

			_, err := f.create.Execute(context.Background(), as(f.alice), in)
			assert.True(t, httperr.IsKind(err, tt.kind), "got %v", err)
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)

			assert.Zero(t, f.countRows(t, &models.Reservation{}))
			assert.Zero(t, f.countRows(t, &models.Payment{}))
		})
	}

	confirmations, _ := f.notifier.counts()
	assert.Zero(t, confirmations)
}

func TestCreateConflictCheckedBeforeCapacity(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, f.alice, testutil.At(10, 0), testutil.At(11, 0))

	_, err := f.create.Execute(context.Background(), as(f.bob), f.input(testutil.At(10, 0), testutil.At(11, 0), 9))
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
}

// createConcurrently releases n identical bookings at once and counts the outcomes.
func createConcurrently(t *testing.T, f *fixture, n int) (ok, conflicts int) {
	t.Helper()

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, n)
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.create.Execute(context.Background(), as(f.alice), f.input(testutil.At(10, 0), testutil.At(11, 0), 2))
		}(i)
	}
	close(start)
	wg.Wait()

	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case httperr.IsBusiness(err, "time_conflict"):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return ok, conflicts
}

func TestConcurrentIdenticalCreates(t *testing.T) {
	f := newFixture(t)

	ok, conflicts := createConcurrently(t, f, 2)
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, int64(1), f.countRows(t, &models.Reservation{}))
}

func TestConcurrentIdenticalCreatesOnPostgres(t *testing.T) {
	f := newFixtureOn(t, testutil.NewPostgresDB(t, dbpkg.Migrate))

	const attempts = 8
	ok, conflicts := createConcurrently(t, f, attempts)
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, int64(1), f.countRows(t, &models.Reservation{}))
	assert.Equal(t, int64(1), f.countRows(t, &models.Payment{}))
}

func TestCreateRejectsInactiveUser(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(f.alice).Update("is_active", false).Error)

	_, err := f.create.Execute(context.Background(), as(f.alice), f.input(testutil.At(10, 0), testutil.At(11, 0), 2))
	assert.True(t, httperr.IsKind(err, httperr.KindState), "got %v", err)
	assert.True(t, httperr.IsBusiness(err, "user_inactive"), "got %v", err)
	assert.Zero(t, f.countRows(t, &models.Reservation{}))
	assert.Zero(t, f.countRows(t, &models.Payment{}))
}

type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, notification.Message) error {
	return assert.AnError
}

func TestNotificationFailureDoesNotUndoReservation(t *testing.T) {
	f := newFixture(t)
	dispatcher := notification.NewDispatcher(failingNotifier{}, time.UTC, 10)

	uc := NewCreateReservation(f.repo, dispatcher, f.auditor)
	r, err := uc.Execute(context.Background(), as(f.alice), f.input(testutil.At(10, 0), testutil.At(11, 0), 2))
	dispatcher.Close()

	require.NoError(t, err)
	stored, err := f.repo.GetReservation(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), stored.Status)
}
