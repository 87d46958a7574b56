package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/court-booking/internal/db"
	domain "github.com/BruksfildServices01/court-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/models"
	"github.com/BruksfildServices01/court-booking/internal/testutil"
)

func interval(t *testing.T, start, end time.Time) domain.Interval {
	t.Helper()
	iv, err := domain.NewInterval(start, end)
	require.NoError(t, err)
	return iv
}

func TestIsAvailable(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewReservationGormRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "player@example.com", models.RoleUser)
	court := testutil.CreateCourt(t, db, testutil.CourtOpts{PricePerHour: "80"})
	other := testutil.CreateCourt(t, db, testutil.CourtOpts{Name: "Court B", PricePerHour: "60"})

	booked := testutil.CreateReservation(t, db, court, user, testutil.At(10, 0), testutil.At(11, 0), "pending")
	testutil.CreateReservation(t, db, court, user, testutil.At(14, 0), testutil.At(15, 0), "canceled")
	testutil.CreateReservation(t, db, court, user, testutil.At(16, 0), testutil.At(17, 0), "confirmed")

	tests := []struct {
		name    string
		courtID uuid.UUID
		start   time.Time
		end     time.Time
		exclude *uuid.UUID
		want    bool
	}{
		{"overlapping pending", court.ID, testutil.At(10, 30), testutil.At(11, 30), nil, false},
		{"overlapping confirmed", court.ID, testutil.At(15, 30), testutil.At(16, 30), nil, false},
		{"back to back", court.ID, testutil.At(11, 0), testutil.At(12, 0), nil, true},
		{"canceled never conflicts", court.ID, testutil.At(14, 0), testutil.At(15, 0), nil, true},
		{"other court", other.ID, testutil.At(10, 0), testutil.At(11, 0), nil, true},
		{"excluding itself", court.ID, testutil.At(10, 0), testutil.At(11, 30), &booked.ID, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := repo.IsAvailable(ctx, tt.courtID, interval(t, tt.start, tt.end), tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestActivePrice(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewReservationGormRepository(db)
	ctx := context.Background()

	free := testutil.CreateCourt(t, db, testutil.CourtOpts{Name: "Free"})
	p, err := repo.ActivePrice(ctx, free.ID)
	require.NoError(t, err)
	assert.Nil(t, p)

	paid := testutil.CreateCourt(t, db, testutil.CourtOpts{Name: "Paid", PricePerHour: "80"})
	p, err = repo.ActivePrice(ctx, paid.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.PricePerHour.Equal(decimal.NewFromInt(80)))
}

func TestLockReservationLoadsPayment(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewReservationGormRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "player@example.com", models.RoleUser)
	court := testutil.CreateCourt(t, db, testutil.CourtOpts{PricePerHour: "80"})

	payment := &models.Payment{
		Method:   models.PaymentMethodInPerson,
		Status:   models.PaymentStatusPending,
		Amount:   decimal.NewFromInt(80),
		Currency: "PLN",
	}
	require.NoError(t, repo.CreatePayment(ctx, payment))

	res := &models.Reservation{
		CourtID:      court.ID,
		UserID:       user.ID,
		PaymentID:    &payment.ID,
		PlayersCount: 2,
		Status:       string(domain.StatusPending),
		StartAt:      testutil.At(10, 0),
		EndAt:        testutil.At(11, 0),
		TotalAmount:  decimal.NewFromInt(80),
	}
	require.NoError(t, repo.CreateReservation(ctx, res))

	err := repo.WithinTx(ctx, func(tx domain.Repository) error {
		locked, err := tx.LockReservation(ctx, res.ID)
		require.NoError(t, err)
		require.NotNil(t, locked.Payment)
		assert.Equal(t, payment.ID, locked.Payment.ID)
		return nil
	})
	require.NoError(t, err)

	hydrated, err := repo.GetReservation(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Court A", hydrated.Court.Name)
	assert.Len(t, hydrated.Court.Prices, 1)
	assert.Equal(t, "player@example.com", hydrated.User.Email)
	require.NotNil(t, hydrated.Payment)
	assert.Equal(t, "80.00", hydrated.TotalAmount.StringFixed(2))
}

func TestLookupsReportNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewReservationGormRepository(db)
	ctx := context.Background()

	_, err := repo.GetCourt(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.LockCourt(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetReservation(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListReservationsFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewReservationGormRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice@example.com", models.RoleUser)
	bob := testutil.CreateUser(t, db, "bob@example.com", models.RoleUser)
	court := testutil.CreateCourt(t, db, testutil.CourtOpts{PricePerHour: "80"})

	testutil.CreateReservation(t, db, court, alice, testutil.At(12, 0), testutil.At(13, 0), "pending")
	testutil.CreateReservation(t, db, court, alice, testutil.At(8, 0), testutil.At(9, 0), "canceled")
	testutil.CreateReservation(t, db, court, bob, testutil.At(10, 0), testutil.At(11, 0), "confirmed")

	all, err := repo.ListReservations(ctx, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].StartAt.Equal(testutil.At(8, 0)))

	mine, err := repo.ListReservations(ctx, domain.ListFilter{UserID: &alice.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	confirmed := domain.StatusConfirmed
	byStatus, err := repo.ListReservations(ctx, domain.ListFilter{Status: &confirmed})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, bob.ID, byStatus[0].UserID)

	from := testutil.At(10, 30)
	upcoming, err := repo.ListReservations(ctx, domain.ListFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, upcoming, 2)
}

type sqlRecorder struct {
	logger.Interface
	statements []string
}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.statements = append(r.statements, sql)
}

func TestLocksSelectForUpdateOnPostgres(t *testing.T) {
	rec := &sqlRecorder{Interface: logger.Discard}
	db, err := gorm.Open(postgres.Open("host=localhost user=court dbname=court sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	require.NoError(t, err)

	repo := NewReservationGormRepository(db)
	ctx := context.Background()

	_, err = repo.LockCourt(ctx, uuid.New())
	require.NoError(t, err)
	_, err = repo.LockReservation(ctx, uuid.New())
	require.NoError(t, err)

	require.Len(t, rec.statements, 2)
	assert.Contains(t, rec.statements[0], `FROM "courts"`)
	assert.Contains(t, rec.statements[0], "FOR UPDATE")
	assert.Contains(t, rec.statements[1], `FROM "reservations"`)
	assert.Contains(t, rec.statements[1], "FOR UPDATE")
}

func TestOverlapConstraintOnPostgres(t *testing.T) {
	db := testutil.NewPostgresDB(t, dbpkg.Migrate)
	repo := NewReservationGormRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "player@example.com", models.RoleUser)
	court := testutil.CreateCourt(t, db, testutil.CourtOpts{PricePerHour: "80"})

	row := func(start, end time.Time, status string) *models.Reservation {
		return &models.Reservation{
			CourtID:      court.ID,
			UserID:       user.ID,
			PlayersCount: 2,
			Status:       status,
			StartAt:      start,
			EndAt:        end,
			TotalAmount:  decimal.Zero,
		}
	}

	require.NoError(t, repo.CreateReservation(ctx, row(testutil.At(10, 0), testutil.At(11, 0), "pending")))

	// The availability check is skipped here, so only the constraint stands in the way.
	err := repo.CreateReservation(ctx, row(testutil.At(10, 30), testutil.At(11, 30), "confirmed"))
	assert.True(t, httperr.IsBusiness(err, "time_conflict"), "got %v", err)

	raw := db.Omit(clause.Associations).Create(row(testutil.At(10, 59), testutil.At(12, 0), "pending")).Error
	assert.True(t, httperr.IsExclusionConflict(raw), "got %v", raw)

	require.NoError(t, repo.CreateReservation(ctx, row(testutil.At(10, 0), testutil.At(11, 0), "canceled")))
	require.NoError(t, repo.CreateReservation(ctx, row(testutil.At(11, 0), testutil.At(12, 0), "pending")))

	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}
