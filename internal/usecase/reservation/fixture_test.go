package reservation

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-booking/internal/audit"
	"github.com/BruksfildServices01/court-booking/internal/auth"
	"github.com/BruksfildServices01/court-booking/internal/infra/repository"
	"github.com/BruksfildServices01/court-booking/internal/models"
	"github.com/BruksfildServices01/court-booking/internal/testutil"
)

type recordingNotifier struct {
	mu            sync.Mutex
	confirmations []models.Reservation
	cancellations []models.Reservation
}

func (n *recordingNotifier) SendConfirmation(r models.Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmations = append(n.confirmations, r)
}

func (n *recordingNotifier) SendCancellation(r models.Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancellations = append(n.cancellations, r)
}

func (n *recordingNotifier) counts() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.confirmations), len(n.cancellations)
}

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAuditor) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

type fixture struct {
	db       *gorm.DB
	repo     *repository.ReservationGormRepository
	notifier *recordingNotifier
	auditor  *recordingAuditor

	court *models.Court
	alice *models.User
	bob   *models.User
	admin *models.User

	create  *CreateReservation
	update  *UpdateReservation
	cancel  *CancelReservation
	confirm *ConfirmReservation
	paid    *MarkReservationPaid
	get     *GetReservation
	list    *ListReservations
}

// newFixture seeds Court A (max 4 players, 80 PLN per hour) and three users.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(t, testutil.NewDB(t))
}

func newFixtureOn(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()

	repo := repository.NewReservationGormRepository(db)
	notifier := &recordingNotifier{}
	auditor := &recordingAuditor{}

	return &fixture{
		db:       db,
		repo:     repo,
		notifier: notifier,
		auditor:  auditor,

		court: testutil.CreateCourt(t, db, testutil.CourtOpts{Name: "Court A", MaxPlayers: 4, PricePerHour: "80"}),
		alice: testutil.CreateUser(t, db, "alice@example.com", models.RoleUser),
		bob:   testutil.CreateUser(t, db, "bob@example.com", models.RoleUser),
		admin: testutil.CreateUser(t, db, "admin@example.com", models.RoleAdmin),

		create:  NewCreateReservation(repo, notifier, auditor),
		update:  NewUpdateReservation(repo, auditor),
		cancel:  NewCancelReservation(repo, notifier, auditor),
		confirm: NewConfirmReservation(repo, notifier, auditor),
		paid:    NewMarkReservationPaid(repo, auditor),
		get:     NewGetReservation(repo),
		list:    NewListReservations(repo),
	}
}

func as(u *models.User) auth.Principal {
	return auth.Principal{UserID: u.ID, Role: u.Role}
}

func (f *fixture) input(start, end time.Time, players int) CreateReservationInput {
	return CreateReservationInput{
		CourtID:      f.court.ID,
		PlayersCount: players,
		StartAt:      start,
		EndAt:        end,
	}
}

func (f *fixture) mustCreate(t *testing.T, u *models.User, start, end time.Time) *models.Reservation {
	t.Helper()
	r, err := f.create.Execute(t.Context(), as(u), f.input(start, end, 2))
	require.NoError(t, err)
	return r
}

func (f *fixture) countRows(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}
