package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-booking/internal/auth"
	"github.com/BruksfildServices01/court-booking/internal/config"
	"github.com/BruksfildServices01/court-booking/internal/models"
	"github.com/BruksfildServices01/court-booking/internal/notification"
	"github.com/BruksfildServices01/court-booking/internal/testutil"
	ucCourt "github.com/BruksfildServices01/court-booking/internal/usecase/court"
)

type capturingNotifier struct {
	mu   sync.Mutex
	msgs []notification.Message
}

func (n *capturingNotifier) Notify(_ context.Context, msg notification.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
	return nil
}

func (n *capturingNotifier) kinds() []notification.Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notification.Kind, 0, len(n.msgs))
	for _, m := range n.msgs {
		out = append(out, m.Kind)
	}
	return out
}

type api struct {
	t        *testing.T
	db       *gorm.DB
	router   *gin.Engine
	notifier *capturingNotifier
	tokens   *auth.TokenIssuer
	drain    func()
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		JWTExpiresIn:    time.Hour,
		Timezone:        "UTC",
		NotifyQueueSize: 10,
	}

	a := &api{
		t:        t,
		db:       testutil.NewDB(t),
		router:   gin.New(),
		notifier: &capturingNotifier{},
		tokens:   auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiresIn),
	}
	a.drain = RegisterRoutes(a.router, a.db, cfg, ucCourt.NopCache{}, a.notifier)
	t.Cleanup(a.drain)
	return a
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *api) adminToken() string {
	a.t.Helper()
	admin := testutil.CreateUser(a.t, a.db, "admin@example.com", models.RoleAdmin)
	token, err := a.tokens.Issue(admin.ID, admin.Role, admin.Email)
	require.NoError(a.t, err)
	return token
}

func (a *api) register(email string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":      email,
		"password":   "secret-pass",
		"first_name": "Iga",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	decode(a.t, w, &out)
	return out.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

type errorBody struct {
	Code   string            `json:"error_code"`
	Fields map[string]string `json:"fields"`
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Code string `json:"error_code"`
	}
	decode(t, w, &out)
	return out.Code
}

type reservationBody struct {
	Data struct {
		ID          string `json:"id"`
		Status      string `json:"status"`
		TotalAmount string `json:"total_amount"`
		Payment     *struct {
			Status string `json:"status"`
		} `json:"payment"`
	} `json:"data"`
}

func TestRegisterLoginAndMe(t *testing.T) {
	a := newAPI(t)
	a.register("Player@Example.com")

	w := a.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "player@example.com",
		"password": "another-pass",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_taken", errorCode(t, w))

	w = a.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "short@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "player@example.com",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "player@example.com",
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	decode(t, w, &login)

	w = a.do(http.MethodGet, "/api/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Data struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"data"`
	}
	decode(t, w, &me)
	assert.Equal(t, "player@example.com", me.Data.Email)
	assert.Equal(t, models.RoleUser, me.Data.Role)

	w = a.do(http.MethodPatch, "/api/me", login.Token, map[string]any{"last_name": "Świątek"})
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/api/me", "", nil).Code)

	a.drain()
	assert.Contains(t, a.notifier.kinds(), notification.KindWelcome)
}

func TestCourtAdministrationRequiresAdmin(t *testing.T) {
	a := newAPI(t)
	userToken := a.register("user@example.com")
	adminToken := a.adminToken()

	body := map[string]any{
		"name":           "Kort Centralny",
		"court_type":     "outdoor",
		"surface":        "clay",
		"max_players":    4,
		"price_per_hour": "80",
	}

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, "/api/courts", userToken, body).Code)

	w := a.do(http.MethodPost, "/api/courts", adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data struct {
			ID    string `json:"id"`
			Price struct {
				PricePerHour string `json:"price_per_hour"`
			} `json:"price"`
		} `json:"data"`
	}
	decode(t, w, &created)
	assert.Equal(t, "80.00", created.Data.Price.PricePerHour)

	w = a.do(http.MethodPatch, "/api/courts/"+created.Data.ID, adminToken, map[string]any{"price_per_hour": "90"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodGet, "/api/courts", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Total int `json:"total"`
	}
	decode(t, w, &list)
	assert.Equal(t, 1, list.Total)

	w = a.do(http.MethodPost, "/api/courts/"+created.Data.ID+"/toggle", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/courts/"+created.Data.ID, userToken, nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/courts/"+created.Data.ID, adminToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/api/courts/not-a-uuid", userToken, nil).Code)
}

func TestReservationFlow(t *testing.T) {
	a := newAPI(t)
	aliceToken := a.register("alice@example.com")
	bobToken := a.register("bob@example.com")
	adminToken := a.adminToken()
	court := testutil.CreateCourt(t, a.db, testutil.CourtOpts{PricePerHour: "60"})

	booking := map[string]any{
		"court_id":      court.ID.String(),
		"players_count": 2,
		"start_at":      "2030-06-14T10:00:00Z",
		"end_at":        "2030-06-14T11:30:00Z",
	}

	// 1️⃣ create
	w := a.do(http.MethodPost, "/api/reservations", aliceToken, booking)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created reservationBody
	decode(t, w, &created)
	assert.Equal(t, "pending", created.Data.Status)
	assert.Equal(t, "90.00", created.Data.TotalAmount)
	require.NotNil(t, created.Data.Payment)
	assert.Equal(t, models.PaymentStatusPending, created.Data.Payment.Status)
	path := "/api/reservations/" + created.Data.ID

	// 2️⃣ overlap and availability
	overlapping := map[string]any{
		"court_id":      court.ID.String(),
		"players_count": 2,
		"start_at":      "2030-06-14T11:00:00Z",
		"end_at":        "2030-06-14T12:00:00Z",
	}
	w = a.do(http.MethodPost, "/api/reservations", bobToken, overlapping)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "time_conflict", errorCode(t, w))

	w = a.do(http.MethodGet, "/api/courts/"+court.ID.String()+"/availability?start_at=2030-06-14T11:30:00Z&end_at=2030-06-14T12:30:00Z", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var quote struct {
		Data struct {
			Available   bool   `json:"available"`
			TotalAmount string `json:"total_amount"`
		} `json:"data"`
	}
	decode(t, w, &quote)
	assert.True(t, quote.Data.Available)
	assert.Equal(t, "60.00", quote.Data.TotalAmount)

	w = a.do(http.MethodGet, "/api/courts/"+court.ID.String()+"/reservations?from=2030-06-14", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var slots struct {
		Total int `json:"total"`
	}
	decode(t, w, &slots)
	assert.Equal(t, 1, slots.Total)

	// 3️⃣ ownership
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, path, bobToken, nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, path, aliceToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, path+"/confirm", aliceToken, nil).Code)

	// 4️⃣ move
	w = a.do(http.MethodPatch, path, aliceToken, map[string]any{"end_at": "2030-06-14T12:00:00Z"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var moved reservationBody
	decode(t, w, &moved)
	assert.Equal(t, "120.00", moved.Data.TotalAmount)

	// 5️⃣ lifecycle
	w = a.do(http.MethodPost, path+"/confirm", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodPost, path+"/payment/paid", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var paid reservationBody
	decode(t, w, &paid)
	assert.Equal(t, models.PaymentStatusPaid, paid.Data.Payment.Status)

	w = a.do(http.MethodPost, path+"/cancel", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodPost, path+"/confirm", adminToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// 6️⃣ listing is scoped to the caller
	w = a.do(http.MethodGet, "/api/reservations", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bobList struct {
		Total int `json:"total"`
	}
	decode(t, w, &bobList)
	assert.Equal(t, 0, bobList.Total)

	a.drain()
	kinds := a.notifier.kinds()
	assert.Contains(t, kinds, notification.KindConfirmation)
	assert.Contains(t, kinds, notification.KindCancellation)
}

func TestAdminUsersAndAuditLogs(t *testing.T) {
	a := newAPI(t)
	userToken := a.register("member@example.com")
	adminToken := a.adminToken()

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/users", userToken, nil).Code)

	w := a.do(http.MethodPost, "/api/users", adminToken, map[string]any{
		"email":    "coach@example.com",
		"password": "coach-pass",
		"role":     "admin",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var member models.User
	require.NoError(t, a.db.Where("email = ?", "member@example.com").First(&member).Error)

	w = a.do(http.MethodDelete, "/api/users/"+member.ID.String(), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "member@example.com",
		"password": "secret-pass",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodGet, "/api/users?active=true", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users struct {
		Total int `json:"total"`
	}
	decode(t, w, &users)
	assert.Equal(t, 2, users.Total)

	a.drain()

	w = a.do(http.MethodGet, "/api/audit-logs?action=user_deactivated", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var logs struct {
		Total int64 `json:"total"`
	}
	decode(t, w, &logs)
	assert.EqualValues(t, 1, logs.Total)
}

func TestCreateReservationReportsPlayersCountField(t *testing.T) {
	a := newAPI(t)
	token := a.register("alice@example.com")
	court := testutil.CreateCourt(t, a.db, testutil.CourtOpts{PricePerHour: "60"})

	for _, players := range []any{0, nil} {
		body := map[string]any{
			"court_id": court.ID.String(),
			"start_at": "2030-06-14T10:00:00Z",
			"end_at":   "2030-06-14T11:00:00Z",
		}
		if players != nil {
			body["players_count"] = players
		}

		w := a.do(http.MethodPost, "/api/reservations", token, body)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

		var out errorBody
		decode(t, w, &out)
		assert.Equal(t, "invalid_players_count", out.Code)
		assert.Contains(t, out.Fields, "players_count")
	}
}

func TestDeactivatedUserLosesAccessImmediately(t *testing.T) {
	a := newAPI(t)
	userToken := a.register("member@example.com")
	adminToken := a.adminToken()
	court := testutil.CreateCourt(t, a.db, testutil.CourtOpts{PricePerHour: "60"})

	var member models.User
	require.NoError(t, a.db.Where("email = ?", "member@example.com").First(&member).Error)

	w := a.do(http.MethodDelete, "/api/users/"+member.ID.String(), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodPost, "/api/reservations", userToken, map[string]any{
		"court_id":      court.ID.String(),
		"players_count": 2,
		"start_at":      "2030-06-14T10:00:00Z",
		"end_at":        "2030-06-14T11:00:00Z",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "account_inactive", errorCode(t, w))
	assert.Equal(t, int64(0), testutil.CountReservations(t, a.db))

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/me", userToken, nil).Code)
}
