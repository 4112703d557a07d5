package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tireshop/backoffice/internal/audit"
	"github.com/tireshop/backoffice/internal/config"
	apptdomain "github.com/tireshop/backoffice/internal/domain/appointment"
	depositdomain "github.com/tireshop/backoffice/internal/domain/deposit"
	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/httperr"
	"github.com/tireshop/backoffice/internal/models"
	"github.com/tireshop/backoffice/internal/notify"
	ucAppointment "github.com/tireshop/backoffice/internal/usecase/appointment"
	ucDeposit "github.com/tireshop/backoffice/internal/usecase/deposit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ------------------------------
// fakes
// ------------------------------

type appointmentStore struct {
	rows []models.Appointment
}

func (s *appointmentStore) ListAppointments(_ context.Context, date time.Time, statuses []apptdomain.Status) ([]models.Appointment, error) {
	allowed := map[string]bool{}
	for _, st := range statuses {
		allowed[string(st)] = true
	}

	var out []models.Appointment
	for _, ap := range s.rows {
		if ap.Date != schedule.FormatDate(date) {
			continue
		}
		if len(statuses) > 0 && !allowed[ap.Status] {
			continue
		}
		ap.Client = models.Client{ID: ap.ClientID, Name: fmt.Sprintf("Client %c", 'A'+rune(ap.ClientID)-1)}
		out = append(out, ap)
	}
	return out, nil
}

func (s *appointmentStore) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	for _, ap := range s.rows {
		if ap.ID == id {
			return &ap, nil
		}
	}
	return nil, httperr.ErrAppointmentNotFound
}

func (s *appointmentStore) SaveAppointment(_ context.Context, ap *models.Appointment) (uint, error) {
	if ap.ID == 0 {
		ap.ID = uint(len(s.rows) + 1)
		s.rows = append(s.rows, *ap)
		return ap.ID, nil
	}
	for i := range s.rows {
		if s.rows[i].ID == ap.ID {
			s.rows[i] = *ap
		}
	}
	return ap.ID, nil
}

func (s *appointmentStore) WithDateLock(_ context.Context, _ time.Time, fn func(apptdomain.Repository) error) error {
	return fn(s)
}

type depositStore struct {
	rows map[uint]models.Deposit
}

func (s *depositStore) GetDeposit(_ context.Context, id uint) (*models.Deposit, error) {
	d, ok := s.rows[id]
	if !ok {
		return nil, httperr.ErrDepositNotFound
	}
	return &d, nil
}

func (s *depositStore) ListDepositsByStatus(_ context.Context, statuses []depositdomain.Status) ([]models.Deposit, error) {
	var out []models.Deposit
	for _, d := range s.rows {
		for _, st := range statuses {
			if d.Status == string(st) {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func (s *depositStore) ListDeposits(ctx context.Context, statuses []depositdomain.Status, query string) ([]models.Deposit, error) {
	rows, _ := s.ListDepositsByStatus(ctx, statuses)
	var out []models.Deposit
	for _, d := range rows {
		if strings.Contains(strings.ToLower(d.Client.Name), strings.ToLower(query)) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *depositStore) CreateDeposit(_ context.Context, d *models.Deposit) error {
	d.ID = uint(len(s.rows) + 1)
	s.rows[d.ID] = *d
	return nil
}

func (s *depositStore) SaveDepositStatus(_ context.Context, id uint, from, to depositdomain.Status, _ *depositdomain.ReleaseMeta) error {
	d := s.rows[id]
	if d.Status != string(from) {
		return httperr.ErrStatusChanged
	}
	d.Status = string(to)
	s.rows[id] = d
	return nil
}

type nopStore struct{}

func (nopStore) Log(context.Context, audit.Event) error { return nil }

var clock = schedule.FixedClock{At: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}

func newTestRouter(t *testing.T, appts *appointmentStore, deposits *depositStore) *gin.Engine {
	t.Helper()

	dispatcher := audit.NewDispatcher(nopStore{}, zap.NewNop())
	t.Cleanup(dispatcher.Close)
	log := zap.NewNop()

	ah := NewAppointmentHandler(
		ucAppointment.NewCheckConflicts(appts, log),
		ucAppointment.NewSaveAppointment(appts, dispatcher, clock, log),
		ucAppointment.NewChangeAppointmentStatus(appts, dispatcher, clock),
		ucAppointment.NewListAppointmentsByDate(appts),
	)
	dh := NewDepositHandler(
		ucDeposit.NewCreateDeposit(deposits, dispatcher, clock),
		ucDeposit.NewGetDeposit(deposits, clock, log),
		ucDeposit.NewListDeposits(deposits, clock, log),
		ucDeposit.NewChangeDepositStatus(deposits, dispatcher),
		ucDeposit.NewReleaseDeposit(deposits, dispatcher, notify.Nop{}, clock, log),
		ucDeposit.NewDepositSummary(deposits, clock, log, 7),
	)

	r := gin.New()
	r.GET("/appointments", ah.ListByDate)
	r.POST("/appointments/conflicts", ah.CheckConflicts)
	r.POST("/appointments", ah.Create)
	r.PUT("/appointments/:id", ah.Update)
	r.PATCH("/appointments/:id/status", ah.ChangeStatus)
	r.POST("/deposits", dh.Create)
	r.GET("/deposits", dh.List)
	r.GET("/deposits/summary", dh.Summary)
	r.GET("/deposits/:id", dh.Get)
	r.PATCH("/deposits/:id/status", dh.ChangeStatus)
	r.POST("/deposits/:id/release", dh.Release)
	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// ------------------------------
// appointments
// ------------------------------

func TestAppointmentHandler_ConflictFlow(t *testing.T) {
	appts := &appointmentStore{}
	r := newTestRouter(t, appts, &depositStore{rows: map[uint]models.Deposit{}})

	rec := do(r, http.MethodPost, "/appointments", gin.H{"client_id": 1, "date": "2024-03-10", "time": "09:00"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(r, http.MethodPost, "/appointments/conflicts", gin.H{"date": "2024-03-10", "time": "09:30", "duration_minutes": 30})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["has_conflicts"])
	assert.Equal(t, "Client A (09:00)", body["conflicts"].([]any)[0].(map[string]any)["label"])

	rec = do(r, http.MethodPost, "/appointments", gin.H{"client_id": 2, "date": "2024-03-10", "time": "09:30", "duration_minutes": 30})
	require.Equal(t, http.StatusConflict, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "time_conflict", body["error_code"])
	require.Len(t, body["conflicts"], 1)
	assert.Equal(t, "Client A (09:00)", body["conflicts"].([]any)[0].(map[string]any)["label"])
	assert.Len(t, appts.rows, 1)

	rec = do(r, http.MethodPost, "/appointments", gin.H{"client_id": 2, "date": "2024-03-10", "time": "09:30", "duration_minutes": 30, "force": true})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, appts.rows, 2)

	rec = do(r, http.MethodPatch, "/appointments/1/status", gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodPatch, "/appointments/1/status", gin.H{"status": "scheduled"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, httperr.CodeInvalidTransition, decode(t, rec)["error_code"])

	rec = do(r, http.MethodGet, "/appointments?date=2024-03-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["total"])
}

func TestAppointmentHandler_Errors(t *testing.T) {
	r := newTestRouter(t, &appointmentStore{}, &depositStore{rows: map[uint]models.Deposit{}})

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"missing date", http.MethodGet, "/appointments", nil, http.StatusBadRequest, "missing_date"},
		{"bad date", http.MethodGet, "/appointments?date=tomorrow", nil, http.StatusBadRequest, httperr.CodeInvalidDateOrTime},
		{"bad time", http.MethodPost, "/appointments", gin.H{"client_id": 1, "date": "2024-03-10", "time": "25:00"}, http.StatusBadRequest, httperr.CodeInvalidDateOrTime},
		{"short duration", http.MethodPost, "/appointments", gin.H{"client_id": 1, "date": "2024-03-10", "time": "09:00", "duration_minutes": 5}, http.StatusBadRequest, "invalid_request"},
		{"unknown id", http.MethodPut, "/appointments/9", gin.H{"client_id": 1, "date": "2024-03-10", "time": "09:00"}, http.StatusNotFound, httperr.CodeAppointmentNotFound},
		{"bad id", http.MethodPatch, "/appointments/abc/status", gin.H{"status": "cancelled"}, http.StatusBadRequest, "invalid_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decode(t, rec)["error_code"])
		})
	}
}

// ------------------------------
// deposits
// ------------------------------

func TestDepositHandler_ReleaseFlow(t *testing.T) {
	deposits := &depositStore{rows: map[uint]models.Deposit{}}
	r := newTestRouter(t, &appointmentStore{}, deposits)

	rec := do(r, http.MethodPost, "/deposits", gin.H{"client_id": 1, "deposit_date": "2024-05-01", "pickup_date": "2024-05-31"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(r, http.MethodGet, "/deposits/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "overdue", decode(t, rec)["effective_status"])

	rec = do(r, http.MethodPost, "/deposits/1/release", gin.H{"release_person": " "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, httperr.CodeMissingReleasePerson, decode(t, rec)["error_code"])

	rec = do(r, http.MethodPost, "/deposits/1/release", gin.H{"release_person": "Anna", "release_date": "2024-06-05"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"future_release_date"}, decode(t, rec)["warnings"])

	rec = do(r, http.MethodPost, "/deposits/1/release", gin.H{"release_person": "Anna"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, httperr.CodeAlreadyReleased, decode(t, rec)["error_code"])

	rec = do(r, http.MethodGet, "/deposits/7", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDepositHandler_StatusAndSummary(t *testing.T) {
	deposits := &depositStore{rows: map[uint]models.Deposit{
		1: {ID: 1, Status: "active", PickupDate: "2024-06-04"},
		2: {ID: 2, Status: "active", PickupDate: "2024-05-01"},
	}}
	r := newTestRouter(t, &appointmentStore{}, deposits)

	rec := do(r, http.MethodPatch, "/deposits/1/status", gin.H{"status": "reserved"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodPatch, "/deposits/2/status", gin.H{"status": "released"})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(r, http.MethodGet, "/deposits/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":2,"active":0,"due_soon":0,"overdue":1,"reserved":1}`, rec.Body.String())

	rec = do(r, http.MethodPost, "/deposits", gin.H{"client_id": 1, "deposit_date": "2024-06-02", "pickup_date": "2024-06-01"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, httperr.CodeInvalidPickupDate, decode(t, rec)["error_code"])
}

func TestDepositHandler_List(t *testing.T) {
	deposits := &depositStore{rows: map[uint]models.Deposit{
		1: {ID: 1, Status: "active", PickupDate: "2024-05-20", Client: models.Client{Name: "Jan Kowalski"}},
		2: {ID: 2, Status: "active", PickupDate: "2024-06-01", Client: models.Client{Name: "Ewa Nowak"}},
		3: {ID: 3, Status: "reserved", PickupDate: "2024-05-01", Client: models.Client{Name: "Jan Zielinski"}},
		4: {ID: 4, Status: "released", PickupDate: "2024-04-01", Client: models.Client{Name: "Jan Kowalski"}},
	}}
	r := newTestRouter(t, &appointmentStore{}, deposits)

	rec := do(r, http.MethodGet, "/deposits?status=overdue,due_for_pickup", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Data  []map[string]any `json:"data"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, 2, page.Total)
	assert.Equal(t, "overdue", page.Data[0]["effective_status"])
	assert.Equal(t, "active", page.Data[0]["status"])
	assert.Equal(t, "due_for_pickup", page.Data[1]["effective_status"])

	rec = do(r, http.MethodGet, "/deposits?status=active", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[],"total":0}`, rec.Body.String())

	rec = do(r, http.MethodGet, "/deposits?query=jan", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Total)

	rec = do(r, http.MethodGet, "/deposits?status=released&query=kowal", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, 1, page.Total)
	assert.Equal(t, float64(4), page.Data[0]["id"])

	rec = do(r, http.MethodGet, "/deposits?status=lost", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, httperr.CodeInvalidStatus, decode(t, rec)["error_code"])
}

// ------------------------------
// auth
// ------------------------------

func TestAuthHandler_Login(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	staffQuery := regexp.QuoteMeta(`SELECT * FROM "staff`)
	mock.ExpectQuery(staffQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role"}).
			AddRow(1, "Admin", "admin@tireshop.test", string(hash), "admin"))
	mock.ExpectQuery(staffQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role"}).
			AddRow(1, "Admin", "admin@tireshop.test", string(hash), "admin"))
	mock.ExpectQuery(staffQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	h := NewAuthHandler(db, &config.Config{JWTSecret: "secret"})
	r := gin.New()
	r.POST("/auth/login", h.Login)

	rec := do(r, http.MethodPost, "/auth/login", gin.H{"email": "Admin@TireShop.test", "password": "s3cret"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["token"])

	rec = do(r, http.MethodPost, "/auth/login", gin.H{"email": "admin@tireshop.test", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(r, http.MethodPost, "/auth/login", gin.H{"email": "nobody@tireshop.test", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}
