package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/tireshop/backoffice/internal/domain/appointment"
	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/httperr"
	"github.com/tireshop/backoffice/internal/models"
)

type memoryRepo struct {
	mu      sync.Mutex
	nextID  uint
	rows    map[uint]models.Appointment
	clients map[uint]models.Client
	locked  []string
}

func newMemoryRepo(clients ...models.Client) *memoryRepo {
	r := &memoryRepo{
		nextID:  1,
		rows:    map[uint]models.Appointment{},
		clients: map[uint]models.Client{},
	}
	for _, c := range clients {
		r.clients[c.ID] = c
	}
	return r
}

func (r *memoryRepo) ListAppointments(_ context.Context, date time.Time, statuses []domain.Status) ([]models.Appointment, error) {
	want := schedule.FormatDate(date)
	allowed := map[string]bool{}
	for _, s := range statuses {
		allowed[string(s)] = true
	}

	var out []models.Appointment
	for _, ap := range r.rows {
		if ap.Date != want {
			continue
		}
		if len(statuses) > 0 && !allowed[ap.Status] {
			continue
		}
		ap.Client = r.clients[ap.ClientID]
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memoryRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.rows[id]
	if !ok {
		return nil, httperr.ErrAppointmentNotFound
	}
	ap.Client = r.clients[ap.ClientID]
	return &ap, nil
}

func (r *memoryRepo) SaveAppointment(_ context.Context, ap *models.Appointment) (uint, error) {
	if ap.ID == 0 {
		ap.ID = r.nextID
		r.nextID++
	}
	stored := *ap
	stored.Client = models.Client{}
	r.rows[ap.ID] = stored
	return ap.ID, nil
}

func (r *memoryRepo) WithDateLock(_ context.Context, date time.Time, fn func(domain.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked = append(r.locked, schedule.FormatDate(date))
	return fn(r)
}

func (r *memoryRepo) seed(ap models.Appointment) uint {
	id, _ := r.SaveAppointment(context.Background(), &ap)
	return id
}

var _ domain.Repository = (*memoryRepo)(nil)
