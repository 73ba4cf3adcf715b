package appointment

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"medibook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeAppointmentRepo is an in-memory AppointmentRepository with the same
// atomicity guarantees as the Mongo implementation: status transitions happen
// under a single lock, and the (doctorId, date, time) key is unique.
type fakeAppointmentRepo struct {
	mu    sync.Mutex
	byID  map[string]*models.Appointment
	slots map[string]string // "doctorID|date|time" -> appointment ID
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		byID:  make(map[string]*models.Appointment),
		slots: make(map[string]string),
	}
}

func slotKey(doctorID string, date time.Time, clock string) string {
	return fmt.Sprintf("%s|%s|%s", doctorID, date.Format("2006-01-02"), clock)
}

func (f *fakeAppointmentRepo) CreateMany(ctx context.Context, slots []models.Appointment) ([]models.Appointment, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var created []models.Appointment
	collided := 0
	for _, slot := range slots {
		key := slotKey(slot.DoctorID, slot.Date, slot.Time)
		if _, dup := f.slots[key]; dup {
			collided++
			continue
		}
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		slot.CreatedAt = time.Now().UTC()
		slot.UpdatedAt = slot.CreatedAt
		stored := slot
		f.byID[slot.ID] = &stored
		f.slots[key] = slot.ID
		created = append(created, slot)
	}
	return created, collided, nil
}

func (f *fakeAppointmentRepo) ExistingTimes(ctx context.Context, doctorID string, date time.Time) (map[string]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	times := make(map[string]struct{})
	for _, appt := range f.byID {
		if appt.DoctorID == doctorID && appt.Date.Equal(date) {
			times[appt.Time] = struct{}{}
		}
	}
	return times, nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, appointmentID, doctorID string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	appt, ok := f.byID[appointmentID]
	if !ok || appt.DoctorID != doctorID {
		return nil, mongo.ErrNoDocuments
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeAppointmentRepo) DeleteIfAvailable(ctx context.Context, appointmentID, doctorID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	appt, ok := f.byID[appointmentID]
	if !ok || appt.DoctorID != doctorID || appt.Status != models.StatusAvailable {
		return mongo.ErrNoDocuments
	}
	delete(f.slots, slotKey(appt.DoctorID, appt.Date, appt.Time))
	delete(f.byID, appointmentID)
	return nil
}

func (f *fakeAppointmentRepo) ConfirmIfAvailable(ctx context.Context, appointmentID, doctorID, patientID, consultationType string, price float64) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	appt, ok := f.byID[appointmentID]
	if !ok || appt.DoctorID != doctorID || appt.Status != models.StatusAvailable {
		return nil, mongo.ErrNoDocuments
	}
	appt.Status = models.StatusConfirmed
	appt.PatientID = patientID
	appt.AppointmentType = consultationType
	appt.Price = &price
	appt.UpdatedAt = time.Now().UTC()
	copied := *appt
	return &copied, nil
}

func (f *fakeAppointmentRepo) CompleteIfConfirmed(ctx context.Context, appointmentID, doctorID string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	appt, ok := f.byID[appointmentID]
	if !ok || appt.DoctorID != doctorID || appt.Status != models.StatusConfirmed {
		return nil, mongo.ErrNoDocuments
	}
	appt.Status = models.StatusCompleted
	appt.UpdatedAt = time.Now().UTC()
	copied := *appt
	return &copied, nil
}

func (f *fakeAppointmentRepo) CancelIfConfirmed(ctx context.Context, appointmentID, doctorID string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	appt, ok := f.byID[appointmentID]
	if !ok || appt.DoctorID != doctorID || appt.Status != models.StatusConfirmed {
		return nil, mongo.ErrNoDocuments
	}
	appt.Status = models.StatusCancelled
	appt.UpdatedAt = time.Now().UTC()
	copied := *appt
	return &copied, nil
}

func (f *fakeAppointmentRepo) SetConsultationDetails(ctx context.Context, appointmentID, doctorID string, details models.ConsultationDetails) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	appt, ok := f.byID[appointmentID]
	if !ok || appt.DoctorID != doctorID {
		return mongo.ErrNoDocuments
	}
	appt.ConsultationDetails = &details
	appt.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeAppointmentRepo) ListByStatus(ctx context.Context, doctorID, status string, from *time.Time, page, pageSize int) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []models.Appointment
	for _, appt := range f.byID {
		if appt.DoctorID != doctorID || appt.Status != status {
			continue
		}
		if from != nil && appt.Date.Before(*from) {
			continue
		}
		matched = append(matched, *appt)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.Before(matched[j].Date)
		}
		return matched[i].Time < matched[j].Time
	})

	offset := (page - 1) * pageSize
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeAppointmentRepo) CompletePastConfirmed(ctx context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var swept int64
	for _, appt := range f.byID {
		if appt.Status == models.StatusConfirmed && appt.Date.Before(cutoff) {
			appt.Status = models.StatusCompleted
			swept++
		}
	}
	return swept, nil
}

func (f *fakeAppointmentRepo) EnsureIndexes() error { return nil }

func (f *fakeAppointmentRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

// fakeDoctorRepo serves a fixed set of doctors.
type fakeDoctorRepo struct {
	doctors map[string]*models.Doctor
}

func newFakeDoctorRepo(doctors ...*models.Doctor) *fakeDoctorRepo {
	byID := make(map[string]*models.Doctor)
	for _, d := range doctors {
		byID[d.ID] = d
	}
	return &fakeDoctorRepo{doctors: byID}
}

func (f *fakeDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	f.doctors[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDoctorRepo) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	for _, d := range f.doctors {
		if d.Email == email {
			copied := *d
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeDoctorRepo) UpdateWithDocument(ctx context.Context, id string, fields bson.M) error {
	if _, ok := f.doctors[id]; !ok {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (f *fakeDoctorRepo) Search(ctx context.Context, query string) ([]models.Doctor, error) {
	return nil, nil
}

func (f *fakeDoctorRepo) EnsureIndexes() error { return nil }

// recordingReminders captures scheduled reminders for assertions.
type recordingReminders struct {
	mu        sync.Mutex
	scheduled []models.Appointment
	err       error
}

func (r *recordingReminders) ScheduleReminder(ctx context.Context, appt models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.scheduled = append(r.scheduled, appt)
	return nil
}
