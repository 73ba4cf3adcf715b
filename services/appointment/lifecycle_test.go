package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoctor() *models.Doctor {
	return &models.Doctor{
		ID:    "doc-1",
		Name:  "Dr. Meredith",
		Email: "meredith@example.com",
		ConsultationFees: models.ConsultationFees{
			Online:   500,
			Physical: 800,
		},
	}
}

func newLifecycleService(repo *fakeAppointmentRepo) (*DefaultAppointmentService, *recordingReminders) {
	reminders := &recordingReminders{}
	svc := &DefaultAppointmentService{
		Repo:       repo,
		DoctorRepo: newFakeDoctorRepo(testDoctor()),
		Reminders:  reminders,
	}
	return svc, reminders
}

func seedSlot(t *testing.T, repo *fakeAppointmentRepo, doctorID, clock string, daysAhead int) models.Appointment {
	t.Helper()
	day := time.Now().UTC().AddDate(0, 0, daysAhead)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	created, _, err := repo.CreateMany(context.Background(), []models.Appointment{
		{DoctorID: doctorID, Date: day, Time: clock, Status: models.StatusAvailable},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	return created[0]
}

func TestBookConfirmsSlot(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, reminders := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	appt, err := svc.Book(context.Background(), slot.ID, "doc-1", "pat-1", models.ConsultationOnline, 500)
	require.NoError(t, err)

	assert.Equal(t, models.StatusConfirmed, appt.Status)
	assert.Equal(t, "pat-1", appt.PatientID)
	assert.Equal(t, models.ConsultationOnline, appt.AppointmentType)
	require.NotNil(t, appt.Price)
	assert.Equal(t, 500.0, *appt.Price)

	require.Len(t, reminders.scheduled, 1)
	assert.Equal(t, slot.ID, reminders.scheduled[0].ID)
}

func TestBookPhysicalFee(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "10:00", 1)

	appt, err := svc.Book(context.Background(), slot.ID, "doc-1", "pat-1", models.ConsultationPhysical, 800)
	require.NoError(t, err)
	require.NotNil(t, appt.Price)
	assert.Equal(t, 800.0, *appt.Price)
}

func TestBookFeeMismatch(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	_, err := svc.Book(context.Background(), slot.ID, "doc-1", "pat-1", models.ConsultationOnline, 800)
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeFeeMismatch))

	// Slot stays available after a rejected booking.
	stored, err := repo.GetByID(context.Background(), slot.ID, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, stored.Status)
}

func TestBookInvalidConsultationType(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	_, err := svc.Book(context.Background(), slot.ID, "doc-1", "pat-1", "telepathic", 500)
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeInvalidConsultationType))
}

func TestBookUnknownDoctor(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)

	_, err := svc.Book(context.Background(), "whatever", "doc-missing", "pat-1", models.ConsultationOnline, 500)
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeNotFound))
}

func TestBookMissingSlot(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)

	_, err := svc.Book(context.Background(), "no-such-slot", "doc-1", "pat-1", models.ConsultationOnline, 500)
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeSlotUnavailable))
}

func TestBookAlreadyConfirmedSlot(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	_, err := svc.Book(context.Background(), slot.ID, "doc-1", "pat-1", models.ConsultationOnline, 500)
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), slot.ID, "doc-1", "pat-2", models.ConsultationOnline, 500)
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeSlotUnavailable))
}

func TestBookConcurrentSingleWinner(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, reminders := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	const contenders = 16
	var wg sync.WaitGroup
	errs := make([]error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			patientID := string(rune('a' + i))
			_, errs[i] = svc.Book(context.Background(), slot.ID, "doc-1", patientID, models.ConsultationOnline, 500)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.True(t, HasCode(err, CodeSlotUnavailable))
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent booking must win")
	assert.Len(t, reminders.scheduled, 1)
}

func TestBookProceedsWhenReminderFails(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, reminders := newLifecycleService(repo)
	reminders.err = assert.AnError
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	appt, err := svc.Book(context.Background(), slot.ID, "doc-1", "pat-1", models.ConsultationOnline, 500)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, appt.Status)
}

func TestCancelConfirmedSlot(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	_, err := svc.Book(context.Background(), slot.ID, "doc-1", "pat-1", models.ConsultationOnline, 500)
	require.NoError(t, err)

	appt, err := svc.Cancel(context.Background(), slot.ID, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, appt.Status)

	// The cancelled record keeps the booking details.
	stored, err := repo.GetByID(context.Background(), slot.ID, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)
	assert.Equal(t, "pat-1", stored.PatientID)
	require.NotNil(t, stored.Price)
	assert.Equal(t, 500.0, *stored.Price)
}

func TestCancelUnbookedSlot(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	_, err := svc.Cancel(context.Background(), slot.ID, "doc-1")
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeNotBooked))
}

func TestCancelCompletedSlotRejected(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	_, err := svc.Book(context.Background(), slot.ID, "doc-1", "pat-1", models.ConsultationOnline, 500)
	require.NoError(t, err)
	_, err = svc.Complete(context.Background(), slot.ID, "doc-1")
	require.NoError(t, err)

	// A completed appointment must stay completed, even when a cancel lands
	// right after the sweep.
	_, err = svc.Cancel(context.Background(), slot.ID, "doc-1")
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeNotBooked))

	stored, err := repo.GetByID(context.Background(), slot.ID, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, stored.Status)
}

func TestCancelMissingSlot(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)

	_, err := svc.Cancel(context.Background(), "nope", "doc-1")
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeNotFound))
}

func TestDeleteAvailableSlot(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	require.NoError(t, svc.Delete(context.Background(), slot.ID, "doc-1"))
	assert.Equal(t, 0, repo.count())
}

func TestDeleteConfirmedSlotRejected(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	_, err := svc.Book(context.Background(), slot.ID, "doc-1", "pat-1", models.ConsultationOnline, 500)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), slot.ID, "doc-1")
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeCannotDeleteBooked))
	assert.Equal(t, 1, repo.count())
}

func TestDeleteCancelledSlotRejected(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	_, err := svc.Book(context.Background(), slot.ID, "doc-1", "pat-1", models.ConsultationOnline, 500)
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), slot.ID, "doc-1")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), slot.ID, "doc-1")
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeCannotDeleteBooked))
	assert.Equal(t, 1, repo.count())
}

func TestDeleteWrongDoctor(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	err := svc.Delete(context.Background(), slot.ID, "doc-2")
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeNotFound))
}

func TestCompleteConfirmedSlot(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	_, err := svc.Book(context.Background(), slot.ID, "doc-1", "pat-1", models.ConsultationOnline, 500)
	require.NoError(t, err)

	appt, err := svc.Complete(context.Background(), slot.ID, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, appt.Status)
}

func TestCompleteUnbookedSlot(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	_, err := svc.Complete(context.Background(), slot.ID, "doc-1")
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeNotBooked))
}

func TestCompleteMissingSlot(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)

	_, err := svc.Complete(context.Background(), "nope", "doc-1")
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeNotFound))
}

func TestAttachConsultation(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	_, err := svc.Book(context.Background(), slot.ID, "doc-1", "pat-1", models.ConsultationOnline, 500)
	require.NoError(t, err)

	details := models.ConsultationDetails{
		Notes: "mild fever, rest advised",
		Medicines: []models.Medicine{
			{Name: "paracetamol", Dosage: "500mg", Frequency: "twice daily", Duration: "3 days"},
		},
		Suggestions: "follow up if fever persists",
	}
	appt, err := svc.AttachConsultation(context.Background(), slot.ID, "doc-1", details)
	require.NoError(t, err)
	require.NotNil(t, appt.ConsultationDetails)
	assert.Equal(t, "mild fever, rest advised", appt.ConsultationDetails.Notes)
	require.Len(t, appt.ConsultationDetails.Medicines, 1)
	assert.Equal(t, "paracetamol", appt.ConsultationDetails.Medicines[0].Name)
}

func TestAttachConsultationRequiresBooking(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	_, err := svc.AttachConsultation(context.Background(), slot.ID, "doc-1", models.ConsultationDetails{Notes: "n/a"})
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeNotBooked))
}

func TestAttachConsultationOnCompletedSlot(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)
	slot := seedSlot(t, repo, "doc-1", "09:00", 1)

	_, err := svc.Book(context.Background(), slot.ID, "doc-1", "pat-1", models.ConsultationOnline, 500)
	require.NoError(t, err)
	_, err = svc.Complete(context.Background(), slot.ID, "doc-1")
	require.NoError(t, err)

	appt, err := svc.AttachConsultation(context.Background(), slot.ID, "doc-1", models.ConsultationDetails{Notes: "post-visit"})
	require.NoError(t, err)
	assert.Equal(t, "post-visit", appt.ConsultationDetails.Notes)
}

func TestListAvailableSortedAndFiltered(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)

	// Seed out of order across days, plus one past slot.
	seedSlot(t, repo, "doc-1", "10:00", 2)
	seedSlot(t, repo, "doc-1", "09:00", 2)
	seedSlot(t, repo, "doc-1", "11:00", 1)
	seedSlot(t, repo, "doc-1", "09:00", -3)

	appts, err := svc.ListAvailable(context.Background(), "doc-1", time.Time{}, 1, 50)
	require.NoError(t, err)

	// Past slot filtered out, rest sorted by date then time.
	require.Len(t, appts, 3)
	assert.Equal(t, "11:00", appts[0].Time)
	assert.Equal(t, "09:00", appts[1].Time)
	assert.Equal(t, "10:00", appts[2].Time)
}

func TestListAvailablePagination(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)

	for _, clock := range []string{"09:00", "09:30", "10:00", "10:30", "11:00"} {
		seedSlot(t, repo, "doc-1", clock, 1)
	}

	page1, err := svc.ListAvailable(context.Background(), "doc-1", time.Time{}, 1, 2)
	require.NoError(t, err)
	page2, err := svc.ListAvailable(context.Background(), "doc-1", time.Time{}, 2, 2)
	require.NoError(t, err)
	page3, err := svc.ListAvailable(context.Background(), "doc-1", time.Time{}, 3, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30"}, []string{page1[0].Time, page1[1].Time})
	assert.Equal(t, []string{"10:00", "10:30"}, []string{page2[0].Time, page2[1].Time})
	require.Len(t, page3, 1)
	assert.Equal(t, "11:00", page3[0].Time)
}

func TestListConfirmedIncludesPast(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)

	past := seedSlot(t, repo, "doc-1", "09:00", -2)
	future := seedSlot(t, repo, "doc-1", "09:00", 2)
	for _, slot := range []models.Appointment{past, future} {
		_, err := svc.Book(context.Background(), slot.ID, "doc-1", "pat-1", models.ConsultationOnline, 500)
		require.NoError(t, err)
	}

	confirmed, err := svc.ListConfirmed(context.Background(), "doc-1", 1, 50)
	require.NoError(t, err)
	assert.Len(t, confirmed, 2)

	upcoming, err := svc.ListUpcoming(context.Background(), "doc-1", 1, 50)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, future.ID, upcoming[0].ID)
}

func TestCompletePastConfirmedSweep(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc, _ := newLifecycleService(repo)

	past := seedSlot(t, repo, "doc-1", "09:00", -1)
	future := seedSlot(t, repo, "doc-1", "09:00", 1)
	for _, slot := range []models.Appointment{past, future} {
		_, err := svc.Book(context.Background(), slot.ID, "doc-1", "pat-1", models.ConsultationOnline, 500)
		require.NoError(t, err)
	}

	swept, err := repo.CompletePastConfirmed(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	stored, err := repo.GetByID(context.Background(), past.ID, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, stored.Status)

	stillConfirmed, err := repo.GetByID(context.Background(), future.ID, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, stillConfirmed.Status)
}
