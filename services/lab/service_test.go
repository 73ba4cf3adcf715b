package lab

import (
	"context"
	"testing"
	"time"

	"medibook/config"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeLabRepo is an in-memory LabRecordRepository.
type fakeLabRepo struct {
	requests map[string]*models.LabRequest
}

func newFakeLabRepo() *fakeLabRepo {
	return &fakeLabRepo{requests: make(map[string]*models.LabRequest)}
}

func (f *fakeLabRepo) Create(ctx context.Context, request *models.LabRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	if request.RequestedAt.IsZero() {
		request.RequestedAt = time.Now().UTC()
	}
	stored := *request
	f.requests[request.ID] = &stored
	return nil
}

func (f *fakeLabRepo) GetByID(ctx context.Context, id string) (*models.LabRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *r
	return &copied, nil
}

func (f *fakeLabRepo) ListByStatus(ctx context.Context, status string) ([]models.LabRequest, error) {
	var out []models.LabRequest
	for _, r := range f.requests {
		if status == "" || r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeLabRepo) ListByPatient(ctx context.Context, patientID string) ([]models.LabRequest, error) {
	var out []models.LabRequest
	for _, r := range f.requests {
		if r.PatientID == patientID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeLabRepo) Update(ctx context.Context, request *models.LabRequest) error {
	if _, ok := f.requests[request.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	stored := *request
	f.requests[request.ID] = &stored
	return nil
}

func configureLabCredentials(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig.LabAssistantEmail = "lab@medibook.test"
	config.AppConfig.LabAssistantPassword = "lab-secret"
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestLoginIssuesTokenForConfiguredAssistant(t *testing.T) {
	configureLabCredentials(t)
	svc := &DefaultLabService{Repo: newFakeLabRepo()}

	token, err := svc.Login(context.Background(), "lab@medibook.test", "lab-secret")
	require.NoError(t, err)

	sub, err := utils.ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "lab@medibook.test", sub)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	configureLabCredentials(t)
	svc := &DefaultLabService{Repo: newFakeLabRepo()}

	_, err := svc.Login(context.Background(), "lab@medibook.test", "wrong")
	assert.Error(t, err)

	_, err = svc.Login(context.Background(), "other@medibook.test", "lab-secret")
	assert.Error(t, err)
}

func TestLoginUnconfiguredPortal(t *testing.T) {
	prev := config.AppConfig
	config.AppConfig.LabAssistantEmail = ""
	config.AppConfig.LabAssistantPassword = ""
	t.Cleanup(func() { config.AppConfig = prev })

	svc := &DefaultLabService{Repo: newFakeLabRepo()}
	_, err := svc.Login(context.Background(), "lab@medibook.test", "lab-secret")
	assert.Error(t, err)
}

func TestCreateRequest(t *testing.T) {
	repo := newFakeLabRepo()
	svc := &DefaultLabService{Repo: repo}

	request, err := svc.CreateRequest(context.Background(), "doc-1", models.LabRequestCreate{
		AppointmentID: "appt-1",
		PatientID:     "pat-1",
		Tests:         []models.LabTest{{TestName: "CBC"}},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, request.ID)
	assert.Equal(t, "doc-1", request.DoctorID)
	assert.Equal(t, models.LabStatusRequested, request.Status)

	listed, err := svc.ListRequests(context.Background(), models.LabStatusRequested)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestUpdateRequestSetsCompletedAt(t *testing.T) {
	repo := newFakeLabRepo()
	svc := &DefaultLabService{Repo: repo}

	request, err := svc.CreateRequest(context.Background(), "doc-1", models.LabRequestCreate{
		AppointmentID: "appt-1",
		PatientID:     "pat-1",
		Tests:         []models.LabTest{{TestName: "CBC"}},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRequest(context.Background(), request.ID, models.LabRequestUpdate{
		Status: models.LabStatusCompleted,
		Tests: []models.LabTest{
			{TestName: "CBC", Result: "normal", ReferenceRange: "4.5-11", PerformedAt: time.Now().UTC()},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.LabStatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, "normal", updated.Tests[0].Result)
}

func TestUpdateUnknownRequest(t *testing.T) {
	svc := &DefaultLabService{Repo: newFakeLabRepo()}

	_, err := svc.UpdateRequest(context.Background(), "missing", models.LabRequestUpdate{Status: models.LabStatusPending})
	assert.Error(t, err)
}
