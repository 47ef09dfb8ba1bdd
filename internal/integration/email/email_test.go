package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/email/templates"
)

type memoryQueue struct {
	mu   sync.Mutex
	jobs []*entity.EmailJob
}

func (q *memoryQueue) Create(_ context.Context, job *entity.EmailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *memoryQueue) ClaimPendingJobs(_ context.Context, limit int) ([]*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []*entity.EmailJob
	for _, j := range q.jobs {
		if len(out) == limit {
			break
		}
		if j.IsReadyToProcess(time.Now().UTC()) {
			j.MarkProcessing()
			out = append(out, j)
		}
	}
	return out, nil
}

func (q *memoryQueue) Update(context.Context, *entity.EmailJob) error { return nil }

func (q *memoryQueue) GetByRecipient(_ context.Context, email string) ([]*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []*entity.EmailJob
	for _, j := range q.jobs {
		if j.RecipientEmail == email {
			out = append(out, j)
		}
	}
	return out, nil
}

func (q *memoryQueue) DeleteOldSentJobs(context.Context, int) (int64, error) { return 0, nil }

var _ adapter.EmailQueueRepository = (*memoryQueue)(nil)

func newTestWorker(t *testing.T) (*Service, *Worker, *memoryQueue, *MockEmailSender) {
	t.Helper()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)

	queue := &memoryQueue{}
	sender := NewMockEmailSender()
	svc := NewService(queue, "https://app.example.com/")
	worker := NewWorker(queue, sender, renderer, WorkerConfig{PollInterval: time.Second, BatchSize: 5})
	return svc, worker, queue, sender
}

func reportReadyInput() adapter.QueueReportReadyInput {
	return adapter.QueueReportReadyInput{
		UserEmail:  "ops@example.com",
		UserName:   "Ops Team",
		ReportID:   "rep-1",
		ReportName: "Q1 2024",
		StartDate:  "2024-01-01",
		EndDate:    "2024-03-31",
		TotalKg:    1234.5,
		Scope1Kg:   1000,
		Scope2Kg:   200,
		Scope3Kg:   34.5,
	}
}

func TestService_QueueReportReadyEmail(t *testing.T) {
	svc, _, queue, _ := newTestWorker(t)

	require.NoError(t, svc.QueueReportReadyEmail(context.Background(), reportReadyInput()))

	jobs, err := queue.GetByRecipient(context.Background(), "ops@example.com")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, entity.TemplateReportReady, jobs[0].TemplateType)
	assert.Equal(t, "https://app.example.com/reports/rep-1", jobs[0].TemplateData["dashboard_url"])
	assert.Contains(t, jobs[0].Subject, "Q1 2024")
}

func TestWorker_DeliversReportReady(t *testing.T) {
	svc, worker, queue, sender := newTestWorker(t)
	require.NoError(t, svc.QueueReportReadyEmail(context.Background(), reportReadyInput()))

	assert.Equal(t, 1, worker.ProcessNow(context.Background()))

	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ops@example.com", sent[0].To)
	assert.Contains(t, sent[0].HTML, "1234.50 kg CO2e")
	assert.Contains(t, sent[0].Text, "Scope 3: 34.50 kg CO2e")
	assert.Contains(t, sent[0].Text, "https://app.example.com/reports/rep-1")

	assert.Equal(t, entity.EmailStatusSent, queue.jobs[0].Status)
	assert.Equal(t, "mock-1", queue.jobs[0].ResendID)
	assert.Zero(t, worker.ProcessNow(context.Background()))
}

func TestWorker_TemporaryFailureIsRescheduled(t *testing.T) {
	svc, worker, queue, sender := newTestWorker(t)
	require.NoError(t, svc.QueueReportReadyEmail(context.Background(), reportReadyInput()))
	sender.SetFailure(errors.New("503 service unavailable"), false)

	worker.ProcessNow(context.Background())

	job := queue.jobs[0]
	assert.Equal(t, entity.EmailStatusPending, job.Status)
	assert.Equal(t, 1, job.Attempts)
	assert.True(t, job.ScheduledAt.After(time.Now().UTC()))
}

func TestWorker_PermanentFailureStops(t *testing.T) {
	svc, worker, queue, sender := newTestWorker(t)
	require.NoError(t, svc.QueueReportReadyEmail(context.Background(), reportReadyInput()))
	sender.SetFailure(errors.New("422 validation"), true)

	worker.ProcessNow(context.Background())

	job := queue.jobs[0]
	assert.Equal(t, entity.EmailStatusFailed, job.Status)
	assert.NotNil(t, job.ProcessedAt)
}

func TestWorker_UnknownTemplateFails(t *testing.T) {
	_, worker, queue, sender := newTestWorker(t)
	require.NoError(t, queue.Create(context.Background(),
		entity.NewEmailJob("welcome", "ops@example.com", "", "hi", nil)))

	worker.ProcessNow(context.Background())

	assert.Empty(t, sender.Sent())
	assert.Equal(t, entity.EmailStatusFailed, queue.jobs[0].Status)
	assert.Contains(t, queue.jobs[0].LastError, "unknown template type")
}

func TestClassifySendError(t *testing.T) {
	tests := []struct {
		err  error
		code domainerror.EmailErrorCode
	}{
		{errors.New("401 unauthorized"), domainerror.ErrCodePermanentEmailFailure},
		{errors.New("422: validation_error"), domainerror.ErrCodePermanentEmailFailure},
		{errors.New("500 internal server error"), domainerror.ErrCodeTemporaryEmailFailure},
		{context.DeadlineExceeded, domainerror.ErrCodeTemporaryEmailFailure},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			var emailErr *domainerror.EmailError
			require.ErrorAs(t, classifySendError(tt.err), &emailErr)
			assert.Equal(t, tt.code, emailErr.Code)
		})
	}
}

func TestResendClient_SendsThroughConfiguredHost(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email-123"}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewResendClient("re_test", "Carbon Tracker", "reports@example.com", server.URL)
	require.NoError(t, err)

	result, err := client.Send(context.Background(), adapter.SendEmailInput{
		To:      "ada@example.com",
		Name:    "Ada",
		Subject: "Report ready",
		HTML:    "<p>hi</p>",
		Text:    "hi",
	})

	require.NoError(t, err)
	assert.Equal(t, "email-123", result.ResendID)
	assert.Equal(t, "Carbon Tracker <reports@example.com>", received["from"])
	assert.Equal(t, []any{"Ada <ada@example.com>"}, received["to"])
}

func TestResendClient_RejectionIsPermanent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid to field"}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewResendClient("re_test", "Carbon Tracker", "reports@example.com", server.URL)
	require.NoError(t, err)

	_, err = client.Send(context.Background(), adapter.SendEmailInput{To: "bad", Subject: "x", Text: "x"})

	var emailErr *domainerror.EmailError
	require.ErrorAs(t, err, &emailErr)
	assert.True(t, emailErr.IsPermanent())
}
