package email

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/resend/resend-go/v2"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// ResendClient delivers email through the Resend API.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client. A non-empty baseURL points the
// client at another API host, such as a local stub.
func NewResendClient(apiKey, fromName, fromEmail, baseURL string) (*ResendClient, error) {
	client := resend.NewClient(apiKey)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid resend base url: %w", err)
		}
		client.BaseURL = u
	}

	return &ResendClient{
		client:    client,
		fromName:  fromName,
		fromEmail: fromEmail,
	}, nil
}

// Send sends an email via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	to := input.To
	if input.Name != "" {
		to = fmt.Sprintf("%s <%s>", input.Name, input.To)
	}

	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{to},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	})
	if err != nil {
		return nil, classifySendError(err)
	}

	return &adapter.SendEmailResult{ResendID: resp.Id}, nil
}

// classifySendError separates rejections (auth, validation) from failures worth retrying.
func classifySendError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "temporary email failure", err)
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid"} {
		if strings.Contains(msg, pattern) {
			return domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "permanent email failure", err)
		}
	}
	return domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "temporary email failure", err)
}

// MockEmailSender records emails instead of sending them. Used when no API key
// is configured and in tests.
type MockEmailSender struct {
	mu          sync.Mutex
	sent        []adapter.SendEmailInput
	failErr     error
	isPermanent bool
}

// NewMockEmailSender creates a new mock email sender.
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

// Send implements adapter.EmailSender.
func (m *MockEmailSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		code := domainerror.ErrCodeTemporaryEmailFailure
		if m.isPermanent {
			code = domainerror.ErrCodePermanentEmailFailure
		}
		return nil, domainerror.NewEmailError(code, "mock send failure", m.failErr)
	}

	m.sent = append(m.sent, input)
	return &adapter.SendEmailResult{ResendID: fmt.Sprintf("mock-%d", len(m.sent))}, nil
}

// Sent returns a copy of the emails recorded so far.
func (m *MockEmailSender) Sent() []adapter.SendEmailInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]adapter.SendEmailInput(nil), m.sent...)
}

// SetFailure makes subsequent sends fail with err.
func (m *MockEmailSender) SetFailure(err error, permanent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
	m.isPermanent = permanent
}

// Reset clears recorded emails and any configured failure.
func (m *MockEmailSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
	m.failErr = nil
	m.isPermanent = false
}

var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = (*MockEmailSender)(nil)
)
