package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/notification"
	"github.com/blog-cms-api/internal/service"
)

// Verify interface compliance
var (
	_ service.Notifier      = (*MockNotifier)(nil)
	_ service.UploadService = (*MockUploadService)(nil)
	_ notification.Mailer   = (*MockMailer)(nil)
)

// MockNotifier records messages instead of sending them
type MockNotifier struct {
	mu   sync.Mutex
	Sent []notification.Message
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Send(msg notification.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, msg)
}

// Messages returns a snapshot of everything sent so far
func (m *MockNotifier) Messages() []notification.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notification.Message(nil), m.Sent...)
}

// MockMailer is a transport that fails with Err when set
type MockMailer struct {
	mu    sync.Mutex
	Err   error
	Calls int
}

func (m *MockMailer) Send(ctx context.Context, msg notification.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	return m.Err
}

// CallCount returns how many deliveries were attempted
func (m *MockMailer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// MockUploadService is a mock implementation of UploadService
type MockUploadService struct {
	SaveFunc func(ctx context.Context, filename string, size int64, r io.Reader) (*models.Upload, error)
	Saved    []string
}

func NewMockUploadService() *MockUploadService {
	return &MockUploadService{}
}

func (m *MockUploadService) SaveArticleImage(ctx context.Context, filename string, size int64, r io.Reader) (*models.Upload, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, filename, size, r)
	}
	m.Saved = append(m.Saved, filename)
	return &models.Upload{URL: "/uploads/articles/" + filename}, nil
}
