package api

import (
	"context"
	"sync"

	"github.com/partselect/partchat/internal/models"
)

// MockClient is a mock implementation of ClientInterface for testing
type MockClient struct {
	mu sync.Mutex

	// Mock return values
	ReplyVal   *models.Reply
	ReplyErr   error
	ProductVal *models.Product
	ProductErr error
	GuideVal   *models.InstallationGuide
	GuideErr   error
	BaseURLVal string

	// SendChatFunc overrides ReplyVal/ReplyErr when set
	SendChatFunc func(ctx context.Context, message, pageContext string) (*models.Reply, error)

	// Call counters/recorders
	SendChatCalls   int
	LastMessage     string
	LastPageContext string
	LastPartNumber  string
}

// Ensure MockClient implements ClientInterface
var _ ClientInterface = (*MockClient)(nil)

func (m *MockClient) SendChat(ctx context.Context, message, pageContext string) (*models.Reply, error) {
	m.mu.Lock()
	m.SendChatCalls++
	m.LastMessage = message
	m.LastPageContext = pageContext
	fn := m.SendChatFunc
	reply, err := m.ReplyVal, m.ReplyErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, message, pageContext)
	}
	return reply, err
}

func (m *MockClient) GetProduct(ctx context.Context, partNumber string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastPartNumber = partNumber
	return m.ProductVal, m.ProductErr
}

func (m *MockClient) GetInstallationGuide(ctx context.Context, partNumber string) (*models.InstallationGuide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastPartNumber = partNumber
	return m.GuideVal, m.GuideErr
}

func (m *MockClient) BaseURL() string {
	if m.BaseURLVal == "" {
		return models.DefaultBaseURL
	}
	return m.BaseURLVal
}

// Calls returns the number of SendChat calls so far
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SendChatCalls
}
