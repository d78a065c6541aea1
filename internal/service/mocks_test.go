package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"moodle-bridge/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockLMSClient ---
// Call results are given as raw Moodle JSON and decoded into out, so tests
// exercise the same decoding the real client does.
type MockLMSClient struct {
	mock.Mock
}

func (m *MockLMSClient) FetchToken(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockLMSClient) Call(ctx context.Context, token, function string, params map[string]string, out any) error {
	args := m.Called(ctx, token, function, params)
	if body, ok := args.Get(0).(string); ok && body != "" && out != nil {
		if err := json.Unmarshal([]byte(body), out); err != nil {
			return err
		}
	}
	return args.Error(1)
}

// --- MockLinkedAccountRepository ---
type MockLinkedAccountRepository struct {
	mock.Mock
}

func (m *MockLinkedAccountRepository) Upsert(ctx context.Context, account *domain.LinkedAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockLinkedAccountRepository) GetByMobileUserID(ctx context.Context, mobileUserID string) (*domain.LinkedAccount, error) {
	args := m.Called(ctx, mobileUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkedAccount), args.Error(1)
}

func (m *MockLinkedAccountRepository) Delete(ctx context.Context, mobileUserID string) error {
	args := m.Called(ctx, mobileUserID)
	return args.Error(0)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	args := m.Called(ctx, key, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// memoryLinkedAccountRepository is an in-memory token store with upsert semantics.
type memoryLinkedAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]domain.LinkedAccount
}

func newMemoryLinkedAccountRepository() *memoryLinkedAccountRepository {
	return &memoryLinkedAccountRepository{accounts: make(map[string]domain.LinkedAccount)}
}

func (r *memoryLinkedAccountRepository) Upsert(ctx context.Context, account *domain.LinkedAccount) error {
	if err := account.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	stored := *account
	if existing, ok := r.accounts[account.MobileUserID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.accounts[account.MobileUserID] = stored
	return nil
}

func (r *memoryLinkedAccountRepository) GetByMobileUserID(ctx context.Context, mobileUserID string) (*domain.LinkedAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[mobileUserID]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

func (r *memoryLinkedAccountRepository) Delete(ctx context.Context, mobileUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.accounts, mobileUserID)
	return nil
}

func (r *memoryLinkedAccountRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}

// linkedAccount is the fixture account used across service tests.
func linkedAccount() *domain.LinkedAccount {
	return &domain.LinkedAccount{
		MobileUserID: "u1",
		LMSToken:     "abc123",
		LMSUserID:    42,
		LMSUsername:  "student",
	}
}
