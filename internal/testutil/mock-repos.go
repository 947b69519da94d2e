// Package testutil provides testify mocks of the output ports.
package testutil

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
)

// MockDocumentRepo is a mock of DocumentRepository.
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepo) GetByID(ctx context.Context, userID string, id uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) List(ctx context.Context, userID string, filter ports.DocumentFilter) ([]*domain.Document, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) Update(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus, errorMessage *string) error {
	args := m.Called(ctx, id, status, errorMessage)
	return args.Error(0)
}

func (m *MockDocumentRepo) SetTaskID(ctx context.Context, id uuid.UUID, taskID string) error {
	args := m.Called(ctx, id, taskID)
	return args.Error(0)
}

func (m *MockDocumentRepo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockLLMProviderRepo is a mock of LLMProviderRepository.
type MockLLMProviderRepo struct {
	mock.Mock
}

func (m *MockLLMProviderRepo) Create(ctx context.Context, provider *domain.LLMProvider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *MockLLMProviderRepo) GetByID(ctx context.Context, userID string, id uuid.UUID) (*domain.LLMProvider, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LLMProvider), args.Error(1)
}

func (m *MockLLMProviderRepo) ListByUser(ctx context.Context, userID string) ([]*domain.LLMProvider, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LLMProvider), args.Error(1)
}

func (m *MockLLMProviderRepo) Update(ctx context.Context, provider *domain.LLMProvider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *MockLLMProviderRepo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockLLMProviderRepo) SetActive(ctx context.Context, userID string, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockLLMProviderRepo) GetPreferredForUser(ctx context.Context, userID string) (*domain.LLMProvider, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LLMProvider), args.Error(1)
}

// MockProviderEventRepo is a mock of ProviderEventRepository.
type MockProviderEventRepo struct {
	mock.Mock
}

func (m *MockProviderEventRepo) Insert(ctx context.Context, event *domain.ProviderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockProviderEventRepo) ListByProvider(ctx context.Context, userID string, providerID uuid.UUID) ([]*domain.ProviderEvent, error) {
	args := m.Called(ctx, userID, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ProviderEvent), args.Error(1)
}

// MockUserRepo is a mock of UserRepository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) UpsertByGoogleSub(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByGoogleSub(ctx context.Context, googleSub string) (*domain.User, error) {
	args := m.Called(ctx, googleSub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockObjectStore is a mock of ObjectStore.
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	args := m.Called(ctx, key, contentType, body, size)
	return args.Error(0)
}

func (m *MockObjectStore) Download(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

// MockTaskQueue is a mock of TaskQueue.
type MockTaskQueue struct {
	mock.Mock
}

func (m *MockTaskQueue) EnqueueDocumentParse(ctx context.Context, documentID uuid.UUID, userID string) (string, error) {
	args := m.Called(ctx, documentID, userID)
	return args.String(0), args.Error(1)
}

// MockGraphStore is a mock of GraphStore.
type MockGraphStore struct {
	mock.Mock
}

func (m *MockGraphStore) FetchSubgraph(ctx context.Context, q *domain.GraphQuery) (*ports.RawGraph, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.RawGraph), args.Error(1)
}

func (m *MockGraphStore) UpsertDocumentNode(ctx context.Context, graph string, node ports.DocumentNode) (string, error) {
	args := m.Called(ctx, graph, node)
	return args.String(0), args.Error(1)
}

func (m *MockGraphStore) MergeExtraction(ctx context.Context, graph, documentID string, entities []ports.ExtractedEntity, relations []ports.ExtractedRelation) error {
	args := m.Called(ctx, graph, documentID, entities, relations)
	return args.Error(0)
}

func (m *MockGraphStore) DeleteDocumentNode(ctx context.Context, graph, documentID string) error {
	args := m.Called(ctx, graph, documentID)
	return args.Error(0)
}

// MockCacheStore is a mock of CacheStore.
type MockCacheStore struct {
	mock.Mock
}

func (m *MockCacheStore) Get(ctx context.Context, key string) ([]byte, bool) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]byte), args.Bool(1)
}

func (m *MockCacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *MockCacheStore) Delete(ctx context.Context, key string) {
	m.Called(ctx, key)
}

// MockIdempotencyStore is a mock of IdempotencyStore.
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) GetResponse(ctx context.Context, userID, fingerprint string) ([]byte, bool) {
	args := m.Called(ctx, userID, fingerprint)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]byte), args.Bool(1)
}

func (m *MockIdempotencyStore) StoreResponse(ctx context.Context, userID, fingerprint string, response []byte, ttl time.Duration) {
	m.Called(ctx, userID, fingerprint, response, ttl)
}

func (m *MockIdempotencyStore) DropResponse(ctx context.Context, userID, fingerprint string) {
	m.Called(ctx, userID, fingerprint)
}

func (m *MockIdempotencyStore) AcquireLock(ctx context.Context, userID, fingerprint string, ttl time.Duration) bool {
	args := m.Called(ctx, userID, fingerprint, ttl)
	return args.Bool(0)
}

func (m *MockIdempotencyStore) ReleaseLock(ctx context.Context, userID, fingerprint string) {
	m.Called(ctx, userID, fingerprint)
}

// MockLLMClient is a mock of LLMClient.
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Ping(ctx context.Context, spec domain.ProviderSpec) (int, error) {
	args := m.Called(ctx, spec)
	return args.Int(0), args.Error(1)
}

func (m *MockLLMClient) Complete(ctx context.Context, spec domain.ProviderSpec, req ports.CompletionRequest) (string, error) {
	args := m.Called(ctx, spec, req)
	return args.String(0), args.Error(1)
}

// MockKeyCipher is a mock of KeyCipher.
type MockKeyCipher struct {
	mock.Mock
}

func (m *MockKeyCipher) Encrypt(plaintext string) ([]byte, error) {
	args := m.Called(plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKeyCipher) Decrypt(blob []byte) (string, error) {
	args := m.Called(blob)
	return args.String(0), args.Error(1)
}
