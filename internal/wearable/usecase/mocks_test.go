package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Snapshot(ctx context.Context) ([]*domain.Wearable, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*domain.Wearable)
	return items, args.Error(1)
}

func (m *MockCatalog) FindByID(ctx context.Context, id string) (*domain.Wearable, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*domain.Wearable)
	return w, args.Error(1)
}

type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) Create(ctx context.Context, p *domain.Purchase) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPurchaseRepository) CountByWearableID(ctx context.Context, wearableID string) (int64, error) {
	args := m.Called(ctx, wearableID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseRepository) FindByBuyer(ctx context.Context, buyer string) ([]*domain.Purchase, error) {
	args := m.Called(ctx, buyer)
	items, _ := args.Get(0).([]*domain.Purchase)
	return items, args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	return m.Called(ctx, subject, data).Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPurchaseReceipt(toEmail, wearableName string, p *domain.Purchase) error {
	return m.Called(toEmail, wearableName, p).Error(0)
}

type MockAssetStorage struct {
	mock.Mock
}

func (m *MockAssetStorage) PresignedURL(ctx context.Context, objectKey string) (string, error) {
	args := m.Called(ctx, objectKey)
	return args.String(0), args.Error(1)
}
