package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nurpe/fieldops-docs/internal/model"
)

type MockClientStore struct {
	mock.Mock
}

func (m *MockClientStore) CreateClient(ctx context.Context, client *model.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientStore) GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Client), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClientStore) ListClients(ctx context.Context) ([]model.Client, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Client), args.Error(1)
}

func (m *MockClientStore) CreateEquipment(ctx context.Context, equipment *model.Equipment) error {
	args := m.Called(ctx, equipment)
	return args.Error(0)
}

func (m *MockClientStore) GetEquipment(ctx context.Context, id uuid.UUID) (*model.Equipment, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Equipment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClientStore) ListEquipment(ctx context.Context, clientID uuid.UUID) ([]model.Equipment, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]model.Equipment), args.Error(1)
}

type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) CreateOrder(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderStore) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderStore) ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderStore) UpdateOrder(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderStore) CloseOrder(ctx context.Context, id uuid.UUID, result string, closedAt time.Time) error {
	args := m.Called(ctx, id, result, closedAt)
	return args.Error(0)
}

func (m *MockOrderStore) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockWorkSessionStore struct {
	mock.Mock
}

func (m *MockWorkSessionStore) CreateWorkSession(ctx context.Context, session *model.WorkSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockWorkSessionStore) ListWorkSessions(ctx context.Context, orderID uuid.UUID) ([]model.WorkSession, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]model.WorkSession), args.Error(1)
}

func (m *MockWorkSessionStore) DeleteWorkSession(ctx context.Context, orderID, id uuid.UUID) error {
	args := m.Called(ctx, orderID, id)
	return args.Error(0)
}

type MockBudgetStore struct {
	mock.Mock
}

func (m *MockBudgetStore) CreateBudget(ctx context.Context, budget *model.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetStore) GetBudget(ctx context.Context, id uuid.UUID) (*model.Budget, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Budget), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBudgetStore) ListBudgets(ctx context.Context, orderID *uuid.UUID) ([]model.Budget, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]model.Budget), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if v := args.Get(0); v != nil {
		return v.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockSink struct {
	mock.Mock
}

func (m *MockSink) Save(ctx context.Context, name string, content []byte) (string, error) {
	args := m.Called(ctx, name, content)
	return args.String(0), args.Error(1)
}

type staticLogo struct {
	data []byte
	err  error
}

func (l staticLogo) Logo() ([]byte, error) {
	return l.data, l.err
}
