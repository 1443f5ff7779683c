package service

import (
	"Fridgella/internal/model"
	"Fridgella/internal/repo"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, id string, updates map[string]any) (*model.User, error) {
	args := m.Called(ctx, id, updates)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.ItemRepository
type mockItemRepo struct{ mock.Mock }

func (m *mockItemRepo) Create(ctx context.Context, it *model.Item) error {
	return m.Called(ctx, it).Error(0)
}

func (m *mockItemRepo) CreateBatch(ctx context.Context, items []*model.Item) error {
	return m.Called(ctx, items).Error(0)
}

func (m *mockItemRepo) GetByID(ctx context.Context, userID, id string) (*model.Item, error) {
	args := m.Called(ctx, userID, id)
	if v, ok := args.Get(0).(*model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) List(ctx context.Context, userID string, f repo.ItemFilter) ([]model.Item, error) {
	args := m.Called(ctx, userID, f)
	if v, ok := args.Get(0).([]model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) Update(ctx context.Context, userID, id string, updates map[string]any) (*model.Item, error) {
	args := m.Called(ctx, userID, id, updates)
	if v, ok := args.Get(0).(*model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockItemRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]model.Item, error) {
	args := m.Called(ctx, now, limit)
	if v, ok := args.Get(0).([]model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.ItemRepository = (*mockItemRepo)(nil)

type mockBillRepo struct{ mock.Mock }

func (m *mockBillRepo) Create(ctx context.Context, b *model.Bill) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBillRepo) List(ctx context.Context, userID string) ([]model.Bill, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Bill); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBillRepo) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

var _ repo.BillRepository = (*mockBillRepo)(nil)

// fakeScheduler запоминает запланированные записи и ставит notify_at = expiry - 24h
type fakeScheduler struct {
	calls []string
}

func (f *fakeScheduler) ScheduleExpiryCheck(it *model.Item) {
	f.calls = append(f.calls, it.Name)
	if it.ExpiryDate != nil && !it.Notified {
		at := it.ExpiryDate.Add(-24 * time.Hour)
		it.NotifyAt = &at
		return
	}
	it.NotifyAt = nil
}

type fakeMailer struct {
	to, subject, body string
	err               error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	f.to, f.subject, f.body = to, subject, body
	return f.err
}

type fakeAvatarStore struct {
	url string
	err error
}

func (f *fakeAvatarStore) Save(_ context.Context, _, _ string, _ []byte) (string, error) {
	return f.url, f.err
}
