// Package mocks provides hand-written testify mocks for the service layer's
// repository and transfer interfaces.
package mocks

import (
	"context"
	"math/big"

	"github.com/dossinstitute/eventquest/internal/model"
	"github.com/dossinstitute/eventquest/internal/quest"

	"github.com/stretchr/testify/mock"
)

type MockInstanceRepository struct {
	mock.Mock
}

func (m *MockInstanceRepository) CreateInstance(ctx context.Context, inst *quest.Instance) error {
	args := m.Called(ctx, inst)
	return args.Error(0)
}

func (m *MockInstanceRepository) GetInstance(ctx context.Context, questID int64) (*quest.Instance, error) {
	args := m.Called(ctx, questID)
	if inst := args.Get(0); inst != nil {
		return inst.(*quest.Instance), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInstanceRepository) SaveInstance(ctx context.Context, inst *quest.Instance) error {
	args := m.Called(ctx, inst)
	return args.Error(0)
}

func (m *MockInstanceRepository) SaveInteraction(ctx context.Context, inst *quest.Instance, out *quest.Outcome) error {
	args := m.Called(ctx, inst, out)
	return args.Error(0)
}

func (m *MockInstanceRepository) ListInteractions(ctx context.Context, questID int64) ([]*quest.Outcome, error) {
	args := m.Called(ctx, questID)
	if outs := args.Get(0); outs != nil {
		return outs.([]*quest.Outcome), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) SetRewardConfig(ctx context.Context, c *model.RewardConfig) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetRewardConfig(ctx context.Context, questID int64) (*model.RewardConfig, error) {
	args := m.Called(ctx, questID)
	if c := args.Get(0); c != nil {
		return c.(*model.RewardConfig), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepository) IsDistributed(ctx context.Context, questID int64, recipient string) (bool, error) {
	args := m.Called(ctx, questID, recipient)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) MarkDistributed(ctx context.Context, d *model.Distribution) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetDistribution(ctx context.Context, questID int64, recipient string) (*model.Distribution, error) {
	args := m.Called(ctx, questID, recipient)
	if d := args.Get(0); d != nil {
		return d.(*model.Distribution), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepository) GetUserByWallet(ctx context.Context, wallet string) (*model.User, error) {
	args := m.Called(ctx, wallet)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTransferor struct {
	mock.Mock
}

func (m *MockTransferor) Transfer(ctx context.Context, tokenAddress, recipient string, amount *big.Int) (string, error) {
	args := m.Called(ctx, tokenAddress, recipient, amount)
	return args.String(0), args.Error(1)
}

type MockRegistryRepository struct {
	mock.Mock
}

func (m *MockRegistryRepository) RegisterQuest(ctx context.Context, q *model.RegisteredQuest) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockRegistryRepository) GetRegisteredQuest(ctx context.Context, questID int64) (*model.RegisteredQuest, error) {
	args := m.Called(ctx, questID)
	if q := args.Get(0); q != nil {
		return q.(*model.RegisteredQuest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRegistryRepository) UpdateRegisteredQuest(ctx context.Context, q *model.RegisteredQuest) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockRegistryRepository) DeleteRegisteredQuest(ctx context.Context, questID int64) error {
	args := m.Called(ctx, questID)
	return args.Error(0)
}

func (m *MockRegistryRepository) ListRegisteredQuests(ctx context.Context) ([]*model.RegisteredQuest, error) {
	args := m.Called(ctx)
	if qs := args.Get(0); qs != nil {
		return qs.([]*model.RegisteredQuest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRegistryRepository) ListRegisteredQuestIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if ids := args.Get(0); ids != nil {
		return ids.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRegistryRepository) GetRegisteredQuestCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, u *model.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserByWallet(ctx context.Context, wallet string) (*model.User, error) {
	args := m.Called(ctx, wallet)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if us := args.Get(0); us != nil {
		return us.([]*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) GetUserByIndex(ctx context.Context, index int64) (*model.User, error) {
	args := m.Called(ctx, index)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) RegisterForQuest(ctx context.Context, userID, questID int64) error {
	args := m.Called(ctx, userID, questID)
	return args.Error(0)
}

func (m *MockUserRepository) GetRegisteredQuests(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if ids := args.Get(0); ids != nil {
		return ids.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockQuestRepository struct {
	mock.Mock
}

func (m *MockQuestRepository) CreateQuest(ctx context.Context, q *model.Quest) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestRepository) GetQuest(ctx context.Context, questID int64) (*model.Quest, error) {
	args := m.Called(ctx, questID)
	if q := args.Get(0); q != nil {
		return q.(*model.Quest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuestRepository) UpdateQuest(ctx context.Context, q *model.Quest) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuestRepository) DeleteQuest(ctx context.Context, questID int64) error {
	args := m.Called(ctx, questID)
	return args.Error(0)
}

func (m *MockQuestRepository) ListQuests(ctx context.Context) ([]*model.Quest, error) {
	args := m.Called(ctx)
	if qs := args.Get(0); qs != nil {
		return qs.([]*model.Quest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuestRepository) GetQuestCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestRepository) GetQuestByIndex(ctx context.Context, index int64) (*model.Quest, error) {
	args := m.Called(ctx, index)
	if q := args.Get(0); q != nil {
		return q.(*model.Quest), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) CreateEvent(ctx context.Context, ev *model.Event) (int64, error) {
	args := m.Called(ctx, ev)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) GetEvent(ctx context.Context, eventID int64) (*model.Event, error) {
	args := m.Called(ctx, eventID)
	if ev := args.Get(0); ev != nil {
		return ev.(*model.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventRepository) UpdateEvent(ctx context.Context, ev *model.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockEventRepository) DeleteEvent(ctx context.Context, eventID int64) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockEventRepository) ListEvents(ctx context.Context) ([]*model.Event, error) {
	args := m.Called(ctx)
	if evs := args.Get(0); evs != nil {
		return evs.([]*model.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventRepository) GetEventCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) GetEventByIndex(ctx context.Context, index int64) (*model.Event, error) {
	args := m.Called(ctx, index)
	if ev := args.Get(0); ev != nil {
		return ev.(*model.Event), args.Error(1)
	}
	return nil, args.Error(1)
}
