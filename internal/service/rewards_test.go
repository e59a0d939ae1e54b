package service

import (
	"context"
	"math/big"
	"testing"

	"github.com/dossinstitute/eventquest/internal/model"
	"github.com/dossinstitute/eventquest/internal/repository"
	"github.com/dossinstitute/eventquest/internal/service/mocks"
	"github.com/dossinstitute/eventquest/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	admin  = auth.Principal{Wallet: "0xadmin", Role: "admin"}
	member = auth.Principal{Wallet: "0xmember", Role: "user"}
)

func testConfig() *model.RewardConfig {
	return &model.RewardConfig{
		QuestID:      1,
		RewardType:   "erc20",
		TokenAddress: "0xtoken",
		Amount:       big.NewInt(500),
	}
}

func TestRewardService_DistributeReward(t *testing.T) {
	const recipient = "0xrecipient"

	tests := []struct {
		name          string
		principal     auth.Principal
		setupMocks    func(repo *mocks.MockLedgerRepository, transfer *mocks.MockTransferor)
		expectedTxRef string
		expectedError error
	}{
		{
			name:       "Not admin",
			principal:  member,
			setupMocks: func(repo *mocks.MockLedgerRepository, transfer *mocks.MockTransferor) {},
			expectedError: ErrPermissionDenied,
		},
		{
			name:      "No reward configured",
			principal: admin,
			setupMocks: func(repo *mocks.MockLedgerRepository, transfer *mocks.MockTransferor) {
				repo.On("GetRewardConfig", mock.Anything, int64(1)).
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrRewardNotConfigured,
		},
		{
			name:      "Recipient wallet unknown",
			principal: admin,
			setupMocks: func(repo *mocks.MockLedgerRepository, transfer *mocks.MockTransferor) {
				repo.On("GetRewardConfig", mock.Anything, int64(1)).
					Return(testConfig(), nil)
				repo.On("GetUserByWallet", mock.Anything, recipient).
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrUserNotRegistered,
		},
		{
			name:      "Already distributed",
			principal: admin,
			setupMocks: func(repo *mocks.MockLedgerRepository, transfer *mocks.MockTransferor) {
				repo.On("GetRewardConfig", mock.Anything, int64(1)).
					Return(testConfig(), nil)
				repo.On("GetUserByWallet", mock.Anything, recipient).
					Return(&model.User{UserID: 7, Wallet: recipient}, nil)
				repo.On("IsDistributed", mock.Anything, int64(1), recipient).
					Return(true, nil)
			},
			expectedError: ErrRewardDistributed,
		},
		{
			name:      "Transfer fails, ledger untouched",
			principal: admin,
			setupMocks: func(repo *mocks.MockLedgerRepository, transfer *mocks.MockTransferor) {
				repo.On("GetRewardConfig", mock.Anything, int64(1)).
					Return(testConfig(), nil)
				repo.On("GetUserByWallet", mock.Anything, recipient).
					Return(&model.User{UserID: 7, Wallet: recipient}, nil)
				repo.On("IsDistributed", mock.Anything, int64(1), recipient).
					Return(false, nil)
				transfer.On("Transfer", mock.Anything, "0xtoken", recipient, big.NewInt(500)).
					Return("", assert.AnError)
			},
			expectedError: assert.AnError,
		},
		{
			name:      "Concurrent distribution loses race",
			principal: admin,
			setupMocks: func(repo *mocks.MockLedgerRepository, transfer *mocks.MockTransferor) {
				repo.On("GetRewardConfig", mock.Anything, int64(1)).
					Return(testConfig(), nil)
				repo.On("GetUserByWallet", mock.Anything, recipient).
					Return(&model.User{UserID: 7, Wallet: recipient}, nil)
				repo.On("IsDistributed", mock.Anything, int64(1), recipient).
					Return(false, nil)
				transfer.On("Transfer", mock.Anything, "0xtoken", recipient, big.NewInt(500)).
					Return("0xtx", nil)
				repo.On("MarkDistributed", mock.Anything, mock.Anything).
					Return(repository.ErrAlreadyDistributed)
			},
			expectedError: ErrRewardDistributed,
		},
		{
			name:      "Successful distribution",
			principal: admin,
			setupMocks: func(repo *mocks.MockLedgerRepository, transfer *mocks.MockTransferor) {
				repo.On("GetRewardConfig", mock.Anything, int64(1)).
					Return(testConfig(), nil)
				repo.On("GetUserByWallet", mock.Anything, recipient).
					Return(&model.User{UserID: 7, Wallet: recipient}, nil)
				repo.On("IsDistributed", mock.Anything, int64(1), recipient).
					Return(false, nil)
				transfer.On("Transfer", mock.Anything, "0xtoken", recipient, big.NewInt(500)).
					Return("0xtx", nil)
				repo.On("MarkDistributed", mock.Anything, mock.MatchedBy(func(d *model.Distribution) bool {
					return d.QuestID == 1 && d.Recipient == recipient && d.TxRef == "0xtx"
				})).Return(nil)
			},
			expectedTxRef: "0xtx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockLedgerRepository{}
			mockTransfer := &mocks.MockTransferor{}
			tt.setupMocks(mockRepo, mockTransfer)

			service := NewRewardService(mockRepo, mockTransfer)
			txRef, err := service.DistributeReward(context.Background(), tt.principal, 1, recipient)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, txRef)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedTxRef, txRef)
			}

			mockRepo.AssertExpectations(t)
			mockTransfer.AssertExpectations(t)
		})
	}
}

func TestRewardService_DistributeReward_NoTransferWhenBlocked(t *testing.T) {
	mockRepo := &mocks.MockLedgerRepository{}
	mockTransfer := &mocks.MockTransferor{}

	mockRepo.On("GetRewardConfig", mock.Anything, int64(1)).
		Return(testConfig(), nil)
	mockRepo.On("GetUserByWallet", mock.Anything, "0xrecipient").
		Return(&model.User{UserID: 7, Wallet: "0xrecipient"}, nil)
	mockRepo.On("IsDistributed", mock.Anything, int64(1), "0xrecipient").
		Return(true, nil)

	service := NewRewardService(mockRepo, mockTransfer)
	_, err := service.DistributeReward(context.Background(), admin, 1, "0xrecipient")

	assert.ErrorIs(t, err, ErrRewardDistributed)
	mockTransfer.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// A wallet with a user record is paid even when it never enrolled in the
// quest; enrollment is not a distribution precondition.
func TestRewardService_DistributeReward_UserRecordSuffices(t *testing.T) {
	mockRepo := &mocks.MockLedgerRepository{}
	mockTransfer := &mocks.MockTransferor{}

	mockRepo.On("GetRewardConfig", mock.Anything, int64(1)).
		Return(testConfig(), nil)
	mockRepo.On("GetUserByWallet", mock.Anything, "0xrecipient").
		Return(&model.User{UserID: 7, Wallet: "0xrecipient"}, nil)
	mockRepo.On("IsDistributed", mock.Anything, int64(1), "0xrecipient").
		Return(false, nil)
	mockTransfer.On("Transfer", mock.Anything, "0xtoken", "0xrecipient", big.NewInt(500)).
		Return("0xtx", nil)
	mockRepo.On("MarkDistributed", mock.Anything, mock.Anything).Return(nil)

	service := NewRewardService(mockRepo, mockTransfer)
	txRef, err := service.DistributeReward(context.Background(), admin, 1, "0xrecipient")

	assert.NoError(t, err)
	assert.Equal(t, "0xtx", txRef)
	mockTransfer.AssertNumberOfCalls(t, "Transfer", 1)
}

func TestRewardService_SetReward(t *testing.T) {
	mockRepo := &mocks.MockLedgerRepository{}
	service := NewRewardService(mockRepo, &mocks.MockTransferor{})

	err := service.SetReward(context.Background(), member, testConfig())
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = service.SetReward(context.Background(), admin, &model.RewardConfig{
		QuestID: 1, TokenAddress: "0xtoken", Amount: big.NewInt(1),
	})
	assert.ErrorIs(t, err, ErrRewardTypeRequired)

	mockRepo.On("SetRewardConfig", mock.Anything, mock.Anything).Return(nil)
	err = service.SetReward(context.Background(), admin, testConfig())
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestRewardService_IsRewardDistributed(t *testing.T) {
	mockRepo := &mocks.MockLedgerRepository{}
	mockRepo.On("IsDistributed", mock.Anything, int64(1), "0xrecipient").
		Return(true, nil)

	service := NewRewardService(mockRepo, &mocks.MockTransferor{})
	distributed, err := service.IsRewardDistributed(context.Background(), 1, "0xrecipient")

	assert.NoError(t, err)
	assert.True(t, distributed)
}
