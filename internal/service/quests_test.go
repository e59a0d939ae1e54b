package service

import (
	"context"
	"testing"

	"github.com/dossinstitute/eventquest/internal/model"
	"github.com/dossinstitute/eventquest/internal/repository"
	"github.com/dossinstitute/eventquest/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestQuestService_CreateQuest(t *testing.T) {
	tests := []struct {
		name          string
		quest         *model.Quest
		setupMocks    func(repo *mocks.MockQuestRepository)
		expectedError error
	}{
		{
			name:          "Interactions below minimum",
			quest:         &model.Quest{Name: "q", DefaultInteractions: 2},
			setupMocks:    func(repo *mocks.MockQuestRepository) {},
			expectedError: ErrInvalidInteractions,
		},
		{
			name:          "Zero interactions",
			quest:         &model.Quest{Name: "q"},
			setupMocks:    func(repo *mocks.MockQuestRepository) {},
			expectedError: ErrInvalidInteractions,
		},
		{
			name:  "Minimum interactions accepted",
			quest: &model.Quest{Name: "q", DefaultInteractions: 3},
			setupMocks: func(repo *mocks.MockQuestRepository) {
				repo.On("CreateQuest", mock.Anything, mock.Anything).
					Return(int64(1), nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockQuestRepository{}
			tt.setupMocks(mockRepo)

			service := NewQuestService(mockRepo)
			_, err := service.CreateQuest(context.Background(), admin, tt.quest)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestQuestService_CreateQuest_NotAdmin(t *testing.T) {
	mockRepo := &mocks.MockQuestRepository{}
	service := NewQuestService(mockRepo)

	_, err := service.CreateQuest(context.Background(), member, &model.Quest{DefaultInteractions: 5})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	mockRepo.AssertNotCalled(t, "CreateQuest", mock.Anything, mock.Anything)
}

func TestQuestService_GetQuestByIndex(t *testing.T) {
	mockRepo := &mocks.MockQuestRepository{}
	mockRepo.On("GetQuestCount", mock.Anything).Return(int64(2), nil)

	service := NewQuestService(mockRepo)
	_, err := service.GetQuestByIndex(context.Background(), 5)

	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
}

func TestRegistryService_RegisterQuest(t *testing.T) {
	t.Run("Caller-assigned id collision", func(t *testing.T) {
		mockRepo := &mocks.MockRegistryRepository{}
		mockRepo.On("RegisterQuest", mock.Anything, mock.Anything).
			Return(repository.ErrConflict)

		service := NewRegistryService(mockRepo)
		err := service.RegisterQuest(context.Background(), admin, &model.RegisteredQuest{QuestID: 1})

		assert.ErrorIs(t, err, ErrQuestExists)
	})

	t.Run("Unknown quest lookups map to quest errors", func(t *testing.T) {
		mockRepo := &mocks.MockRegistryRepository{}
		mockRepo.On("GetRegisteredQuest", mock.Anything, int64(404)).
			Return(nil, repository.ErrNotFound)

		service := NewRegistryService(mockRepo)
		_, err := service.GetRegisteredQuest(context.Background(), 404)

		assert.ErrorIs(t, err, ErrQuestNotFound)
	})

	t.Run("Not admin", func(t *testing.T) {
		mockRepo := &mocks.MockRegistryRepository{}
		service := NewRegistryService(mockRepo)

		err := service.RegisterQuest(context.Background(), member, &model.RegisteredQuest{QuestID: 1})
		assert.ErrorIs(t, err, ErrPermissionDenied)
		mockRepo.AssertNotCalled(t, "RegisterQuest", mock.Anything, mock.Anything)
	})
}
