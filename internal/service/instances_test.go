package service

import (
	"context"
	"testing"
	"time"

	"github.com/dossinstitute/eventquest/internal/quest"
	"github.com/dossinstitute/eventquest/internal/repository"
	"github.com/dossinstitute/eventquest/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	completed []int64
}

func (n *recordingNotifier) QuestCompleted(questID int64, actor string) {
	n.completed = append(n.completed, questID)
}

func locationInstance(questID int64, locations []string) *quest.Instance {
	return &quest.Instance{
		State: quest.State{
			QuestID:   questID,
			Kind:      quest.KindLocation,
			Active:    true,
			ExpiresAt: time.Now().Add(time.Hour),
		},
		Rules: quest.NewLocationRules(locations),
	}
}

func visitPayload(t *testing.T, location string) []byte {
	t.Helper()
	return []byte(`{"location":"` + location + `"}`)
}

func TestInstanceService_InitializeQuest(t *testing.T) {
	tests := []struct {
		name          string
		params        InitializeParams
		setupMocks    func(repo *mocks.MockInstanceRepository)
		expectedError error
	}{
		{
			name: "Quest id already in use",
			params: InitializeParams{
				QuestID:   1,
				Kind:      quest.KindLocation,
				Locations: []string{"a"},
				ExpiresAt: time.Now().Add(time.Hour),
			},
			setupMocks: func(repo *mocks.MockInstanceRepository) {
				repo.On("CreateInstance", mock.Anything, mock.Anything).
					Return(repository.ErrConflict)
			},
			expectedError: ErrQuestExists,
		},
		{
			name: "Location quest initialized active",
			params: InitializeParams{
				QuestID:   2,
				Kind:      quest.KindLocation,
				Locations: []string{"a", "b"},
				ExpiresAt: time.Now().Add(time.Hour),
			},
			setupMocks: func(repo *mocks.MockInstanceRepository) {
				repo.On("CreateInstance", mock.Anything, mock.MatchedBy(func(inst *quest.Instance) bool {
					return inst.State.QuestID == 2 &&
						inst.State.Active &&
						!inst.State.Completed &&
						inst.State.Initiator == admin.Wallet
				})).Return(nil)
			},
		},
		{
			name: "Knowledge quest initialized",
			params: InitializeParams{
				QuestID:   3,
				Kind:      quest.KindProofOfKnowledge,
				Questions: []string{"q1"},
				Answers:   []string{"a1"},
				ExpiresAt: time.Now().Add(time.Hour),
			},
			setupMocks: func(repo *mocks.MockInstanceRepository) {
				repo.On("CreateInstance", mock.Anything, mock.MatchedBy(func(inst *quest.Instance) bool {
					return inst.State.Kind == quest.KindProofOfKnowledge
				})).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockInstanceRepository{}
			tt.setupMocks(mockRepo)

			service := NewInstanceService(mockRepo, nil)
			err := service.InitializeQuest(context.Background(), admin, tt.params)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestInstanceService_InitializeQuest_NotAdmin(t *testing.T) {
	mockRepo := &mocks.MockInstanceRepository{}
	service := NewInstanceService(mockRepo, nil)

	err := service.InitializeQuest(context.Background(), member, InitializeParams{
		QuestID: 1, Kind: quest.KindLocation,
	})

	assert.ErrorIs(t, err, ErrPermissionDenied)
	mockRepo.AssertNotCalled(t, "CreateInstance", mock.Anything, mock.Anything)
}

func TestInstanceService_Interact(t *testing.T) {
	t.Run("Quest not found", func(t *testing.T) {
		mockRepo := &mocks.MockInstanceRepository{}
		mockRepo.On("GetInstance", mock.Anything, int64(404)).
			Return(nil, repository.ErrNotFound)

		service := NewInstanceService(mockRepo, nil)
		_, err := service.Interact(context.Background(), "0xactor", 404, quest.ActionVisit, visitPayload(t, "a"))

		assert.ErrorIs(t, err, ErrQuestNotFound)
	})

	t.Run("Rejected interaction is not persisted", func(t *testing.T) {
		inst := locationInstance(1, []string{"a"})
		mockRepo := &mocks.MockInstanceRepository{}
		mockRepo.On("GetInstance", mock.Anything, int64(1)).Return(inst, nil)

		service := NewInstanceService(mockRepo, nil)
		_, err := service.Interact(context.Background(), "0xactor", 1, quest.ActionVisit, visitPayload(t, "elsewhere"))

		assert.ErrorIs(t, err, quest.ErrInvalidTarget)
		mockRepo.AssertNotCalled(t, "SaveInteraction", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Accepted interaction persists state and audit together", func(t *testing.T) {
		inst := locationInstance(1, []string{"a", "b"})
		mockRepo := &mocks.MockInstanceRepository{}
		mockRepo.On("GetInstance", mock.Anything, int64(1)).Return(inst, nil)
		mockRepo.On("SaveInteraction", mock.Anything, inst, mock.MatchedBy(func(out *quest.Outcome) bool {
			return out.Location == "a" && !out.CompletedQuest
		})).Return(nil)

		service := NewInstanceService(mockRepo, nil)
		out, err := service.Interact(context.Background(), "0xactor", 1, quest.ActionVisit, visitPayload(t, "a"))

		require.NoError(t, err)
		assert.False(t, out.CompletedQuest)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Completing interaction notifies", func(t *testing.T) {
		inst := locationInstance(1, []string{"a"})
		mockRepo := &mocks.MockInstanceRepository{}
		mockRepo.On("GetInstance", mock.Anything, int64(1)).Return(inst, nil)
		mockRepo.On("SaveInteraction", mock.Anything, inst, mock.Anything).Return(nil)

		notifier := &recordingNotifier{}
		service := NewInstanceService(mockRepo, notifier)
		out, err := service.Interact(context.Background(), "0xactor", 1, quest.ActionVisit, visitPayload(t, "a"))

		require.NoError(t, err)
		assert.True(t, out.CompletedQuest)
		assert.Equal(t, []int64{1}, notifier.completed)
		assert.True(t, inst.State.Completed)
		assert.False(t, inst.State.Active)
	})

	t.Run("Failed save surfaces error", func(t *testing.T) {
		inst := locationInstance(1, []string{"a"})
		mockRepo := &mocks.MockInstanceRepository{}
		mockRepo.On("GetInstance", mock.Anything, int64(1)).Return(inst, nil)
		mockRepo.On("SaveInteraction", mock.Anything, inst, mock.Anything).Return(assert.AnError)

		notifier := &recordingNotifier{}
		service := NewInstanceService(mockRepo, notifier)
		_, err := service.Interact(context.Background(), "0xactor", 1, quest.ActionVisit, visitPayload(t, "a"))

		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, notifier.completed)
	})
}

func TestInstanceService_MarkAsCompleted(t *testing.T) {
	t.Run("Neither admin nor initiator", func(t *testing.T) {
		inst := locationInstance(1, []string{"a"})
		inst.State.Initiator = "0xsomeoneelse"

		mockRepo := &mocks.MockInstanceRepository{}
		mockRepo.On("GetInstance", mock.Anything, int64(1)).Return(inst, nil)

		service := NewInstanceService(mockRepo, nil)
		err := service.MarkAsCompleted(context.Background(), member, 1)
		assert.ErrorIs(t, err, ErrPermissionDenied)
		mockRepo.AssertNotCalled(t, "SaveInstance", mock.Anything, mock.Anything)
	})

	t.Run("Initiator may force-complete", func(t *testing.T) {
		inst := locationInstance(1, []string{"a"})
		inst.State.Initiator = member.Wallet

		mockRepo := &mocks.MockInstanceRepository{}
		mockRepo.On("GetInstance", mock.Anything, int64(1)).Return(inst, nil)
		mockRepo.On("SaveInstance", mock.Anything, inst).Return(nil)

		service := NewInstanceService(mockRepo, nil)
		err := service.MarkAsCompleted(context.Background(), member, 1)
		require.NoError(t, err)
		assert.True(t, inst.State.Completed)
	})

	t.Run("Quest not found", func(t *testing.T) {
		mockRepo := &mocks.MockInstanceRepository{}
		mockRepo.On("GetInstance", mock.Anything, int64(404)).
			Return(nil, repository.ErrNotFound)

		service := NewInstanceService(mockRepo, nil)
		err := service.MarkAsCompleted(context.Background(), admin, 404)
		assert.ErrorIs(t, err, ErrQuestNotFound)
	})

	t.Run("Already completed", func(t *testing.T) {
		inst := locationInstance(1, []string{"a"})
		inst.State.Active = false
		inst.State.Completed = true

		mockRepo := &mocks.MockInstanceRepository{}
		mockRepo.On("GetInstance", mock.Anything, int64(1)).Return(inst, nil)

		service := NewInstanceService(mockRepo, nil)
		err := service.MarkAsCompleted(context.Background(), admin, 1)
		assert.ErrorIs(t, err, quest.ErrNotActive)
	})

	t.Run("Force completion persists and notifies", func(t *testing.T) {
		inst := locationInstance(1, []string{"a", "b"})
		mockRepo := &mocks.MockInstanceRepository{}
		mockRepo.On("GetInstance", mock.Anything, int64(1)).Return(inst, nil)
		mockRepo.On("SaveInstance", mock.Anything, inst).Return(nil)

		notifier := &recordingNotifier{}
		service := NewInstanceService(mockRepo, notifier)
		err := service.MarkAsCompleted(context.Background(), admin, 1)

		require.NoError(t, err)
		assert.True(t, inst.State.Completed)
		assert.Equal(t, []int64{1}, notifier.completed)
	})
}
