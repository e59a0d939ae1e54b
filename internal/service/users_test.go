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

func TestUserService_RegisterUser(t *testing.T) {
	t.Run("Not admin", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}
		service := NewUserService(mockRepo, &mocks.MockRegistryRepository{})
		_, err := service.RegisterUser(context.Background(), member, &model.User{Wallet: member.Wallet})

		assert.ErrorIs(t, err, ErrPermissionDenied)
		mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("Wallet already registered", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}
		mockRepo.On("CreateUser", mock.Anything, mock.Anything).
			Return(int64(0), repository.ErrConflict)

		service := NewUserService(mockRepo, &mocks.MockRegistryRepository{})
		_, err := service.RegisterUser(context.Background(), admin, &model.User{Wallet: "0xw"})

		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("New wallet", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}
		mockRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Wallet == "0xw"
		})).Return(int64(42), nil)

		service := NewUserService(mockRepo, &mocks.MockRegistryRepository{})
		id, err := service.RegisterUser(context.Background(), admin, &model.User{Wallet: "0xw"})

		assert.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})
}

func TestUserService_RegisterForQuest(t *testing.T) {
	t.Run("Not admin", func(t *testing.T) {
		mockRegistry := &mocks.MockRegistryRepository{}
		mockRepo := &mocks.MockUserRepository{}

		service := NewUserService(mockRepo, mockRegistry)
		err := service.RegisterForQuest(context.Background(), member, 7, 1)

		assert.ErrorIs(t, err, ErrPermissionDenied)
		mockRepo.AssertNotCalled(t, "RegisterForQuest", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Quest not registered", func(t *testing.T) {
		mockRegistry := &mocks.MockRegistryRepository{}
		mockRegistry.On("GetRegisteredQuest", mock.Anything, int64(99)).
			Return(nil, repository.ErrNotFound)

		mockRepo := &mocks.MockUserRepository{}
		service := NewUserService(mockRepo, mockRegistry)
		err := service.RegisterForQuest(context.Background(), admin, 7, 99)

		assert.ErrorIs(t, err, ErrQuestNotFound)
		mockRepo.AssertNotCalled(t, "RegisterForQuest", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Duplicate registration is allowed", func(t *testing.T) {
		mockRegistry := &mocks.MockRegistryRepository{}
		mockRegistry.On("GetRegisteredQuest", mock.Anything, int64(1)).
			Return(&model.RegisteredQuest{QuestID: 1}, nil)

		mockRepo := &mocks.MockUserRepository{}
		mockRepo.On("RegisterForQuest", mock.Anything, int64(7), int64(1)).
			Return(nil).Twice()

		service := NewUserService(mockRepo, mockRegistry)
		assert.NoError(t, service.RegisterForQuest(context.Background(), admin, 7, 1))
		assert.NoError(t, service.RegisterForQuest(context.Background(), admin, 7, 1))
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_GetUserByIndex(t *testing.T) {
	tests := []struct {
		name          string
		index         int64
		count         int64
		expectedError error
	}{
		{name: "Negative index", index: -1, count: 3, expectedError: ErrIndexOutOfBounds},
		{name: "Index equals count", index: 3, count: 3, expectedError: ErrIndexOutOfBounds},
		{name: "Empty registry", index: 0, count: 0, expectedError: ErrIndexOutOfBounds},
		{name: "Last valid index", index: 2, count: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockUserRepository{}
			mockRepo.On("GetUserCount", mock.Anything).Return(tt.count, nil)
			if tt.expectedError == nil {
				mockRepo.On("GetUserByIndex", mock.Anything, tt.index).
					Return(&model.User{UserID: tt.index + 1}, nil)
			}

			service := NewUserService(mockRepo, &mocks.MockRegistryRepository{})
			user, err := service.GetUserByIndex(context.Background(), tt.index)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
			}
		})
	}
}

// A deleted user reads back as not found so the API reports the entity as
// missing rather than erroring.
func TestUserService_DeleteThenGet(t *testing.T) {
	mockRepo := &mocks.MockUserRepository{}
	mockRepo.On("DeleteUser", mock.Anything, int64(7)).Return(nil)
	mockRepo.On("GetUser", mock.Anything, int64(7)).
		Return(nil, repository.ErrNotFound)

	service := NewUserService(mockRepo, &mocks.MockRegistryRepository{})

	assert.NoError(t, service.DeleteUser(context.Background(), admin, 7))

	user, err := service.GetUser(context.Background(), 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, user)
	mockRepo.AssertExpectations(t)
}

func TestUserService_DeleteUser_RequiresAdmin(t *testing.T) {
	mockRepo := &mocks.MockUserRepository{}
	service := NewUserService(mockRepo, &mocks.MockRegistryRepository{})

	err := service.DeleteUser(context.Background(), member, 7)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	mockRepo.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
}
