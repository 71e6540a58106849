package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func newTestUserService() (*UserService, *MockUserRepository, *MockParticipantRepository, *MockFollowerRepository) {
	users, participants, followers := new(MockUserRepository), new(MockParticipantRepository), new(MockFollowerRepository)
	return NewUserService(users, participants, followers, zerolog.Nop()), users, participants, followers
}

func TestUserService_Search(t *testing.T) {
	t.Run("short query returns nothing", func(t *testing.T) {
		s, users, _, _ := newTestUserService()

		resp, err := s.Search(context.Background(), " ş ")
		require.NoError(t, err)
		assert.Empty(t, resp.Users)
		users.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("queries with the limit", func(t *testing.T) {
		s, users, _, _ := newTestUserService()
		users.On("Search", mock.Anything, "ay", SearchLimit).
			Return([]models.User{{ID: 1, FirstName: "Ayşe", LastName: "Yılmaz"}}, nil)

		resp, err := s.Search(context.Background(), "ay")
		require.NoError(t, err)
		assert.Len(t, resp.Users, 1)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	tests := []struct {
		name          string
		req           dto.UpdateProfileRequest
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "splits full name",
			req:  dto.UpdateProfileRequest{FullName: strPtr("Mehmet Ali Demir"), ProfilePhoto: strPtr(" https://img.example/a.png ")},
			setupMock: func(u *MockUserRepository) {
				u.On("UpdateProfile", mock.Anything, int64(10), mock.MatchedBy(func(p models.ProfileUpdate) bool {
					return *p.FirstName == "Mehmet" && *p.LastName == "Ali Demir" && *p.ProfileImage == "https://img.example/a.png"
				})).Return(&models.User{ID: 10, FirstName: "Mehmet", LastName: "Ali Demir", Email: "m@campus.edu.tr"}, nil)
			},
		},
		{
			name: "empty photo clears it",
			req:  dto.UpdateProfileRequest{ProfilePhoto: strPtr("")},
			setupMock: func(u *MockUserRepository) {
				u.On("UpdateProfile", mock.Anything, int64(10), mock.MatchedBy(func(p models.ProfileUpdate) bool {
					return p.ProfileImage != nil && *p.ProfileImage == ""
				})).Return(&models.User{ID: 10}, nil)
			},
		},
		{
			name:          "non http photo",
			req:           dto.UpdateProfileRequest{ProfilePhoto: strPtr("ftp://img.example/a.png")},
			setupMock:     func(*MockUserRepository) {},
			expectedError: ErrProfilePhotoURL,
		},
		{
			name:          "blank name",
			req:           dto.UpdateProfileRequest{FullName: strPtr("   ")},
			setupMock:     func(*MockUserRepository) {},
			expectedError: ErrEmptyFullName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, users, _, _ := newTestUserService()
			tt.setupMock(users)

			profile, err := s.UpdateProfile(context.Background(), 10, &tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(10), profile.ID)
			users.AssertExpectations(t)
		})
	}
}

func TestUserService_PublicProfile(t *testing.T) {
	t.Run("hides email", func(t *testing.T) {
		s, users, participants, followers := newTestUserService()
		users.On("GetByID", mock.Anything, int64(10)).Return(&models.User{ID: 10, Email: "ali@campus.edu.tr", FirstName: "Ali"}, nil)
		participants.On("History", mock.Anything, int64(10)).Return([]models.UserEventHistory{{EventID: 40, Title: "Turnuva"}}, nil)
		followers.On("ListFollowedClubs", mock.Anything, int64(10)).Return([]models.Club{*activeClub()}, nil)

		resp, err := s.PublicProfile(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, resp.Profile.Email)
		assert.Len(t, resp.Activities.ParticipatedEvents, 1)
		assert.Equal(t, "Satranç", resp.Activities.FollowedClubs[0].Name)
	})

	t.Run("banned user is hidden", func(t *testing.T) {
		s, users, _, _ := newTestUserService()
		banned := &models.User{ID: 11}
		banned.IsDeleted = true
		users.On("GetByID", mock.Anything, int64(11)).Return(banned, nil)

		_, err := s.PublicProfile(context.Background(), 11)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestUserService_Profile_IncludesEmail(t *testing.T) {
	s, users, participants, followers := newTestUserService()
	users.On("GetByID", mock.Anything, int64(10)).Return(&models.User{ID: 10, Email: "ali@campus.edu.tr"}, nil)
	participants.On("History", mock.Anything, int64(10)).Return(nil, nil)
	followers.On("ListFollowedClubs", mock.Anything, int64(10)).Return(nil, nil)

	resp, err := s.Profile(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "ali@campus.edu.tr", resp.Profile.Email)
	assert.NotNil(t, resp.Activities.FollowedClubs)
}

func TestUserService_History_NeverNil(t *testing.T) {
	s, _, participants, _ := newTestUserService()
	participants.On("History", mock.Anything, int64(10)).Return(nil, nil)

	resp, err := s.History(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, resp.History)
}
