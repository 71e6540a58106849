package controllers

import (
	"context"

	"github.com/stretchr/testify/mock"
	authz "github.com/yigit/campusclubs/internal/app/auth"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/pkg/weather"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *mockAuthService) Me(ctx context.Context, userID int64) (*dto.MeResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MeResponse), args.Error(1)
}

func (m *mockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, token, password string) error {
	return m.Called(ctx, token, password).Error(0)
}

type mockClubService struct {
	mock.Mock
}

func (m *mockClubService) List(ctx context.Context, actor authz.Actor, page, limit int) (*dto.ClubListResponse, error) {
	args := m.Called(ctx, actor, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ClubListResponse), args.Error(1)
}

func (m *mockClubService) MyClubs(ctx context.Context, actor authz.Actor) (*dto.ClubListResponse, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ClubListResponse), args.Error(1)
}

func (m *mockClubService) Pending(ctx context.Context) (*dto.PendingClubsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PendingClubsResponse), args.Error(1)
}

func (m *mockClubService) Get(ctx context.Context, actor authz.Actor, id int64) (*dto.ClubDetail, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ClubDetail), args.Error(1)
}

func (m *mockClubService) Posts(ctx context.Context, clubID int64, page, limit int) (*dto.ClubPostsResponse, error) {
	args := m.Called(ctx, clubID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ClubPostsResponse), args.Error(1)
}

func (m *mockClubService) Create(ctx context.Context, actor authz.Actor, req *dto.CreateClubRequest) (*dto.ClubCreatedResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ClubCreatedResponse), args.Error(1)
}

func (m *mockClubService) Update(ctx context.Context, actor authz.Actor, id int64, req *dto.UpdateClubRequest) (*dto.ClubDetail, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ClubDetail), args.Error(1)
}

func (m *mockClubService) AdminUpdate(ctx context.Context, actor authz.Actor, id int64, req *dto.AdminUpdateClubRequest) (*dto.ClubDetail, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ClubDetail), args.Error(1)
}

func (m *mockClubService) Approve(ctx context.Context, actor authz.Actor, id int64) (string, error) {
	args := m.Called(ctx, actor, id)
	return args.String(0), args.Error(1)
}

func (m *mockClubService) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockClubService) Members(ctx context.Context, clubID int64) (*dto.ClubMembersResponse, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ClubMembersResponse), args.Error(1)
}

func (m *mockClubService) Follow(ctx context.Context, actor authz.Actor, clubID int64) (string, error) {
	args := m.Called(ctx, actor, clubID)
	return args.String(0), args.Error(1)
}

func (m *mockClubService) Leave(ctx context.Context, actor authz.Actor, clubID int64) error {
	return m.Called(ctx, actor, clubID).Error(0)
}

func (m *mockClubService) RemoveMember(ctx context.Context, actor authz.Actor, clubID, userID int64) error {
	return m.Called(ctx, actor, clubID, userID).Error(0)
}

type mockEventService struct {
	mock.Mock
}

func (m *mockEventService) List(ctx context.Context, search, date string, page, limit int) (*dto.EventListResponse, error) {
	args := m.Called(ctx, search, date, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EventListResponse), args.Error(1)
}

func (m *mockEventService) Get(ctx context.Context, actor authz.Actor, id int64) (*dto.EventDetail, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EventDetail), args.Error(1)
}

func (m *mockEventService) Calendar(ctx context.Context, id int64) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockEventService) Create(ctx context.Context, actor authz.Actor, req *dto.CreateEventRequest) (int64, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEventService) Update(ctx context.Context, actor authz.Actor, id int64, req *dto.UpdateEventRequest) (*dto.EventDetail, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EventDetail), args.Error(1)
}

func (m *mockEventService) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockEventService) Join(ctx context.Context, actor authz.Actor, id int64) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockEventService) Leave(ctx context.Context, actor authz.Actor, id int64) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockEventService) RemoveParticipant(ctx context.Context, actor authz.Actor, eventID, userID int64) error {
	return m.Called(ctx, actor, eventID, userID).Error(0)
}

func (m *mockEventService) Participants(ctx context.Context, actor authz.Actor, eventID int64) (*dto.ParticipantsResponse, error) {
	args := m.Called(ctx, actor, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ParticipantsResponse), args.Error(1)
}

type mockAdminService struct {
	mock.Mock
}

func (m *mockAdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminStats), args.Error(1)
}

func (m *mockAdminService) Users(ctx context.Context, search string, page, limit int) (*dto.AdminUserListResponse, error) {
	args := m.Called(ctx, search, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AdminUserListResponse), args.Error(1)
}

func (m *mockAdminService) User(ctx context.Context, id int64) (*dto.AdminUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AdminUser), args.Error(1)
}

func (m *mockAdminService) ToggleBan(ctx context.Context, actor authz.Actor, id int64) (*dto.BanResponse, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BanResponse), args.Error(1)
}

func (m *mockAdminService) UpdateRole(ctx context.Context, actor authz.Actor, id int64, req *dto.UpdateRoleRequest) (string, error) {
	args := m.Called(ctx, actor, id, req)
	return args.String(0), args.Error(1)
}

func (m *mockAdminService) Announce(ctx context.Context, actor authz.Actor, message string) (*dto.AnnounceResponse, error) {
	args := m.Called(ctx, actor, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AnnounceResponse), args.Error(1)
}

type stubWeather struct {
	report *weather.Report
	err    error
	cities []string
}

func (s *stubWeather) Current(_ context.Context, city string) (*weather.Report, error) {
	s.cities = append(s.cities, city)
	return s.report, s.err
}
