package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	authz "github.com/yigit/campusclubs/internal/app/auth"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/cache"
	"github.com/yigit/campusclubs/internal/metrics"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
	"github.com/yigit/campusclubs/internal/pkg/helpers"
)

// Club membership errors
var (
	ErrAdminCannotFollow   = apperrors.NewBadRequestError("Admins cannot join clubs as members")
	ErrClubNotJoinable     = apperrors.NewResourceNotFoundError("Club not available for joining")
	ErrPresidentFollow     = apperrors.NewBadRequestError("As the president, you are already the primary member.")
	ErrAlreadyMember       = apperrors.NewBadRequestError("Already a member")
	ErrNotMember           = apperrors.NewBadRequestError("You are not a member of this club")
	ErrMemberNotFound      = apperrors.NewResourceNotFoundError("User is not a member")
	ErrClubNameTaken       = apperrors.NewConflictError("A club with this name already exists")
	ErrClubNotFoundMessage = apperrors.NewCustomError(apperrors.ErrClubNotFound, "Club not found")
)

// ClubService handles club browsing, applications and membership
type ClubService struct {
	clubRepo      ClubRepository
	followerRepo  FollowerRepository
	eventRepo     EventRepository
	authz         *authz.AuthorizationService
	notifications *NotificationService
	responseCache Cache
	metrics       *metrics.Metrics
	listTTL       time.Duration
	logger        zerolog.Logger
}

// NewClubService creates a new ClubService
func NewClubService(
	clubRepo ClubRepository,
	followerRepo FollowerRepository,
	eventRepo EventRepository,
	authorization *authz.AuthorizationService,
	notifications *NotificationService,
	responseCache Cache,
	m *metrics.Metrics,
	listTTL time.Duration,
	logger zerolog.Logger,
) *ClubService {
	return &ClubService{
		clubRepo:      clubRepo,
		followerRepo:  followerRepo,
		eventRepo:     eventRepo,
		authz:         authorization,
		notifications: notifications,
		responseCache: cacheOrNoop(responseCache),
		metrics:       m,
		listTTL:       listTTL,
		logger:        logger,
	}
}

func clubNotFound(err error) error {
	if errors.Is(err, apperrors.ErrClubNotFound) {
		return ErrClubNotFoundMessage
	}
	return err
}

func (s *ClubService) invalidate(ctx context.Context) {
	s.responseCache.DeletePrefix(ctx, cache.ClubListPrefix)
}

// List returns a page of active clubs. Anonymous pages come from the cache;
// signed-in callers get their follow and president flags.
func (s *ClubService) List(ctx context.Context, actor authz.Actor, page, limit int) (*dto.ClubListResponse, error) {
	key := cache.ClubListKey(page, limit)
	if actor.IsAnonymous() {
		var cached dto.ClubListResponse
		hit := s.responseCache.GetJSON(ctx, key, &cached)
		s.metrics.CacheLookup("clubs", hit)
		if hit {
			return &cached, nil
		}
	}

	clubs, total, err := s.clubRepo.ListActive(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing clubs: %w", err)
	}

	followed := map[int64]bool{}
	if !actor.IsAnonymous() && len(clubs) > 0 {
		ids := make([]int64, len(clubs))
		for i := range clubs {
			ids[i] = clubs[i].ID
		}
		if followed, err = s.followerRepo.FollowedAmong(ctx, actor.UserID, ids); err != nil {
			return nil, fmt.Errorf("error loading follows: %w", err)
		}
	}

	items := make([]dto.ClubListItem, 0, len(clubs))
	for i := range clubs {
		items = append(items, dto.NewClubListItem(&clubs[i], followed[clubs[i].ID], actor.UserID))
	}
	pagination := helpers.NewPaginationInfo(total, page, limit)
	resp := &dto.ClubListResponse{Clubs: items, Pagination: &pagination}

	if actor.IsAnonymous() {
		s.responseCache.SetJSON(ctx, key, resp, s.listTTL)
	}
	return resp, nil
}

// MyClubs returns every club for admins and the presided clubs otherwise.
func (s *ClubService) MyClubs(ctx context.Context, actor authz.Actor) (*dto.ClubListResponse, error) {
	var (
		clubs []models.Club
		err   error
	)
	if actor.IsAdmin() {
		clubs, err = s.clubRepo.ListAll(ctx)
	} else {
		clubs, err = s.clubRepo.ListByPresident(ctx, actor.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("error listing managed clubs: %w", err)
	}

	items := make([]dto.ClubListItem, 0, len(clubs))
	for i := range clubs {
		items = append(items, dto.NewClubListItem(&clubs[i], false, actor.UserID))
	}
	return &dto.ClubListResponse{Clubs: items}, nil
}

// Pending returns clubs awaiting admin approval.
func (s *ClubService) Pending(ctx context.Context) (*dto.PendingClubsResponse, error) {
	clubs, err := s.clubRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing pending clubs: %w", err)
	}
	items := make([]dto.PendingClub, 0, len(clubs))
	for i := range clubs {
		items = append(items, dto.NewPendingClub(&clubs[i]))
	}
	return &dto.PendingClubsResponse{Clubs: items}, nil
}

// Get returns a club profile for the caller.
func (s *ClubService) Get(ctx context.Context, actor authz.Actor, id int64) (*dto.ClubDetail, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, clubNotFound(err)
	}

	following := false
	if !actor.IsAnonymous() {
		if following, err = s.followerRepo.IsFollowing(ctx, id, actor.UserID); err != nil {
			return nil, fmt.Errorf("error checking follow: %w", err)
		}
	}
	detail := dto.NewClubDetail(club, following, actor.UserID)
	return &detail, nil
}

// Posts returns a page of a club's events, newest first.
func (s *ClubService) Posts(ctx context.Context, clubID int64, page, limit int) (*dto.ClubPostsResponse, error) {
	if _, err := s.clubRepo.GetByID(ctx, clubID); err != nil {
		return nil, clubNotFound(err)
	}
	events, total, err := s.eventRepo.ListByClub(ctx, clubID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing club events: %w", err)
	}

	items := make([]dto.EventListItem, 0, len(events))
	for i := range events {
		items = append(items, dto.NewEventListItem(&events[i]))
	}
	return &dto.ClubPostsResponse{Events: items, Pagination: helpers.NewPaginationInfo(total, page, limit)}, nil
}

// Create registers a club with the caller as president. Admin-created clubs
// are active immediately; everyone else files an application.
func (s *ClubService) Create(ctx context.Context, actor authz.Actor, req *dto.CreateClubRequest) (*dto.ClubCreatedResponse, error) {
	status := models.ClubStatusPending
	message := "Club application submitted"
	if actor.IsAdmin() {
		status = models.ClubStatusActive
		message = "Club created"
	}

	president := actor.UserID
	club := &models.Club{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Status:      status,
		PresidentID: &president,
		CreatedBy:   &president,
	}
	if err := s.clubRepo.Create(ctx, club); err != nil {
		if errors.Is(err, apperrors.ErrClubNameExists) {
			return nil, ErrClubNameTaken
		}
		return nil, fmt.Errorf("error creating club: %w", err)
	}

	s.invalidate(ctx)
	s.logger.Info().Int64("clubID", club.ID).Str("status", string(status)).Int64("userID", actor.UserID).Msg("Club created")

	return &dto.ClubCreatedResponse{
		Message: message,
		Club:    dto.ClubSummary{ID: club.ID, Name: club.Name, Status: club.Status},
	}, nil
}

// Update edits a club's descriptive fields. Only the president or an admin may.
func (s *ClubService) Update(ctx context.Context, actor authz.Actor, id int64, req *dto.UpdateClubRequest) (*dto.ClubDetail, error) {
	if _, err := s.authz.ValidateClubManager(ctx, actor, id); err != nil {
		return nil, clubNotFound(err)
	}

	club, err := s.clubRepo.Update(ctx, id, req.ToModel())
	if err != nil {
		if errors.Is(err, apperrors.ErrClubNameExists) {
			return nil, ErrClubNameTaken
		}
		return nil, clubNotFound(err)
	}

	s.invalidate(ctx)
	detail := dto.NewClubDetail(club, false, actor.UserID)
	return &detail, nil
}

// AdminUpdate edits any club field, including status and president.
func (s *ClubService) AdminUpdate(ctx context.Context, actor authz.Actor, id int64, req *dto.AdminUpdateClubRequest) (*dto.ClubDetail, error) {
	if err := s.authz.ValidateAdmin(actor); err != nil {
		return nil, err
	}
	club, err := s.clubRepo.AdminUpdate(ctx, id, req.ToModel())
	if err != nil {
		if errors.Is(err, apperrors.ErrClubNameExists) {
			return nil, ErrClubNameTaken
		}
		return nil, clubNotFound(err)
	}

	s.invalidate(ctx)
	s.logger.Info().Int64("clubID", id).Int64("adminID", actor.UserID).Msg("Club updated by admin")
	detail := dto.NewClubDetail(club, false, actor.UserID)
	return &detail, nil
}

// Approve activates a pending club, promotes its president and tells them.
func (s *ClubService) Approve(ctx context.Context, actor authz.Actor, id int64) (string, error) {
	if err := s.authz.ValidateAdmin(actor); err != nil {
		return "", err
	}
	club, err := s.clubRepo.Approve(ctx, id)
	if err != nil {
		return "", clubNotFound(err)
	}
	s.invalidate(ctx)
	s.logger.Info().Int64("clubID", id).Int64("adminID", actor.UserID).Msg("Club approved")

	if club.PresidentID != nil {
		msg := fmt.Sprintf("'%s' kulüp başvurunuz onaylandı.", club.Name)
		if err := s.notifications.NotifyUser(ctx, *club.PresidentID, &club.ID, msg); err != nil {
			s.logger.Error().Err(err).Int64("clubID", id).Msg("Approval notification failed")
		}
	}
	return fmt.Sprintf("'%s' onaylandı ve başkanı yetkilendirildi.", club.Name), nil
}

// Delete soft-deletes a club.
func (s *ClubService) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	if err := s.authz.ValidateAdmin(actor); err != nil {
		return err
	}
	if err := s.clubRepo.SoftDelete(ctx, id); err != nil {
		return clubNotFound(err)
	}
	s.invalidate(ctx)
	s.responseCache.DeletePrefix(ctx, cache.EventListPrefix)
	s.logger.Info().Int64("clubID", id).Int64("adminID", actor.UserID).Msg("Club deleted")
	return nil
}

// Members lists a club's followers.
func (s *ClubService) Members(ctx context.Context, clubID int64) (*dto.ClubMembersResponse, error) {
	if _, err := s.clubRepo.GetByID(ctx, clubID); err != nil {
		return nil, clubNotFound(err)
	}
	followers, err := s.followerRepo.ListMembers(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("error listing members: %w", err)
	}
	members := make([]dto.ClubMember, 0, len(followers))
	for i := range followers {
		members = append(members, dto.NewClubMember(&followers[i]))
	}
	return &dto.ClubMembersResponse{Members: members}, nil
}

// Follow makes the caller a member of an active club.
func (s *ClubService) Follow(ctx context.Context, actor authz.Actor, clubID int64) (string, error) {
	if actor.IsAdmin() {
		return "", ErrAdminCannotFollow
	}

	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, apperrors.ErrClubNotFound) {
			return "", ErrClubNotJoinable
		}
		return "", err
	}
	if club.Status != models.ClubStatusActive {
		return "", ErrClubNotJoinable
	}
	if club.IsPresident(actor.UserID) {
		return "", ErrPresidentFollow
	}

	created, err := s.followerRepo.Follow(ctx, clubID, actor.UserID)
	if err != nil {
		return "", fmt.Errorf("error following club: %w", err)
	}
	if !created {
		return "", ErrAlreadyMember
	}

	s.metrics.Follow("follow")
	return fmt.Sprintf("Successfully joined %s", club.Name), nil
}

// Leave ends the caller's membership.
func (s *ClubService) Leave(ctx context.Context, actor authz.Actor, clubID int64) error {
	removed, err := s.followerRepo.Unfollow(ctx, clubID, actor.UserID)
	if err != nil {
		return fmt.Errorf("error leaving club: %w", err)
	}
	if !removed {
		return ErrNotMember
	}
	s.metrics.Follow("leave")
	return nil
}

// RemoveMember drops a follower. Only the president or an admin may.
func (s *ClubService) RemoveMember(ctx context.Context, actor authz.Actor, clubID, userID int64) error {
	if _, err := s.authz.ValidateClubManager(ctx, actor, clubID); err != nil {
		return clubNotFound(err)
	}

	removed, err := s.followerRepo.Unfollow(ctx, clubID, userID)
	if err != nil {
		return fmt.Errorf("error removing member: %w", err)
	}
	if !removed {
		return ErrMemberNotFound
	}

	s.metrics.Follow("remove")
	s.logger.Info().Int64("clubID", clubID).Int64("userID", userID).Int64("by", actor.UserID).Msg("Member removed")
	return nil
}
