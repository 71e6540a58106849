package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	authz "github.com/yigit/campusclubs/internal/app/auth"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/cache"
	"github.com/yigit/campusclubs/internal/metrics"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
	"github.com/yigit/campusclubs/internal/pkg/calendar"
	"github.com/yigit/campusclubs/internal/pkg/helpers"
)

// Event errors
var (
	ErrEventNotFoundMessage = apperrors.NewCustomError(apperrors.ErrEventNotFound, "Event not found")
	ErrEventCreateDenied    = apperrors.NewForbiddenError("Unauthorized. Only presidents or admins can create events.")
	ErrEventCapacity        = apperrors.NewBadRequestError("Etkinlik kapasitesi en az 1 olmalıdır.")
	ErrEventCapacityUpdate  = apperrors.NewBadRequestError("Kapasite 0'dan büyük olmalıdır.")
	ErrEventDateRequired    = apperrors.NewBadRequestError("Etkinlik tarihi zorunludur.")
	ErrEventEndBeforeStart  = apperrors.NewBadRequestError("Bitiş zamanı başlangıçtan sonra olmalıdır.")
	ErrInvalidDateFilter    = apperrors.NewBadRequestError("Invalid date filter, expected YYYY-MM-DD")
	ErrNotJoined            = apperrors.NewBadRequestError("Not joined")
	ErrParticipantNotFound  = apperrors.NewResourceNotFoundError("User is not a participant")
)

// NewEventMessage is the follower notification for a new event
func NewEventMessage(clubName, title string) string {
	return fmt.Sprintf("'%s' yeni bir etkinlik paylaştı: %s", clubName, title)
}

// EventService handles events, attendance and calendar export
type EventService struct {
	eventRepo       EventRepository
	participantRepo ParticipantRepository
	authz           *authz.AuthorizationService
	notifications   *NotificationService
	responseCache   Cache
	metrics         *metrics.Metrics
	listTTL         time.Duration
	logger          zerolog.Logger
	now             func() time.Time
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo EventRepository,
	participantRepo ParticipantRepository,
	authorization *authz.AuthorizationService,
	notifications *NotificationService,
	responseCache Cache,
	m *metrics.Metrics,
	listTTL time.Duration,
	logger zerolog.Logger,
) *EventService {
	return &EventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		authz:           authorization,
		notifications:   notifications,
		responseCache:   cacheOrNoop(responseCache),
		metrics:         m,
		listTTL:         listTTL,
		logger:          logger,
		now:             time.Now,
	}
}

func eventNotFound(err error) error {
	if errors.Is(err, apperrors.ErrEventNotFound) {
		return ErrEventNotFoundMessage
	}
	return err
}

func (s *EventService) invalidate(ctx context.Context) {
	s.responseCache.DeletePrefix(ctx, cache.EventListPrefix)
}

// manageableEvent loads an event and checks the caller manages its club.
func (s *EventService) manageableEvent(ctx context.Context, actor authz.Actor, id int64) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, eventNotFound(err)
	}
	if _, err := s.authz.ValidateClubManager(ctx, actor, event.ClubID); err != nil {
		return nil, clubNotFound(err)
	}
	return event, nil
}

// List returns a cached page of events of active clubs, soonest first.
func (s *EventService) List(ctx context.Context, search, date string, page, limit int) (*dto.EventListResponse, error) {
	search = strings.TrimSpace(search)
	date = strings.TrimSpace(date)

	filter := models.EventFilter{Search: search}
	if date != "" {
		from, err := helpers.ParseDay(date)
		if err != nil {
			return nil, ErrInvalidDateFilter
		}
		filter.From = &from
	}

	key := cache.EventListKey(page, limit, search, date)
	var cached dto.EventListResponse
	hit := s.responseCache.GetJSON(ctx, key, &cached)
	s.metrics.CacheLookup("events", hit)
	if hit {
		return &cached, nil
	}

	events, total, err := s.eventRepo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}

	items := make([]dto.EventListItem, 0, len(events))
	for i := range events {
		items = append(items, dto.NewEventListItem(&events[i]))
	}
	resp := &dto.EventListResponse{Events: items, Pagination: helpers.NewPaginationInfo(total, page, limit)}

	s.responseCache.SetJSON(ctx, key, resp, s.listTTL)
	return resp, nil
}

// Get returns the event page for the caller.
func (s *EventService) Get(ctx context.Context, actor authz.Actor, id int64) (*dto.EventDetail, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, eventNotFound(err)
	}

	joined := false
	if !actor.IsAnonymous() {
		if joined, err = s.participantRepo.IsJoined(ctx, id, actor.UserID); err != nil {
			return nil, fmt.Errorf("error checking participation: %w", err)
		}
	}
	detail := dto.NewEventDetail(event, joined)
	return &detail, nil
}

// Calendar renders the event as an iCalendar document.
func (s *EventService) Calendar(ctx context.Context, id int64) ([]byte, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, eventNotFound(err)
	}

	entry := calendar.Entry{
		ID:          event.ID,
		Title:       event.Title,
		Description: models.StringValue(event.Description),
		Location:    models.StringValue(event.Location),
		ClubName:    event.ClubName,
		Start:       event.EventDate,
	}
	if event.EndTime != nil {
		entry.End = *event.EndTime
	}
	return calendar.ExportOne(entry, s.now())
}

// Create publishes an event for a club and notifies its followers.
func (s *EventService) Create(ctx context.Context, actor authz.Actor, req *dto.CreateEventRequest) (int64, error) {
	club, err := s.authz.ValidateClubManager(ctx, actor, req.ClubID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPermissionDenied) {
			return 0, ErrEventCreateDenied
		}
		return 0, clubNotFound(err)
	}

	if req.Capacity < 1 {
		return 0, ErrEventCapacity
	}
	if req.Date.IsZero() {
		return 0, ErrEventDateRequired
	}

	creator := actor.UserID
	event := &models.Event{
		ClubID:      club.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		EventDate:   req.Date.Time,
		Location:    req.Location,
		Capacity:    req.Capacity,
		CreatedBy:   &creator,
	}
	if req.EndTime != nil && !req.EndTime.IsZero() {
		if !req.EndTime.After(req.Date.Time) {
			return 0, ErrEventEndBeforeStart
		}
		end := req.EndTime.Time
		event.EndTime = &end
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return 0, clubNotFound(fmt.Errorf("error creating event: %w", err))
	}
	s.invalidate(ctx)
	s.logger.Info().Int64("eventID", event.ID).Int64("clubID", club.ID).Str("title", event.Title).Msg("Event created")

	if _, err := s.notifications.NotifyFollowers(ctx, club.ID, &event.ID, NewEventMessage(club.Name, event.Title)); err != nil {
		s.logger.Error().Err(err).Int64("eventID", event.ID).Msg("Follower notification failed")
	}
	return event.ID, nil
}

// Update edits an event. Only the club president or an admin may.
func (s *EventService) Update(ctx context.Context, actor authz.Actor, id int64, req *dto.UpdateEventRequest) (*dto.EventDetail, error) {
	if _, err := s.manageableEvent(ctx, actor, id); err != nil {
		return nil, err
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return nil, ErrEventCapacityUpdate
	}

	event, err := s.eventRepo.Update(ctx, id, req.ToModel())
	if err != nil {
		return nil, eventNotFound(err)
	}
	s.invalidate(ctx)
	detail := dto.NewEventDetail(event, false)
	return &detail, nil
}

// Delete soft-deletes an event. Only the club president or an admin may.
func (s *EventService) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	if _, err := s.manageableEvent(ctx, actor, id); err != nil {
		return err
	}
	if err := s.eventRepo.SoftDelete(ctx, id); err != nil {
		return eventNotFound(err)
	}
	s.invalidate(ctx)
	s.logger.Info().Int64("eventID", id).Int64("by", actor.UserID).Msg("Event deleted")
	return nil
}

// Join registers the caller for an event with free capacity.
func (s *EventService) Join(ctx context.Context, actor authz.Actor, id int64) error {
	if err := s.participantRepo.Join(ctx, id, actor.UserID); err != nil {
		return eventNotFound(err)
	}
	s.metrics.Join("join")
	return nil
}

// Leave cancels the caller's registration.
func (s *EventService) Leave(ctx context.Context, actor authz.Actor, id int64) error {
	removed, err := s.participantRepo.Leave(ctx, id, actor.UserID)
	if err != nil {
		return fmt.Errorf("error leaving event: %w", err)
	}
	if !removed {
		return ErrNotJoined
	}
	s.metrics.Join("leave")
	return nil
}

// RemoveParticipant drops an attendee. Only the club president or an admin may.
func (s *EventService) RemoveParticipant(ctx context.Context, actor authz.Actor, eventID, userID int64) error {
	if _, err := s.manageableEvent(ctx, actor, eventID); err != nil {
		return err
	}
	removed, err := s.participantRepo.Leave(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("error removing participant: %w", err)
	}
	if !removed {
		return ErrParticipantNotFound
	}
	s.metrics.Join("remove")
	return nil
}

// Participants lists attendees. Only the club president or an admin may.
func (s *EventService) Participants(ctx context.Context, actor authz.Actor, eventID int64) (*dto.ParticipantsResponse, error) {
	if _, err := s.manageableEvent(ctx, actor, eventID); err != nil {
		return nil, err
	}
	rows, err := s.participantRepo.List(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing participants: %w", err)
	}
	out := make([]dto.Participant, 0, len(rows))
	for i := range rows {
		out = append(out, dto.NewParticipant(&rows[i]))
	}
	return &dto.ParticipantsResponse{Participants: out}, nil
}
