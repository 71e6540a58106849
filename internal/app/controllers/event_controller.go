package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	authz "github.com/yigit/campusclubs/internal/app/auth"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/middleware"
	"github.com/yigit/campusclubs/internal/pkg/helpers"
)

const eventPageSize = 20

// EventUseCases is the slice of the event service used over HTTP
type EventUseCases interface {
	List(ctx context.Context, search, date string, page, limit int) (*dto.EventListResponse, error)
	Get(ctx context.Context, actor authz.Actor, id int64) (*dto.EventDetail, error)
	Calendar(ctx context.Context, id int64) ([]byte, error)
	Create(ctx context.Context, actor authz.Actor, req *dto.CreateEventRequest) (int64, error)
	Update(ctx context.Context, actor authz.Actor, id int64, req *dto.UpdateEventRequest) (*dto.EventDetail, error)
	Delete(ctx context.Context, actor authz.Actor, id int64) error
	Join(ctx context.Context, actor authz.Actor, id int64) error
	Leave(ctx context.Context, actor authz.Actor, id int64) error
	RemoveParticipant(ctx context.Context, actor authz.Actor, eventID, userID int64) error
	Participants(ctx context.Context, actor authz.Actor, eventID int64) (*dto.ParticipantsResponse, error)
}

// EventController serves events and attendance
type EventController struct {
	eventService EventUseCases
	logger       zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService EventUseCases, logger zerolog.Logger) *EventController {
	return &EventController{eventService: eventService, logger: logger}
}

// List godoc
// @Summary List upcoming events
// @Description Events of active clubs ordered by date. search matches title or description, date keeps events on or after YYYY-MM-DD.
// @Tags events
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param search query string false "Free text"
// @Param date query string false "Earliest date (YYYY-MM-DD)"
// @Success 200 {object} dto.EventListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Router /events [get]
func (c *EventController) List(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx, eventPageSize)
	resp, err := c.eventService.List(ctx.Request.Context(), ctx.Query("search"), ctx.Query("date"), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Event details
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	event, err := c.eventService.Get(ctx.Request.Context(), middleware.ActorFromContext(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.EventResponse{Event: *event})
}

// Calendar godoc
// @Summary Download an event as iCalendar
// @Tags events
// @Produce text/calendar
// @Param id path int true "Event ID"
// @Success 200 {string} string "VCALENDAR document"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/calendar.ics [get]
func (c *EventController) Calendar(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	body, err := c.eventService.Calendar(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="event-%d.ics"`, id))
	ctx.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}

// Create godoc
// @Summary Publish an event
// @Description Only the club president or an admin may publish. Followers are notified.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event data"
// @Success 201 {object} dto.EventCreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Not the president"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /events [post]
func (c *EventController) Create(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	id, err := c.eventService.Create(ctx.Request.Context(), middleware.ActorFromContext(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.EventCreatedResponse{Message: "Event created successfully", EventID: id})
}

// Update godoc
// @Summary Edit an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to change"
// @Success 200 {object} dto.EventUpdatedResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid capacity"
// @Failure 403 {object} dto.ErrorResponse "Not the president"
// @Router /events/{id} [put]
func (c *EventController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateEventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	event, err := c.eventService.Update(ctx.Request.Context(), middleware.ActorFromContext(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.EventUpdatedResponse{Message: "Event updated successfully", Event: *event})
}

// Delete godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse "Not the president"
// @Router /events/{id} [delete]
func (c *EventController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.eventService.Delete(ctx.Request.Context(), middleware.ActorFromContext(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	message(ctx, http.StatusOK, "Event deleted successfully")
}

// Join godoc
// @Summary Attend an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Already joined or full"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/join [post]
func (c *EventController) Join(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.eventService.Join(ctx.Request.Context(), middleware.ActorFromContext(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	message(ctx, http.StatusOK, "Successfully joined")
}

// Leave godoc
// @Summary Cancel attendance
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Not joined"
// @Router /events/{id}/leave [post]
func (c *EventController) Leave(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.eventService.Leave(ctx.Request.Context(), middleware.ActorFromContext(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	message(ctx, http.StatusOK, "Successfully left")
}

// RemoveParticipant godoc
// @Summary Remove an attendee
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.ParticipantRequest true "Attendee to remove"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse "Not the president"
// @Failure 404 {object} dto.ErrorResponse "Not a participant"
// @Router /events/{id}/remove-participant [post]
func (c *EventController) RemoveParticipant(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.ParticipantRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	if err := c.eventService.RemoveParticipant(ctx.Request.Context(), middleware.ActorFromContext(ctx), id, req.UserID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	message(ctx, http.StatusOK, "Participant removed successfully")
}

// Participants godoc
// @Summary Attendee list
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.ParticipantsResponse
// @Failure 403 {object} dto.ErrorResponse "Not the president"
// @Router /events/{id}/participants [get]
func (c *EventController) Participants(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.eventService.Participants(ctx.Request.Context(), middleware.ActorFromContext(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
