package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/campusway/campus-events-api/internal/api/handler/v1/request"
	"github.com/campusway/campus-events-api/internal/api/handler/v1/response"
	"github.com/campusway/campus-events-api/internal/domain"
	"github.com/campusway/campus-events-api/internal/repository"
	"github.com/campusway/campus-events-api/internal/service"
)

type EventService interface {
	CreateEvent(ctx context.Context, event domain.Event, actorID uint) (domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event, actorID uint) (domain.Event, error)
	GetPublishedEvent(ctx context.Context, id uint) (domain.Event, error)
	GetEventForActor(ctx context.Context, id, actorID uint) (domain.Event, error)
	ListPublished(ctx context.Context, filter repository.EventFilter) ([]domain.Event, error)
	ListFeatured(ctx context.Context) ([]domain.Event, error)
	ListByCategorySlug(ctx context.Context, slug string) ([]domain.Event, error)
	ListCategories(ctx context.Context) ([]domain.EventCategory, error)
	ListMyEvents(ctx context.Context, actorID uint) ([]domain.Event, error)
	LikeEvent(ctx context.Context, eventID, userID uint) error
	UnlikeEvent(ctx context.Context, eventID, userID uint) error
}

type EventHandler struct {
	svc  EventService
	uSvc UserService
}

func NewEventHandler(svc EventService, uSvc UserService) *EventHandler {
	return &EventHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

func parseEventID(ctx *gin.Context) (uint, *response.Err) {
	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 64)
	if err != nil {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err))
	}

	return uint(eventID), nil
}

// HandleListEvents godoc
// @Summary      List published events
// @Description  Lists PUBLISHED events with optional search, category and district filters
// @Tags         events
// @Produce      json
// @Param        q         query     string  false  "search in title and description"
// @Param        category  query     int     false  "category ID"
// @Param        district  query     string  false  "district filter"
// @Success      200  {array}   domain.Event
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	filter := repository.EventFilter{
		Query:    ctx.Query("q"),
		District: ctx.Query("district"),
	}

	if rawCategory := ctx.Query("category"); rawCategory != "" {
		categoryID, err := strconv.ParseUint(rawCategory, 10, 64)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid category ID: %w", err)))
			return
		}
		filter.CategoryID = uint(categoryID)
	}

	events, err := h.svc.ListPublished(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListPublished -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleListFeaturedEvents godoc
// @Summary      List featured events
// @Tags         events
// @Produce      json
// @Success      200  {array}   domain.Event
// @Failure      500  {object}  response.Err
// @Router       /events/featured [get]
func (h *EventHandler) HandleListFeaturedEvents(ctx *gin.Context) {
	events, err := h.svc.ListFeatured(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListFeaturedEvents -> h.svc.ListFeatured -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleListCategories godoc
// @Summary      List event categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}   domain.EventCategory
// @Failure      500  {object}  response.Err
// @Router       /categories [get]
func (h *EventHandler) HandleListCategories(ctx *gin.Context) {
	categories, err := h.svc.ListCategories(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListCategories -> h.svc.ListCategories -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// HandleListEventsByCategory godoc
// @Summary      List published events in a category
// @Tags         categories,events
// @Produce      json
// @Param        slug  path      string  true  "category slug"
// @Success      200  {array}   domain.Event
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /categories/{slug}/events [get]
func (h *EventHandler) HandleListEventsByCategory(ctx *gin.Context) {
	slug := ctx.Param("slug")

	events, err := h.svc.ListByCategorySlug(ctx.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("category", "slug", slug))
			return
		}

		err = fmt.Errorf("v1.HandleListEventsByCategory -> h.svc.ListByCategorySlug -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get a published event
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	event, err := h.svc.GetPublishedEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetPublishedEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

func eventFromCreateRequest(req request.CreateEventRequest) (domain.Event, error) {
	parsedDate, err := time.Parse("02/01/2006", req.Date)
	if err != nil {
		return domain.Event{}, fmt.Errorf("invalid date format: %v", err)
	}

	return domain.Event{
		Title:                 req.Title,
		Description:           req.Description,
		Date:                  parsedDate,
		StartTime:             req.StartTime,
		EndTime:               req.EndTime,
		Location:              req.Location,
		District:              req.District,
		BannerURL:             req.BannerURL,
		PosterURL:             req.PosterURL,
		BrochureURL:           req.BrochureURL,
		ExternalLink:          req.ExternalLink,
		RegistrationMethod:    domain.RegistrationMethod(req.RegistrationMethod),
		PrimaryCategoryID:     req.PrimaryCategoryID,
		AdditionalCategoryIDs: req.AdditionalCategoryIDs,
	}, nil
}

// HandleCreateEvent godoc
// @Summary      Create a new event
// @Description  Creates an event. Hosts submit for review; ultimate admins publish directly.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateEventRequest  true  "event details"
// @Success      201    {object}  domain.Event
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /events [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := eventFromCreateRequest(req)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateEvent(ctx.Request.Context(), event, user.ID)
	if err != nil {
		var validationErrs validation.Errors
		switch {
		case errors.Is(err, service.ErrHostRoleRequired):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrHostRoleRequired))
		case errors.Is(err, service.ErrCategoryNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrCategoryNotFound))
		case errors.As(err, &validationErrs):
			response.RenderErr(ctx, response.ErrBadRequest(validationErrs))
		default:
			err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Description  Updates event content. Lifecycle state and audit fields are untouched.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                         true  "event ID"
// @Param        input    body      request.UpdateEventRequest  true  "event details"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [put]
// @Security     BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	parsedDate, err := time.Parse("02/01/2006", req.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid date format: %v", err)))
		return
	}

	event := domain.Event{
		ID:                    eventID,
		Title:                 req.Title,
		Description:           req.Description,
		Date:                  parsedDate,
		StartTime:             req.StartTime,
		EndTime:               req.EndTime,
		Location:              req.Location,
		District:              req.District,
		BannerURL:             req.BannerURL,
		PosterURL:             req.PosterURL,
		BrochureURL:           req.BrochureURL,
		ExternalLink:          req.ExternalLink,
		PrimaryCategoryID:     req.PrimaryCategoryID,
		AdditionalCategoryIDs: req.AdditionalCategoryIDs,
	}

	updated, err := h.svc.UpdateEvent(ctx.Request.Context(), event, user.ID)
	if err != nil {
		var validationErrs validation.Errors
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrNotEventHost):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotEventHost))
		case errors.Is(err, service.ErrCategoryNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrCategoryNotFound))
		case errors.As(err, &validationErrs):
			response.RenderErr(ctx, response.ErrBadRequest(validationErrs))
		default:
			err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.UpdateEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleListMyEvents godoc
// @Summary      List events hosted by the authenticated user
// @Tags         events
// @Produce      json
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/mine [get]
// @Security     BearerAuth
func (h *EventHandler) HandleListMyEvents(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	events, err := h.svc.ListMyEvents(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyEvents -> h.svc.ListMyEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetMyEvent godoc
// @Summary      Get one of the authenticated user's events, any status
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/manage [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetMyEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	event, err := h.svc.GetEventForActor(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrNotEventHost):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotEventHost))
		default:
			err = fmt.Errorf("v1.HandleGetMyEvent -> h.svc.GetEventForActor -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleLikeEvent godoc
// @Summary      Like an event
// @Description  Likes a published event. Liking twice is a no-op.
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/like [post]
// @Security     BearerAuth
func (h *EventHandler) HandleLikeEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.LikeEvent(ctx.Request.Context(), eventID, user.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound), errors.Is(err, service.ErrEventNotPublished):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		default:
			err = fmt.Errorf("v1.HandleLikeEvent -> h.svc.LikeEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "event liked"})
}

// HandleUnlikeEvent godoc
// @Summary      Remove a like from an event
// @Description  Unliking an event that was never liked is a no-op.
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/like [delete]
// @Security     BearerAuth
func (h *EventHandler) HandleUnlikeEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.UnlikeEvent(ctx.Request.Context(), eventID, user.ID); err != nil {
		err = fmt.Errorf("v1.HandleUnlikeEvent -> h.svc.UnlikeEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "event unliked"})
}
